package validation

import (
	"testing"

	"habitboard/internal/models"
)

func validBundle() models.Bundle {
	return models.Bundle{
		Users: []models.User{{ID: "u1", Name: "Ada"}},
		Habits: []models.Habit{{
			ID:              "h1",
			Title:           "Run",
			TargetFrequency: models.FrequencyDaily,
			Points:          10,
			IsActive:        true,
		}},
		Entries: []models.HabitEntry{{
			ID:        "e1",
			HabitID:   "h1",
			UserID:    "u1",
			Day:       "2024-03-15",
			Completed: true,
		}},
	}
}

func TestValidateBundleClean(t *testing.T) {
	vr := ValidateBundle(validBundle())
	if vr.HasConflicts() {
		t.Errorf("ValidateBundle() on clean bundle: %s", vr.FormatReport())
	}
	if vr.FormatReport() != "No conflicts detected." {
		t.Errorf("FormatReport() = %q", vr.FormatReport())
	}
}

func TestValidateBundle(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*models.Bundle)
		wantType ConflictType
		warning  bool
	}{
		{
			name: "malformed day id",
			mutate: func(b *models.Bundle) {
				b.Entries[0].Day = "15/03/2024"
			},
			wantType: ConflictMalformedDay,
		},
		{
			name: "missing user id",
			mutate: func(b *models.Bundle) {
				b.Users[0].ID = ""
			},
			wantType: ConflictMissingID,
		},
		{
			name: "duplicate habit id",
			mutate: func(b *models.Bundle) {
				b.Habits = append(b.Habits, b.Habits[0])
			},
			wantType: ConflictDuplicateID,
		},
		{
			name: "negative points",
			mutate: func(b *models.Bundle) {
				b.Habits[0].Points = -5
			},
			wantType: ConflictNegativePoints,
		},
		{
			name: "invalid frequency",
			mutate: func(b *models.Bundle) {
				b.Habits[0].TargetFrequency = "hourly"
			},
			wantType: ConflictInvalidFrequency,
		},
		{
			name: "duplicate entry for one habit-user-day",
			mutate: func(b *models.Bundle) {
				dup := b.Entries[0]
				dup.ID = "e2"
				b.Entries = append(b.Entries, dup)
			},
			wantType: ConflictDuplicateEntry,
		},
		{
			name: "dangling habit reference is a warning",
			mutate: func(b *models.Bundle) {
				b.Entries[0].HabitID = "gone"
			},
			wantType: ConflictDanglingHabit,
			warning:  true,
		},
		{
			name: "dangling user reference is a warning",
			mutate: func(b *models.Bundle) {
				b.Entries[0].UserID = "gone"
			},
			wantType: ConflictDanglingUser,
			warning:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBundle()
			tt.mutate(&b)

			vr := ValidateBundle(b)
			found := false
			for _, c := range vr.Conflicts {
				if c.Type == tt.wantType {
					found = true
					if c.Warning != tt.warning {
						t.Errorf("conflict %s Warning = %v, want %v", c.Type, c.Warning, tt.warning)
					}
				}
			}
			if !found {
				t.Errorf("ValidateBundle() missing conflict %s; got %s", tt.wantType, vr.FormatReport())
			}
			if vr.HasErrors() == tt.warning && len(vr.Conflicts) == 1 {
				t.Errorf("HasErrors() = %v for warning=%v", vr.HasErrors(), tt.warning)
			}
		})
	}
}

func TestValidateBundleEmpty(t *testing.T) {
	vr := ValidateBundle(models.Bundle{})
	if vr.HasConflicts() {
		t.Errorf("empty bundle should be valid, got: %s", vr.FormatReport())
	}
}
