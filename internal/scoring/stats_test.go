package scoring

import (
	"reflect"
	"testing"
	"time"

	"habitboard/internal/models"
)

func habit(id string, points int) models.Habit {
	return models.Habit{
		ID:              id,
		Title:           "habit " + id,
		TargetFrequency: models.FrequencyDaily,
		Points:          points,
		CreatedAt:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:        true,
	}
}

func TestComputeStats(t *testing.T) {
	habits := []models.Habit{habit("h1", 10), habit("h2", 5)}

	tests := []struct {
		name    string
		entries []models.HabitEntry
		want    models.UserStats
	}{
		{
			name: "habit worth 10 completed four times",
			entries: []models.HabitEntry{
				entry("h1", "u1", "2024-03-12", true),
				entry("h1", "u1", "2024-03-13", true),
				entry("h1", "u1", "2024-03-14", true),
				entry("h1", "u1", "2024-03-15", true),
			},
			want: models.UserStats{
				UserID:          "u1",
				TotalPoints:     40,
				Streak:          4,
				LongestStreak:   4,
				HabitsCompleted: 4,
				LastActive:      "2024-03-15",
			},
		},
		{
			name:    "no entries yields zero stats with sentinel last-active",
			entries: nil,
			want: models.UserStats{
				UserID:     "u1",
				LastActive: testToday,
			},
		},
		{
			name: "incomplete entries contribute nothing",
			entries: []models.HabitEntry{
				entry("h1", "u1", "2024-03-15", false),
				entry("h2", "u1", "2024-03-14", false),
			},
			want: models.UserStats{
				UserID:     "u1",
				LastActive: testToday,
			},
		},
		{
			name: "missing habit contributes zero points but still counts",
			entries: []models.HabitEntry{
				entry("deleted-habit", "u1", "2024-03-15", true),
				entry("h2", "u1", "2024-03-15", true),
			},
			want: models.UserStats{
				UserID:          "u1",
				TotalPoints:     5,
				Streak:          1,
				LongestStreak:   1,
				HabitsCompleted: 2,
				LastActive:      "2024-03-15",
			},
		},
		{
			name: "completions count entries not days",
			entries: []models.HabitEntry{
				entry("h1", "u1", "2024-03-15", true),
				entry("h2", "u1", "2024-03-15", true),
			},
			want: models.UserStats{
				UserID:          "u1",
				TotalPoints:     15,
				Streak:          1,
				LongestStreak:   1,
				HabitsCompleted: 2,
				LastActive:      "2024-03-15",
			},
		},
		{
			name: "other users are excluded",
			entries: []models.HabitEntry{
				entry("h1", "u2", "2024-03-15", true),
			},
			want: models.UserStats{
				UserID:     "u1",
				LastActive: testToday,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeStats(tt.entries, habits, "u1", testToday)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ComputeStats() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestComputeStatsIdempotent(t *testing.T) {
	habits := []models.Habit{habit("h1", 10)}
	entries := []models.HabitEntry{
		entry("h1", "u1", "2024-03-14", true),
		entry("h1", "u1", "2024-03-15", true),
	}

	first := ComputeStats(entries, habits, "u1", testToday)
	second := ComputeStats(entries, habits, "u1", testToday)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("ComputeStats() not idempotent: %+v vs %+v", first, second)
	}
}

func TestComputeStatsRetroactivePointEdit(t *testing.T) {
	entries := []models.HabitEntry{
		entry("h1", "u1", "2024-03-14", true),
		entry("h1", "u1", "2024-03-15", true),
	}

	before := ComputeStats(entries, []models.Habit{habit("h1", 10)}, "u1", testToday)
	after := ComputeStats(entries, []models.Habit{habit("h1", 25)}, "u1", testToday)

	if before.TotalPoints != 20 {
		t.Errorf("TotalPoints before edit = %d, want 20", before.TotalPoints)
	}
	// Entries carry no point snapshot: editing the habit recomputes history.
	if after.TotalPoints != 50 {
		t.Errorf("TotalPoints after edit = %d, want 50", after.TotalPoints)
	}
}

func TestComputeAllStats(t *testing.T) {
	bundle := models.Bundle{
		Users: []models.User{
			{ID: "u1", Name: "Ada"},
			{ID: "u2", Name: "Grace"},
		},
		Habits: []models.Habit{habit("h1", 10)},
		Entries: []models.HabitEntry{
			entry("h1", "u1", "2024-03-15", true),
		},
	}

	stats := ComputeAllStats(bundle, testToday)
	if len(stats) != 2 {
		t.Fatalf("ComputeAllStats() returned %d users, want 2", len(stats))
	}
	if stats["u1"].TotalPoints != 10 {
		t.Errorf("u1 TotalPoints = %d, want 10", stats["u1"].TotalPoints)
	}
	if stats["u2"].TotalPoints != 0 || stats["u2"].HabitsCompleted != 0 {
		t.Errorf("u2 stats = %+v, want zero-valued", stats["u2"])
	}
}
