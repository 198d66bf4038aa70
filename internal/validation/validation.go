package validation

import (
	"fmt"
	"time"

	"habitboard/internal/constants"
	"habitboard/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictMalformedDay     ConflictType = "malformed_day"
	ConflictMissingID        ConflictType = "missing_id"
	ConflictDuplicateID      ConflictType = "duplicate_id"
	ConflictNegativePoints   ConflictType = "negative_points"
	ConflictInvalidFrequency ConflictType = "invalid_frequency"
	ConflictDuplicateEntry   ConflictType = "duplicate_entry"
	ConflictDanglingHabit    ConflictType = "dangling_habit_ref"
	ConflictDanglingUser     ConflictType = "dangling_user_ref"
)

// Conflict represents a problem detected in an incoming bundle. Warnings are
// shapes the engine tolerates by design (dangling references resolve to zero
// contribution); everything else blocks an import.
type Conflict struct {
	Type        ConflictType
	Description string
	Warning     bool
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasErrors returns true if any non-warning conflict was detected
func (vr *ValidationResult) HasErrors() bool {
	for _, c := range vr.Conflicts {
		if !c.Warning {
			return true
		}
	}
	return false
}

// HasConflicts returns true if there are any conflicts, warnings included
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, c := range vr.Conflicts {
		marker := "-"
		if c.Warning {
			marker = "~"
		}
		report += fmt.Sprintf("%s %s\n", marker, c.Description)
	}
	return report
}

func (vr *ValidationResult) add(t ConflictType, warning bool, format string, args ...interface{}) {
	vr.Conflicts = append(vr.Conflicts, Conflict{
		Type:        t,
		Description: fmt.Sprintf(format, args...),
		Warning:     warning,
	})
}

// ValidateBundle checks an incoming bundle's shape before it reaches storage
// or the scoring engine. A malformed day id is an error here, never a zero
// value downstream: a coerced day would be indistinguishable from real
// absence of activity and would corrupt the ranking.
func ValidateBundle(b models.Bundle) ValidationResult {
	var vr ValidationResult

	userIDs := make(map[string]struct{}, len(b.Users))
	for _, u := range b.Users {
		if u.ID == "" {
			vr.add(ConflictMissingID, false, "user %q has no id", u.Name)
			continue
		}
		if _, ok := userIDs[u.ID]; ok {
			vr.add(ConflictDuplicateID, false, "duplicate user id %s", u.ID)
		}
		userIDs[u.ID] = struct{}{}
	}

	habitIDs := make(map[string]struct{}, len(b.Habits))
	for _, h := range b.Habits {
		if h.ID == "" {
			vr.add(ConflictMissingID, false, "habit %q has no id", h.Title)
			continue
		}
		if _, ok := habitIDs[h.ID]; ok {
			vr.add(ConflictDuplicateID, false, "duplicate habit id %s", h.ID)
		}
		habitIDs[h.ID] = struct{}{}

		if h.Points < 0 {
			vr.add(ConflictNegativePoints, false, "habit %q has negative points (%d)", h.Title, h.Points)
		}
		if h.TargetFrequency != models.FrequencyDaily && h.TargetFrequency != models.FrequencyWeekly {
			vr.add(ConflictInvalidFrequency, false, "habit %q has frequency %q", h.Title, h.TargetFrequency)
		}
	}

	entryKeys := make(map[string]struct{}, len(b.Entries))
	for _, e := range b.Entries {
		if e.ID == "" {
			vr.add(ConflictMissingID, false, "entry for habit %s on %s has no id", e.HabitID, e.Day)
		}
		if _, err := time.Parse(constants.DateFormat, e.Day); err != nil {
			vr.add(ConflictMalformedDay, false, "entry %s has malformed day %q", e.ID, e.Day)
		}

		key := e.HabitID + "|" + e.UserID + "|" + e.Day
		if _, ok := entryKeys[key]; ok {
			vr.add(ConflictDuplicateEntry, false, "duplicate entry for habit %s, user %s on %s", e.HabitID, e.UserID, e.Day)
		}
		entryKeys[key] = struct{}{}

		if _, ok := habitIDs[e.HabitID]; !ok {
			vr.add(ConflictDanglingHabit, true, "entry %s references unknown habit %s", e.ID, e.HabitID)
		}
		if _, ok := userIDs[e.UserID]; !ok {
			vr.add(ConflictDanglingUser, true, "entry %s references unknown user %s", e.ID, e.UserID)
		}
	}

	return vr
}
