package scoring

import (
	"fmt"
	"testing"

	"habitboard/internal/models"
)

const testToday = "2024-03-15"

func entry(habitID, userID, day string, completed bool) models.HabitEntry {
	return models.HabitEntry{
		ID:        fmt.Sprintf("%s-%s-%s", habitID, userID, day),
		HabitID:   habitID,
		UserID:    userID,
		Day:       day,
		Completed: completed,
	}
}

func TestCurrentStreak(t *testing.T) {
	tests := []struct {
		name    string
		entries []models.HabitEntry
		want    int
	}{
		{
			name: "three consecutive days ending today",
			entries: []models.HabitEntry{
				entry("h1", "u1", "2024-03-15", true),
				entry("h1", "u1", "2024-03-14", true),
				entry("h1", "u1", "2024-03-13", true),
			},
			want: 3,
		},
		{
			name: "gap two days back stops the walk",
			entries: []models.HabitEntry{
				entry("h1", "u1", "2024-03-15", true),
				entry("h1", "u1", "2024-03-14", true),
				entry("h1", "u1", "2024-03-12", true),
			},
			want: 2,
		},
		{
			name:    "no entries",
			entries: nil,
			want:    0,
		},
		{
			name: "nothing logged today breaks the streak",
			entries: []models.HabitEntry{
				entry("h1", "u1", "2024-03-14", true),
				entry("h1", "u1", "2024-03-13", true),
			},
			want: 0,
		},
		{
			name: "incomplete entries are invisible",
			entries: []models.HabitEntry{
				entry("h1", "u1", "2024-03-15", false),
				entry("h1", "u1", "2024-03-14", true),
			},
			want: 0,
		},
		{
			name: "multiple habits on one day count once",
			entries: []models.HabitEntry{
				entry("h1", "u1", "2024-03-15", true),
				entry("h2", "u1", "2024-03-15", true),
				entry("h3", "u1", "2024-03-15", true),
				entry("h1", "u1", "2024-03-14", true),
			},
			want: 2,
		},
		{
			name: "duplicate entries for one day count once",
			entries: []models.HabitEntry{
				entry("h1", "u1", "2024-03-15", true),
				entry("h1", "u1", "2024-03-15", true),
			},
			want: 1,
		},
		{
			name: "other users do not contribute",
			entries: []models.HabitEntry{
				entry("h1", "u2", "2024-03-15", true),
				entry("h1", "u1", "2024-03-15", true),
			},
			want: 1,
		},
		{
			name: "future entry breaks the walk",
			entries: []models.HabitEntry{
				entry("h1", "u1", "2024-03-16", true),
				entry("h1", "u1", "2024-03-15", true),
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CurrentStreak(tt.entries, "u1", testToday); got != tt.want {
				t.Errorf("CurrentStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLongestStreak(t *testing.T) {
	tests := []struct {
		name    string
		entries []models.HabitEntry
		want    int
	}{
		{
			name:    "no entries",
			entries: nil,
			want:    0,
		},
		{
			name: "single completed day",
			entries: []models.HabitEntry{
				entry("h1", "u1", "2024-01-10", true),
			},
			want: 1,
		},
		{
			name: "run in the past beats the current run",
			entries: []models.HabitEntry{
				entry("h1", "u1", "2024-01-10", true),
				entry("h1", "u1", "2024-01-11", true),
				entry("h1", "u1", "2024-01-12", true),
				entry("h1", "u1", "2024-01-13", true),
				entry("h1", "u1", "2024-03-14", true),
				entry("h1", "u1", "2024-03-15", true),
			},
			want: 4,
		},
		{
			name: "gap resets the run to one",
			entries: []models.HabitEntry{
				entry("h1", "u1", "2024-03-15", true),
				entry("h1", "u1", "2024-03-14", true),
				entry("h1", "u1", "2024-03-12", true),
			},
			want: 2,
		},
		{
			name: "run across a month boundary",
			entries: []models.HabitEntry{
				entry("h1", "u1", "2024-02-28", true),
				entry("h1", "u1", "2024-02-29", true),
				entry("h1", "u1", "2024-03-01", true),
			},
			want: 3,
		},
		{
			name: "only incomplete entries",
			entries: []models.HabitEntry{
				entry("h1", "u1", "2024-03-14", false),
				entry("h1", "u1", "2024-03-15", false),
			},
			want: 0,
		},
		{
			name: "duplicate days do not extend the run",
			entries: []models.HabitEntry{
				entry("h1", "u1", "2024-03-14", true),
				entry("h2", "u1", "2024-03-14", true),
				entry("h1", "u1", "2024-03-15", true),
			},
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LongestStreak(tt.entries, "u1"); got != tt.want {
				t.Errorf("LongestStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStreaksNeverNegative(t *testing.T) {
	entries := []models.HabitEntry{
		entry("h1", "u1", "2024-03-01", false),
		entry("h1", "u1", "bogus-day", true),
	}
	if got := CurrentStreak(entries, "u1", testToday); got < 0 {
		t.Errorf("CurrentStreak() = %d, want >= 0", got)
	}
	if got := LongestStreak(entries, "u1"); got < 0 {
		t.Errorf("LongestStreak() = %d, want >= 0", got)
	}
}
