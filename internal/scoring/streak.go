package scoring

import (
	"slices"
	"time"

	"habitboard/internal/constants"
	"habitboard/internal/models"
)

// epochDay returns the whole-day index of a day id. Day ids are naive
// calendar days, so the arithmetic is done in UTC where every day is exactly
// 86400 seconds. Inputs are validated at the deserialization boundary; a day
// that still fails to parse here is excluded rather than guessed at.
func epochDay(day string) (int64, bool) {
	t, err := time.Parse(constants.DateFormat, day)
	if err != nil {
		return 0, false
	}
	return t.Unix() / 86400, true
}

// completedDays collects the distinct completed days for a user as epoch-day
// indexes. Multiple entries on the same day (different habits, or stray
// duplicates) collapse to one day so they cannot inflate a streak.
func completedDays(entries []models.HabitEntry, userID string) []int64 {
	uniq := make(map[int64]struct{})
	for _, e := range entries {
		if e.UserID != userID || !e.Completed {
			continue
		}
		if d, ok := epochDay(e.Day); ok {
			uniq[d] = struct{}{}
		}
	}

	days := make([]int64, 0, len(uniq))
	for d := range uniq {
		days = append(days, d)
	}
	slices.Sort(days)
	return days
}

// CurrentStreak returns the number of consecutive days, counting back from
// today, on which the user completed at least one habit. The walk is strict:
// the first day without a completion ends it, so an unlogged today yields 0
// even when yesterday was logged. Future-dated entries are not filtered; they
// break the walk at the first mismatch.
func CurrentStreak(entries []models.HabitEntry, userID, today string) int {
	t, ok := epochDay(today)
	if !ok {
		return 0
	}

	days := completedDays(entries, userID)
	slices.Reverse(days)

	streak := 0
	expected := t
	for _, d := range days {
		if d != expected {
			break
		}
		streak++
		expected--
	}
	return streak
}

// LongestStreak returns the longest run of consecutive completed days anywhere
// in the user's history. Zero completions yield 0; a single completed day
// yields 1.
func LongestStreak(entries []models.HabitEntry, userID string) int {
	days := completedDays(entries, userID)
	if len(days) == 0 {
		return 0
	}

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i]-days[i-1] == 1 {
			run++
			longest = max(longest, run)
		} else {
			run = 1
		}
	}
	return longest
}
