package scoring

import "habitboard/internal/models"

// ComputeStats aggregates a user's completed entries into UserStats. It is a
// pure function of its inputs: no shared state, safe to call once per user per
// query.
//
// TotalPoints resolves each entry's habit at lookup time, so editing a habit's
// point value retroactively changes historical totals; an entry whose habit is
// missing contributes 0, never an error. HabitsCompleted counts entries, not
// distinct days (two habits completed on one day count twice here but once for
// the streak).
func ComputeStats(entries []models.HabitEntry, habits []models.Habit, userID, today string) models.UserStats {
	points := make(map[string]int, len(habits))
	for _, h := range habits {
		points[h.ID] = h.Points
	}

	stats := models.UserStats{
		UserID:     userID,
		LastActive: today,
	}

	lastDay := ""
	for _, e := range entries {
		if e.UserID != userID || !e.Completed {
			continue
		}
		stats.TotalPoints += points[e.HabitID]
		stats.HabitsCompleted++
		if e.Day > lastDay {
			lastDay = e.Day
		}
	}
	if lastDay != "" {
		stats.LastActive = lastDay
	}

	stats.Streak = CurrentStreak(entries, userID, today)
	stats.LongestStreak = LongestStreak(entries, userID)

	return stats
}

// ComputeAllStats runs the aggregator once per user in the bundle and returns
// the stats keyed by user id.
func ComputeAllStats(b models.Bundle, today string) map[string]models.UserStats {
	stats := make(map[string]models.UserStats, len(b.Users))
	for _, u := range b.Users {
		stats[u.ID] = ComputeStats(b.Entries, b.Habits, u.ID, today)
	}
	return stats
}
