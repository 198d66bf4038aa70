package scoring

import (
	"sort"

	"habitboard/internal/models"
)

// BuildLeaderboard assigns every user a dense 1-based rank ordered by total
// points, ties broken by current streak. Users with no entry in statsByUser
// get zero-valued stats rather than an error. When both keys tie the relative
// order follows the input order (the sort is stable), and the tied users still
// receive distinct consecutive ranks.
func BuildLeaderboard(users []models.User, statsByUser map[string]models.UserStats, today string) []models.LeaderboardEntry {
	entries := make([]models.LeaderboardEntry, 0, len(users))
	for _, u := range users {
		stats, ok := statsByUser[u.ID]
		if !ok {
			stats = models.UserStats{UserID: u.ID, LastActive: today}
		}
		entries = append(entries, models.LeaderboardEntry{User: u, Stats: stats})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Stats.TotalPoints != entries[j].Stats.TotalPoints {
			return entries[i].Stats.TotalPoints > entries[j].Stats.TotalPoints
		}
		return entries[i].Stats.Streak > entries[j].Stats.Streak
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// TopByLongestStreak returns the top n entries re-sorted by longest streak.
// The primary Rank field is left as assigned by BuildLeaderboard.
func TopByLongestStreak(entries []models.LeaderboardEntry, n int) []models.LeaderboardEntry {
	return topBy(entries, n, func(e models.LeaderboardEntry) int {
		return e.Stats.LongestStreak
	})
}

// TopByCompletions returns the top n entries re-sorted by completion count.
// The primary Rank field is left as assigned by BuildLeaderboard.
func TopByCompletions(entries []models.LeaderboardEntry, n int) []models.LeaderboardEntry {
	return topBy(entries, n, func(e models.LeaderboardEntry) int {
		return e.Stats.HabitsCompleted
	})
}

func topBy(entries []models.LeaderboardEntry, n int, key func(models.LeaderboardEntry) int) []models.LeaderboardEntry {
	out := make([]models.LeaderboardEntry, len(entries))
	copy(out, entries)

	sort.SliceStable(out, func(i, j int) bool {
		return key(out[i]) > key(out[j])
	})

	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
