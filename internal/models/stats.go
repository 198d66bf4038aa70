package models

// UserStats is a pure projection over the entry log; it is recomputed on every
// query and never stored.
type UserStats struct {
	UserID          string `json:"userId"`
	TotalPoints     int    `json:"totalPoints"`
	Streak          int    `json:"streak"`
	LongestStreak   int    `json:"longestStreak"`
	HabitsCompleted int    `json:"habitsCompleted"`
	// LastActive is the day (YYYY-MM-DD) of the most recent completed entry.
	// When HabitsCompleted is 0 it holds today's day id as a sentinel and must
	// not be read as a real activity date.
	LastActive string `json:"lastActive"`
}

// LeaderboardEntry is a user's position on the leaderboard. Rank is 1-based
// and dense; ties in stats still get distinct ranks.
type LeaderboardEntry struct {
	User  User      `json:"user"`
	Stats UserStats `json:"stats"`
	Rank  int       `json:"rank"`
}
