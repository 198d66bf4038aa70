package constants

const (
	AppName            = "habitboard"
	DefaultKeyringUser = "sync-connection"
	DefaultConfigPath  = "~/.config/habitboard/habitboard.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// GroupsFileName is the local group-bundle file kept beside the config
	GroupsFileName = "groups.json"

	// Group code constants
	GroupCodeLength   = 6
	GroupCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// Frequency constants
	FrequencyDaily  = "daily"
	FrequencyWeekly = "weekly"

	// Leaderboard sort keys
	LeaderboardByPoints    = "points"
	LeaderboardByLongest   = "longest"
	LeaderboardByCompleted = "completed"
)
