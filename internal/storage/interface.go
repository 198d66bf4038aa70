package storage

import "habitboard/internal/models"

// Provider is the repository the CLI and TUI orchestrate calls through. The
// scoring engine never sees a Provider; it consumes immutable Bundle snapshots
// taken via Snapshot.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Users
	AddUser(models.User) error
	GetUser(id string) (models.User, error)
	GetUserByName(name string) (models.User, error)
	GetAllUsers() ([]models.User, error)
	UpdateUser(models.User) error

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetHabitByTitle(title string) (models.Habit, error)
	GetAllHabits(includeInactive bool) ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	DeactivateHabit(id string) error
	RestoreHabit(id string) error

	// Entries
	AddEntry(models.HabitEntry) error
	GetEntry(habitID, userID, day string) (models.HabitEntry, error)
	GetEntriesForDay(day string) ([]models.HabitEntry, error)
	GetEntriesForUser(userID string) ([]models.HabitEntry, error)
	GetAllEntries() ([]models.HabitEntry, error)
	UpdateEntry(models.HabitEntry) error

	// Snapshot returns an independent copy of all entities for the engine,
	// export, and sync. Replace overwrites the whole store with the given
	// bundle (last-write-wins, whole-bundle granularity).
	Snapshot() (models.Bundle, error)
	Replace(models.Bundle) error

	// Utils
	GetConfigPath() string
}
