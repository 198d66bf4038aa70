package models

import "time"

// Frequency is how often a habit is meant to be performed
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

// Habit represents a recurring practice to track. Habits are never hard-deleted;
// IsActive is flipped off instead so historical entries keep resolving.
type Habit struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	TargetFrequency Frequency `json:"targetFrequency"`
	Points          int       `json:"points"`
	CreatedBy       string    `json:"createdBy"`
	CreatedAt       time.Time `json:"createdAt"`
	IsActive        bool      `json:"isActive"`
}

// HabitEntry represents a single user's record of a habit on one day.
// There is at most one entry per (habit, user, day); toggling completion
// flips Completed on the existing entry rather than creating a new one.
type HabitEntry struct {
	ID          string     `json:"id"`
	HabitID     string     `json:"habitId"`
	UserID      string     `json:"userId"`
	Day         string     `json:"date"` // YYYY-MM-DD format
	Completed   bool       `json:"completed"`
	Notes       string     `json:"notes,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}
