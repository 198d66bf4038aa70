package models

import "time"

// User represents a participant whose habits are tracked and ranked
type User struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Avatar   string    `json:"avatar,omitempty"`
	JoinedAt time.Time `json:"joinedAt"`
}
