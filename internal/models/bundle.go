package models

import "time"

// Bundle is the full entity snapshot exchanged between devices and handed to
// the scoring engine. Replication is whole-bundle last-write-wins; the engine
// just recomputes from whatever snapshot it is given.
type Bundle struct {
	Users       []User       `json:"users"`
	Habits      []Habit      `json:"habits"`
	Entries     []HabitEntry `json:"entries"`
	LastUpdated time.Time    `json:"lastUpdated"`
}

// Clone returns an independent copy of the bundle so callers can hand the
// engine a snapshot that later store mutations cannot touch.
func (b Bundle) Clone() Bundle {
	out := Bundle{
		Users:       make([]User, len(b.Users)),
		Habits:      make([]Habit, len(b.Habits)),
		Entries:     make([]HabitEntry, len(b.Entries)),
		LastUpdated: b.LastUpdated,
	}
	copy(out.Users, b.Users)
	copy(out.Habits, b.Habits)
	for i, e := range b.Entries {
		if e.CompletedAt != nil {
			t := *e.CompletedAt
			e.CompletedAt = &t
		}
		out.Entries[i] = e
	}
	return out
}
