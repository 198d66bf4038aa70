package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"habitboard/internal/models"
)

type Store struct {
	Version     int                          `json:"version"`
	Users       map[string]models.User       `json:"users"`
	Habits      map[string]models.Habit      `json:"habits"`
	Entries     map[string]models.HabitEntry `json:"entries"` // keyed by entry id
	LastUpdated time.Time                    `json:"lastUpdated"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version: 1,
		Users:   make(map[string]models.User),
		Habits:  make(map[string]models.Habit),
		Entries: make(map[string]models.HabitEntry),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'habitboard init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	// Ensure maps are initialized
	if s.store.Users == nil {
		s.store.Users = make(map[string]models.User)
	}
	if s.store.Habits == nil {
		s.store.Habits = make(map[string]models.Habit)
	}
	if s.store.Entries == nil {
		s.store.Entries = make(map[string]models.HabitEntry)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	s.store.LastUpdated = time.Now()

	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) AddUser(user models.User) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Users[user.ID] = user
	return s.save()
}

func (s *JSONStore) GetUser(id string) (models.User, error) {
	if s.store == nil {
		return models.User{}, fmt.Errorf("storage not loaded")
	}

	user, ok := s.store.Users[id]
	if !ok {
		return models.User{}, fmt.Errorf("user not found: %s", id)
	}

	return user, nil
}

func (s *JSONStore) GetUserByName(name string) (models.User, error) {
	if s.store == nil {
		return models.User{}, fmt.Errorf("storage not loaded")
	}

	for _, user := range s.store.Users {
		if user.Name == name {
			return user, nil
		}
	}

	return models.User{}, fmt.Errorf("user not found: %s", name)
}

func (s *JSONStore) GetAllUsers() ([]models.User, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	users := make([]models.User, 0, len(s.store.Users))
	for _, user := range s.store.Users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].JoinedAt.Before(users[j].JoinedAt)
	})

	return users, nil
}

func (s *JSONStore) UpdateUser(user models.User) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Users[user.ID]; !ok {
		return fmt.Errorf("user not found: %s", user.ID)
	}

	s.store.Users[user.ID] = user
	return s.save()
}

func (s *JSONStore) AddHabit(habit models.Habit) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Habits[habit.ID] = habit
	return s.save()
}

func (s *JSONStore) GetHabit(id string) (models.Habit, error) {
	if s.store == nil {
		return models.Habit{}, fmt.Errorf("storage not loaded")
	}

	habit, ok := s.store.Habits[id]
	if !ok {
		return models.Habit{}, fmt.Errorf("habit not found: %s", id)
	}

	return habit, nil
}

func (s *JSONStore) GetHabitByTitle(title string) (models.Habit, error) {
	if s.store == nil {
		return models.Habit{}, fmt.Errorf("storage not loaded")
	}

	for _, habit := range s.store.Habits {
		if habit.Title == title {
			return habit, nil
		}
	}

	return models.Habit{}, fmt.Errorf("habit not found: %s", title)
}

func (s *JSONStore) GetAllHabits(includeInactive bool) ([]models.Habit, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	habits := make([]models.Habit, 0, len(s.store.Habits))
	for _, habit := range s.store.Habits {
		if !habit.IsActive && !includeInactive {
			continue
		}
		habits = append(habits, habit)
	}
	sort.Slice(habits, func(i, j int) bool {
		return habits[i].CreatedAt.Before(habits[j].CreatedAt)
	})

	return habits, nil
}

func (s *JSONStore) UpdateHabit(habit models.Habit) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Habits[habit.ID]; !ok {
		return fmt.Errorf("habit not found: %s", habit.ID)
	}

	s.store.Habits[habit.ID] = habit
	return s.save()
}

func (s *JSONStore) DeactivateHabit(id string) error {
	habit, err := s.GetHabit(id)
	if err != nil {
		return err
	}

	habit.IsActive = false
	return s.UpdateHabit(habit)
}

func (s *JSONStore) RestoreHabit(id string) error {
	habit, err := s.GetHabit(id)
	if err != nil {
		return err
	}

	habit.IsActive = true
	return s.UpdateHabit(habit)
}

func (s *JSONStore) AddEntry(e models.HabitEntry) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Entries[e.ID] = e
	return s.save()
}

func (s *JSONStore) GetEntry(habitID, userID, day string) (models.HabitEntry, error) {
	if s.store == nil {
		return models.HabitEntry{}, fmt.Errorf("storage not loaded")
	}

	for _, e := range s.store.Entries {
		if e.HabitID == habitID && e.UserID == userID && e.Day == day {
			return e, nil
		}
	}

	return models.HabitEntry{}, fmt.Errorf("no entry for habit %s, user %s on %s", habitID, userID, day)
}

func (s *JSONStore) GetEntriesForDay(day string) ([]models.HabitEntry, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	var entries []models.HabitEntry
	for _, e := range s.store.Entries {
		if e.Day == day {
			entries = append(entries, e)
		}
	}
	sortEntries(entries)

	return entries, nil
}

func (s *JSONStore) GetEntriesForUser(userID string) ([]models.HabitEntry, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	var entries []models.HabitEntry
	for _, e := range s.store.Entries {
		if e.UserID == userID {
			entries = append(entries, e)
		}
	}
	sortEntries(entries)

	return entries, nil
}

func (s *JSONStore) GetAllEntries() ([]models.HabitEntry, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	entries := make([]models.HabitEntry, 0, len(s.store.Entries))
	for _, e := range s.store.Entries {
		entries = append(entries, e)
	}
	sortEntries(entries)

	return entries, nil
}

func (s *JSONStore) UpdateEntry(e models.HabitEntry) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Entries[e.ID]; !ok {
		return fmt.Errorf("entry not found: %s", e.ID)
	}

	s.store.Entries[e.ID] = e
	return s.save()
}

func (s *JSONStore) Snapshot() (models.Bundle, error) {
	if s.store == nil {
		return models.Bundle{}, fmt.Errorf("storage not loaded")
	}

	users, err := s.GetAllUsers()
	if err != nil {
		return models.Bundle{}, err
	}
	habits, err := s.GetAllHabits(true)
	if err != nil {
		return models.Bundle{}, err
	}
	entries, err := s.GetAllEntries()
	if err != nil {
		return models.Bundle{}, err
	}

	return models.Bundle{
		Users:       users,
		Habits:      habits,
		Entries:     entries,
		LastUpdated: s.store.LastUpdated,
	}.Clone(), nil
}

func (s *JSONStore) Replace(b models.Bundle) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	users := make(map[string]models.User, len(b.Users))
	for _, u := range b.Users {
		users[u.ID] = u
	}
	habits := make(map[string]models.Habit, len(b.Habits))
	for _, h := range b.Habits {
		habits[h.ID] = h
	}
	entries := make(map[string]models.HabitEntry, len(b.Entries))
	for _, e := range b.Entries {
		entries[e.ID] = e
	}

	s.store.Users = users
	s.store.Habits = habits
	s.store.Entries = entries
	return s.save()
}

// GetConfigPath returns the path to the underlying storage file.
//
// Concurrency note:
//   - JSONStore is not safe for concurrent use by multiple goroutines without
//     external synchronization.
//   - Running multiple habitboard processes that share the same storage path at
//     the same time is not supported and may lead to data loss or corruption.
func (s *JSONStore) GetConfigPath() string {
	return s.path
}

// sortEntries orders entries by day then habit then user so getters are
// deterministic regardless of map iteration order.
func sortEntries(entries []models.HabitEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Day != entries[j].Day {
			return entries[i].Day < entries[j].Day
		}
		if entries[i].HabitID != entries[j].HabitID {
			return entries[i].HabitID < entries[j].HabitID
		}
		return entries[i].UserID < entries[j].UserID
	})
}
