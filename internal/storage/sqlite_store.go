package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"habitboard/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id        TEXT PRIMARY KEY,
	name      TEXT NOT NULL,
	email     TEXT NOT NULL,
	avatar    TEXT,
	joined_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS habits (
	id               TEXT PRIMARY KEY,
	title            TEXT NOT NULL,
	description      TEXT NOT NULL DEFAULT '',
	category         TEXT NOT NULL DEFAULT '',
	target_frequency TEXT NOT NULL,
	points           INTEGER NOT NULL,
	created_by       TEXT NOT NULL,
	created_at       TEXT NOT NULL,
	is_active        INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS entries (
	id           TEXT PRIMARY KEY,
	habit_id     TEXT NOT NULL,
	user_id      TEXT NOT NULL,
	day          TEXT NOT NULL,
	completed    INTEGER NOT NULL DEFAULT 0,
	notes        TEXT NOT NULL DEFAULT '',
	completed_at TEXT,
	UNIQUE(habit_id, user_id, day)
);

CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return s.touch()
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'habitboard init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Schema statements are idempotent; running them on load picks up tables
	// added after the database was first initialized.
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to verify schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) touch() error {
	_, err := s.db.Exec(`
		INSERT INTO meta (key, value) VALUES ('last_updated', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		time.Now().Format(time.RFC3339))
	return err
}

func (s *SQLiteStore) lastUpdated() time.Time {
	var v string
	if err := s.db.QueryRow(`SELECT value FROM meta WHERE key = 'last_updated'`).Scan(&v); err != nil {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (s *SQLiteStore) AddUser(user models.User) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO users (id, name, email, avatar, joined_at)
		VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.Email, user.Avatar, user.JoinedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return s.touch()
}

func scanUser(row *sql.Row) (models.User, error) {
	var u models.User
	var avatar sql.NullString
	var joinedAt string

	if err := row.Scan(&u.ID, &u.Name, &u.Email, &avatar, &joinedAt); err != nil {
		return models.User{}, err
	}

	var err error
	u.JoinedAt, err = time.Parse(time.RFC3339, joinedAt)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to parse joined_at: %w", err)
	}
	if avatar.Valid {
		u.Avatar = avatar.String
	}

	return u, nil
}

func (s *SQLiteStore) GetUser(id string) (models.User, error) {
	row := s.db.QueryRow(`
		SELECT id, name, email, avatar, joined_at
		FROM users WHERE id = ?`, id)

	u, err := scanUser(row)
	if err != nil {
		return models.User{}, fmt.Errorf("user not found: %s", id)
	}
	return u, nil
}

func (s *SQLiteStore) GetUserByName(name string) (models.User, error) {
	row := s.db.QueryRow(`
		SELECT id, name, email, avatar, joined_at
		FROM users WHERE name = ?`, name)

	u, err := scanUser(row)
	if err != nil {
		return models.User{}, fmt.Errorf("user not found: %s", name)
	}
	return u, nil
}

func (s *SQLiteStore) GetAllUsers() ([]models.User, error) {
	rows, err := s.db.Query(`
		SELECT id, name, email, avatar, joined_at
		FROM users ORDER BY joined_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		var avatar sql.NullString
		var joinedAt string

		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &avatar, &joinedAt); err != nil {
			return nil, err
		}
		u.JoinedAt, err = time.Parse(time.RFC3339, joinedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse joined_at: %w", err)
		}
		if avatar.Valid {
			u.Avatar = avatar.String
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

func (s *SQLiteStore) UpdateUser(user models.User) error {
	if _, err := s.GetUser(user.ID); err != nil {
		return err
	}
	return s.AddUser(user)
}

func (s *SQLiteStore) AddHabit(habit models.Habit) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO habits
			(id, title, description, category, target_frequency, points, created_by, created_at, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		habit.ID, habit.Title, habit.Description, habit.Category,
		string(habit.TargetFrequency), habit.Points, habit.CreatedBy,
		habit.CreatedAt.Format(time.RFC3339), boolToInt(habit.IsActive))
	if err != nil {
		return fmt.Errorf("failed to save habit: %w", err)
	}
	return s.touch()
}

func scanHabit(scan func(dest ...any) error) (models.Habit, error) {
	var h models.Habit
	var frequency, createdAt string
	var isActive int

	if err := scan(&h.ID, &h.Title, &h.Description, &h.Category, &frequency,
		&h.Points, &h.CreatedBy, &createdAt, &isActive); err != nil {
		return models.Habit{}, err
	}

	var err error
	h.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	h.TargetFrequency = models.Frequency(frequency)
	h.IsActive = isActive != 0

	return h, nil
}

func (s *SQLiteStore) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT id, title, description, category, target_frequency, points, created_by, created_at, is_active
		FROM habits WHERE id = ?`, id)

	h, err := scanHabit(row.Scan)
	if err != nil {
		return models.Habit{}, fmt.Errorf("habit not found: %s", id)
	}
	return h, nil
}

func (s *SQLiteStore) GetHabitByTitle(title string) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT id, title, description, category, target_frequency, points, created_by, created_at, is_active
		FROM habits WHERE title = ?`, title)

	h, err := scanHabit(row.Scan)
	if err != nil {
		return models.Habit{}, fmt.Errorf("habit not found: %s", title)
	}
	return h, nil
}

func (s *SQLiteStore) GetAllHabits(includeInactive bool) ([]models.Habit, error) {
	query := `
		SELECT id, title, description, category, target_frequency, points, created_by, created_at, is_active
		FROM habits`
	if !includeInactive {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY created_at, id`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	habits := []models.Habit{}
	for rows.Next() {
		h, err := scanHabit(rows.Scan)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}

	return habits, rows.Err()
}

func (s *SQLiteStore) UpdateHabit(habit models.Habit) error {
	if _, err := s.GetHabit(habit.ID); err != nil {
		return err
	}
	return s.AddHabit(habit)
}

func (s *SQLiteStore) DeactivateHabit(id string) error {
	habit, err := s.GetHabit(id)
	if err != nil {
		return err
	}
	habit.IsActive = false
	return s.AddHabit(habit)
}

func (s *SQLiteStore) RestoreHabit(id string) error {
	habit, err := s.GetHabit(id)
	if err != nil {
		return err
	}
	habit.IsActive = true
	return s.AddHabit(habit)
}

func (s *SQLiteStore) AddEntry(e models.HabitEntry) error {
	var completedAt any
	if e.CompletedAt != nil {
		completedAt = e.CompletedAt.Format(time.RFC3339)
	}

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO entries (id, habit_id, user_id, day, completed, notes, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.HabitID, e.UserID, e.Day, boolToInt(e.Completed), e.Notes, completedAt)
	if err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}
	return s.touch()
}

func scanEntry(scan func(dest ...any) error) (models.HabitEntry, error) {
	var e models.HabitEntry
	var completed int
	var completedAt sql.NullString

	if err := scan(&e.ID, &e.HabitID, &e.UserID, &e.Day, &completed, &e.Notes, &completedAt); err != nil {
		return models.HabitEntry{}, err
	}

	e.Completed = completed != 0
	if completedAt.Valid {
		t, err := time.Parse(time.RFC3339, completedAt.String)
		if err != nil {
			return models.HabitEntry{}, fmt.Errorf("failed to parse completed_at: %w", err)
		}
		e.CompletedAt = &t
	}

	return e, nil
}

func (s *SQLiteStore) GetEntry(habitID, userID, day string) (models.HabitEntry, error) {
	row := s.db.QueryRow(`
		SELECT id, habit_id, user_id, day, completed, notes, completed_at
		FROM entries WHERE habit_id = ? AND user_id = ? AND day = ?`,
		habitID, userID, day)

	e, err := scanEntry(row.Scan)
	if err != nil {
		return models.HabitEntry{}, fmt.Errorf("no entry for habit %s, user %s on %s", habitID, userID, day)
	}
	return e, nil
}

func (s *SQLiteStore) queryEntries(query string, args ...any) ([]models.HabitEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.HabitEntry{}
	for rows.Next() {
		e, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (s *SQLiteStore) GetEntriesForDay(day string) ([]models.HabitEntry, error) {
	return s.queryEntries(`
		SELECT id, habit_id, user_id, day, completed, notes, completed_at
		FROM entries WHERE day = ? ORDER BY day, habit_id, user_id`, day)
}

func (s *SQLiteStore) GetEntriesForUser(userID string) ([]models.HabitEntry, error) {
	return s.queryEntries(`
		SELECT id, habit_id, user_id, day, completed, notes, completed_at
		FROM entries WHERE user_id = ? ORDER BY day, habit_id, user_id`, userID)
}

func (s *SQLiteStore) GetAllEntries() ([]models.HabitEntry, error) {
	return s.queryEntries(`
		SELECT id, habit_id, user_id, day, completed, notes, completed_at
		FROM entries ORDER BY day, habit_id, user_id`)
}

func (s *SQLiteStore) UpdateEntry(e models.HabitEntry) error {
	var exists int
	if err := s.db.QueryRow(`SELECT count(*) FROM entries WHERE id = ?`, e.ID).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return fmt.Errorf("entry not found: %s", e.ID)
	}
	return s.AddEntry(e)
}

func (s *SQLiteStore) Snapshot() (models.Bundle, error) {
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
		LastUpdated: s.lastUpdated(),
	}, nil
}

func (s *SQLiteStore) Replace(b models.Bundle) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"entries", "habits", "users"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, u := range b.Users {
		if _, err := tx.Exec(`
			INSERT INTO users (id, name, email, avatar, joined_at)
			VALUES (?, ?, ?, ?, ?)`,
			u.ID, u.Name, u.Email, u.Avatar, u.JoinedAt.Format(time.RFC3339)); err != nil {
			return fmt.Errorf("failed to insert user %s: %w", u.ID, err)
		}
	}
	for _, h := range b.Habits {
		if _, err := tx.Exec(`
			INSERT INTO habits
				(id, title, description, category, target_frequency, points, created_by, created_at, is_active)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			h.ID, h.Title, h.Description, h.Category, string(h.TargetFrequency),
			h.Points, h.CreatedBy, h.CreatedAt.Format(time.RFC3339), boolToInt(h.IsActive)); err != nil {
			return fmt.Errorf("failed to insert habit %s: %w", h.ID, err)
		}
	}
	for _, e := range b.Entries {
		var completedAt any
		if e.CompletedAt != nil {
			completedAt = e.CompletedAt.Format(time.RFC3339)
		}
		if _, err := tx.Exec(`
			INSERT INTO entries (id, habit_id, user_id, day, completed, notes, completed_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			e.ID, e.HabitID, e.UserID, e.Day, boolToInt(e.Completed), e.Notes, completedAt); err != nil {
			return fmt.Errorf("failed to insert entry %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	return s.touch()
}

// GetConfigPath returns the path to the underlying database file.
//
// Concurrency note: running multiple habitboard processes against the same
// database file is not supported.
func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
