package storage

import (
	"path/filepath"
	"testing"
	"time"

	"habitboard/internal/models"
)

func newTestJSONStore(t *testing.T) *JSONStore {
	t.Helper()

	store := NewJSONStore(filepath.Join(t.TempDir(), "habitboard.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := store.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return store
}

func testUser(id, name string) models.User {
	return models.User{
		ID:       id,
		Name:     name,
		Email:    name + "@example.com",
		JoinedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func testHabit(id, title string, points int) models.Habit {
	return models.Habit{
		ID:              id,
		Title:           title,
		Description:     "test habit",
		Category:        "health",
		TargetFrequency: models.FrequencyDaily,
		Points:          points,
		CreatedBy:       "u1",
		CreatedAt:       time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		IsActive:        true,
	}
}

func testEntry(id, habitID, userID, day string, completed bool) models.HabitEntry {
	return models.HabitEntry{
		ID:        id,
		HabitID:   habitID,
		UserID:    userID,
		Day:       day,
		Completed: completed,
	}
}

func TestJSONStoreInitTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habitboard.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := store.Init(); err == nil {
		t.Error("Init() on existing storage expected error")
	}
}

func TestJSONStoreLoadUninitialized(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	if err := store.Load(); err == nil {
		t.Error("Load() on missing storage expected error")
	}
}

func TestJSONStoreUsers(t *testing.T) {
	store := newTestJSONStore(t)

	if err := store.AddUser(testUser("u1", "ada")); err != nil {
		t.Fatalf("AddUser() error = %v", err)
	}

	got, err := store.GetUser("u1")
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if got.Name != "ada" {
		t.Errorf("GetUser().Name = %q, want ada", got.Name)
	}

	byName, err := store.GetUserByName("ada")
	if err != nil {
		t.Fatalf("GetUserByName() error = %v", err)
	}
	if byName.ID != "u1" {
		t.Errorf("GetUserByName().ID = %q, want u1", byName.ID)
	}

	if _, err := store.GetUser("nope"); err == nil {
		t.Error("GetUser() for unknown id expected error")
	}

	got.Email = "new@example.com"
	if err := store.UpdateUser(got); err != nil {
		t.Fatalf("UpdateUser() error = %v", err)
	}
	updated, _ := store.GetUser("u1")
	if updated.Email != "new@example.com" {
		t.Errorf("UpdateUser() did not persist email, got %q", updated.Email)
	}

	if err := store.UpdateUser(testUser("ghost", "ghost")); err == nil {
		t.Error("UpdateUser() for unknown user expected error")
	}
}

func TestJSONStoreHabitDeactivation(t *testing.T) {
	store := newTestJSONStore(t)

	if err := store.AddHabit(testHabit("h1", "Run", 10)); err != nil {
		t.Fatalf("AddHabit() error = %v", err)
	}
	if err := store.AddHabit(testHabit("h2", "Read", 5)); err != nil {
		t.Fatalf("AddHabit() error = %v", err)
	}

	if err := store.DeactivateHabit("h1"); err != nil {
		t.Fatalf("DeactivateHabit() error = %v", err)
	}

	active, err := store.GetAllHabits(false)
	if err != nil {
		t.Fatalf("GetAllHabits() error = %v", err)
	}
	if len(active) != 1 || active[0].ID != "h2" {
		t.Errorf("active habits = %v, want only h2", active)
	}

	all, err := store.GetAllHabits(true)
	if err != nil {
		t.Fatalf("GetAllHabits(true) error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("all habits = %d, want 2 (deactivation must not delete)", len(all))
	}

	if err := store.RestoreHabit("h1"); err != nil {
		t.Fatalf("RestoreHabit() error = %v", err)
	}
	active, _ = store.GetAllHabits(false)
	if len(active) != 2 {
		t.Errorf("active habits after restore = %d, want 2", len(active))
	}
}

func TestJSONStoreEntries(t *testing.T) {
	store := newTestJSONStore(t)

	if err := store.AddEntry(testEntry("e1", "h1", "u1", "2024-03-15", true)); err != nil {
		t.Fatalf("AddEntry() error = %v", err)
	}
	if err := store.AddEntry(testEntry("e2", "h1", "u2", "2024-03-15", true)); err != nil {
		t.Fatalf("AddEntry() error = %v", err)
	}
	if err := store.AddEntry(testEntry("e3", "h1", "u1", "2024-03-14", false)); err != nil {
		t.Fatalf("AddEntry() error = %v", err)
	}

	e, err := store.GetEntry("h1", "u1", "2024-03-15")
	if err != nil {
		t.Fatalf("GetEntry() error = %v", err)
	}
	if e.ID != "e1" {
		t.Errorf("GetEntry().ID = %q, want e1", e.ID)
	}

	// Toggle off: flip the flag on the existing entry, never create a new one.
	e.Completed = false
	if err := store.UpdateEntry(e); err != nil {
		t.Fatalf("UpdateEntry() error = %v", err)
	}
	all, _ := store.GetAllEntries()
	if len(all) != 3 {
		t.Errorf("entries after toggle = %d, want 3", len(all))
	}
	toggled, _ := store.GetEntry("h1", "u1", "2024-03-15")
	if toggled.Completed {
		t.Error("toggle did not flip Completed")
	}

	forUser, err := store.GetEntriesForUser("u1")
	if err != nil {
		t.Fatalf("GetEntriesForUser() error = %v", err)
	}
	if len(forUser) != 2 {
		t.Errorf("GetEntriesForUser() = %d entries, want 2", len(forUser))
	}

	forDay, err := store.GetEntriesForDay("2024-03-15")
	if err != nil {
		t.Fatalf("GetEntriesForDay() error = %v", err)
	}
	if len(forDay) != 2 {
		t.Errorf("GetEntriesForDay() = %d entries, want 2", len(forDay))
	}
}

func TestJSONStoreSnapshotIsIndependent(t *testing.T) {
	store := newTestJSONStore(t)

	if err := store.AddUser(testUser("u1", "ada")); err != nil {
		t.Fatalf("AddUser() error = %v", err)
	}
	if err := store.AddEntry(testEntry("e1", "h1", "u1", "2024-03-15", true)); err != nil {
		t.Fatalf("AddEntry() error = %v", err)
	}

	snap, err := store.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	// Mutating the store after the snapshot must not change the snapshot.
	if err := store.AddEntry(testEntry("e2", "h1", "u1", "2024-03-16", true)); err != nil {
		t.Fatalf("AddEntry() error = %v", err)
	}
	if len(snap.Entries) != 1 {
		t.Errorf("snapshot grew with the store: %d entries", len(snap.Entries))
	}
}

func TestJSONStoreReplace(t *testing.T) {
	store := newTestJSONStore(t)

	if err := store.AddUser(testUser("old", "old")); err != nil {
		t.Fatalf("AddUser() error = %v", err)
	}

	incoming := models.Bundle{
		Users:  []models.User{testUser("u1", "ada"), testUser("u2", "grace")},
		Habits: []models.Habit{testHabit("h1", "Run", 10)},
		Entries: []models.HabitEntry{
			testEntry("e1", "h1", "u1", "2024-03-15", true),
		},
	}
	if err := store.Replace(incoming); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	// Whole-bundle semantics: previous contents are gone.
	if _, err := store.GetUser("old"); err == nil {
		t.Error("Replace() kept a user from the previous bundle")
	}

	users, _ := store.GetAllUsers()
	habits, _ := store.GetAllHabits(true)
	entries, _ := store.GetAllEntries()
	if len(users) != 2 || len(habits) != 1 || len(entries) != 1 {
		t.Errorf("Replace() store contents = %d users, %d habits, %d entries", len(users), len(habits), len(entries))
	}

	// Replaced data survives a reload from disk.
	reloaded := NewJSONStore(store.GetConfigPath())
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load() after replace error = %v", err)
	}
	users, _ = reloaded.GetAllUsers()
	if len(users) != 2 {
		t.Errorf("reloaded store has %d users, want 2", len(users))
	}
}
