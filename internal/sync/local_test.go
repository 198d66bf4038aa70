package sync

import (
	"path/filepath"
	"strings"
	"testing"

	"habitboard/internal/constants"
	"habitboard/internal/models"
)

func newTestLocalStore(t *testing.T) *LocalStore {
	t.Helper()
	return NewLocalStore(filepath.Join(t.TempDir(), "groups.json"))
}

func sampleBundle(userID string) models.Bundle {
	return models.Bundle{
		Users: []models.User{{ID: userID, Name: "Ada"}},
	}
}

func TestGenerateCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := GenerateCode()
		if err != nil {
			t.Fatalf("GenerateCode() error = %v", err)
		}
		if len(code) != constants.GroupCodeLength {
			t.Fatalf("code %q has length %d, want %d", code, len(code), constants.GroupCodeLength)
		}
		for _, c := range code {
			if !strings.ContainsRune(constants.GroupCodeAlphabet, c) {
				t.Fatalf("code %q contains %q outside the alphabet", code, c)
			}
		}
		seen[code] = true
	}
	// 100 draws from 36^6 should essentially never collide every time.
	if len(seen) < 2 {
		t.Error("GenerateCode() produced no variety")
	}
}

func TestLocalStoreCreateAndGet(t *testing.T) {
	store := newTestLocalStore(t)

	group, err := store.Create("roommates", sampleBundle("u1"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if group.Code == "" || group.ID == "" {
		t.Fatalf("Create() returned incomplete group: %+v", group)
	}

	got, err := store.Get(group.Code)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != "roommates" {
		t.Errorf("Get().Name = %q, want roommates", got.Name)
	}
	if len(got.Data.Users) != 1 || got.Data.Users[0].ID != "u1" {
		t.Errorf("Get().Data.Users = %+v", got.Data.Users)
	}

	if _, err := store.Get("NOPE99"); err == nil {
		t.Error("Get() for unknown code expected error")
	}
}

func TestLocalStoreUpdateIsLastWriteWins(t *testing.T) {
	store := newTestLocalStore(t)

	group, err := store.Create("roommates", sampleBundle("u1"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// The replacement bundle drops u1 entirely; no merging may resurrect it.
	if err := store.Update(group.Code, sampleBundle("u2")); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := store.Get(group.Code)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(got.Data.Users) != 1 || got.Data.Users[0].ID != "u2" {
		t.Errorf("Update() did not replace the whole bundle: %+v", got.Data.Users)
	}
	if !got.LastUpdated.After(group.LastUpdated) && !got.LastUpdated.Equal(group.LastUpdated) {
		t.Errorf("LastUpdated did not advance")
	}

	if err := store.Update("NOPE99", sampleBundle("u3")); err == nil {
		t.Error("Update() for unknown code expected error")
	}
}

func TestLocalStoreList(t *testing.T) {
	store := newTestLocalStore(t)

	if groups, err := store.List(); err != nil || len(groups) != 0 {
		t.Fatalf("List() on empty store = %v, %v", groups, err)
	}

	if _, err := store.Create("one", sampleBundle("u1")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := store.Create("two", sampleBundle("u2")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	groups, err := store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(groups) != 2 {
		t.Errorf("List() = %d groups, want 2", len(groups))
	}
}
