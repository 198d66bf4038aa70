package sync

import (
	"crypto/rand"
	"fmt"
	"time"

	"habitboard/internal/constants"
	"habitboard/internal/models"
)

// Group is a named bundle shared between devices under a short join code.
// Replication is last-write-wins at whole-bundle granularity: pushing replaces
// the group's data, pulling replaces the local store. Nothing is merged.
type Group struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Code        string        `json:"code"`
	CreatedAt   time.Time     `json:"createdAt"`
	Data        models.Bundle `json:"data"`
	LastUpdated time.Time     `json:"lastUpdated"`
}

// Store is a place groups live: a local JSON file, or a shared postgres
// database when several devices sync through one server.
type Store interface {
	Create(name string, data models.Bundle) (Group, error)
	Get(code string) (Group, error)
	Update(code string, data models.Bundle) error
	List() ([]Group, error)
	Close() error
}

// GenerateCode returns a new 6-character join code (A-Z, 0-9).
func GenerateCode() (string, error) {
	buf := make([]byte, constants.GroupCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate group code: %w", err)
	}

	code := make([]byte, constants.GroupCodeLength)
	for i, b := range buf {
		code[i] = constants.GroupCodeAlphabet[int(b)%len(constants.GroupCodeAlphabet)]
	}
	return string(code), nil
}
