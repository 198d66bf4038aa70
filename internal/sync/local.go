package sync

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"habitboard/internal/models"
)

// LocalStore keeps groups in a JSON file beside the main config. It backs the
// single-device case and doubles as the offline cache of joined groups.
type LocalStore struct {
	path string
}

func NewLocalStore(path string) *LocalStore {
	return &LocalStore{path: path}
}

func (s *LocalStore) load() (map[string]Group, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]Group{}, nil
		}
		return nil, fmt.Errorf("failed to read groups: %w", err)
	}

	groups := map[string]Group{}
	if err := json.Unmarshal(data, &groups); err != nil {
		return nil, fmt.Errorf("failed to parse groups: %w", err)
	}
	return groups, nil
}

func (s *LocalStore) save(groups map[string]Group) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(groups, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize groups: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write groups: %w", err)
	}
	return nil
}

func (s *LocalStore) Create(name string, data models.Bundle) (Group, error) {
	groups, err := s.load()
	if err != nil {
		return Group{}, err
	}

	code, err := GenerateCode()
	if err != nil {
		return Group{}, err
	}
	// Regenerate on the off chance the code is taken.
	for _, taken := groups[code]; taken; _, taken = groups[code] {
		if code, err = GenerateCode(); err != nil {
			return Group{}, err
		}
	}

	group := Group{
		ID:          uuid.New().String(),
		Name:        name,
		Code:        code,
		CreatedAt:   time.Now(),
		Data:        data,
		LastUpdated: time.Now(),
	}

	groups[code] = group
	if err := s.save(groups); err != nil {
		return Group{}, err
	}
	return group, nil
}

func (s *LocalStore) Get(code string) (Group, error) {
	groups, err := s.load()
	if err != nil {
		return Group{}, err
	}

	group, ok := groups[code]
	if !ok {
		return Group{}, fmt.Errorf("group not found: %s", code)
	}
	return group, nil
}

func (s *LocalStore) Update(code string, data models.Bundle) error {
	groups, err := s.load()
	if err != nil {
		return err
	}

	group, ok := groups[code]
	if !ok {
		return fmt.Errorf("group not found: %s", code)
	}

	group.Data = data
	group.LastUpdated = time.Now()
	groups[code] = group
	return s.save(groups)
}

func (s *LocalStore) List() ([]Group, error) {
	groups, err := s.load()
	if err != nil {
		return nil, err
	}

	out := make([]Group, 0, len(groups))
	for _, g := range groups {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *LocalStore) Close() error {
	return nil
}
