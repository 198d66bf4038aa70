package sync

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"habitboard/internal/models"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS habitboard_groups (
	code         TEXT PRIMARY KEY,
	id           TEXT NOT NULL,
	name         TEXT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL,
	data         JSONB NOT NULL,
	last_updated TIMESTAMPTZ NOT NULL
);
`

// PostgresStore keeps groups in a shared postgres database so several devices
// can sync through one server. It stores opaque bundle blobs only; there is
// no server-side aggregation or merging, just whole-bundle last-write-wins.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens the shared database and ensures the groups table
// exists. The connection string normally comes from the OS keyring.
func NewPostgresStore(connStr string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open sync database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sync database unreachable: %w", err)
	}
	if _, err := db.Exec(postgresSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create sync schema: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Create(name string, data models.Bundle) (Group, error) {
	blob, err := json.Marshal(data)
	if err != nil {
		return Group{}, fmt.Errorf("failed to serialize bundle: %w", err)
	}

	group := Group{
		ID:          uuid.New().String(),
		Name:        name,
		CreatedAt:   time.Now(),
		Data:        data,
		LastUpdated: time.Now(),
	}

	// Retry on code collisions; six characters over a small population makes
	// more than a couple of retries implausible.
	for attempt := 0; attempt < 5; attempt++ {
		code, err := GenerateCode()
		if err != nil {
			return Group{}, err
		}

		res, err := s.db.Exec(`
			INSERT INTO habitboard_groups (code, id, name, created_at, data, last_updated)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (code) DO NOTHING`,
			code, group.ID, group.Name, group.CreatedAt, blob, group.LastUpdated)
		if err != nil {
			return Group{}, fmt.Errorf("failed to create group: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 1 {
			group.Code = code
			return group, nil
		}
	}

	return Group{}, fmt.Errorf("failed to allocate a unique group code")
}

func (s *PostgresStore) Get(code string) (Group, error) {
	row := s.db.QueryRow(`
		SELECT code, id, name, created_at, data, last_updated
		FROM habitboard_groups WHERE code = $1`, code)

	var g Group
	var blob []byte
	if err := row.Scan(&g.Code, &g.ID, &g.Name, &g.CreatedAt, &blob, &g.LastUpdated); err != nil {
		if err == sql.ErrNoRows {
			return Group{}, fmt.Errorf("group not found: %s", code)
		}
		return Group{}, fmt.Errorf("failed to load group: %w", err)
	}

	if err := json.Unmarshal(blob, &g.Data); err != nil {
		return Group{}, fmt.Errorf("failed to parse group bundle: %w", err)
	}
	return g, nil
}

func (s *PostgresStore) Update(code string, data models.Bundle) error {
	blob, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to serialize bundle: %w", err)
	}

	res, err := s.db.Exec(`
		UPDATE habitboard_groups SET data = $1, last_updated = $2 WHERE code = $3`,
		blob, time.Now(), code)
	if err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("group not found: %s", code)
	}
	return nil
}

func (s *PostgresStore) List() ([]Group, error) {
	rows, err := s.db.Query(`
		SELECT code, id, name, created_at, data, last_updated
		FROM habitboard_groups ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := []Group{}
	for rows.Next() {
		var g Group
		var blob []byte
		if err := rows.Scan(&g.Code, &g.ID, &g.Name, &g.CreatedAt, &blob, &g.LastUpdated); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(blob, &g.Data); err != nil {
			return nil, fmt.Errorf("failed to parse group bundle: %w", err)
		}
		groups = append(groups, g)
	}

	return groups, rows.Err()
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
