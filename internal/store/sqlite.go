// Package store keeps project files in a SQLite database so the HTTP host
// can serve more than one project.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"placer/internal/world"
)

// ErrNotFound is returned when no project has the requested id.
var ErrNotFound = errors.New("project not found")

const schema = `
CREATE TABLE IF NOT EXISTS projects (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL DEFAULT '',
    part_count INTEGER NOT NULL DEFAULT 0,
    data       BLOB NOT NULL,
    updated_at TEXT NOT NULL
);
`

// Summary is one row of List.
type Summary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	PartCount int       `json:"partCount"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ============================================================
// SQLite Store
// ============================================================

type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path and applies the
// schema. The caller must import a database/sql driver registered as
// "sqlite3".
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts or replaces the project with f.ID.
func (s *Store) Save(ctx context.Context, f world.ProjectFile) error {
	if f.ID == "" {
		return errors.New("project id required")
	}
	data, err := world.Encode(f)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO projects (id, name, part_count, data, updated_at)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            name = excluded.name,
            part_count = excluded.part_count,
            data = excluded.data,
            updated_at = excluded.updated_at
    `, f.ID, f.Name, len(f.Parts), data, s.now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save project %s: %w", f.ID, err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context, id string) (world.ProjectFile, error) {
	row := s.db.QueryRowContext(ctx, `SELECT data FROM projects WHERE id = ?`, id)

	var data []byte
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return world.ProjectFile{}, ErrNotFound
		}
		return world.ProjectFile{}, err
	}
	return world.Decode(data)
}

// List returns every project ordered by id.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, name, part_count, updated_at
        FROM projects
        ORDER BY id
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var (
			sum     Summary
			updated string
		)
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.PartCount, &updated); err != nil {
			return nil, err
		}
		if sum.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
			return nil, fmt.Errorf("project %s: bad timestamp: %w", sum.ID, err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
