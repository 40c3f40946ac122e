package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/oarkflow/logintheme"
	"github.com/oarkflow/logintheme/errors"
	"github.com/oarkflow/logintheme/models"
)

var _ logintheme.ContextStore = (*SQLStore)(nil)

// OpenSQLStore open a sqlite fixture store at path and create its table
func OpenSQLStore(path string) (*SQLStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite %s: %w", path, err)
	}
	// an in-memory database lives in a single connection
	db.SetMaxOpenConns(1)
	if err := SetupContextsTable(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: create table: %w", err)
	}
	return NewSQLStore(db), nil
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{DB: db}
}

// SQLStore implements logintheme.ContextStore using a SQL database.
type SQLStore struct {
	DB *sql.DB
}

// Get fetches the context stored for the page under name.
func (s *SQLStore) Get(ctx context.Context, pageID logintheme.PageID, name string) (*models.RenderContext, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT context FROM contexts WHERE page_id = ? AND name = ?`, pageID.String(), name)
	var contextJSON string
	if err := row.Scan(&contextJSON); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.ErrFixtureNotFound
		}
		return nil, err
	}
	var rc models.RenderContext
	if err := json.Unmarshal([]byte(contextJSON), &rc); err != nil {
		return nil, err
	}
	return &rc, nil
}

// Put stores or updates the context in the database.
func (s *SQLStore) Put(ctx context.Context, name string, rc *models.RenderContext) error {
	b, err := json.Marshal(rc)
	if err != nil {
		return err
	}
	_, err = s.DB.ExecContext(ctx, `INSERT OR REPLACE INTO contexts(page_id, name, context) VALUES (?, ?, ?)`,
		rc.PageID, name, string(b))
	return err
}

// List the names stored for the page, sorted.
func (s *SQLStore) List(ctx context.Context, pageID logintheme.PageID) ([]string, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT name FROM contexts WHERE page_id = ? ORDER BY name`, pageID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Close the underlying database.
func (s *SQLStore) Close() error {
	return s.DB.Close()
}

// SetupContextsTable creates the contexts table if it does not exist.
func SetupContextsTable(db *sql.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS contexts (
		page_id TEXT NOT NULL,
		name TEXT NOT NULL,
		context TEXT NOT NULL,
		PRIMARY KEY (page_id, name)
	);
	`)
	return err
}
