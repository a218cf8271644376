package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gametimer/internal/core/model"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS activity_totals (
    name TEXT PRIMARY KEY,
    seconds INTEGER NOT NULL,
    position INTEGER NOT NULL
);
`

// TotalsStore keeps activity totals in a SQLite database.
type TotalsStore struct {
	db *sql.DB
}

// Open opens or creates the database at path.
func Open(path string) (*TotalsStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	if cleanPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", cleanPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// A single connection keeps :memory: databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &TotalsStore{db: db}, nil
}

// Close closes the underlying database.
func (store *TotalsStore) Close() error {
	if store == nil || store.db == nil {
		return nil
	}
	return store.db.Close()
}

// Load reads all totals in stored order. Non-integer or negative values are ErrCorruptData.
func (store *TotalsStore) Load() ([]model.Activity, error) {
	rows, err := store.db.Query(`SELECT name, typeof(seconds), seconds FROM activity_totals ORDER BY position, rowid`)
	if err != nil {
		return nil, fmt.Errorf("%w: query totals: %w", model.ErrPersistenceFailure, err)
	}
	defer rows.Close()

	var activities []model.Activity
	for rows.Next() {
		var (
			name       string
			valueType  string
			rawSeconds any
		)
		if err := rows.Scan(&name, &valueType, &rawSeconds); err != nil {
			return nil, fmt.Errorf("%w: scan totals: %w", model.ErrCorruptData, err)
		}
		seconds, ok := rawSeconds.(int64)
		if valueType != "integer" || !ok {
			return nil, fmt.Errorf("%w: value of %q is not an integer", model.ErrCorruptData, name)
		}
		if seconds < 0 {
			return nil, fmt.Errorf("%w: value of %q is negative", model.ErrCorruptData, name)
		}
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: empty activity name", model.ErrCorruptData)
		}
		activities = append(activities, model.Activity{Name: name, TotalSeconds: seconds})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate totals: %w", model.ErrPersistenceFailure, err)
	}
	return activities, nil
}

// Save replaces all stored totals in one transaction.
func (store *TotalsStore) Save(activities []model.Activity) error {
	tx, err := store.db.BeginTx(context.Background(), nil)
	if err != nil {
		return fmt.Errorf("%w: begin tx: %w", model.ErrPersistenceFailure, err)
	}

	if _, err := tx.Exec(`DELETE FROM activity_totals`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: clear totals: %w", model.ErrPersistenceFailure, err)
	}
	for position, activity := range activities {
		if _, err := tx.Exec(
			`INSERT INTO activity_totals (name, seconds, position) VALUES (?, ?, ?)`,
			activity.Name, activity.TotalSeconds, position,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("%w: insert %q: %w", model.ErrPersistenceFailure, activity.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit totals: %w", model.ErrPersistenceFailure, err)
	}
	return nil
}
