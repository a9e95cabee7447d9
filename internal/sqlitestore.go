package internal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const SQLiteFilename = "snippets.db"

const sqliteSchema = `CREATE TABLE IF NOT EXISTS snippets (
	position    INTEGER PRIMARY KEY,
	id          TEXT NOT NULL,
	description TEXT NOT NULL,
	tags        TEXT NOT NULL DEFAULT '[]',
	code        TEXT NOT NULL
)`

// SQLiteRepository stores snippets in a single table ordered by position.
type SQLiteRepository struct {
	db *sql.DB
}

// OpenSQLiteRepository opens (or creates) snippets.db in dir. Pass ":memory:"
// for an in-memory database.
func OpenSQLiteRepository(dir string) (*SQLiteRepository, error) {
	dsn := ":memory:"
	if dir != ":memory:" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
		dsn = filepath.Join(dir, SQLiteFilename)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: create schema: %v", ErrCorruptStore, err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) Load(ctx context.Context) ([]*Snippet, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, description, tags, code FROM snippets ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("%w: query snippets: %v", ErrCorruptStore, err)
	}
	defer rows.Close()

	snippets := []*Snippet{}
	for rows.Next() {
		var (
			snip Snippet
			tags string
		)
		if err := rows.Scan(&snip.ID, &snip.Description, &tags, &snip.Code); err != nil {
			return nil, fmt.Errorf("%w: scan snippet: %v", ErrCorruptStore, err)
		}
		if err := json.Unmarshal([]byte(tags), &snip.Tags); err != nil {
			return nil, fmt.Errorf("%w: tags of %q: %v", ErrCorruptStore, snip.Description, err)
		}
		snippets = append(snippets, &snip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snippets: %w", err)
	}

	return snippets, nil
}

// Save replaces the table contents in one transaction. The message is
// ignored; this backend keeps no history.
func (r *SQLiteRepository) Save(ctx context.Context, snippets []*Snippet, _ string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM snippets`); err != nil {
		return fmt.Errorf("clear snippets: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO snippets (position, id, description, tags, code) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, snip := range snippets {
		tags, err := json.Marshal(snip.Tags)
		if err != nil {
			return fmt.Errorf("encode tags: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, i, snip.ID, snip.Description, string(tags), snip.Code); err != nil {
			return fmt.Errorf("insert %q: %w", snip.Description, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
