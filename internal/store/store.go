// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/kasiski/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for crack-run history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			finished_at TEXT NOT NULL,
			cipher TEXT NOT NULL,
			lang TEXT NOT NULL,
			key TEXT NOT NULL,
			score REAL NOT NULL,
			text_len INTEGER NOT NULL,
			preview TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_finished_at ON runs(finished_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun stores a completed crack run.
func (s *Store) InsertRun(ctx context.Context, run model.Run) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (finished_at, cipher, lang, key, score, text_len, preview)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.FinishedAt.Format(time.RFC3339Nano),
		run.Cipher,
		run.Lang,
		run.Key,
		run.Score,
		run.TextLen,
		run.Preview,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListRuns returns runs ordered oldest first, optionally limited to the most
// recent `last` entries.
func (s *Store) ListRuns(ctx context.Context, last int) ([]model.Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, finished_at, cipher, lang, key, score, text_len, preview
		 FROM runs ORDER BY finished_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []model.Run
	for rows.Next() {
		var run model.Run
		var finishedAt string
		if err := rows.Scan(&run.RunID, &finishedAt, &run.Cipher, &run.Lang, &run.Key, &run.Score, &run.TextLen, &run.Preview); err != nil {
			return nil, err
		}
		ts, err := time.Parse(time.RFC3339Nano, finishedAt)
		if err != nil {
			return nil, err
		}
		run.FinishedAt = ts
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if last > 0 && len(runs) > last {
		runs = runs[len(runs)-last:]
	}
	return runs, nil
}
