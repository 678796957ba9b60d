// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package feedback

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/zabbixai-chat/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrClosed        = errors.New("feedback store closed")
	ErrInvalidRecord = errors.New("invalid feedback record")
)

// schema is applied on every open.
const schema = `
CREATE TABLE IF NOT EXISTS feedback (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    message_id TEXT NOT NULL,
    rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
    comment TEXT NOT NULL DEFAULT '',
    submitted_at INTEGER NOT NULL -- Unix milliseconds
);

CREATE INDEX IF NOT EXISTS idx_feedback_message_id ON feedback(message_id);
CREATE INDEX IF NOT EXISTS idx_feedback_submitted_at ON feedback(submitted_at);
`

// =============================================================================
// SQLITE STORE
// =============================================================================

// SQLiteStore persists feedback records in a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (creating if needed) the database at path. Use ":memory:"
// for a throwaway store.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time; a single connection also
	// keeps ":memory:" databases alive across calls.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %q: %w", p, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Path returns the database location.
func (s *SQLiteStore) Path() string { return s.path }

// Report inserts one record.
func (s *SQLiteStore) Report(ctx context.Context, rec model.FeedbackRecord) error {
	if s.db == nil {
		return ErrClosed
	}
	if rec.TargetMessageID == "" || !model.ValidRating(rec.Rating) {
		return ErrInvalidRecord
	}
	if rec.SubmittedAt.IsZero() {
		rec.SubmittedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO feedback (message_id, rating, comment, submitted_at) VALUES (?, ?, ?, ?)`,
		rec.TargetMessageID, rec.Rating, rec.Comment, rec.SubmittedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

// List returns the most recent records first. limit <= 0 returns all.
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]model.FeedbackRecord, error) {
	if s.db == nil {
		return nil, ErrClosed
	}

	query := `SELECT message_id, rating, comment, submitted_at FROM feedback ORDER BY submitted_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query feedback: %w", err)
	}
	defer rows.Close()

	var out []model.FeedbackRecord
	for rows.Next() {
		var (
			rec model.FeedbackRecord
			ms  int64
		)
		if err := rows.Scan(&rec.TargetMessageID, &rec.Rating, &rec.Comment, &ms); err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		rec.SubmittedAt = time.UnixMilli(ms)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Summary aggregates all stored ratings.
type Summary struct {
	Count   int
	Average float64
	// ByRating[i] counts ratings of i stars; index 0 is unused.
	ByRating [model.MaxRating + 1]int
}

// Summarize computes rating counts and the mean rating.
func (s *SQLiteStore) Summarize(ctx context.Context) (Summary, error) {
	var sum Summary
	if s.db == nil {
		return sum, ErrClosed
	}

	rows, err := s.db.QueryContext(ctx, `SELECT rating, COUNT(*) FROM feedback GROUP BY rating`)
	if err != nil {
		return sum, fmt.Errorf("summarize feedback: %w", err)
	}
	defer rows.Close()

	total := 0
	for rows.Next() {
		var rating, n int
		if err := rows.Scan(&rating, &n); err != nil {
			return sum, fmt.Errorf("scan summary: %w", err)
		}
		if model.ValidRating(rating) {
			sum.ByRating[rating] = n
		}
		sum.Count += n
		total += rating * n
	}
	if err := rows.Err(); err != nil {
		return sum, err
	}
	if sum.Count > 0 {
		sum.Average = float64(total) / float64(sum.Count)
	}
	return sum, nil
}

// Close releases the database.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
