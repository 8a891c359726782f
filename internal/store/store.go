// Package store handles SQLite persistence of practice history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/dikte/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for practice data.
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
		`CREATE TABLE IF NOT EXISTS practices (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			source TEXT NOT NULL,
			translation TEXT NOT NULL,
			locale TEXT NOT NULL,
			voice_id TEXT NOT NULL,
			typed_runes INTEGER NOT NULL,
			accuracy INTEGER NOT NULL,
			wpm INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_practices_ended_at ON practices(ended_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertPractice stores a completed practice.
func (s *Store) InsertPractice(ctx context.Context, res model.PracticeResult) (int64, error) {
	out, err := s.db.ExecContext(ctx,
		`INSERT INTO practices (started_at, ended_at, source, translation, locale, voice_id, typed_runes, accuracy, wpm, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.StartedAt.UTC().Format(time.RFC3339Nano),
		res.EndedAt.UTC().Format(time.RFC3339Nano),
		res.Source,
		res.Translation,
		res.Locale,
		res.VoiceID,
		res.TypedRunes,
		res.Accuracy,
		res.WPM,
		res.DurationMs,
	)
	if err != nil {
		return 0, err
	}
	return out.LastInsertId()
}

// ListPractices returns practice aggregates filtered by stats config, oldest first.
func (s *Store) ListPractices(ctx context.Context, cfg model.StatsConfig) ([]model.PracticeAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.UTC().Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, ended_at, source, accuracy, wpm, duration_ms
		FROM practices
		WHERE %s
		ORDER BY ended_at ASC, id ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var practices []model.PracticeAggregate
	for rows.Next() {
		var agg model.PracticeAggregate
		var endedAt string
		if err := rows.Scan(&agg.PracticeID, &endedAt, &agg.Source, &agg.Accuracy, &agg.WPM, &agg.DurationMs); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		agg.EndedAt = parsed
		practices = append(practices, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return practices, nil
}
