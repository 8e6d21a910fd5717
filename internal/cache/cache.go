// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache persists the last successfully loaded triple set per
// vocabulary source in SQLite, so a later load with a failing network can
// still render the last snapshot.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/vocab-browser/pkg/types"
)

// ErrNoSnapshot is returned when no snapshot exists for a source.
var ErrNoSnapshot = errors.New("no cached snapshot")

// Snapshot is a stored triple set.
type Snapshot struct {
	ID          string
	Source      string
	FetchedAt   time.Time
	TripleCount int
	Triples     []types.Triple
}

// Store manages the snapshot SQLite database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the snapshot database at cfg.Path and creates the
// schema if it does not exist.
func Open(cfg types.CacheConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("cache path is empty")
	}
	if dir := filepath.Dir(cfg.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL UNIQUE,
			fetched_at TEXT NOT NULL,
			triple_count INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS triples (
			snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			subject_kind TEXT NOT NULL,
			subject TEXT NOT NULL,
			predicate TEXT NOT NULL,
			object_kind TEXT NOT NULL,
			object TEXT NOT NULL,
			lang TEXT NOT NULL DEFAULT '',
			datatype TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (snapshot_id, seq)
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save replaces the snapshot for source with triples in one transaction.
// Triple order is preserved.
func (s *Store) Save(ctx context.Context, source string, triples []types.Triple) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshots WHERE source = ?`, source); err != nil {
		return "", fmt.Errorf("deleting previous snapshot: %w", err)
	}

	id := uuid.NewString()
	fetchedAt := s.now().UTC().Format(time.RFC3339Nano)
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, source, fetched_at, triple_count) VALUES (?, ?, ?, ?)`,
		id, source, fetchedAt, len(triples),
	); err != nil {
		return "", fmt.Errorf("inserting snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO triples (snapshot_id, seq, subject_kind, subject, predicate, object_kind, object, lang, datatype)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing triple insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range triples {
		if _, err := stmt.ExecContext(ctx,
			id, i, string(t.Subject.Kind), t.Subject.Value, t.Predicate.Value,
			string(t.Object.Kind), t.Object.Value, t.Object.Lang, t.Object.Datatype,
		); err != nil {
			return "", fmt.Errorf("inserting triple %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing snapshot: %w", err)
	}
	return id, nil
}

// Latest returns the stored snapshot for source, or ErrNoSnapshot.
func (s *Store) Latest(ctx context.Context, source string) (*Snapshot, error) {
	var snap Snapshot
	var fetchedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, source, fetched_at, triple_count FROM snapshots WHERE source = ?`, source,
	).Scan(&snap.ID, &snap.Source, &fetchedAt, &snap.TripleCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w for %s", ErrNoSnapshot, source)
	}
	if err != nil {
		return nil, fmt.Errorf("querying snapshot: %w", err)
	}
	if snap.FetchedAt, err = time.Parse(time.RFC3339Nano, fetchedAt); err != nil {
		return nil, fmt.Errorf("parsing snapshot time: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT subject_kind, subject, predicate, object_kind, object, lang, datatype
		 FROM triples WHERE snapshot_id = ? ORDER BY seq`, snap.ID)
	if err != nil {
		return nil, fmt.Errorf("querying triples: %w", err)
	}
	defer rows.Close()

	snap.Triples = make([]types.Triple, 0, snap.TripleCount)
	for rows.Next() {
		var t types.Triple
		var subjectKind, objectKind string
		if err := rows.Scan(&subjectKind, &t.Subject.Value, &t.Predicate.Value,
			&objectKind, &t.Object.Value, &t.Object.Lang, &t.Object.Datatype); err != nil {
			return nil, fmt.Errorf("scanning triple: %w", err)
		}
		t.Subject.Kind = types.TermKind(subjectKind)
		t.Predicate.Kind = types.KindIRI
		t.Object.Kind = types.TermKind(objectKind)
		snap.Triples = append(snap.Triples, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading triples: %w", err)
	}
	return &snap, nil
}

// List returns all snapshots without their triples, newest first.
func (s *Store) List(ctx context.Context) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, fetched_at, triple_count FROM snapshots ORDER BY fetched_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var snap Snapshot
		var fetchedAt string
		if err := rows.Scan(&snap.ID, &snap.Source, &fetchedAt, &snap.TripleCount); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		snap.FetchedAt, _ = time.Parse(time.RFC3339Nano, fetchedAt)
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

// Clear removes the snapshot for source, or every snapshot when source is
// empty. It returns the number of snapshots removed.
func (s *Store) Clear(ctx context.Context, source string) (int64, error) {
	var res sql.Result
	var err error
	if source == "" {
		res, err = s.db.ExecContext(ctx, `DELETE FROM snapshots`)
	} else {
		res, err = s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE source = ?`, source)
	}
	if err != nil {
		return 0, fmt.Errorf("clearing snapshots: %w", err)
	}
	return res.RowsAffected()
}
