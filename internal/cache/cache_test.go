// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/vocab-browser/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(types.CacheConfig{Path: filepath.Join(t.TempDir(), "cache", "snapshots.db")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleTriples() []types.Triple {
	return []types.Triple{
		types.NewTriple("http://ex/terms/foo", "http://purl.org/dc/terms/title", types.NewLangLiteral("Foo", "en")),
		types.NewTriple("http://ex/terms/foo", "http://data.europa.eu/c4p/ontology#hasSuggestedTerm", types.NewIRI("http://ex/terms/bar")),
		types.NewTriple("http://ex/scheme", "http://purl.org/dc/terms/modified", types.NewTypedLiteral("2025-03-01", "http://www.w3.org/2001/XMLSchema#date")),
		{Subject: types.NewBlank("b0"), Predicate: types.NewIRI("http://purl.org/dc/terms/title"), Object: types.NewBlank("b1")},
	}
}

func TestSaveAndLatest(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	id, err := s.Save(ctx, "https://ex/vocab.ttl", sampleTriples())
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	snap, err := s.Latest(ctx, "https://ex/vocab.ttl")
	require.NoError(t, err)
	assert.Equal(t, id, snap.ID)
	assert.True(t, fixed.Equal(snap.FetchedAt))
	assert.Equal(t, 4, snap.TripleCount)
	assert.Equal(t, sampleTriples(), snap.Triples)
}

func TestSave_ReplacesPreviousSnapshot(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	first, err := s.Save(ctx, "src", sampleTriples())
	require.NoError(t, err)
	second, err := s.Save(ctx, "src", sampleTriples()[:1])
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	snap, err := s.Latest(ctx, "src")
	require.NoError(t, err)
	assert.Equal(t, second, snap.ID)
	assert.Len(t, snap.Triples, 1)

	var orphans int
	require.NoError(t, s.db.QueryRow(`SELECT count(*) FROM triples WHERE snapshot_id = ?`, first).Scan(&orphans))
	assert.Zero(t, orphans)
}

func TestLatest_NoSnapshot(t *testing.T) {
	s := testStore(t)
	_, err := s.Latest(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestListAndClear(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	_, err := s.Save(ctx, "a", sampleTriples())
	require.NoError(t, err)
	_, err = s.Save(ctx, "b", sampleTriples()[:2])
	require.NoError(t, err)

	snaps, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, snaps, 2)

	n, err := s.Clear(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = s.Latest(ctx, "a")
	assert.ErrorIs(t, err, ErrNoSnapshot)

	n, err = s.Clear(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	snaps, err = s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, snaps)
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open(types.CacheConfig{})
	assert.Error(t, err)
}
