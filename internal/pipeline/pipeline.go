// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline assembles a vocabulary load: fetch the primary document,
// fetch every cross-referenced suggested term, then run the pure concept
// extraction over the merged triple set. Only primary-document failures
// are fatal; they fall back to the last cached snapshot when one exists.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"time"

	"github.com/pdiddy/vocab-browser/internal/cache"
	"github.com/pdiddy/vocab-browser/internal/extract"
	"github.com/pdiddy/vocab-browser/internal/fetch"
	"github.com/pdiddy/vocab-browser/pkg/types"
)

// DefaultSource is the vocabulary location used when none is configured.
const DefaultSource = "data/DE-BIAS_vocabulary.ttl"

// Fetcher retrieves the primary document and its cross-references.
type Fetcher interface {
	Document(ctx context.Context, source string) (*fetch.Document, error)
	References(ctx context.Context, iris []string) ([]types.Triple, fetch.ReferenceSummary, error)
}

// SnapshotStore persists merged triple sets for offline fallback.
type SnapshotStore interface {
	Save(ctx context.Context, source string, triples []types.Triple) (string, error)
	Latest(ctx context.Context, source string) (*cache.Snapshot, error)
}

// Summary holds counts from a load.
type Summary struct {
	Triples    int
	Concepts   int
	References fetch.ReferenceSummary
	FromCache  bool
}

// Result is the outcome of a successful load.
type Result struct {
	Concepts []types.Concept
	Metadata types.Metadata
	Summary  Summary
}

// Load runs the full pipeline for cfg.Fetch.Source. store may be nil to
// disable the snapshot cache. Progress lines and a summary go to w.
func Load(ctx context.Context, cfg types.PipelineConfig, f Fetcher, store SnapshotStore, w io.Writer) (*Result, error) {
	source := cfg.Fetch.Source
	if source == "" {
		return nil, fmt.Errorf("no vocabulary source configured")
	}

	fmt.Fprintf(w, "loading: %s\n", source)

	var summary Summary
	var snapshotTime string
	triples, err := primary(ctx, f, source)
	if err != nil {
		snap, cacheErr := fallback(ctx, store, source)
		if cacheErr != nil {
			return nil, err
		}
		fmt.Fprintf(w, "  warning: %v\n", err)
		fmt.Fprintf(w, "  using cached snapshot from %s\n", snap.FetchedAt.Format(time.RFC3339))
		triples = snap.Triples
		snapshotTime = snap.FetchedAt.UTC().Format(time.RFC3339)
		summary.FromCache = true
	}

	if !summary.FromCache {
		triples, summary.References, err = withReferences(ctx, cfg, f, triples, w)
		if err != nil {
			return nil, err
		}
		if store != nil {
			if _, err := store.Save(ctx, source, triples); err != nil {
				fmt.Fprintf(w, "  warning: caching snapshot failed: %v\n", err)
			}
		}
	}

	concepts := extract.Extract(triples, cfg.Extract)

	md := extract.ReadMetadata(triples)
	md.Source = source
	md.ConceptCount = len(concepts)
	md.FromCache = summary.FromCache
	md.SnapshotTime = snapshotTime

	summary.Triples = len(triples)
	summary.Concepts = len(concepts)

	fmt.Fprintf(w, "\ntriples: %d, concepts: %d, references fetched: %d, cached: %d, failed: %d\n",
		summary.Triples, summary.Concepts,
		summary.References.Fetched, summary.References.Cached, summary.References.Failed)

	return &Result{Concepts: concepts, Metadata: md, Summary: summary}, nil
}

func primary(ctx context.Context, f Fetcher, source string) ([]types.Triple, error) {
	doc, err := f.Document(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("loading vocabulary: %w", err)
	}
	return doc.Triples, nil
}

func fallback(ctx context.Context, store SnapshotStore, source string) (*cache.Snapshot, error) {
	if store == nil {
		return nil, cache.ErrNoSnapshot
	}
	snap, err := store.Latest(ctx, source)
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// withReferences appends the triples of every suggested-term resource to
// triples. Individual failures are already absorbed by the fetcher.
func withReferences(ctx context.Context, cfg types.PipelineConfig, f Fetcher, triples []types.Triple, w io.Writer) ([]types.Triple, fetch.ReferenceSummary, error) {
	if !cfg.Fetch.FetchReferences {
		return triples, fetch.ReferenceSummary{}, nil
	}
	iris := extract.SuggestedIRIs(triples, cfg.Extract)
	if len(iris) == 0 {
		return triples, fetch.ReferenceSummary{}, nil
	}

	fmt.Fprintf(w, "fetching %d suggested term(s)\n", len(iris))
	refs, summary, err := f.References(ctx, iris)
	if err != nil {
		return nil, summary, err
	}
	for _, iri := range slices.Sorted(maps.Keys(summary.Failures)) {
		fmt.Fprintf(w, "  warning: %s: %s\n", iri, summary.Failures[iri])
	}

	merged := make([]types.Triple, 0, len(triples)+len(refs))
	merged = append(merged, triples...)
	merged = append(merged, refs...)
	return merged, summary, nil
}

// IsFatal reports whether err came from the primary document, as opposed
// to context cancellation.
func IsFatal(err error) bool {
	var fe *fetch.FetchError
	var pe *fetch.ParseError
	return errors.As(err, &fe) || errors.As(err, &pe)
}
