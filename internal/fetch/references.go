// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/vocab-browser/pkg/types"
)

// ReferenceSummary holds counts from a cross-reference fetch run.
type ReferenceSummary struct {
	Fetched int
	Cached  int
	Skipped int
	Failed  int

	// Failures maps each failed IRI to its error text.
	Failures map[string]string
}

// Total returns the number of distinct IRIs processed.
func (s ReferenceSummary) Total() int {
	return s.Fetched + s.Cached + s.Skipped + s.Failed
}

type refOutcome struct {
	triples []types.Triple
	cached  bool
	skipped bool
	err     error
}

// References dereferences each distinct IRI concurrently, at most
// cfg.Concurrency at a time, and returns the union of the parsed triples
// in input order. A failed reference is logged and counted; it never fails
// the run. Non-HTTP IRIs are skipped. The only error returned is context
// cancellation.
func (f *Fetcher) References(ctx context.Context, iris []string) ([]types.Triple, ReferenceSummary, error) {
	iris = distinct(iris)
	outcomes := make([]refOutcome, len(iris))

	var g errgroup.Group
	g.SetLimit(f.cfg.Concurrency)
	for i, iri := range iris {
		g.Go(func() error {
			outcomes[i] = f.reference(ctx, iri)
			return nil
		})
	}
	g.Wait()

	summary := ReferenceSummary{Failures: map[string]string{}}
	var triples []types.Triple
	for i, o := range outcomes {
		switch {
		case o.skipped:
			summary.Skipped++
		case o.err != nil:
			summary.Failed++
			summary.Failures[iris[i]] = o.err.Error()
			f.logger.Warn("suggested term unavailable, falling back to IRI fragment",
				"iri", iris[i], "err", o.err)
		case o.cached:
			summary.Cached++
			triples = append(triples, o.triples...)
		default:
			summary.Fetched++
			triples = append(triples, o.triples...)
		}
	}

	if err := ctx.Err(); err != nil {
		return triples, summary, fmt.Errorf("fetching suggested terms: %w", err)
	}
	return triples, summary, nil
}

// reference fetches one IRI: document cache first, then a direct request,
// then the relay when one is configured.
func (f *Fetcher) reference(ctx context.Context, iri string) refOutcome {
	if !isRemote(iri) {
		return refOutcome{skipped: true}
	}
	if triples, ok := f.docs.Get(iri); ok {
		return refOutcome{triples: triples, cached: true}
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return refOutcome{err: err}
		}
	}

	triples, err := f.fetchRemote(ctx, iri, iri)
	if err != nil && f.cfg.ProxyURL != "" && ctx.Err() == nil {
		f.logger.Debug("direct fetch failed, trying relay", "iri", iri, "err", err)
		var proxyErr error
		triples, proxyErr = f.fetchRemote(ctx, f.proxied(iri), iri)
		if proxyErr == nil {
			err = nil
		}
	}
	if err != nil {
		return refOutcome{err: err}
	}

	f.docs.Add(iri, triples)
	return refOutcome{triples: triples}
}

func distinct(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, s := range items {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
