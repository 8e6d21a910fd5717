// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch loads RDF documents over HTTP(S) or from disk and parses
// them into triples. The primary vocabulary document is fatal on failure;
// cross-referenced suggested terms are fetched concurrently and failures
// only degrade their display text.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/pdiddy/vocab-browser/internal/httputil"
	"github.com/pdiddy/vocab-browser/internal/turtle"
	"github.com/pdiddy/vocab-browser/pkg/types"
)

const (
	defaultConcurrency       = 8
	defaultDocumentCacheSize = 512
	defaultUserAgent         = "vocab-browser/0.1"
)

// FetchError reports a document that could not be retrieved: unreachable,
// unreadable, or answered with a non-2xx status.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports a document that was retrieved but is not valid RDF.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Document is a parsed RDF document.
type Document struct {
	// Source is the location as given by the caller.
	Source string

	// Base is the IRI relative references were resolved against.
	Base string

	Triples []types.Triple
}

// Fetcher retrieves and parses RDF documents.
type Fetcher struct {
	client  *http.Client
	cfg     types.FetchConfig
	limiter *rate.Limiter
	docs    *lru.Cache[string, []types.Triple]
	logger  *slog.Logger
}

// New creates a Fetcher. A nil client gets one with cfg.Timeout; a nil
// logger uses slog.Default().
func New(client *http.Client, cfg types.FetchConfig, logger *slog.Logger) (*Fetcher, error) {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	if cfg.DocumentCacheSize <= 0 {
		cfg.DocumentCacheSize = defaultDocumentCacheSize
	}

	docs, err := lru.New[string, []types.Triple](cfg.DocumentCacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating document cache: %w", err)
	}

	f := &Fetcher{
		client: client,
		cfg:    cfg,
		docs:   docs,
		logger: logger,
	}
	if cfg.RequestsPerSecond > 0 {
		f.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return f, nil
}

// Document loads the document at source: an http(s) URL, a file:// URL,
// or a local path. Relative references resolve against cfg.Base when set,
// otherwise against the document's own location.
func (f *Fetcher) Document(ctx context.Context, source string) (*Document, error) {
	if isRemote(source) {
		base := f.cfg.Base
		if base == "" {
			base = source
		}
		triples, err := f.fetchRemote(ctx, source, base)
		if err != nil {
			return nil, err
		}
		return &Document{Source: source, Base: base, Triples: triples}, nil
	}
	return f.readLocal(source)
}

func (f *Fetcher) readLocal(source string) (*Document, error) {
	path := source
	if u, err := url.Parse(source); err == nil && u.Scheme == "file" {
		path = u.Path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &FetchError{URL: source, Err: err}
	}

	file, err := os.Open(abs)
	if err != nil {
		return nil, &FetchError{URL: source, Err: err}
	}
	defer file.Close()

	base := f.cfg.Base
	if base == "" {
		base = (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
	}

	triples, err := turtle.Parse(file, turtle.FormatFor("", abs), base)
	if err != nil {
		return nil, &ParseError{URL: source, Err: err}
	}
	return &Document{Source: source, Base: base, Triples: triples}, nil
}

// fetchRemote GETs target with content negotiation and parses the body,
// resolving relative references against base.
func (f *Fetcher) fetchRemote(ctx context.Context, target, base string) ([]types.Triple, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &FetchError{URL: target, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", turtle.AcceptHeader)

	resp, err := httputil.DoWithRetry(ctx, f.client, req, f.cfg.MaxRetries)
	if err != nil {
		return nil, &FetchError{URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &FetchError{URL: target, StatusCode: resp.StatusCode}
	}

	format := turtle.FormatFor(resp.Header.Get("Content-Type"), resp.Request.URL.Path)
	triples, err := turtle.Parse(resp.Body, format, base)
	if err != nil {
		return nil, &ParseError{URL: target, Err: err}
	}
	return triples, nil
}

// proxied rewrites target through the configured relay.
func (f *Fetcher) proxied(target string) string {
	escaped := url.QueryEscape(target)
	if strings.Contains(f.cfg.ProxyURL, "{url}") {
		return strings.ReplaceAll(f.cfg.ProxyURL, "{url}", escaped)
	}
	return f.cfg.ProxyURL + escaped
}

func isRemote(source string) bool {
	u, err := url.Parse(source)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
