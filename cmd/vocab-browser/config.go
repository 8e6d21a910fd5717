// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/vocab-browser/internal/cache"
	"github.com/pdiddy/vocab-browser/internal/fetch"
	"github.com/pdiddy/vocab-browser/internal/pipeline"
	"github.com/pdiddy/vocab-browser/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "vocab-browser/0.1"
	defaultCachePath = ".cache/vocab-browser/snapshots.db"
	defaultAddr      = ":8080"
)

// registerPipelineFlags adds the flags shared by every command that loads a
// vocabulary. Each flag is bound to a viper key so config files and
// VOCAB_BROWSER_* variables can set it too.
func registerPipelineFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()

	f.String("source", pipeline.DefaultSource, "vocabulary location: http(s) URL, file:// URL, or local path")
	f.String("base", "", "base IRI for relative references (default: the document's own URL)")
	f.Bool("no-refs", false, "do not fetch suggested-term resources")
	f.Int("concurrency", 8, "maximum concurrent suggested-term fetches")
	f.Float64("rps", 0, "suggested-term requests per second (0 = unlimited)")
	f.String("proxy", "", "relay URL for suggested terms whose direct fetch fails ({url} is replaced by the target)")
	f.Duration("timeout", 0, "HTTP request timeout (default 30s)")
	f.Int("max-retries", 3, "retries for transient HTTP failures")
	f.String("membership", string(types.MembershipContentiousTerm), "concept membership rule: contentious-term or concept-class")
	f.String("concept-class", "", "rdf:type class for concept-class membership (default skos:Concept)")
	f.StringSlice("label-predicate", nil, "title/label predicate IRIs (default dct:title)")
	f.StringSlice("description-lang", nil, "preferred description languages, most preferred first")
	f.Bool("all-languages", false, "include alternative-label and description languages in the language set")
	f.String("cache-db", defaultCachePath, "snapshot cache database (empty disables the cache)")

	for key, flag := range map[string]string{
		"source":              "source",
		"base":                "base",
		"no_refs":             "no-refs",
		"concurrency":         "concurrency",
		"requests_per_second": "rps",
		"proxy_url":           "proxy",
		"timeout":             "timeout",
		"max_retries":         "max-retries",
		"membership":          "membership",
		"concept_class":       "concept-class",
		"label_predicates":    "label-predicate",
		"description_langs":   "description-lang",
		"languages_from_all":  "all-languages",
		"cache_db":            "cache-db",
	} {
		bindFlag(key, f.Lookup(flag))
	}
}

func bindFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", key, err))
	}
}

// pipelineConfig assembles the stage configuration from flags, config file
// and environment.
func pipelineConfig() types.PipelineConfig {
	timeout := viper.GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}

	membership := types.MembershipMode(viper.GetString("membership"))
	if membership != types.MembershipConceptClass {
		membership = types.MembershipContentiousTerm
	}

	addr := viper.GetString("addr")
	if addr == "" {
		addr = defaultAddr
	}

	return types.PipelineConfig{
		Fetch: types.FetchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:    timeout,
				UserAgent:  defaultUserAgent,
				MaxRetries: viper.GetInt("max_retries"),
			},
			Source:            viper.GetString("source"),
			Base:              viper.GetString("base"),
			FetchReferences:   !viper.GetBool("no_refs"),
			Concurrency:       viper.GetInt("concurrency"),
			RequestsPerSecond: viper.GetFloat64("requests_per_second"),
			ProxyURL:          viper.GetString("proxy_url"),
		},
		Extract: types.ExtractConfig{
			Membership:       membership,
			ConceptClass:     viper.GetString("concept_class"),
			LabelPredicates:  viper.GetStringSlice("label_predicates"),
			DescriptionLangs: viper.GetStringSlice("description_langs"),
			LanguagesFromAll: viper.GetBool("languages_from_all"),
		},
		Cache: types.CacheConfig{Path: viper.GetString("cache_db")},
		Serve: types.ServeConfig{Addr: addr},
	}
}

// session bundles what a load needs. Close releases the cache.
type session struct {
	cfg     types.PipelineConfig
	fetcher *fetch.Fetcher
	store   *cache.Store
}

func newSession() (*session, error) {
	cfg := pipelineConfig()

	client := &http.Client{Timeout: cfg.Fetch.Timeout}
	fetcher, err := fetch.New(client, cfg.Fetch, slog.Default())
	if err != nil {
		return nil, err
	}

	sess := &session{cfg: cfg, fetcher: fetcher}
	if cfg.Cache.Path != "" {
		store, err := cache.Open(cfg.Cache)
		if err != nil {
			slog.Warn("snapshot cache unavailable", "path", cfg.Cache.Path, "err", err)
		} else {
			sess.store = store
		}
	}
	return sess, nil
}

// snapshots returns the cache as a pipeline.SnapshotStore, or a nil
// interface when the cache is disabled.
func (sess *session) snapshots() pipeline.SnapshotStore {
	if sess.store == nil {
		return nil
	}
	return sess.store
}

func (sess *session) Close() error {
	if sess.store == nil {
		return nil
	}
	return sess.store.Close()
}
