package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "vocab-browser/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MaxRetries bounds retries of transient failures (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// FetchConfig holds settings for loading the primary document and its
// cross-referenced suggested terms.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Source is the primary vocabulary location: an http(s) URL, a file:// URL,
	// or a local path.
	Source string `json:"source" yaml:"source"`

	// Base overrides the base IRI used to resolve relative references.
	// Empty means the document's own fetch URL.
	Base string `json:"base,omitempty" yaml:"base,omitempty"`

	// FetchReferences controls whether suggested-term IRIs are dereferenced.
	FetchReferences bool `json:"fetch_references" yaml:"fetch_references"`

	// Concurrency caps simultaneous reference fetches (default 8).
	Concurrency int `json:"concurrency" yaml:"concurrency"`

	// RequestsPerSecond throttles reference fetches; 0 disables throttling.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`

	// ProxyURL is a relay used when a direct reference fetch fails. A "{url}"
	// placeholder is replaced by the escaped target; otherwise the escaped
	// target is appended.
	ProxyURL string `json:"proxy_url,omitempty" yaml:"proxy_url,omitempty"`

	// DocumentCacheSize bounds the in-process cache of parsed reference documents (default 512).
	DocumentCacheSize int `json:"document_cache_size" yaml:"document_cache_size"`
}

// MembershipMode selects how a subject qualifies as a concept.
type MembershipMode string

const (
	// MembershipContentiousTerm selects subjects of debias:hasContentiousTerm.
	MembershipContentiousTerm MembershipMode = "contentious-term"

	// MembershipConceptClass selects subjects typed with the configured concept class.
	MembershipConceptClass MembershipMode = "concept-class"
)

// ExtractConfig holds settings for concept extraction.
type ExtractConfig struct {
	// Membership selects the membership rule.
	Membership MembershipMode `json:"membership" yaml:"membership"`

	// ConceptClass is the rdf:type object used by MembershipConceptClass
	// (default skos:Concept).
	ConceptClass string `json:"concept_class,omitempty" yaml:"concept_class,omitempty"`

	// LabelPredicates lists the title/label predicates (default dct:title).
	LabelPredicates []string `json:"label_predicates,omitempty" yaml:"label_predicates,omitempty"`

	// AltLabelPredicates lists alternative-term predicates (default skos:altLabel).
	AltLabelPredicates []string `json:"alt_label_predicates,omitempty" yaml:"alt_label_predicates,omitempty"`

	// DescriptionPredicates lists description predicates (default dct:description).
	DescriptionPredicates []string `json:"description_predicates,omitempty" yaml:"description_predicates,omitempty"`

	// DescriptionLangs is an optional language preference for the description.
	// Empty means the first literal in encounter order wins.
	DescriptionLangs []string `json:"description_langs,omitempty" yaml:"description_langs,omitempty"`

	// LanguagesFromAll adds alternative-label and description tags to Concept.Languages.
	LanguagesFromAll bool `json:"languages_from_all" yaml:"languages_from_all"`
}

// CacheConfig holds settings for the snapshot cache.
type CacheConfig struct {
	// Path is the SQLite database file. Empty disables the cache.
	Path string `json:"path" yaml:"path"`
}

// ServeConfig holds settings for the HTTP API.
type ServeConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Fetch   FetchConfig   `json:"fetch" yaml:"fetch"`
	Extract ExtractConfig `json:"extract" yaml:"extract"`
	Cache   CacheConfig   `json:"cache" yaml:"cache"`
	Serve   ServeConfig   `json:"serve" yaml:"serve"`
}
