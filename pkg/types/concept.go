// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Label is a piece of display text with its language tag.
type Label struct {
	// Text is the literal value.
	Text string `json:"text" yaml:"text"`

	// Lang is the language tag; empty when the literal was untagged.
	Lang string `json:"lang,omitempty" yaml:"lang,omitempty"`
}

// Concept is the normalized record for one vocabulary term, derived from
// all triples that share its subject. Concepts are rebuilt on every load.
type Concept struct {
	// ID is the trailing path segment of IRI. It keys table rows and API
	// lookups and is not guaranteed unique across vocabularies.
	ID string `json:"id" yaml:"id"`

	// IRI is the full subject identifier.
	IRI string `json:"iri" yaml:"iri"`

	// Labels holds the title/label literals in encounter order.
	Labels []Label `json:"labels" yaml:"labels"`

	// AltLabels holds alternative-term literals in encounter order.
	AltLabels []Label `json:"alt_labels,omitempty" yaml:"alt_labels,omitempty"`

	// Languages lists the distinct non-empty language tags, first seen first.
	Languages []string `json:"languages" yaml:"languages"`

	// Description is the chosen description literal, or "" when none exists.
	Description string `json:"description" yaml:"description"`

	// SuggestedTerms holds one resolved display string per suggested-term
	// reference, in encounter order.
	SuggestedTerms []string `json:"suggested_terms" yaml:"suggested_terms"`

	// SuggestedIRIs holds the raw references behind SuggestedTerms, index-aligned.
	SuggestedIRIs []string `json:"suggested_iris" yaml:"suggested_iris"`
}

// LabelTexts returns the label values without language tags.
func (c Concept) LabelTexts() []string {
	texts := make([]string, len(c.Labels))
	for i, l := range c.Labels {
		texts[i] = l.Text
	}
	return texts
}

// Metadata describes a loaded vocabulary as a whole.
type Metadata struct {
	// Source is the URL or path the primary document was loaded from.
	Source string `json:"source" yaml:"source"`

	// Modified is the vocabulary's dct:modified value, empty when absent.
	Modified string `json:"modified,omitempty" yaml:"modified,omitempty"`

	// TripleCount is the size of the merged triple set.
	TripleCount int `json:"triple_count" yaml:"triple_count"`

	// ConceptCount is the number of extracted concepts.
	ConceptCount int `json:"concept_count" yaml:"concept_count"`

	// FromCache is true when the primary fetch failed and a cached snapshot was used.
	FromCache bool `json:"from_cache" yaml:"from_cache"`

	// SnapshotTime is the RFC 3339 fetch time of the cached snapshot, set only when FromCache.
	SnapshotTime string `json:"snapshot_time,omitempty" yaml:"snapshot_time,omitempty"`
}
