// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns a fully loaded triple collection into concept
// records. It is pure: it never fetches, and a suggested term whose
// triples were not loaded resolves to its IRI's trailing segment.
package extract

import (
	"strings"

	"github.com/pdiddy/vocab-browser/internal/vocab"
	"github.com/pdiddy/vocab-browser/pkg/types"
)

// Membership is the rule that marks a subject as a real term. A triple
// matches when its predicate equals Predicate and, if Object is set, its
// object is the IRI Object.
type Membership struct {
	Predicate string
	Object    string
}

// MembershipFor returns the rule selected by cfg.Membership.
func MembershipFor(cfg types.ExtractConfig) Membership {
	cfg = WithDefaults(cfg)
	if cfg.Membership == types.MembershipConceptClass {
		return Membership{Predicate: vocab.RDFType, Object: cfg.ConceptClass}
	}
	return Membership{Predicate: vocab.DebiasHasContentiousTerm}
}

func (m Membership) matches(t types.Triple) bool {
	if t.Predicate.Value != m.Predicate {
		return false
	}
	return m.Object == "" || (t.Object.IsIRI() && t.Object.Value == m.Object)
}

// WithDefaults fills unset fields of cfg with the DE-BIAS vocabulary defaults.
func WithDefaults(cfg types.ExtractConfig) types.ExtractConfig {
	if cfg.Membership == "" {
		cfg.Membership = types.MembershipContentiousTerm
	}
	if cfg.ConceptClass == "" {
		cfg.ConceptClass = vocab.SKOSConcept
	}
	if len(cfg.LabelPredicates) == 0 {
		cfg.LabelPredicates = []string{vocab.DCTTitle}
	}
	if len(cfg.AltLabelPredicates) == 0 {
		cfg.AltLabelPredicates = []string{vocab.SKOSAltLabel}
	}
	if len(cfg.DescriptionPredicates) == 0 {
		cfg.DescriptionPredicates = []string{vocab.DCTDescription}
	}
	return cfg
}

// SelectConcepts returns the distinct subjects of triples matching m, in
// first-encounter order. A subject with several matching triples appears
// once.
func SelectConcepts(triples []types.Triple, m Membership) []string {
	seen := make(map[string]bool)
	var subjects []string
	for _, t := range triples {
		if !m.matches(t) {
			continue
		}
		k := subjectKey(t.Subject)
		if seen[k] {
			continue
		}
		seen[k] = true
		subjects = append(subjects, k)
	}
	return subjects
}

// ExtractConcept assembles the record for subject from index.
func ExtractConcept(subject string, index Index, cfg types.ExtractConfig) types.Concept {
	cfg = WithDefaults(cfg)

	c := types.Concept{
		ID:             vocab.LocalName(subject),
		IRI:            subject,
		Labels:         toLabels(index.Literals(subject, cfg.LabelPredicates...)),
		AltLabels:      toLabels(index.Literals(subject, cfg.AltLabelPredicates...)),
		SuggestedTerms: []string{},
		SuggestedIRIs:  []string{},
	}

	var desc types.Term
	if descs := index.Literals(subject, cfg.DescriptionPredicates...); len(descs) > 0 {
		desc = pickDescription(descs, cfg.DescriptionLangs)
		c.Description = desc.Value
	}

	langs := newLangSet()
	langs.addLabels(c.Labels)
	if cfg.LanguagesFromAll {
		langs.addLabels(c.AltLabels)
		langs.add(desc.Lang)
	}
	c.Languages = langs.list

	for _, ref := range suggestedRefs(index, subject) {
		c.SuggestedIRIs = append(c.SuggestedIRIs, ref)
		c.SuggestedTerms = append(c.SuggestedTerms, ResolveTerm(ref, index, cfg))
	}
	return c
}

// ResolveTerm returns the display text for a suggested-term reference.
// The order is fixed: a SKOS-XL literal form, then a title/label, then the
// IRI's trailing path segment.
func ResolveTerm(iri string, index Index, cfg types.ExtractConfig) string {
	cfg = WithDefaults(cfg)
	if lf, ok := index.FirstLiteral(iri, vocab.SKOSXLLiteralForm); ok {
		return lf.Value
	}
	if title, ok := index.FirstLiteral(iri, cfg.LabelPredicates...); ok {
		return title.Value
	}
	return vocab.LocalName(iri)
}

// Extract selects the concepts in triples and builds one record per
// distinct subject, in selection order.
func Extract(triples []types.Triple, cfg types.ExtractConfig) []types.Concept {
	cfg = WithDefaults(cfg)
	index := BuildIndex(triples)
	subjects := SelectConcepts(triples, MembershipFor(cfg))

	concepts := make([]types.Concept, 0, len(subjects))
	for _, s := range subjects {
		concepts = append(concepts, ExtractConcept(s, index, cfg))
	}
	return concepts
}

// SuggestedIRIs returns the distinct suggested-term references of every
// selected concept, first seen first. The loader fetches these before
// running Extract.
func SuggestedIRIs(triples []types.Triple, cfg types.ExtractConfig) []string {
	index := BuildIndex(triples)
	seen := make(map[string]bool)
	var iris []string
	for _, s := range SelectConcepts(triples, MembershipFor(cfg)) {
		for _, ref := range suggestedRefs(index, s) {
			if !seen[ref] {
				seen[ref] = true
				iris = append(iris, ref)
			}
		}
	}
	return iris
}

// ReadMetadata reports vocabulary-level facts: the first dct:modified
// literal in the graph and the triple count.
func ReadMetadata(triples []types.Triple) types.Metadata {
	md := types.Metadata{TripleCount: len(triples)}
	for _, t := range triples {
		if t.Predicate.Value == vocab.DCTModified && t.Object.IsLiteral() {
			md.Modified = t.Object.Value
			break
		}
	}
	return md
}

// suggestedRefs lists IRI objects of hasSuggestedTerm; literal and blank
// objects are not references.
func suggestedRefs(index Index, subject string) []string {
	var refs []string
	for _, o := range index.Objects(subject, vocab.DebiasHasSuggestedTerm) {
		if o.IsIRI() {
			refs = append(refs, o.Value)
		}
	}
	return refs
}

func toLabels(literals []types.Term) []types.Label {
	labels := make([]types.Label, 0, len(literals))
	for _, l := range literals {
		labels = append(labels, types.Label{Text: l.Value, Lang: l.Lang})
	}
	return labels
}

// pickDescription returns the first literal in the most preferred language,
// falling back to the first literal overall.
func pickDescription(literals []types.Term, prefs []string) types.Term {
	for _, lang := range prefs {
		for _, l := range literals {
			if strings.EqualFold(l.Lang, lang) {
				return l
			}
		}
	}
	return literals[0]
}

type langSet struct {
	seen map[string]bool
	list []string
}

func newLangSet() *langSet {
	return &langSet{seen: make(map[string]bool), list: []string{}}
}

func (s *langSet) add(lang string) {
	if lang == "" || s.seen[lang] {
		return
	}
	s.seen[lang] = true
	s.list = append(s.list, lang)
}

func (s *langSet) addLabels(labels []types.Label) {
	for _, l := range labels {
		s.add(l.Lang)
	}
}
