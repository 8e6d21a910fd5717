// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"slices"

	"github.com/pdiddy/vocab-browser/pkg/types"
)

// Index groups triples by subject. Triples keep their encounter order
// within each group, which decides every "first value wins" rule.
type Index map[string][]types.Triple

// BuildIndex groups triples by subject identifier in a single pass.
func BuildIndex(triples []types.Triple) Index {
	index := make(Index)
	for _, t := range triples {
		k := subjectKey(t.Subject)
		index[k] = append(index[k], t)
	}
	return index
}

// Objects returns the objects of subject's triples whose predicate is any
// of predicates, in encounter order.
func (ix Index) Objects(subject string, predicates ...string) []types.Term {
	var objects []types.Term
	for _, t := range ix[subject] {
		if slices.Contains(predicates, t.Predicate.Value) {
			objects = append(objects, t.Object)
		}
	}
	return objects
}

// Literals is Objects restricted to literal objects.
func (ix Index) Literals(subject string, predicates ...string) []types.Term {
	var literals []types.Term
	for _, o := range ix.Objects(subject, predicates...) {
		if o.IsLiteral() {
			literals = append(literals, o)
		}
	}
	return literals
}

// FirstLiteral returns the first literal object of subject for any of
// predicates.
func (ix Index) FirstLiteral(subject string, predicates ...string) (types.Term, bool) {
	for _, t := range ix[subject] {
		if t.Object.IsLiteral() && slices.Contains(predicates, t.Predicate.Value) {
			return t.Object, true
		}
	}
	return types.Term{}, false
}

// Has reports whether any triple with subject was indexed.
func (ix Index) Has(subject string) bool {
	return len(ix[subject]) > 0
}

// subjectKey keeps blank node labels apart from IRIs that happen to share
// the same text.
func subjectKey(t types.Term) string {
	if t.Kind == types.KindBlank {
		return t.String()
	}
	return t.Value
}
