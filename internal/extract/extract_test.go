// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/vocab-browser/internal/vocab"
	"github.com/pdiddy/vocab-browser/pkg/types"
)

const (
	foo    = "http://ex/terms/foo"
	bar    = "http://ex/terms/bar"
	record = "http://ex/records/r1"
)

// --- test helpers ---

func member(subject string) types.Triple {
	return types.NewTriple(subject, vocab.DebiasHasContentiousTerm, types.NewIRI(subject+"#term"))
}

func title(subject, text, lang string) types.Triple {
	return types.NewTriple(subject, vocab.DCTTitle, types.NewLangLiteral(text, lang))
}

func suggests(subject, target string) types.Triple {
	return types.NewTriple(subject, vocab.DebiasHasSuggestedTerm, types.NewIRI(target))
}

func fooScenario() []types.Triple {
	return []types.Triple{
		member(foo),
		title(foo, "Foo", "en"),
		title(foo, "Fuß", "de"),
		types.NewTriple(foo, vocab.DCTDescription, types.NewLangLiteral("A foo term", "en")),
		suggests(foo, bar),
	}
}

// --- BuildIndex ---

func TestBuildIndex_GroupsBySubjectInOrder(t *testing.T) {
	triples := []types.Triple{
		title(foo, "one", "en"),
		title(bar, "other", "en"),
		title(foo, "two", "en"),
		types.Triple{Subject: types.NewBlank("b0"), Predicate: types.NewIRI(vocab.DCTTitle), Object: types.NewLiteral("blank")},
	}
	ix := BuildIndex(triples)

	require.Len(t, ix[foo], 2)
	assert.Equal(t, "one", ix[foo][0].Object.Value)
	assert.Equal(t, "two", ix[foo][1].Object.Value)
	assert.Len(t, ix[bar], 1)
	assert.True(t, ix.Has("_:b0"))
	assert.False(t, ix.Has("b0"))
}

// --- SelectConcepts ---

func TestSelectConcepts_Dedup(t *testing.T) {
	triples := []types.Triple{
		member(foo),
		types.NewTriple(foo, vocab.DebiasHasContentiousTerm, types.NewIRI(foo+"#other")),
		member(foo),
	}
	got := SelectConcepts(triples, Membership{Predicate: vocab.DebiasHasContentiousTerm})
	assert.Equal(t, []string{foo}, got)

	concepts := Extract(triples, types.ExtractConfig{})
	require.Len(t, concepts, 1)
	assert.Equal(t, "foo", concepts[0].ID)
}

func TestSelectConcepts_EncounterOrder(t *testing.T) {
	triples := []types.Triple{member(bar), member(foo), member(bar)}
	got := SelectConcepts(triples, Membership{Predicate: vocab.DebiasHasContentiousTerm})
	assert.Equal(t, []string{bar, foo}, got)
}

func TestMembershipFor(t *testing.T) {
	triples := []types.Triple{
		types.NewTriple(foo, vocab.RDFType, types.NewIRI(vocab.SKOSConcept)),
		types.NewTriple(bar, vocab.RDFType, types.NewIRI("http://ex/Scheme")),
		member(record),
	}

	tests := []struct {
		name string
		cfg  types.ExtractConfig
		want []string
	}{
		{"default is contentious-term", types.ExtractConfig{}, []string{record}},
		{"concept class", types.ExtractConfig{Membership: types.MembershipConceptClass}, []string{foo}},
		{"custom class", types.ExtractConfig{Membership: types.MembershipConceptClass, ConceptClass: "http://ex/Scheme"}, []string{bar}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectConcepts(triples, MembershipFor(tt.cfg)))
		})
	}
}

func TestSelectConcepts_ClassMustBeIRI(t *testing.T) {
	triples := []types.Triple{
		types.NewTriple(foo, vocab.RDFType, types.NewLiteral(vocab.SKOSConcept)),
		types.NewTriple(bar, vocab.RDFType, types.NewIRI(vocab.SKOSConcept)),
	}
	m := MembershipFor(types.ExtractConfig{Membership: types.MembershipConceptClass})
	assert.Equal(t, []string{bar}, SelectConcepts(triples, m))
}

// --- ExtractConcept ---

func TestExtract_EndToEndScenario(t *testing.T) {
	triples := append(fooScenario(), title(bar, "Bar", "en"))

	concepts := Extract(triples, types.ExtractConfig{})
	require.Len(t, concepts, 1)

	c := concepts[0]
	assert.Equal(t, "foo", c.ID)
	assert.Equal(t, foo, c.IRI)
	assert.Equal(t, []string{"en", "de"}, c.Languages)
	assert.Equal(t, []string{"Foo", "Fuß"}, c.LabelTexts())
	assert.Equal(t, "A foo term", c.Description)
	assert.Equal(t, []string{"Bar"}, c.SuggestedTerms)
	assert.Equal(t, []string{bar}, c.SuggestedIRIs)
}

func TestExtract_UnfetchedReferenceFallsBackToFragment(t *testing.T) {
	concepts := Extract(fooScenario(), types.ExtractConfig{})
	require.Len(t, concepts, 1)
	assert.Equal(t, []string{"bar"}, concepts[0].SuggestedTerms)
}

func TestExtractConcept_DescriptionFirstWins(t *testing.T) {
	triples := []types.Triple{
		member(foo),
		types.NewTriple(foo, vocab.DCTDescription, types.NewLangLiteral("A", "de")),
		types.NewTriple(foo, vocab.DCTDescription, types.NewLangLiteral("B", "en")),
	}
	c := ExtractConcept(foo, BuildIndex(triples), types.ExtractConfig{})
	assert.Equal(t, "A", c.Description)
}

func TestExtractConcept_DescriptionLanguagePreference(t *testing.T) {
	triples := []types.Triple{
		member(foo),
		types.NewTriple(foo, vocab.DCTDescription, types.NewLangLiteral("A", "de")),
		types.NewTriple(foo, vocab.DCTDescription, types.NewLangLiteral("B", "en")),
	}
	ix := BuildIndex(triples)

	c := ExtractConcept(foo, ix, types.ExtractConfig{DescriptionLangs: []string{"fr", "EN"}})
	assert.Equal(t, "B", c.Description)

	c = ExtractConcept(foo, ix, types.ExtractConfig{DescriptionLangs: []string{"fr"}})
	assert.Equal(t, "A", c.Description, "no preferred match falls back to first literal")
}

func TestExtractConcept_DescriptionIgnoresNonLiterals(t *testing.T) {
	triples := []types.Triple{
		types.NewTriple(foo, vocab.DCTDescription, types.NewIRI("http://ex/doc")),
		types.NewTriple(foo, vocab.DCTDescription, types.NewLiteral("text")),
	}
	c := ExtractConcept(foo, BuildIndex(triples), types.ExtractConfig{})
	assert.Equal(t, "text", c.Description)
}

func TestExtractConcept_LanguageSet(t *testing.T) {
	triples := []types.Triple{
		title(foo, "x", "en"),
		title(foo, "y", "de"),
		title(foo, "z", ""),
		title(foo, "w", "en"),
	}
	c := ExtractConcept(foo, BuildIndex(triples), types.ExtractConfig{})
	assert.Equal(t, []string{"en", "de"}, c.Languages)
	assert.Len(t, c.Labels, 4)
}

func TestExtractConcept_LanguagesFromAll(t *testing.T) {
	triples := []types.Triple{
		title(foo, "x", "en"),
		types.NewTriple(foo, vocab.SKOSAltLabel, types.NewLangLiteral("alt", "nl")),
		types.NewTriple(foo, vocab.DCTDescription, types.NewLangLiteral("desc", "it")),
	}
	ix := BuildIndex(triples)

	c := ExtractConcept(foo, ix, types.ExtractConfig{})
	assert.Equal(t, []string{"en"}, c.Languages)
	assert.Equal(t, []types.Label{{Text: "alt", Lang: "nl"}}, c.AltLabels)

	c = ExtractConcept(foo, ix, types.ExtractConfig{LanguagesFromAll: true})
	assert.Equal(t, []string{"en", "nl", "it"}, c.Languages)
}

func TestExtractConcept_EmptySubject(t *testing.T) {
	c := ExtractConcept(foo, BuildIndex([]types.Triple{member(foo)}), types.ExtractConfig{})

	assert.Equal(t, "foo", c.ID)
	assert.Empty(t, c.Labels)
	assert.NotNil(t, c.Languages)
	assert.Empty(t, c.Languages)
	assert.Equal(t, "", c.Description)
	assert.NotNil(t, c.SuggestedTerms)
	assert.Empty(t, c.SuggestedTerms)
}

func TestExtractConcept_SuggestedNotDeduplicated(t *testing.T) {
	triples := []types.Triple{
		member(foo),
		suggests(foo, bar),
		types.NewTriple(foo, vocab.DebiasHasSuggestedTerm, types.NewLiteral("not a reference")),
		suggests(foo, bar),
		title(bar, "Bar", "en"),
	}
	c := ExtractConcept(foo, BuildIndex(triples), types.ExtractConfig{})
	assert.Equal(t, []string{"Bar", "Bar"}, c.SuggestedTerms)
	assert.Equal(t, []string{bar, bar}, c.SuggestedIRIs)
}

func TestExtractConcept_CustomLabelPredicates(t *testing.T) {
	triples := []types.Triple{
		types.NewTriple(foo, vocab.SKOSPrefLabel, types.NewLangLiteral("Pref", "en")),
		title(foo, "Title", "en"),
	}
	cfg := types.ExtractConfig{LabelPredicates: []string{vocab.SKOSPrefLabel}}
	c := ExtractConcept(foo, BuildIndex(triples), cfg)
	assert.Equal(t, []string{"Pref"}, c.LabelTexts())
}

// --- ResolveTerm ---

func TestResolveTerm(t *testing.T) {
	tests := []struct {
		name    string
		triples []types.Triple
		want    string
	}{
		{
			name: "literal form beats title",
			triples: []types.Triple{
				title(bar, "Title text", "en"),
				types.NewTriple(bar, vocab.SKOSXLLiteralForm, types.NewLangLiteral("Literal form", "en")),
			},
			want: "Literal form",
		},
		{
			name:    "title when no literal form",
			triples: []types.Triple{title(bar, "Bar", "en")},
			want:    "Bar",
		},
		{
			name:    "fragment when nothing fetched",
			triples: nil,
			want:    "bar",
		},
		{
			name:    "fragment when only unrelated triples",
			triples: []types.Triple{types.NewTriple(bar, vocab.RDFType, types.NewIRI(vocab.SKOSConcept))},
			want:    "bar",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveTerm(bar, BuildIndex(tt.triples), types.ExtractConfig{})
			assert.Equal(t, tt.want, got)
		})
	}
}

// --- SuggestedIRIs / ReadMetadata ---

func TestSuggestedIRIs_Distinct(t *testing.T) {
	other := "http://ex/terms/baz"
	triples := []types.Triple{
		member(foo),
		suggests(foo, bar),
		suggests(foo, other),
		member(record),
		suggests(record, bar),
		suggests("http://ex/terms/not-a-member", "http://ex/terms/ignored"),
	}
	assert.Equal(t, []string{bar, other}, SuggestedIRIs(triples, types.ExtractConfig{}))
}

func TestReadMetadata(t *testing.T) {
	triples := []types.Triple{
		types.NewTriple("http://ex/scheme", vocab.DCTModified, types.NewIRI("http://ex/not-a-date")),
		types.NewTriple("http://ex/scheme", vocab.DCTModified, types.NewTypedLiteral("2025-03-01", "http://www.w3.org/2001/XMLSchema#date")),
		member(foo),
	}
	md := ReadMetadata(triples)
	assert.Equal(t, "2025-03-01", md.Modified)
	assert.Equal(t, 3, md.TripleCount)
}
