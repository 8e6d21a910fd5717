// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package vocab holds the IRIs of the vocabularies the extractor reads and
// helpers for turning IRIs into display keys.
package vocab

import "strings"

// Namespaces.
const (
	RDF    = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	SKOS   = "http://www.w3.org/2004/02/skos/core#"
	SKOSXL = "http://www.w3.org/2008/05/skos-xl#"
	DCT    = "http://purl.org/dc/terms/"
	DEBIAS = "http://data.europa.eu/c4p/ontology#"
)

// RDF.
const (
	RDFType = RDF + "type"
)

// SKOS and SKOS-XL.
const (
	SKOSConcept    = SKOS + "Concept"
	SKOSPrefLabel  = SKOS + "prefLabel"
	SKOSAltLabel   = SKOS + "altLabel"
	SKOSDefinition = SKOS + "definition"

	// SKOSXLLiteralForm is the text of a SKOS-XL label resource. It is
	// preferred over generic titles when resolving suggested terms.
	SKOSXLLiteralForm = SKOSXL + "literalForm"
)

// Dublin Core terms.
const (
	DCTTitle       = DCT + "title"
	DCTDescription = DCT + "description"
	DCTModified    = DCT + "modified"
)

// DE-BIAS ontology.
const (
	// DebiasHasContentiousTerm links a record to its contentious term and
	// marks the record as a real vocabulary entry.
	DebiasHasContentiousTerm = DEBIAS + "hasContentiousTerm"

	// DebiasHasSuggestedTerm links a record to a suggested alternative.
	DebiasHasSuggestedTerm = DEBIAS + "hasSuggestedTerm"
)

// LocalName returns the last "/"-delimited segment of iri. A single
// trailing slash is ignored so "http://ex/terms/foo/" yields "foo".
func LocalName(iri string) string {
	trimmed := strings.TrimSuffix(iri, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}
