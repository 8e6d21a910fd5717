// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package turtle decodes RDF documents into the module's triple model.
// Turtle is the primary format; N-Triples and RDF/XML are accepted for
// cross-referenced resources that negotiate a different serialization.
package turtle

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/knakk/rdf"

	"github.com/pdiddy/vocab-browser/pkg/types"
)

// Format identifies an RDF serialization.
type Format string

const (
	FormatTurtle   Format = "turtle"
	FormatNTriples Format = "ntriples"
	FormatRDFXML   Format = "rdfxml"
)

// AcceptHeader is sent when dereferencing RDF resources.
const AcceptHeader = "text/turtle, application/n-triples;q=0.9, application/rdf+xml;q=0.8, */*;q=0.1"

// FormatFor picks a decoder from a response media type, falling back to the
// file extension of path and finally to Turtle.
func FormatFor(contentType, path string) Format {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "n-triples"):
		return FormatNTriples
	case strings.Contains(ct, "rdf+xml"):
		return FormatRDFXML
	case strings.Contains(ct, "turtle"):
		return FormatTurtle
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".nt":
		return FormatNTriples
	case ".rdf", ".owl", ".xml":
		return FormatRDFXML
	}
	return FormatTurtle
}

// Parse decodes all triples from r. Relative IRIs resolve against base,
// which is normally the document's fetch URL; an empty base leaves them as
// written. N-Triples IRIs are always absolute, so base is ignored there.
func Parse(r io.Reader, format Format, base string) ([]types.Triple, error) {
	dec := rdf.NewTripleDecoder(r, decoderFormat(format))
	if base != "" && format != FormatNTriples {
		iri, err := rdf.NewIRI(base)
		if err != nil {
			return nil, fmt.Errorf("invalid base IRI %q: %w", base, err)
		}
		if err := dec.SetOption(rdf.Base, iri); err != nil {
			return nil, fmt.Errorf("setting base IRI: %w", err)
		}
	}

	var triples []types.Triple
	for {
		t, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		triples = append(triples, convertTriple(t))
	}
	return triples, nil
}

// ParseString is Parse over an in-memory Turtle document.
func ParseString(doc, base string) ([]types.Triple, error) {
	return Parse(strings.NewReader(doc), FormatTurtle, base)
}

func decoderFormat(f Format) rdf.Format {
	switch f {
	case FormatNTriples:
		return rdf.NTriples
	case FormatRDFXML:
		return rdf.RDFXML
	}
	return rdf.Turtle
}

func convertTriple(t rdf.Triple) types.Triple {
	return types.Triple{
		Subject:   convertTerm(t.Subj),
		Predicate: convertTerm(t.Pred),
		Object:    convertTerm(t.Obj),
	}
}

func convertTerm(term rdf.Term) types.Term {
	switch v := term.(type) {
	case rdf.IRI:
		return types.NewIRI(v.String())
	case rdf.Blank:
		return types.NewBlank(strings.TrimPrefix(v.String(), "_:"))
	case rdf.Literal:
		if lang := v.Lang(); lang != "" {
			return types.NewLangLiteral(v.String(), lang)
		}
		dt := v.DataType.String()
		if dt == xsdString || dt == rdfLangString {
			dt = ""
		}
		return types.NewTypedLiteral(v.String(), dt)
	}
	return types.Term{Kind: types.KindLiteral, Value: term.String()}
}

const (
	xsdString     = "http://www.w3.org/2001/XMLSchema#string"
	rdfLangString = "http://www.w3.org/1999/02/22-rdf-syntax-ns#langString"
)
