// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// TermKind tags the variant held by a Term.
type TermKind string

const (
	KindIRI     TermKind = "iri"
	KindLiteral TermKind = "literal"
	KindBlank   TermKind = "blank"
)

// Term is one position of a triple: an IRI, a literal, or a blank node.
// Kind decides which fields are meaningful; Lang and Datatype are only set
// for literals.
type Term struct {
	// Kind identifies the variant.
	Kind TermKind `json:"kind" yaml:"kind"`

	// Value is the IRI string, the literal lexical form, or the blank node label.
	Value string `json:"value" yaml:"value"`

	// Lang is the literal language tag (e.g. "en"), empty when untagged.
	Lang string `json:"lang,omitempty" yaml:"lang,omitempty"`

	// Datatype is the literal datatype IRI, empty for plain and language-tagged literals.
	Datatype string `json:"datatype,omitempty" yaml:"datatype,omitempty"`
}

// NewIRI returns a named node.
func NewIRI(iri string) Term {
	return Term{Kind: KindIRI, Value: iri}
}

// NewLiteral returns a plain literal without language tag.
func NewLiteral(value string) Term {
	return Term{Kind: KindLiteral, Value: value}
}

// NewLangLiteral returns a language-tagged literal.
func NewLangLiteral(value, lang string) Term {
	return Term{Kind: KindLiteral, Value: value, Lang: lang}
}

// NewTypedLiteral returns a literal with an explicit datatype IRI.
func NewTypedLiteral(value, datatype string) Term {
	return Term{Kind: KindLiteral, Value: value, Datatype: datatype}
}

// NewBlank returns a blank node with the given label.
func NewBlank(label string) Term {
	return Term{Kind: KindBlank, Value: label}
}

// IsIRI reports whether t is a named node.
func (t Term) IsIRI() bool { return t.Kind == KindIRI }

// IsLiteral reports whether t is a literal.
func (t Term) IsLiteral() bool { return t.Kind == KindLiteral }

// String renders the term in N-Triples-like notation for logs and errors.
func (t Term) String() string {
	switch t.Kind {
	case KindIRI:
		return "<" + t.Value + ">"
	case KindBlank:
		return "_:" + t.Value
	case KindLiteral:
		if t.Lang != "" {
			return fmt.Sprintf("%q@%s", t.Value, t.Lang)
		}
		if t.Datatype != "" {
			return fmt.Sprintf("%q^^<%s>", t.Value, t.Datatype)
		}
		return fmt.Sprintf("%q", t.Value)
	}
	return t.Value
}

// Triple is a single subject-predicate-object statement. Triples are
// treated as immutable once parsed.
type Triple struct {
	Subject   Term `json:"subject" yaml:"subject"`
	Predicate Term `json:"predicate" yaml:"predicate"`
	Object    Term `json:"object" yaml:"object"`
}

// NewTriple builds a triple from a subject IRI, a predicate IRI and an object.
func NewTriple(subject, predicate string, object Term) Triple {
	return Triple{Subject: NewIRI(subject), Predicate: NewIRI(predicate), Object: object}
}

func (t Triple) String() string {
	return t.Subject.String() + " " + t.Predicate.String() + " " + t.Object.String() + " ."
}
