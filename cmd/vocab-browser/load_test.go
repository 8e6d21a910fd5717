// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/vocab-browser/internal/pipeline"
	"github.com/pdiddy/vocab-browser/pkg/types"
)

func sampleResult() *pipeline.Result {
	return &pipeline.Result{
		Concepts: []types.Concept{{
			ID:             "foo",
			Labels:         []types.Label{{Text: "Foo", Lang: "en"}},
			Languages:      []string{"en"},
			SuggestedTerms: []string{"Bar", "baz"},
		}},
		Metadata: types.Metadata{Modified: "2025-03-01", ConceptCount: 1},
	}
}

func TestFormatConcepts_Table(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, formatConcepts(&out, sampleResult(), false))

	s := out.String()
	assert.Contains(t, s, "Suggested")
	assert.Contains(t, s, "Bar, baz")
	assert.Contains(t, s, "–")
	assert.Contains(t, s, "1 concepts, modified 2025-03-01")
}

func TestFormatConcepts_JSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, formatConcepts(&out, sampleResult(), true))

	var concepts []types.Concept
	require.NoError(t, json.Unmarshal(out.Bytes(), &concepts))
	require.Len(t, concepts, 1)
	assert.Equal(t, []string{"Bar", "baz"}, concepts[0].SuggestedTerms)
}

func TestFormatConcepts_Empty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, formatConcepts(&out, &pipeline.Result{}, false))
	assert.Equal(t, "No concepts found.\n", out.String())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Fußgän...", truncate("Fußgängerzone", 9))
}
