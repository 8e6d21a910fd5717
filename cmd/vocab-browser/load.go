// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/vocab-browser/internal/pipeline"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load the vocabulary and print one row per concept",
	Long: `Load fetches the vocabulary document, resolves every suggested term it
references, and prints the extracted concepts. A suggested term whose
resource cannot be fetched falls back to the last segment of its IRI.
If the vocabulary itself cannot be fetched, the last cached snapshot is
used instead.`,
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().Bool("json", false, "output concepts as JSON")

	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	// Progress goes to stderr so --json output stays parseable.
	res, err := loadVocabulary(cmd.Context(), os.Stderr)
	if err != nil {
		return err
	}
	return formatConcepts(os.Stdout, res, jsonOutput)
}

// loadVocabulary runs one pipeline load with a fresh session.
func loadVocabulary(ctx context.Context, progress io.Writer) (*pipeline.Result, error) {
	sess, err := newSession()
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	if ctx == nil {
		ctx = context.Background()
	}
	res, err := pipeline.Load(ctx, sess.cfg, sess.fetcher, sess.snapshots(), progress)
	if err != nil {
		if pipeline.IsFatal(err) {
			fmt.Fprintln(os.Stderr, "Failed to load vocabulary.")
		}
		return nil, err
	}
	return res, nil
}

func formatConcepts(w io.Writer, res *pipeline.Result, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Concepts)
	}

	if len(res.Concepts) == 0 {
		fmt.Fprintln(w, "No concepts found.")
		return nil
	}

	fmt.Fprintf(w, "%-24s  %-10s  %-30s  %-40s  %s\n",
		"ID", "Languages", "Labels", "Description", "Suggested")
	fmt.Fprintln(w, strings.Repeat("-", 130))

	for _, c := range res.Concepts {
		fmt.Fprintf(w, "%-24s  %-10s  %-30s  %-40s  %s\n",
			truncate(c.ID, 24),
			truncate(orDash(strings.Join(c.Languages, ",")), 10),
			truncate(orDash(strings.Join(c.LabelTexts(), "; ")), 30),
			truncate(orDash(c.Description), 40),
			orDash(strings.Join(c.SuggestedTerms, ", ")))
	}

	fmt.Fprintf(w, "\n%d concepts", len(res.Concepts))
	if res.Metadata.Modified != "" {
		fmt.Fprintf(w, ", modified %s", res.Metadata.Modified)
	}
	if res.Metadata.FromCache {
		fmt.Fprintf(w, " (cached snapshot from %s)", res.Metadata.SnapshotTime)
	}
	fmt.Fprintln(w)
	return nil
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func orDash(s string) string {
	if s == "" {
		return "–"
	}
	return s
}

