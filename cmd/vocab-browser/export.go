// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/vocab-browser/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Load the vocabulary and write the concepts to a YAML or JSON file",
	Long: `Export runs the same load as "load" and writes the vocabulary metadata
and every extracted concept to a file. The format follows --format, or the
output file's extension when --format is not set.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringP("out", "o", "concepts.yaml", "output file")
	exportCmd.Flags().String("format", "", "output format: yaml or json (default: from the file extension)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("out")
	formatName, _ := cmd.Flags().GetString("format")

	format, err := export.FormatFor(formatName, out)
	if err != nil {
		return err
	}

	res, err := loadVocabulary(cmd.Context(), os.Stdout)
	if err != nil {
		return err
	}

	doc := export.Document{Metadata: res.Metadata, Concepts: res.Concepts}
	if err := export.WriteFile(out, format, doc); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "wrote %d concepts to %s\n", len(res.Concepts), out)
	return nil
}
