// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/vocab-browser/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear cached vocabulary snapshots",
	Long: `Each successful load stores the merged triple set for its source. When
the vocabulary cannot be fetched later, the load falls back to that
snapshot. These subcommands list and remove snapshots.`,
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached snapshots",
	RunE:  runCacheList,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear [source]",
	Short: "Remove the snapshot for source, or all snapshots",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cacheClearCmd)

	rootCmd.AddCommand(cacheCmd)
}

func openCache() (*cache.Store, error) {
	cfg := pipelineConfig()
	if cfg.Cache.Path == "" {
		return nil, fmt.Errorf("snapshot cache is disabled (empty --cache-db)")
	}
	return cache.Open(cfg.Cache)
}

func runCacheList(cmd *cobra.Command, args []string) error {
	store, err := openCache()
	if err != nil {
		return err
	}
	defer store.Close()

	snaps, err := store.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		fmt.Println("No snapshots cached.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-20s  %-8s  %s\n", "ID", "Fetched", "Triples", "Source")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))
	for _, s := range snaps {
		fmt.Fprintf(os.Stdout, "%-36s  %-20s  %-8d  %s\n",
			s.ID, s.FetchedAt.UTC().Format(time.RFC3339), s.TripleCount, s.Source)
	}
	fmt.Fprintf(os.Stdout, "\n%d snapshots\n", len(snaps))
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	store, err := openCache()
	if err != nil {
		return err
	}
	defer store.Close()

	source := ""
	if len(args) == 1 {
		source = args[0]
	}
	n, err := store.Clear(cmd.Context(), source)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "removed %d snapshot(s)\n", n)
	return nil
}
