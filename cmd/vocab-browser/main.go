// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the vocab-browser CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the vocab-browser CLI.
var rootCmd = &cobra.Command{
	Use:   "vocab-browser",
	Short: "Browse SKOS-style vocabularies published as RDF/Turtle",
	Long: `vocab-browser loads an RDF/Turtle vocabulary, follows its suggested-term
cross-references, and extracts one record per concept: labels, languages,
description, and resolved suggested terms.

Records can be printed as a table, exported to YAML or JSON, or served over
a read-only JSON API. The last successful load is cached in SQLite so a
later load with a failing network can still show the last snapshot.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("loading .env: %w", err)
		}

		level := slog.LevelWarn
		if viper.GetBool("verbose") {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./vocab-browser.yaml or ~/.config/vocab-browser/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log diagnostics to stderr")
	bindFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	registerPipelineFlags(rootCmd)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("vocab-browser")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "vocab-browser"))
		}
	}

	viper.SetEnvPrefix("VOCAB_BROWSER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
