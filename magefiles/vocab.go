//go:build mage

package main

import (
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Load builds the CLI and prints the concepts of the configured vocabulary.
// VOCAB_BROWSER_SOURCE overrides the default source.
func Load() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "load")
}

// Export writes the concepts to output/concepts.yaml.
func Export() error {
	mg.Deps(Build, Init)
	return sh.RunV(binPath, "export", "--out", "output/concepts.yaml")
}

// Serve runs the JSON API on VOCAB_BROWSER_ADDR (default :8080).
func Serve() error {
	mg.Deps(Build)
	return sh.RunWithV(map[string]string{"GIN_MODE": ginMode()}, binPath, "serve")
}

func ginMode() string {
	if m := os.Getenv("GIN_MODE"); m != "" {
		return m
	}
	return "release"
}
