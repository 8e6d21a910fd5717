// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/vocab-browser/internal/pipeline"
	"github.com/pdiddy/vocab-browser/internal/server"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Load the vocabulary and serve the concepts over HTTP",
	Long: `Serve loads the vocabulary once and exposes the concepts as a read-only
JSON API:

  GET  /health
  GET  /v1/metadata
  GET  /v1/concepts[?lang=xx]
  GET  /v1/concepts/:id
  POST /v1/reload

A reload runs the load again. If it fails, the previous concepts keep
being served.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", defaultAddr, "listen address")
	bindFlag("addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess, err := newSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	// The session outlives every reload so suggested terms stay in the
	// fetcher's document cache.
	load := func(ctx context.Context) (*pipeline.Result, error) {
		return pipeline.Load(ctx, sess.cfg, sess.fetcher, sess.snapshots(), os.Stderr)
	}

	res, err := load(ctx)
	if err != nil {
		if pipeline.IsFatal(err) {
			fmt.Fprintln(os.Stderr, "Failed to load vocabulary.")
		}
		return err
	}

	srv := &http.Server{
		Addr:              sess.cfg.Serve.Addr,
		Handler:           server.New(res, load).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("serving concepts", "addr", srv.Addr, "concepts", len(res.Concepts))
		fmt.Fprintf(os.Stderr, "listening on %s\n", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
