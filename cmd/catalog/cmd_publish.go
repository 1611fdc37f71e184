package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tonn-hash/galeria-de-prompts/internal/catalog"
	"github.com/Tonn-hash/galeria-de-prompts/internal/config"
	"github.com/Tonn-hash/galeria-de-prompts/pkg/lifecycle"
	"github.com/Tonn-hash/galeria-de-prompts/pkg/storage"
)

var publishKey string

var publishCmd = &cobra.Command{
	Use:   "publish <file>",
	Short: "Upload a validated catalog to blob storage",
	Long: `Validate a catalog document and upload it to the configured storage
container. Servers configured with catalog.source = "blob:<key>" read it
on their next start.

Storage settings come from config.toml and GALLERY_STORAGE_* variables.`,
	Args: cobra.ExactArgs(1),
	RunE: runPublish,
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func runPublish(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}
	prompts, err := catalog.Decode(data)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if !cfg.Storage.Enabled() {
		return storage.ErrNotConfigured
	}

	logger := newLogger()
	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return err
	}

	lc := lifecycle.New()
	defer lc.Shutdown(cfg.ShutdownTimeoutDuration())

	if err := store.Start(lc); err != nil {
		return err
	}
	if err := lc.WaitForStartup(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	if err := store.Upload(ctx, publishKey, bytes.NewReader(data), "application/json"); err != nil {
		return err
	}

	logger.Info("catalog published",
		"container", cfg.Storage.ContainerName,
		"key", publishKey,
		"prompts", len(prompts),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "published %d prompts to blob:%s\n", len(prompts), publishKey)
	return nil
}
