package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tonn-hash/galeria-de-prompts/internal/config"
	"github.com/Tonn-hash/galeria-de-prompts/internal/profiles"
	"github.com/Tonn-hash/galeria-de-prompts/pkg/database"
	"github.com/Tonn-hash/galeria-de-prompts/pkg/lifecycle"
)

var (
	codesCount int
	codesStore bool
)

var codesCmd = &cobra.Command{
	Use:   "codes",
	Short: "Premium activation codes",
}

var codesGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate premium activation codes",
	Long: `Generate activation codes in KEY-SECRET form and print them, one per line.

With --store the key and a bcrypt hash of each secret are written to the
configured database in one transaction. The plain codes are never stored,
so keep the printed output.`,
	Args: cobra.NoArgs,
	RunE: runCodesGenerate,
}

func generateCodes(n int) ([]profiles.ActivationCode, error) {
	if n < 1 || n > 1000 {
		return nil, errors.New("count must be between 1 and 1000")
	}

	codes := make([]profiles.ActivationCode, 0, n)
	for range n {
		c, err := profiles.GenerateCode()
		if err != nil {
			return nil, fmt.Errorf("generate code: %w", err)
		}
		codes = append(codes, c)
	}
	return codes, nil
}

func runCodesGenerate(cmd *cobra.Command, args []string) error {
	codes, err := generateCodes(codesCount)
	if err != nil {
		return err
	}

	if codesStore {
		if err := storeCodes(cmd.Context(), codes); err != nil {
			return err
		}
	}

	for _, c := range codes {
		fmt.Fprintln(cmd.OutOrStdout(), c.Code)
	}
	return nil
}

func storeCodes(ctx context.Context, codes []profiles.ActivationCode) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger()
	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return err
	}

	lc := lifecycle.New()
	defer lc.Shutdown(cfg.ShutdownTimeoutDuration())

	if err := db.Start(lc); err != nil {
		return err
	}
	if err := lc.WaitForStartup(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return profiles.New(db.Connection(), logger).StoreCodes(ctx, codes)
}
