// Command catalog inspects, publishes, and provisions data for the prompt
// gallery: it validates catalog documents, runs queries against them,
// uploads them to blob storage, and generates premium activation codes.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	timeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Prompt gallery catalog tooling",
	Long: `Tools for the prompt gallery catalog.

Available commands:
  validate   - Check a catalog document
  categories - List categories in first-seen order
  query      - Search, filter, and sort a catalog document
  publish    - Upload a validated catalog to blob storage
  codes      - Generate premium activation codes`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Operation timeout")

	queryCmd.Flags().StringVarP(&querySearch, "search", "s", "", "Case-insensitive search term")
	queryCmd.Flags().StringArrayVarP(&queryCategories, "category", "c", nil, "Category to include, verbatim (repeatable)")
	queryCmd.Flags().StringVar(&querySort, "sort", "default", "Sort order: default, asc, desc")
	queryCmd.Flags().StringVar(&queryLocale, "locale", "en", "Collation locale for name sorting")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "Print matching records as JSON")

	publishCmd.Flags().StringVar(&publishKey, "key", "prompts.json", "Blob key to write")

	codesGenerateCmd.Flags().IntVarP(&codesCount, "count", "n", 10, "Number of codes to generate")
	codesGenerateCmd.Flags().BoolVar(&codesStore, "store", false, "Store code hashes in the configured database")
	codesCmd.AddCommand(codesGenerateCmd)

	rootCmd.AddCommand(
		validateCmd,
		categoriesCmd,
		queryCmd,
		publishCmd,
		codesCmd,
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
