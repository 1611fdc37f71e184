package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/Tonn-hash/galeria-de-prompts/internal/catalog"
	"github.com/Tonn-hash/galeria-de-prompts/pkg/formatting"
)

var (
	querySearch     string
	queryCategories []string
	querySort       string
	queryLocale     string
	queryJSON       bool
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a catalog document",
	Long: `Decode a catalog document and report the first violation.

Every record needs a name and ids must be unique. A document that fails
any check would be rejected whole by the server.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

var categoriesCmd = &cobra.Command{
	Use:   "categories <file>",
	Short: "List categories in first-seen order",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategories,
}

var queryCmd = &cobra.Command{
	Use:   "query <file>",
	Short: "Search, filter, and sort a catalog document",
	Long: `Run the gallery query pipeline over a catalog document.

Search matches name or description, ignoring case. Categories restrict the
result to the selected set. Sorting by name follows the collation rules of
--locale.`,
	Example: `  catalog query data/prompts.json --search retrato --category Fotografia --sort asc`,
	Args:    cobra.ExactArgs(1),
	RunE:    runQuery,
}

func readCatalog(path string) ([]catalog.Prompt, error) {
	prompts, _, err := readCatalogSize(path)
	return prompts, err
}

func readCatalogSize(path string) ([]catalog.Prompt, int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read %s: %w", path, err)
	}
	prompts, err := catalog.Decode(data)
	return prompts, int64(len(data)), err
}

func runValidate(cmd *cobra.Command, args []string) error {
	prompts, size, err := readCatalogSize(args[0])
	if err != nil {
		return err
	}

	premium := 0
	for _, p := range prompts {
		if p.IsPremium {
			premium++
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s): %d prompts, %d premium, %d categories\n",
		args[0], formatting.FormatBytes(size, 1), len(prompts), premium, len(catalog.Categories(prompts)))
	return nil
}

func runCategories(cmd *cobra.Command, args []string) error {
	prompts, err := readCatalog(args[0])
	if err != nil {
		return err
	}

	for _, c := range catalog.Categories(prompts) {
		fmt.Fprintln(cmd.OutOrStdout(), c)
	}
	return nil
}

func runQuery(cmd *cobra.Command, args []string) error {
	prompts, err := readCatalog(args[0])
	if err != nil {
		return err
	}

	order, err := catalog.ParseSortOrder(querySort)
	if err != nil {
		return err
	}

	locale, err := language.Parse(queryLocale)
	if err != nil {
		return fmt.Errorf("invalid locale %q: %w", queryLocale, err)
	}

	result := catalog.NewEngine(locale).Query(prompts, catalog.QueryState{
		SearchTerm: querySearch,
		Categories: queryCategories,
		Sort:       order,
	})

	out := cmd.OutOrStdout()
	if queryJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	for _, p := range result {
		flag := ""
		if p.IsPremium {
			flag = " [premium]"
		}
		fmt.Fprintf(out, "%4d  %-12s %s%s\n", p.ID, p.Category, p.Name, flag)
	}
	if len(result) == 0 {
		fmt.Fprintln(out, "no prompts match")
	}
	return nil
}
