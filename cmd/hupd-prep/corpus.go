// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/hupd-prep/internal/corpus"
	"github.com/pdiddy/hupd-prep/pkg/types"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Manage the corpus index (index, search, export)",
	Long: `Corpus manages a local SQLite index over the rendered Markdown corpus.
Use subcommands to index rendered records, search them, or export the
index for downstream ingestion.`,
}

// --- index subcommand ---

var corpusIndexCmd = &cobra.Command{
	Use:   "index",
	Short: "Index rendered records into the corpus database",
	Long: `Index scans the Markdown output directory, pairs each document with its
source JSON record for metadata, and upserts rows into a SQLite database
with FTS5 search over title and abstract. Unchanged documents are skipped
on subsequent runs.`,
	RunE: runCorpusIndex,
}

func runCorpusIndex(cmd *cobra.Command, args []string) error {
	store, err := corpus.NewStore(corpusConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	jsonDir, _ := cmd.Flags().GetString("json-dir")
	mdDir, _ := cmd.Flags().GetString("markdown-dir")

	summary, err := store.Ingest(context.Background(), jsonDir, mdDir, os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d record(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- search subcommand ---

var corpusSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the corpus index",
	Long: `Search queries the corpus index using FTS5 full-text search over title
and abstract, optionally filtered by decision. Without a query, a decision
filter alone lists matching records.`,
	RunE: runCorpusSearch,
}

func runCorpusSearch(cmd *cobra.Command, args []string) error {
	store, err := corpus.NewStore(corpusConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query or --decision")
	}

	results, err := store.Retrieve(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSearchOutput(results, jsonOutput)
}

func formatSearchOutput(results []types.CorpusRecord, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-16s  %-10s  %-50s  %s\n",
		"Rank", "ID", "Decision", "Title", "Filed")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 96))

	for i, r := range results {
		title := r.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		id := r.ID
		if len(id) > 16 {
			id = id[:13] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-16s  %-10s  %-50s  %s\n",
			i+1, id, r.Decision, title, r.FilingDate)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// --- export subcommand ---

var corpusExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the corpus index to YAML or JSON",
	Long: `Export writes the full corpus index (or a filtered subset) to
export.yaml or export.json in the index directory. Supports the same
filter flags as search for partial exports.`,
	RunE: runCorpusExport,
}

func runCorpusExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := corpus.NewStore(corpusConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)
	indexDir, _ := cmd.Flags().GetString("index-dir")

	switch format {
	case "yaml", "":
		if err := store.ExportYAML(context.Background(), opts); err != nil {
			return err
		}
		fmt.Printf("Exported to %s/export.yaml\n", indexDir)
	case "json":
		if err := store.ExportJSON(context.Background(), opts); err != nil {
			return err
		}
		fmt.Printf("Exported to %s/export.json\n", indexDir)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	return nil
}

// --- shared helpers ---

func corpusConfig(cmd *cobra.Command) types.CorpusConfig {
	indexDir, _ := cmd.Flags().GetString("index-dir")
	if indexDir == "" {
		indexDir = "corpus/index"
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")

	return types.CorpusConfig{
		IndexDir:   indexDir,
		MaxResults: maxResults,
	}
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) corpus.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	decision, _ := cmd.Flags().GetString("decision")
	limit, _ := cmd.Flags().GetInt("limit")

	return corpus.QueryOptions{
		Query:      queryText,
		Decision:   types.Decision(decision),
		MaxResults: limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	corpusCmd.PersistentFlags().String("index-dir", "corpus/index", "directory for the corpus database and exports")
	corpusCmd.PersistentFlags().Int("max-results", 20, "maximum number of query results")

	// Index flags.
	corpusIndexCmd.Flags().String("json-dir", "corpus/raw/2018", "directory containing source JSON records")
	corpusIndexCmd.Flags().String("markdown-dir", "corpus/markdown", "directory containing rendered Markdown")

	// Search flags.
	corpusSearchCmd.Flags().String("query", "", "full-text search query")
	corpusSearchCmd.Flags().String("decision", "", "filter by decision: ACCEPTED or REJECTED")
	corpusSearchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	corpusSearchCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	corpusExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	corpusExportCmd.Flags().String("query", "", "full-text search filter for partial export")
	corpusExportCmd.Flags().String("decision", "", "filter by decision for partial export")
	corpusExportCmd.Flags().Int("limit", 0, "maximum records to export (0 = all)")

	// Wire subcommands.
	corpusCmd.AddCommand(corpusIndexCmd)
	corpusCmd.AddCommand(corpusSearchCmd)
	corpusCmd.AddCommand(corpusExportCmd)

	rootCmd.AddCommand(corpusCmd)
}
