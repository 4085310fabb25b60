// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/discourse-engine/internal/corpus"
	"github.com/pdiddy/discourse-engine/internal/store"
	"github.com/pdiddy/discourse-engine/pkg/types"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the result database (ingest, query, export)",
	Long: `Store keeps gold and predicted trees in a local SQLite database,
one row per document and source plus one row per bracket tuple. Use
subcommands to ingest trees, query brackets, or export.`,
}

// --- ingest subcommand ---

var storeIngestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Store the gold trees of a data directory",
	Long: `Ingest loads every .dis/.merge pair in the data directory and stores
the binarized gold tree. With --parse each document is also parsed and
the prediction stored under source "pred".`,
	RunE: runStoreIngest,
}

func runStoreIngest(cmd *cobra.Command, args []string) error {
	cfg := evalConfig(cmd)
	if cfg.DataDir == "" {
		return fmt.Errorf("--data-dir is required")
	}

	st, err := store.NewStore(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer st.Close()

	docs, loaded, err := corpus.LoadGold(cfg.DataDir, os.Stdout)
	if err != nil {
		return err
	}

	results := make([]types.ParseResult, 0, len(docs))
	for _, g := range docs {
		results = append(results, corpus.Result(g.ID, types.SourceGold, g.Tree))
	}

	ctx := context.Background()
	failed := loaded.Failed
	if withParse, _ := cmd.Flags().GetBool("parse"); withParse {
		p, _, err := newParser(cfg.ParseConfig)
		if err != nil {
			return err
		}
		for _, g := range docs {
			t, err := p.Parse(ctx, g.Tree.Doc)
			if err != nil {
				fmt.Fprintf(os.Stdout, "failed  %s: %v\n", g.ID, err)
				failed++
				continue
			}
			results = append(results, corpus.Result(g.ID, types.SourcePredicted, t))
		}
	}

	summary, err := st.SaveAll(ctx, results, os.Stdout)
	if err != nil {
		return err
	}
	if failed += summary.Failed; failed > 0 {
		return fmt.Errorf("%d document(s) failed", failed)
	}
	return nil
}

// --- query subcommand ---

var storeQueryCmd = &cobra.Command{
	Use:   "query",
	Short: "List stored brackets or relation counts",
	Long: `Query lists stored bracket tuples filtered by document, source and
relation. With --counts it prints how often each relation occurs instead.`,
	RunE: runStoreQuery,
}

func runStoreQuery(cmd *cobra.Command, args []string) error {
	st, err := store.NewStore(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	jsonOutput, _ := cmd.Flags().GetBool("json")
	opts := queryOptsFromFlags(cmd)

	if counts, _ := cmd.Flags().GetBool("counts"); counts {
		rows, err := st.RelationCounts(ctx, opts.Source)
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(rows)
		}
		fmt.Printf("%-24s  %s\n", "Relation", "Count")
		fmt.Println(strings.Repeat("-", 34))
		for _, r := range rows {
			fmt.Printf("%-24s  %d\n", r.Relation, r.Count)
		}
		return nil
	}

	if opts.IsEmpty() {
		return fmt.Errorf("filter required: provide --doc, --source, --relation, or use --counts")
	}
	rows, err := st.Brackets(ctx, opts)
	if err != nil {
		return err
	}
	if jsonOutput {
		return writeJSON(rows)
	}
	return formatBrackets(rows)
}

func formatBrackets(rows []store.BracketRow) error {
	if len(rows) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-20s  %-6s  %-10s  %-10s  %s\n", "Document", "Source", "Span", "Prop", "Relation")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 72))
	for _, r := range rows {
		doc := r.DocID
		if len(doc) > 20 {
			doc = doc[:17] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-20s  %-6s  %-10s  %-10s  %s\n", doc, r.Source, r.Span, r.Prop, r.Relation)
	}
	fmt.Fprintf(os.Stdout, "\n%d results\n", len(rows))
	return nil
}

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// --- export subcommand ---

var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored trees to YAML or JSON",
	Long: `Export writes the stored documents (or a filtered subset) with their
brackets to <index-dir>/export.yaml or export.json.`,
	RunE: runStoreExport,
}

func runStoreExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	cfg := storeConfig(cmd)
	st, err := store.NewStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	opts := queryOptsFromFlags(cmd)
	ctx := context.Background()

	switch format {
	case "yaml", "":
		if err := st.ExportYAML(ctx, opts); err != nil {
			return err
		}
		fmt.Println("Exported to", filepath.Join(cfg.IndexDir, "export.yaml"))
	case "json":
		if err := st.ExportJSON(ctx, opts); err != nil {
			return err
		}
		fmt.Println("Exported to", filepath.Join(cfg.IndexDir, "export.json"))
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	return nil
}

// --- shared helpers ---

func queryOptsFromFlags(cmd *cobra.Command) store.QueryOptions {
	docID, _ := cmd.Flags().GetString("doc")
	source, _ := cmd.Flags().GetString("source")
	relation, _ := cmd.Flags().GetString("relation")
	limit, _ := cmd.Flags().GetInt("limit")

	return store.QueryOptions{
		DocID:      docID,
		Source:     source,
		Relation:   relation,
		MaxResults: limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	storeCmd.PersistentFlags().String("index-dir", "index", "directory holding discourse.db and exports")
	storeCmd.PersistentFlags().Int("max-results", 50, "maximum number of query results")

	// Ingest flags.
	storeIngestCmd.Flags().String("data-dir", "", "directory of paired .dis and .merge files")
	storeIngestCmd.Flags().Bool("parse", false, "also parse each document and store the prediction")
	addParseFlags(storeIngestCmd)

	// Query flags.
	storeQueryCmd.Flags().String("doc", "", "filter by document ID")
	storeQueryCmd.Flags().String("source", "", "filter by source: gold or pred")
	storeQueryCmd.Flags().String("relation", "", "filter by relation label")
	storeQueryCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	storeQueryCmd.Flags().Bool("counts", false, "print relation counts instead of brackets")
	storeQueryCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	storeExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	storeExportCmd.Flags().String("doc", "", "filter by document ID for partial export")
	storeExportCmd.Flags().String("source", "", "filter by source for partial export")
	storeExportCmd.Flags().String("relation", "", "export documents containing this relation")

	// Wire subcommands.
	storeCmd.AddCommand(storeIngestCmd)
	storeCmd.AddCommand(storeQueryCmd)
	storeCmd.AddCommand(storeExportCmd)

	rootCmd.AddCommand(storeCmd)
}
