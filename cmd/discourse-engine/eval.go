// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/discourse-engine/internal/corpus"
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Score the parser against gold annotations",
	Long: `Eval loads every gold tree in the data directory, parses the same
documents with the configured oracles, and prints precision at span,
nuclearity and relation level followed by per-relation precision,
recall and F1. The report can also be written as Markdown or HTML.`,
	RunE: runEval,
}

func runEval(cmd *cobra.Command, args []string) error {
	cfg := evalConfig(cmd)
	if cfg.DataDir == "" {
		return fmt.Errorf("--data-dir is required")
	}

	p, _, err := newParser(cfg.ParseConfig)
	if err != nil {
		return err
	}

	docs, loaded, err := corpus.LoadGold(cfg.DataDir, os.Stderr)
	if err != nil {
		return err
	}

	metrics, summary, err := corpus.Evaluate(context.Background(), p, docs, os.Stderr)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "text", "":
		metrics.Report(os.Stdout)
	case "markdown":
		fmt.Print(metrics.Markdown())
	case "html":
		if err := metrics.WriteHTML(os.Stdout); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q: use text, markdown or html", format)
	}

	if failed := loaded.Failed + summary.Failed; failed > 0 {
		return fmt.Errorf("%d document(s) failed", failed)
	}
	return nil
}

func init() {
	addParseFlags(evalCmd)
	evalCmd.Flags().String("data-dir", "", "directory of paired .dis and .merge files")
	evalCmd.Flags().String("format", "text", "report format: text, markdown or html")

	rootCmd.AddCommand(evalCmd)
}
