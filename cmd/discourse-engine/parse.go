// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/discourse-engine/internal/corpus"
	"github.com/pdiddy/discourse-engine/internal/store"
)

var parseCmd = &cobra.Command{
	Use:   "parse [merge files...]",
	Short: "Parse pre-processed documents into discourse trees",
	Long: `Parse reads .merge token files, builds a binary discourse tree for each
with the shift-reduce parser, and writes <id>.parse (bracketed tree) and
<id>.brackets (evaluation tuples) into the output directory.

With --data-dir every .merge file in that directory is parsed. With
--store the results are also saved to the result database.`,
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg := parseConfig(cmd)
	paths, err := parseInputs(cmd, args)
	if err != nil {
		return err
	}

	p, _, err := newParser(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	results, summary, err := corpus.ParseFiles(ctx, p, paths, cfg.OutDir, os.Stdout)
	if err != nil {
		return err
	}
	fmt.Printf("\nparsed: %d, failed: %d (total: %d)\n", summary.Done, summary.Failed, summary.Total())

	if save, _ := cmd.Flags().GetBool("store"); save && len(results) > 0 {
		st, err := store.NewStore(storeConfig(cmd))
		if err != nil {
			return err
		}
		defer st.Close()
		if _, err := st.SaveAll(ctx, results, os.Stdout); err != nil {
			return err
		}
	}

	if summary.HasFailures() {
		return fmt.Errorf("%d document(s) failed to parse", summary.Failed)
	}
	return nil
}

// parseInputs returns the .merge files named in args followed by those
// found in the data directory (--data-dir or eval.data_dir).
func parseInputs(cmd *cobra.Command, args []string) ([]string, error) {
	paths := append([]string(nil), args...)
	if dataDir := stringSetting(cmd, "data-dir", keyDataDir); dataDir != "" {
		found, err := corpus.MergeFiles(dataDir)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no input: provide .merge files or --data-dir")
	}
	return paths, nil
}

func init() {
	addParseFlags(parseCmd)
	parseCmd.Flags().String("out-dir", "", "directory for .parse and .brackets files (default: next to each input)")
	parseCmd.Flags().String("data-dir", "", "parse every .merge file in this directory")
	parseCmd.Flags().Bool("store", false, "save results to the result database")
	parseCmd.Flags().String("index-dir", "index", "directory holding the result database")
	parseCmd.Flags().Int("max-results", 50, "maximum number of query results")

	rootCmd.AddCommand(parseCmd)
}
