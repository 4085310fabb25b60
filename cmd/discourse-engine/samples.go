// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/discourse-engine/internal/corpus"
	"github.com/pdiddy/discourse-engine/internal/document"
)

var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "Write gold-replay training samples from gold annotations",
	Long: `Samples replays every gold tree in the data directory through the
transition system and writes the parser state before each gold action to
actions.yaml, plus the gold relation of every internal node to
relations-<level>.yaml for levels 0 (sentence), 1 (paragraph) and
2 (document).`,
	RunE: runSamples,
}

func runSamples(cmd *cobra.Command, args []string) error {
	cfg := evalConfig(cmd)
	if cfg.DataDir == "" {
		return fmt.Errorf("--data-dir is required")
	}
	outDir := cfg.OutDir
	if outDir == "" {
		outDir = "samples"
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	clusters, err := document.ReadClustersFile(cfg.ClustersPath)
	if err != nil {
		return err
	}

	docs, summary, err := corpus.LoadGold(cfg.DataDir, os.Stdout)
	if err != nil {
		return err
	}

	n, err := corpus.WriteActionSamples(filepath.Join(outDir, "actions.yaml"), docs, clusters)
	if err != nil {
		return err
	}
	fmt.Printf("wrote %d action samples\n", n)

	for level := 0; level <= 2; level++ {
		path := filepath.Join(outDir, fmt.Sprintf("relations-%d.yaml", level))
		n, err := corpus.WriteRelationSamples(path, docs, level)
		if err != nil {
			return err
		}
		fmt.Printf("wrote %d relation samples for level %d\n", n, level)
	}

	if summary.HasFailures() {
		return fmt.Errorf("%d gold document(s) failed to load", summary.Failed)
	}
	return nil
}

func init() {
	samplesCmd.Flags().String("data-dir", "", "directory of paired .dis and .merge files")
	samplesCmd.Flags().String("out-dir", "samples", "directory for sample files")
	samplesCmd.Flags().String("clusters", "", "Brown cluster file recorded with action samples")

	rootCmd.AddCommand(samplesCmd)
}
