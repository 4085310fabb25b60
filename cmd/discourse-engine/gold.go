// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/discourse-engine/internal/corpus"
	"github.com/pdiddy/discourse-engine/internal/document"
	"github.com/pdiddy/discourse-engine/pkg/types"
)

var goldCmd = &cobra.Command{
	Use:   "gold [dis files...]",
	Short: "Binarize gold annotations and print their trees and brackets",
	Long: `Gold reads .dis annotations (each with a .merge file of the same name),
binarizes them, and prints the bracketed binary tree followed by its
bracket tuples. Use --json for machine-readable output.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGold,
}

func runGold(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	var (
		results []types.ParseResult
		failed  int
	)
	for _, path := range args {
		t, err := corpus.ReadGold(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed  %s: %v\n", path, err)
			failed++
			continue
		}
		res := corpus.Result(document.DocID(path), types.SourceGold, t)
		if jsonOutput {
			results = append(results, res)
			continue
		}
		fmt.Printf("# %s (%d EDUs)\n%s\n", res.DocID, res.EDUCount, res.Parse)
		for _, b := range res.Brackets {
			fmt.Println(b)
		}
		fmt.Println()
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d annotation(s) failed", failed)
	}
	return nil
}

func init() {
	goldCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(goldCmd)
}
