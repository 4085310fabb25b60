// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/discourse-engine/internal/document"
	"github.com/pdiddy/discourse-engine/internal/oracle"
	"github.com/pdiddy/discourse-engine/internal/parser"
	"github.com/pdiddy/discourse-engine/pkg/types"
)

// Config keys. Environment variables use the DISCOURSE_ENGINE_ prefix with
// dots replaced by underscores, e.g. DISCOURSE_ENGINE_STORE_INDEX_DIR.
const (
	keyClusters   = "parse.clusters"
	keyRelations  = "parse.relations"
	keyOutDir     = "parse.out_dir"
	keyDataDir    = "eval.data_dir"
	keyIndexDir   = "store.index_dir"
	keyMaxResults = "store.max_results"
)

var envReplacer = strings.NewReplacer(".", "_")

// stringSetting resolves a string option: an explicitly set flag wins,
// then the config key, then the flag's default.
func stringSetting(cmd *cobra.Command, flag, key string) string {
	f := cmd.Flags().Lookup(flag)
	if f != nil && f.Changed {
		v, _ := cmd.Flags().GetString(flag)
		return v
	}
	if key != "" && viper.IsSet(key) {
		return viper.GetString(key)
	}
	v, _ := cmd.Flags().GetString(flag)
	return v
}

// intSetting is stringSetting for integer options.
func intSetting(cmd *cobra.Command, flag, key string) int {
	f := cmd.Flags().Lookup(flag)
	if f != nil && f.Changed {
		v, _ := cmd.Flags().GetInt(flag)
		return v
	}
	if key != "" && viper.IsSet(key) {
		return viper.GetInt(key)
	}
	v, _ := cmd.Flags().GetInt(flag)
	return v
}

func parseConfig(cmd *cobra.Command) types.ParseConfig {
	return types.ParseConfig{
		ClustersPath:  stringSetting(cmd, "clusters", keyClusters),
		RelationsPath: stringSetting(cmd, "relations", keyRelations),
		OutDir:        stringSetting(cmd, "out-dir", keyOutDir),
	}
}

func evalConfig(cmd *cobra.Command) types.EvalConfig {
	return types.EvalConfig{
		ParseConfig: parseConfig(cmd),
		DataDir:     stringSetting(cmd, "data-dir", keyDataDir),
	}
}

func storeConfig(cmd *cobra.Command) types.StoreConfig {
	return types.StoreConfig{
		IndexDir:   stringSetting(cmd, "index-dir", keyIndexDir),
		MaxResults: intSetting(cmd, "max-results", keyMaxResults),
	}
}

// newParser wires the sentence-first action oracle and the relation table
// named by cfg (a single Elaboration default when unset).
func newParser(cfg types.ParseConfig) (*parser.Parser, types.ClusterTable, error) {
	clusters, err := document.ReadClustersFile(cfg.ClustersPath)
	if err != nil {
		return nil, nil, err
	}
	relations := &oracle.Table{Default: "Elaboration"}
	if cfg.RelationsPath != "" {
		relations, err = oracle.LoadTable(cfg.RelationsPath)
		if err != nil {
			return nil, nil, err
		}
	}
	return parser.New(oracle.Heuristic{}, relations, clusters), clusters, nil
}

// addParseFlags registers the flags shared by commands that run the parser.
func addParseFlags(cmd *cobra.Command) {
	cmd.Flags().String("clusters", "", "Brown cluster file (bits<TAB>word[<TAB>count])")
	cmd.Flags().String("relations", "", "YAML relation table for the relation oracle")
}
