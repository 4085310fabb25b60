// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the discourse-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the discourse-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "discourse-engine",
	Short: "Shift-reduce RST discourse parsing and evaluation",
	Long: `discourse-engine builds Rhetorical Structure Theory trees over documents
that have been segmented into elementary discourse units (EDUs).

It reads gold annotations (.dis) with their token files (.merge), parses
new documents with a shift-reduce transition system, writes training
samples, scores parses against gold trees, and keeps results in a local
SQLite store.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./discourse-engine.yaml or ~/.config/discourse-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("discourse-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "discourse-engine"))
		}
	}

	viper.SetEnvPrefix("DISCOURSE_ENGINE")
	viper.SetEnvKeyReplacer(envReplacer)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
