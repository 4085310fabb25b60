// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ParseConfig holds settings for the parse stage.
type ParseConfig struct {
	// ClustersPath is an optional Brown cluster file handed to the oracles.
	ClustersPath string `json:"clusters" yaml:"clusters"`

	// RelationsPath is an optional YAML relation table for the relation oracle.
	RelationsPath string `json:"relations" yaml:"relations"`

	// OutDir receives <id>.parse and <id>.brackets files. Empty means the
	// directory of each input file.
	OutDir string `json:"out_dir" yaml:"out_dir"`
}

// EvalConfig holds settings for evaluating the parser against gold trees.
type EvalConfig struct {
	ParseConfig `yaml:",inline"`

	// DataDir contains paired <id>.dis and <id>.merge files.
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// StoreConfig holds settings for the result store.
type StoreConfig struct {
	// IndexDir is the directory holding discourse.db and exports.
	IndexDir string `json:"index_dir" yaml:"index_dir"`

	// MaxResults is the default maximum number of query results (default 50).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Parse ParseConfig `json:"parse" yaml:"parse"`
	Eval  EvalConfig  `json:"eval" yaml:"eval"`
	Store StoreConfig `json:"store" yaml:"store"`
}
