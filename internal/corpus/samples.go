// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/discourse-engine/internal/parser"
	"github.com/pdiddy/discourse-engine/pkg/types"
)

// ActionSampleFile is the on-disk form of the action samples of a corpus.
type ActionSampleFile struct {
	Samples []types.ActionRecord `yaml:"samples"`
	Summary SampleSummary        `yaml:"summary"`
}

// RelationSampleFile is the on-disk form of the relation samples of one
// level.
type RelationSampleFile struct {
	Level   int                    `yaml:"level"`
	Samples []types.RelationRecord `yaml:"samples"`
	Summary SampleSummary          `yaml:"summary"`
}

// SampleSummary stores counts and a timestamp.
type SampleSummary struct {
	Documents int       `yaml:"documents"`
	Total     int       `yaml:"total"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteActionSamples replays every gold tree and writes one record per
// gold action to path.
func WriteActionSamples(path string, docs []GoldDoc, clusters types.ClusterTable) (int, error) {
	var f ActionSampleFile
	for _, g := range docs {
		samples, err := parser.ActionSamples(g.Tree, clusters)
		if err != nil {
			return 0, fmt.Errorf("action samples for %s: %w", g.ID, err)
		}
		for i, s := range samples {
			f.Samples = append(f.Samples, s.Record(g.ID, i))
		}
	}
	f.Summary = SampleSummary{Documents: len(docs), Total: len(f.Samples), Timestamp: time.Now()}

	data, err := yaml.Marshal(&f)
	if err != nil {
		return 0, fmt.Errorf("marshaling action samples: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, fmt.Errorf("writing samples %s: %w", path, err)
	}
	return len(f.Samples), nil
}

// WriteRelationSamples writes the relation samples at level of every gold
// tree to path.
func WriteRelationSamples(path string, docs []GoldDoc, level int) (int, error) {
	f := RelationSampleFile{Level: level}
	for _, g := range docs {
		for _, s := range parser.RelationSamples(g.Tree, level) {
			f.Samples = append(f.Samples, s.Record(g.ID))
		}
	}
	f.Summary = SampleSummary{Documents: len(docs), Total: len(f.Samples), Timestamp: time.Now()}

	data, err := yaml.Marshal(&f)
	if err != nil {
		return 0, fmt.Errorf("marshaling relation samples: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, fmt.Errorf("writing samples %s: %w", path, err)
	}
	return len(f.Samples), nil
}

// ReadActionSamples loads a file written by WriteActionSamples.
func ReadActionSamples(path string) (*ActionSampleFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading action samples: %w", err)
	}
	var f ActionSampleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing action samples: %w", err)
	}
	return &f, nil
}

// ReadRelationSamples loads a file written by WriteRelationSamples.
func ReadRelationSamples(path string) (*RelationSampleFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading relation samples: %w", err)
	}
	var f RelationSampleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing relation samples: %w", err)
	}
	return &f, nil
}
