// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package oracle

import (
	"context"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/discourse-engine/internal/relation"
	"github.com/pdiddy/discourse-engine/internal/tree"
	"github.com/pdiddy/discourse-engine/pkg/types"
)

// Table answers relation queries from a fixed level→relation table.
//
// Example file:
//
//	default: Elaboration
//	levels:
//	  0: Attribution
//	  2: Joint
type Table struct {
	Default string         `yaml:"default"`
	Levels  map[int]string `yaml:"levels"`
}

// LoadTable reads a relation table from a YAML file and normalizes every
// label to its relation class.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading relation table: %w", err)
	}
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing relation table %s: %w", path, err)
	}
	if err := t.normalize(); err != nil {
		return nil, fmt.Errorf("relation table %s: %w", path, err)
	}
	return &t, nil
}

func (t *Table) normalize() error {
	if t.Default == "" {
		t.Default = "Elaboration"
	}
	def, ok := relation.Normalize(t.Default)
	if !ok {
		return fmt.Errorf("unknown default relation %q", t.Default)
	}
	t.Default = def
	for lvl, raw := range t.Levels {
		if lvl < 0 || lvl > 2 {
			return fmt.Errorf("level %d out of range 0..2", lvl)
		}
		rel, ok := relation.Normalize(raw)
		if !ok {
			return fmt.Errorf("unknown relation %q for level %d", raw, lvl)
		}
		t.Levels[lvl] = rel
	}
	return nil
}

// Relation implements parser.RelationOracle.
func (t *Table) Relation(_ context.Context, _ *tree.SpanNode, _ *tree.RstTree, level int, _ types.ClusterTable) (string, error) {
	if rel, ok := t.Levels[level]; ok {
		return rel, nil
	}
	if t.Default == "" {
		return "", fmt.Errorf("no relation for level %d", level)
	}
	return t.Default, nil
}
