// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/discourse-engine/pkg/types"
)

// ReadClusters reads Brown clusters in the usual paths format, one
// "bits<TAB>word[<TAB>count]" entry per line.
func ReadClusters(r io.Reader) (types.ClusterTable, error) {
	table := make(types.ClusterTable)
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		f := strings.Split(text, "\t")
		if len(f) < 2 || len(f) > 3 || f[0] == "" || f[1] == "" {
			return nil, fmt.Errorf("cluster line %d: expected bits, word and optional count", line)
		}
		table[f[1]] = f[0]
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading clusters: %w", err)
	}
	return table, nil
}

// ReadClustersFile reads a cluster table from path. An empty path yields
// a nil table.
func ReadClustersFile(path string) (types.ClusterTable, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening cluster file: %w", err)
	}
	defer f.Close()
	return ReadClusters(f)
}
