// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mergeLine(fields ...string) string {
	return strings.Join(fields, "\t")
}

var sampleMerge = strings.Join([]string{
	mergeLine("0", "1", "Prices", "price", "NOUN", "NNS", "nsubj", "2", "_", "_", "1", "1"),
	mergeLine("0", "2", "rose", "rise", "VERB", "VBD", "root", "0", "_", "_", "1", "1"),
	"",
	mergeLine("0", "3", "because", "because", "SCONJ", "IN", "mark", "5", "_", "_", "2", "1"),
	mergeLine("0", "4", "demand", "demand", "NOUN", "NN", "nsubj", "5", "_", "_", "2", "1"),
	mergeLine("0", "5", "grew", "grow", "VERB", "VBD", "advcl", "2", "_", "_", "2", "1"),
	mergeLine("1", "1", "Stop", "stop", "VERB", "VB", "root", "0", "_", "_", "3", "2"),
	"",
}, "\n")

func TestReadMerge(t *testing.T) {
	doc, err := ReadMerge("wsj_1101", strings.NewReader(sampleMerge))
	require.NoError(t, err)

	assert.Equal(t, "wsj_1101", doc.ID)
	require.Len(t, doc.Tokens, 6)
	assert.Equal(t, []int{1, 2, 3}, doc.EDUs())

	grew := doc.Tokens[4]
	assert.Equal(t, 4, grew.Index)
	assert.Equal(t, 5, grew.Position)
	assert.Equal(t, "grew", grew.Form)
	assert.Equal(t, "grow", grew.Lemma)
	assert.Equal(t, "VERB", grew.POS)
	assert.Equal(t, "VBD", grew.Tag)
	assert.Equal(t, "advcl", grew.DepLabel)
	assert.Equal(t, 2, grew.Head)
	assert.Equal(t, 2, grew.EDU)
	assert.Equal(t, 0, grew.Sentence)
	assert.Equal(t, 1, grew.Paragraph)

	toks, ok := doc.EDUTokens(2)
	require.True(t, ok)
	assert.Equal(t, []int{2, 3, 4}, toks)
}

func TestReadMergeErrors(t *testing.T) {
	tests := []struct {
		name, input, want string
	}{
		{"too few columns", "0\t1\tword", "line 1"},
		{"bad edu index", mergeLine("0", "1", "a", "a", "X", "X", "dep", "0", "_", "_", "one", "1"), "EDU index"},
		{"bad head on line 2", sampleMerge[:strings.Index(sampleMerge, "\n")+1] +
			mergeLine("0", "2", "a", "a", "X", "X", "dep", "h", "_", "_", "1", "1"), "line 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadMerge("doc", strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestReadMergeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wsj_0602.out.merge")
	require.NoError(t, os.WriteFile(path, []byte(sampleMerge), 0o644))

	doc, err := ReadMergeFile(path)
	require.NoError(t, err)
	assert.Equal(t, "wsj_0602.out", doc.ID)
	assert.Equal(t, 3, doc.NumEDUs())

	_, err = ReadMergeFile(filepath.Join(t.TempDir(), "missing.merge"))
	assert.Error(t, err)
}

func TestReadClusters(t *testing.T) {
	input := "0010\tthe\t1200\n\n0111\tbridge\n110\tMonday\t8\n"
	table, err := ReadClusters(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "0010", table.Lookup("the"))
	assert.Equal(t, "0111", table.Lookup("bridge"))
	assert.Equal(t, "110", table.Lookup("Monday"))
	assert.Equal(t, "", table.Lookup("unknown"))

	_, err = ReadClusters(strings.NewReader("just-one-field\n"))
	assert.ErrorContains(t, err, "line 1")
}

func TestReadClustersFileEmptyPath(t *testing.T) {
	table, err := ReadClustersFile("")
	require.NoError(t, err)
	assert.Nil(t, table)
}
