// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package relation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{"Elaboration-additional", "Elaboration", true},
		{"elaboration-additional-e", "Elaboration", true},
		{"attribution", "Attribution", true},
		{"span", "span", true},
		{"Same-Unit", "Same-Unit", true},
		{"TextualOrganization", "Textual-Organization", true},
		{"List", "Joint", true},
		{"Cause", "Cause", true},
		{"manner-means", "Manner-Means", true},
		{"comment-topic", "Topic-Comment", true},
		{"  reason ", "Explanation", true},
		{"no-such-relation", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := Normalize(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassesNormalizeToThemselves(t *testing.T) {
	for _, c := range Classes() {
		got, ok := Normalize(c)
		assert.True(t, ok, c)
		assert.Equal(t, c, got)
	}
}
