// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package eval

import (
	"bytes"
	"fmt"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Markdown renders the corpus summary as a Markdown document with one
// table for the granularities and one for the relations.
func (m *Metrics) Markdown() string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "# Discourse parsing evaluation\n\n%d documents evaluated.\n\n", m.docs)

	b.WriteString("| Level | Average precision | Global precision |\n")
	b.WriteString("|---|---:|---:|\n")
	for _, g := range Granularities {
		fmt.Fprintf(&b, "| %s | %.4f | %.4f |\n", g, m.Average(g), m.Global(g))
	}

	rels := m.Relations()
	if len(rels) == 0 {
		return b.String()
	}
	b.WriteString("\n## Relations\n\n")
	b.WriteString("| Relation | Gold | Precision | Recall | F1 |\n")
	b.WriteString("|---|---:|---:|---:|---:|\n")
	for _, r := range rels {
		fmt.Fprintf(&b, "| %s | %d | %.4f | %.4f | %.4f |\n", r.Relation, r.Gold, r.Precision, r.Recall, r.F1)
	}
	return b.String()
}

// WriteHTML renders the Markdown summary to HTML.
func (m *Metrics) WriteHTML(w io.Writer) error {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	if err := md.Convert([]byte(m.Markdown()), w); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	return nil
}
