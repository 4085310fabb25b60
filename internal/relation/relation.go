// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package relation maps the fine-grained relation names found in discourse
// annotations onto the coarse relation classes the parser predicts.
package relation

import "strings"

// Span is the label carried by the nucleus of a mononuclear relation.
const Span = "span"

// classes lists each coarse class with the raw labels it absorbs. Order
// matters: a raw label listed under two classes resolves to the later one.
var classes = []struct {
	name string
	raw  []string
}{
	{"Attribution", []string{"attribution", "attribution-e", "attribution-n", "attribution-negative"}},
	{"Background", []string{"background", "background-e", "circumstance", "circumstance-e"}},
	{"Cause", []string{"cause", "cause-result", "result", "result-e", "consequence", "consequence-n-e",
		"consequence-n", "consequence-s-e", "consequence-s", "motivation", "justify"}},
	{"Comparison", []string{"comparison", "comparison-e", "preference", "preference-e", "analogy",
		"analogy-e", "proportion"}},
	{"Condition", []string{"condition", "condition-e", "hypothetical", "contingency", "otherwise"}},
	{"Contrast", []string{"contrast", "concession", "concession-e", "antithesis", "antithesis-e"}},
	{"Elaboration", []string{"elaboration-additional", "elaboration-additional-e",
		"elaboration-general-specific-e", "elaboration-general-specific", "elaboration-part-whole",
		"elaboration-part-whole-e", "elaboration-process-step", "elaboration-process-step-e",
		"elaboration-object-attribute-e", "elaboration-object-attribute", "elaboration-set-member",
		"elaboration-set-member-e", "example", "example-e", "definition", "definition-e", "preparation"}},
	{"Enablement", []string{"purpose", "purpose-e", "enablement", "enablement-e"}},
	{"Evaluation", []string{"evaluation", "evaluation-n", "evaluation-s-e", "evaluation-s",
		"interpretation-n", "interpretation-s-e", "interpretation-s", "interpretation", "conclusion",
		"comment", "comment-e", "comment-topic"}},
	{"Explanation", []string{"evidence", "evidence-e", "explanation-argumentative",
		"explanation-argumentative-e", "reason", "reason-e"}},
	{"Joint", []string{"list", "disjunction"}},
	{"Manner-Means", []string{"manner", "manner-e", "means", "means-e"}},
	{"Topic-Comment", []string{"problem-solution", "problem-solution-n", "problem-solution-s",
		"question-answer", "question-answer-n", "question-answer-s", "statement-response",
		"statement-response-n", "statement-response-s", "topic-comment", "comment-topic",
		"rhetorical-question"}},
	{"Summary", []string{"summary", "summary-n", "summary-s", "restatement", "restatement-e"}},
	{"Temporal", []string{"temporal-before", "temporal-before-e", "temporal-after", "temporal-after-e",
		"temporal-same-time", "temporal-same-time-e", "sequence", "inverted-sequence"}},
	{"Topic-Change", []string{"topic-shift", "topic-drift"}},
	{"Textual-Organization", []string{"textualorganization"}},
	{Span, []string{"span"}},
	{"Same-Unit", []string{"same-unit"}},
}

// toClass is built once at init and only read afterwards.
var toClass = buildIndex()

func buildIndex() map[string]string {
	m := make(map[string]string)
	for _, c := range classes {
		m[strings.ReplaceAll(strings.ToLower(c.name), "_", "-")] = c.name
		for _, r := range c.raw {
			m[strings.ToLower(r)] = c.name
		}
	}
	return m
}

// Normalize returns the coarse class for a raw relation label. Matching is
// case-insensitive, and a class name normalizes to itself.
func Normalize(raw string) (string, bool) {
	c, ok := toClass[strings.ToLower(strings.TrimSpace(raw))]
	return c, ok
}

// Classes returns the coarse class names in table order, "span" included.
func Classes() []string {
	out := make([]string, len(classes))
	for i, c := range classes {
		out[i] = c.name
	}
	return out
}
