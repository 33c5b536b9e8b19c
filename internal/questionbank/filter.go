// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package questionbank

import (
	"strings"

	"github.com/jwen/qbank/pkg/types"
)

// Filter holds the search criteria for Find. All supplied criteria must
// hold at once; zero-valued fields are not applied.
type Filter struct {
	// Text is a substring match against the stem.
	Text string

	// KPID requires membership in metadata.knowledgePointIds.
	KPID string

	// Source is an equality match against metadata.source.
	Source string

	// QuestionType is an equality match against metadata.questionType,
	// falling back to the structure type for records that carry none.
	QuestionType string

	// WrongOnly restricts to questions marked wrong.
	WrongOnly bool
}

// IsEmpty reports whether no criterion is set. An empty filter matches
// every question; command-level callers refuse it instead.
func (f Filter) IsEmpty() bool {
	return f.Text == "" && f.KPID == "" && f.Source == "" && f.QuestionType == "" && !f.WrongOnly
}

func (f Filter) matches(q types.Question) bool {
	if f.Text != "" && !strings.Contains(q.Stem, f.Text) {
		return false
	}
	if f.KPID != "" && !q.References(f.KPID) {
		return false
	}
	if f.Source != "" && q.Metadata.Source != f.Source {
		return false
	}
	if f.QuestionType != "" && q.EffectiveType() != f.QuestionType {
		return false
	}
	if f.WrongOnly && !q.Metadata.MarkedWrong {
		return false
	}
	return true
}

// Find returns the questions satisfying every supplied criterion, in
// collection order.
func (b *Bank) Find(f Filter) []types.Question {
	var out []types.Question
	for _, q := range b.questions {
		if f.matches(q) {
			out = append(out, q)
		}
	}
	return out
}

// FindByKnowledgePoint returns the questions whose metadata references
// kpid.
func (b *Bank) FindByKnowledgePoint(kpid string) []types.Question {
	return b.Find(Filter{KPID: kpid})
}
