// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// StructureType distinguishes standalone questions from composite parents.
type StructureType string

const (
	// StructureAtomic marks a standalone question, optionally the child
	// of a composite question.
	StructureAtomic StructureType = "ATOMIC"

	// StructureComposite marks a question that owns child questions
	// sharing its material. Children are derived by reverse parentId
	// lookup, never stored on the parent.
	StructureComposite StructureType = "COMPOSITE"
)

// QuestionMetadata carries the classification fields attached to a question
// at authoring time.
type QuestionMetadata struct {
	// KnowledgePointIDs lists the kpids this question exercises.
	KnowledgePointIDs []string `json:"knowledgePointIds,omitempty" yaml:"knowledgePointIds,omitempty"`

	// Source names where the question came from (textbook, exam paper).
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// QuestionType is the pedagogical type (e.g. "choice", "fill-in").
	// When empty, the structure type stands in for it during filtering.
	QuestionType string `json:"questionType,omitempty" yaml:"questionType,omitempty"`

	// MarkedWrong flags a question the user answered incorrectly.
	MarkedWrong bool `json:"markedWrong,omitempty" yaml:"markedWrong,omitempty"`
}

// Question is one record of the question bank. Questions are write-once:
// created at import, never edited or deleted in place.
type Question struct {
	// QuestionID is the opaque identifier generated by the bank at import
	// time. Caller-supplied values are always overwritten.
	QuestionID string `json:"questionId" yaml:"questionId"`

	// StructureType is ATOMIC or COMPOSITE.
	StructureType StructureType `json:"structureType" yaml:"structureType" validate:"omitempty,oneof=ATOMIC COMPOSITE"`

	// ParentID references the questionId of the owning COMPOSITE
	// question. Nil for standalone questions.
	ParentID *string `json:"parentId" yaml:"parentId"`

	// Stem is the question body text.
	Stem string `json:"stem" yaml:"stem" validate:"required"`

	// Options lists the answer choices, when the question has any.
	Options []string `json:"options,omitempty" yaml:"options,omitempty"`

	// Answer is the reference answer.
	Answer string `json:"answer,omitempty" yaml:"answer,omitempty"`

	// Analysis is the worked explanation.
	Analysis string `json:"analysis,omitempty" yaml:"analysis,omitempty"`

	Metadata QuestionMetadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`

	// ImportTimestamp records when the bank accepted the question (UTC).
	ImportTimestamp time.Time `json:"importTimestamp" yaml:"importTimestamp"`
}

// Composite reports whether the question owns children.
func (q Question) Composite() bool {
	return q.StructureType == StructureComposite
}

// EffectiveType returns the metadata question type, falling back to the
// structure type when none was authored.
func (q Question) EffectiveType() string {
	if q.Metadata.QuestionType != "" {
		return q.Metadata.QuestionType
	}
	return string(q.StructureType)
}

// References reports whether the question exercises the given kpid.
func (q Question) References(kpid string) bool {
	for _, id := range q.Metadata.KnowledgePointIDs {
		if id == kpid {
			return true
		}
	}
	return false
}
