// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the entities shared across the qbank stores and CLI:
// knowledge points, questions, and store configuration. Field tags follow the
// persisted JSON layout, which is the external contract of the data files.
package types

// KnowledgePoint is one atomic unit of the knowledge taxonomy, organized
// into a parent-pointer tree.
type KnowledgePoint struct {
	// KPID is the stable external key identifying this knowledge point
	// (e.g. "BIO-B1-C02-S01-T01-A01"). Unique within the store.
	KPID string `json:"kpid" yaml:"kpid" validate:"required"`

	// ParentID references the kpid of the parent knowledge point.
	// Nil marks a tree root. A value referencing a missing kpid is
	// tolerated and surfaces as an absent parent on lookup.
	ParentID *string `json:"parentId,omitempty" yaml:"parentId,omitempty"`

	// Title is the display name shown in the outline.
	Title string `json:"title" yaml:"title"`

	// Content is the full statement of the knowledge point.
	Content string `json:"content,omitempty" yaml:"content,omitempty"`

	// Type is a free-form category tag (e.g. "chapter", "concept").
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
}

// Root reports whether the knowledge point has no parent.
func (k KnowledgePoint) Root() bool {
	return k.ParentID == nil || *k.ParentID == ""
}
