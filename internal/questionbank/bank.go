// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package questionbank manages the question collection: import with
// generated identifiers, parent/child structure, and filtered lookup.
// Questions are write-once; nothing here edits or deletes a record after
// import.
package questionbank

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jwen/qbank/internal/recordstore"
	"github.com/jwen/qbank/pkg/types"
)

// ErrInvalidPayload reports an import payload that is neither a JSON
// object nor a JSON array. Import aborts before mutation.
var ErrInvalidPayload = errors.New("invalid import payload")

// Bank wraps a record store of questions with identifier lookup and the
// derived parent/child structure. The collection is the source of truth;
// both lookup maps are rebuilt from it after every import.
type Bank struct {
	store  recordstore.Store
	logger *zap.Logger

	questions []types.Question
	byID      map[string]int   // questionId -> position
	children  map[string][]int // parent questionId -> child positions
}

// New loads the question collection and builds the lookups. Corrupt
// backing content fails here rather than degrading to an empty bank.
func New(ctx context.Context, store recordstore.Store, logger *zap.Logger) (*Bank, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	b := &Bank{store: store, logger: logger}
	if err := store.Load(ctx, &b.questions); err != nil {
		return nil, fmt.Errorf("loading questions: %w", err)
	}
	b.reindex()

	logger.Debug("question bank ready", zap.Int("records", len(b.questions)))
	return b, nil
}

func (b *Bank) reindex() {
	b.byID = make(map[string]int, len(b.questions))
	b.children = make(map[string][]int)
	for i, q := range b.questions {
		b.byID[q.QuestionID] = i
		if q.ParentID != nil && *q.ParentID != "" {
			b.children[*q.ParentID] = append(b.children[*q.ParentID], i)
		}
	}
}

// Get returns the question for id. A miss is an absence, not an error.
func (b *Bank) Get(id string) (types.Question, bool) {
	i, ok := b.byID[id]
	if !ok {
		return types.Question{}, false
	}
	return b.questions[i], true
}

// Total returns the number of questions in the bank.
func (b *Bank) Total() int {
	return len(b.questions)
}

// Close releases the backing store.
func (b *Bank) Close() error {
	return b.store.Close()
}

// Children returns the questions whose parentId equals parentID, in
// collection order.
func (b *Bank) Children(parentID string) []types.Question {
	positions := b.children[parentID]
	if len(positions) == 0 {
		return nil
	}
	out := make([]types.Question, len(positions))
	for i, pos := range positions {
		out[i] = b.questions[pos]
	}
	return out
}

// Context is the full surroundings of one question: the question itself,
// its composite parent, and its children.
type Context struct {
	Target   *types.Question
	Parent   *types.Question
	Children []types.Question
}

// GetContext assembles the context for id. An unknown id yields a zero
// context. Parent is resolved only when the target carries a parentId;
// a dangling reference leaves it nil. Children are populated only for
// COMPOSITE targets.
func (b *Bank) GetContext(id string) Context {
	var ctx Context

	target, ok := b.Get(id)
	if !ok {
		return ctx
	}
	ctx.Target = &target

	if target.ParentID != nil && *target.ParentID != "" {
		if parent, ok := b.Get(*target.ParentID); ok {
			ctx.Parent = &parent
		}
	}
	if target.Composite() {
		ctx.Children = b.Children(id)
	}
	return ctx
}

// BankStats holds the aggregate counts surfaced by the stats command.
type BankStats struct {
	Total       int
	Atomic      int
	Composite   int
	MarkedWrong int
}

// Stats tallies the collection.
func (b *Bank) Stats() BankStats {
	var s BankStats
	s.Total = len(b.questions)
	for _, q := range b.questions {
		if q.Composite() {
			s.Composite++
		} else {
			s.Atomic++
		}
		if q.Metadata.MarkedWrong {
			s.MarkedWrong++
		}
	}
	return s
}
