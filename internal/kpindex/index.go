// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package kpindex maintains the knowledge point taxonomy: a flat collection
// of records linked into a tree by parent pointers. The collection is the
// source of truth; the keyed lookup built here is a derived cache, rebuilt
// after every import.
package kpindex

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/jwen/qbank/internal/recordstore"
	"github.com/jwen/qbank/pkg/types"
)

var (
	// ErrCycle reports a parent chain that loops back on itself. Ancestry
	// walks are bounded by the collection size instead of following the
	// chain forever.
	ErrCycle = errors.New("parent chain forms a cycle")

	// ErrInvalidPayload reports an import payload that is not a JSON
	// array of knowledge point records. Import aborts before mutation.
	ErrInvalidPayload = errors.New("invalid import payload")
)

// Index wraps a record store of knowledge points with a kpid lookup and
// tree traversals. It owns its in-memory collection for the lifetime of
// one process invocation; there is no cross-process coordination.
type Index struct {
	store  recordstore.Store
	logger *zap.Logger

	kps  []types.KnowledgePoint
	byID map[string]int // kpid -> position in kps
}

// New loads the knowledge point collection and builds the lookup. Corrupt
// backing content fails here rather than degrading to an empty index.
func New(ctx context.Context, store recordstore.Store, logger *zap.Logger) (*Index, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	ix := &Index{store: store, logger: logger}
	if err := store.Load(ctx, &ix.kps); err != nil {
		return nil, fmt.Errorf("loading knowledge points: %w", err)
	}
	ix.reindex()

	logger.Debug("knowledge point index ready", zap.Int("records", len(ix.kps)))
	return ix, nil
}

func (ix *Index) reindex() {
	ix.byID = make(map[string]int, len(ix.kps))
	for i, kp := range ix.kps {
		ix.byID[kp.KPID] = i
	}
}

// Get returns the knowledge point for kpid. A miss is an absence, not an
// error.
func (ix *Index) Get(kpid string) (types.KnowledgePoint, bool) {
	i, ok := ix.byID[kpid]
	if !ok {
		return types.KnowledgePoint{}, false
	}
	return ix.kps[i], true
}

// Total returns the number of knowledge points in the collection.
func (ix *Index) Total() int {
	return len(ix.kps)
}

// Close releases the backing store.
func (ix *Index) Close() error {
	return ix.store.Close()
}

// Ancestry returns the chain from the tree root down to kpid inclusive.
// An unknown kpid yields a nil chain. A parentId referencing a missing
// record ends the chain at the record that holds it. The walk is bounded
// by the collection size; exceeding the bound returns ErrCycle.
func (ix *Index) Ancestry(kpid string) ([]types.KnowledgePoint, error) {
	i, ok := ix.byID[kpid]
	if !ok {
		return nil, nil
	}

	cur := ix.kps[i]
	chain := []types.KnowledgePoint{cur}
	for !cur.Root() {
		pi, ok := ix.byID[*cur.ParentID]
		if !ok {
			break
		}
		cur = ix.kps[pi]
		chain = append(chain, cur)
		if len(chain) > len(ix.kps) {
			return nil, fmt.Errorf("ancestry of %s: %w", kpid, ErrCycle)
		}
	}

	for l, r := 0, len(chain)-1; l < r; l, r = l+1, r-1 {
		chain[l], chain[r] = chain[r], chain[l]
	}
	return chain, nil
}

// OutlineEntry is one row of the depth-first outline traversal.
type OutlineEntry struct {
	Depth int
	KP    types.KnowledgePoint
}

// Outline returns the depth-first traversal of the tree. Children of each
// node are ordered by kpid ascending, as are the roots. Records whose
// parent is missing from the collection surface as roots rather than
// disappearing. A visited set keeps hand-edited cyclic data finite.
func (ix *Index) Outline() []OutlineEntry {
	children := make(map[string][]string)
	var roots []string

	for _, kp := range ix.kps {
		if kp.Root() {
			roots = append(roots, kp.KPID)
			continue
		}
		parent := *kp.ParentID
		if _, ok := ix.byID[parent]; !ok {
			roots = append(roots, kp.KPID)
			continue
		}
		children[parent] = append(children[parent], kp.KPID)
	}

	sort.Strings(roots)
	for _, kids := range children {
		sort.Strings(kids)
	}

	visited := make(map[string]bool, len(ix.kps))
	entries := make([]OutlineEntry, 0, len(ix.kps))

	var walk func(kpid string, depth int)
	walk = func(kpid string, depth int) {
		if visited[kpid] {
			return
		}
		visited[kpid] = true
		entries = append(entries, OutlineEntry{Depth: depth, KP: ix.kps[ix.byID[kpid]]})
		for _, child := range children[kpid] {
			walk(child, depth+1)
		}
	}
	for _, root := range roots {
		walk(root, 0)
	}

	return entries
}
