// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package kpindex

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/jwen/qbank/pkg/types"
)

// Mode names the conflict policy applied when an incoming kpid already
// exists in the collection.
type Mode string

const (
	// ModeReplace discards the current collection entirely.
	ModeReplace Mode = "replace"

	// ModeAppend keeps existing records untouched and skips incoming
	// duplicates.
	ModeAppend Mode = "append"

	// ModeMerge overwrites existing records in place with incoming data.
	ModeMerge Mode = "merge"
)

// ParseMode converts a user-supplied mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeReplace, ModeAppend, ModeMerge:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown import mode %q: use replace, append, or merge", s)
	}
}

// Action classifies the fate of one imported record.
type Action string

const (
	ActionAdded   Action = "added"
	ActionUpdated Action = "updated"
	ActionSkipped Action = "skipped"
)

// ItemOutcome records what happened to one incoming record.
type ItemOutcome struct {
	// KPID of the incoming record; empty when the record had none.
	KPID string `json:"kpid"`

	Action Action `json:"action"`

	// Reason explains a skip. Empty for accepted records.
	Reason string `json:"reason,omitempty"`
}

// ImportReport summarizes one import call.
type ImportReport struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`

	// Total is the collection size after the import.
	Total int `json:"total"`

	Items []ItemOutcome `json:"items"`
}

// Import reconciles incoming records against the collection under the given
// mode, persists the result, and rebuilds the lookup. Records without a
// kpid are skipped in every mode, as are records whose parent chain would
// close a cycle in the resulting collection. A persistence failure is
// returned after the in-memory mutation has taken effect; memory and disk
// then differ and the caller decides what to surface.
func (ix *Index) Import(ctx context.Context, incoming []types.KnowledgePoint, mode Mode) (*ImportReport, error) {
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}

	var staged []types.KnowledgePoint
	index := make(map[string]int)
	if mode != ModeReplace {
		staged = append(staged, ix.kps...)
		for i, kp := range staged {
			index[kp.KPID] = i
		}
	}

	report := &ImportReport{Items: make([]ItemOutcome, 0, len(incoming))}

	for _, kp := range incoming {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := types.ValidateKnowledgePoint(kp); err != nil {
			report.Skipped++
			report.Items = append(report.Items, ItemOutcome{
				KPID: kp.KPID, Action: ActionSkipped, Reason: err.Error(),
			})
			continue
		}

		pos, exists := index[kp.KPID]

		if exists && mode == ModeAppend {
			report.Skipped++
			report.Items = append(report.Items, ItemOutcome{
				KPID: kp.KPID, Action: ActionSkipped, Reason: "kpid already present",
			})
			continue
		}

		// Tentatively place the record, then verify its parent chain
		// stays acyclic in the staged collection.
		var prev types.KnowledgePoint
		if exists {
			prev = staged[pos]
			staged[pos] = kp
		} else {
			staged = append(staged, kp)
			index[kp.KPID] = len(staged) - 1
		}

		if cyclic(staged, index, kp.KPID) {
			if exists {
				staged[pos] = prev
			} else {
				staged = staged[:len(staged)-1]
				delete(index, kp.KPID)
			}
			report.Skipped++
			report.Items = append(report.Items, ItemOutcome{
				KPID: kp.KPID, Action: ActionSkipped, Reason: ErrCycle.Error(),
			})
			continue
		}

		if exists && mode == ModeMerge {
			report.Updated++
			report.Items = append(report.Items, ItemOutcome{KPID: kp.KPID, Action: ActionUpdated})
		} else {
			report.Added++
			report.Items = append(report.Items, ItemOutcome{KPID: kp.KPID, Action: ActionAdded})
		}
	}

	ix.kps = staged
	ix.byID = index
	report.Total = len(ix.kps)

	ix.logger.Info("imported knowledge points",
		zap.String("mode", string(mode)),
		zap.Int("added", report.Added),
		zap.Int("updated", report.Updated),
		zap.Int("skipped", report.Skipped),
		zap.Int("total", report.Total),
	)

	if err := ix.store.Save(ctx, ix.kps); err != nil {
		return report, fmt.Errorf("saving knowledge points: %w", err)
	}
	return report, nil
}

// ImportFile reads a JSON array of knowledge points from path and imports
// it. A payload that is not such an array aborts with ErrInvalidPayload
// before any mutation.
func (ix *Index) ImportFile(ctx context.Context, path string, mode Mode) (*ImportReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var incoming []types.KnowledgePoint
	if err := json.Unmarshal(data, &incoming); err != nil {
		return nil, fmt.Errorf("decoding %s: %w: %v", path, ErrInvalidPayload, err)
	}

	return ix.Import(ctx, incoming, mode)
}

// cyclic walks the parent chain of start within the staged collection.
// The walk is bounded by the collection size; a chain longer than that can
// only mean a loop. A parent missing from the collection ends the chain.
func cyclic(staged []types.KnowledgePoint, index map[string]int, start string) bool {
	steps := 0
	cur := start
	for {
		i, ok := index[cur]
		if !ok {
			return false
		}
		kp := staged[i]
		if kp.Root() {
			return false
		}
		cur = *kp.ParentID
		steps++
		if steps > len(staged) {
			return true
		}
	}
}
