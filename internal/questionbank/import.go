// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package questionbank

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jwen/qbank/pkg/types"
)

// RejectedItem records why one payload item was not imported.
type RejectedItem struct {
	// Index is the item's position in the payload.
	Index int `json:"index"`

	Reason string `json:"reason"`
}

// ImportReport lists the outcome of one import call, item by item.
type ImportReport struct {
	Accepted []types.Question `json:"accepted"`
	Rejected []RejectedItem   `json:"rejected,omitempty"`
}

// Import processes payload items in order. Each accepted item gets a
// freshly generated questionId (any caller-supplied value is overwritten),
// an import timestamp in UTC, and hierarchy defaults of ATOMIC with no
// parent when those fields are absent. Items that are not question records
// or fail boundary validation are rejected with a reason. Accepted items
// are staged and committed after the loop, so a cancellation return leaves
// the bank untouched. The collection is persisted only when at least one
// item was accepted.
func (b *Bank) Import(ctx context.Context, items []json.RawMessage) (*ImportReport, error) {
	report := &ImportReport{}

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var q types.Question
		if err := json.Unmarshal(item, &q); err != nil {
			report.Rejected = append(report.Rejected, RejectedItem{
				Index: i, Reason: fmt.Sprintf("not a question record: %v", err),
			})
			continue
		}
		if err := types.ValidateQuestion(q); err != nil {
			report.Rejected = append(report.Rejected, RejectedItem{
				Index: i, Reason: err.Error(),
			})
			continue
		}

		q.QuestionID = uuid.NewString()
		q.ImportTimestamp = time.Now().UTC()
		if q.StructureType == "" {
			q.StructureType = types.StructureAtomic
		}

		report.Accepted = append(report.Accepted, q)
	}

	if len(report.Accepted) == 0 {
		return report, nil
	}

	b.questions = append(b.questions, report.Accepted...)
	b.reindex()
	b.logger.Info("imported questions",
		zap.Int("accepted", len(report.Accepted)),
		zap.Int("rejected", len(report.Rejected)),
		zap.Int("total", len(b.questions)),
	)

	if err := b.store.Save(ctx, b.questions); err != nil {
		return report, fmt.Errorf("saving questions: %w", err)
	}
	return report, nil
}

// ImportFile reads a question payload from path and imports it. The
// payload may be a single JSON object or an array of them; both forms
// import identically. Anything else aborts with ErrInvalidPayload before
// any mutation.
func (b *Bank) ImportFile(ctx context.Context, path string) (*ImportReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	items, err := splitPayload(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w: %v", path, ErrInvalidPayload, err)
	}
	return b.Import(ctx, items)
}

// splitPayload normalizes the single-or-batch payload forms into a list
// of raw items.
func splitPayload(data []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("empty payload")
	}

	switch trimmed[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		return items, nil
	case '{':
		if !json.Valid(trimmed) {
			return nil, errors.New("malformed JSON object")
		}
		return []json.RawMessage{json.RawMessage(trimmed)}, nil
	default:
		return nil, errors.New("payload must be a JSON object or array")
	}
}
