package questionbank

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwen/qbank/internal/recordstore"
	"github.com/jwen/qbank/pkg/types"
)

func rawItems(t *testing.T, items ...string) []json.RawMessage {
	t.Helper()
	out := make([]json.RawMessage, len(items))
	for i, s := range items {
		out[i] = json.RawMessage(s)
	}
	return out
}

// --- import tests ---

func TestImportGeneratesIdentity(t *testing.T) {
	b, _ := testBank(t, nil)

	// Caller-supplied questionId and timestamp must be discarded.
	report, err := b.Import(context.Background(), rawItems(t,
		`{"questionId": "chosen-by-caller", "stem": "What is osmosis?"}`))
	require.NoError(t, err)
	require.Len(t, report.Accepted, 1)
	assert.Empty(t, report.Rejected)

	q := report.Accepted[0]
	assert.NotEqual(t, "chosen-by-caller", q.QuestionID)
	assert.NoError(t, uuid.Validate(q.QuestionID))

	assert.Equal(t, time.UTC, q.ImportTimestamp.Location())
	assert.WithinDuration(t, time.Now().UTC(), q.ImportTimestamp, 10*time.Second)
}

func TestImportDefaults(t *testing.T) {
	b, _ := testBank(t, nil)

	report, err := b.Import(context.Background(), rawItems(t, `{"stem": "solo question"}`))
	require.NoError(t, err)
	require.Len(t, report.Accepted, 1)

	q := report.Accepted[0]
	assert.Equal(t, types.StructureAtomic, q.StructureType)
	assert.Nil(t, q.ParentID)
	assert.False(t, q.Composite())
}

func TestImportDistinctIdentifiers(t *testing.T) {
	b, _ := testBank(t, nil)

	report, err := b.Import(context.Background(), rawItems(t,
		`{"stem": "first"}`, `{"stem": "second"}`, `{"stem": "third"}`))
	require.NoError(t, err)
	require.Len(t, report.Accepted, 3)

	seen := map[string]bool{}
	for _, q := range report.Accepted {
		assert.False(t, seen[q.QuestionID], "identifiers must be unique")
		seen[q.QuestionID] = true
	}
}

func TestImportRejectsPerItem(t *testing.T) {
	b, _ := testBank(t, nil)

	report, err := b.Import(context.Background(), rawItems(t,
		`{"stem": "valid"}`,
		`42`,
		`{"metadata": {"source": "no stem here"}}`,
		`"just a string"`,
	))
	require.NoError(t, err, "per-item failures are outcomes, not errors")

	require.Len(t, report.Accepted, 1)
	assert.Equal(t, "valid", report.Accepted[0].Stem)

	require.Len(t, report.Rejected, 3)
	assert.Equal(t, 1, report.Rejected[0].Index)
	assert.Contains(t, report.Rejected[0].Reason, "not a question record")
	assert.Equal(t, 2, report.Rejected[1].Index)
	assert.Contains(t, report.Rejected[1].Reason, "required")
	assert.Equal(t, 3, report.Rejected[2].Index)
}

func TestImportPersistsOnlyWhenAccepted(t *testing.T) {
	b, store := testBank(t, nil)

	// Every item rejected: the backing file must stay untouched.
	report, err := b.Import(context.Background(), rawItems(t, `1`, `"nope"`))
	require.NoError(t, err)
	assert.Empty(t, report.Accepted)
	assert.Len(t, report.Rejected, 2)
	assert.Equal(t, 0, b.Total())

	_, statErr := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(statErr), "no write may happen without an accepted record")

	// One accepted record flips the switch.
	_, err = b.Import(context.Background(), rawItems(t, `{"stem": "first real record"}`))
	require.NoError(t, err)

	_, statErr = os.Stat(store.Path())
	assert.NoError(t, statErr)
}

func TestImportCanceledContextLeavesBankUntouched(t *testing.T) {
	b, store := testBank(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := b.Import(ctx, rawItems(t, `{"stem": "never lands"}`))
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, report)
	assert.Equal(t, 0, b.Total())

	_, statErr := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(statErr), "a canceled import may not write")

	// The same batch imports cleanly once the context is live again.
	report, err = b.Import(context.Background(), rawItems(t, `{"stem": "never lands"}`))
	require.NoError(t, err)
	assert.Len(t, report.Accepted, 1)
	assert.Equal(t, 1, b.Total())
}

func TestImportEmptyBatch(t *testing.T) {
	b, store := testBank(t, nil)

	report, err := b.Import(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, report.Accepted)
	assert.Empty(t, report.Rejected)

	_, statErr := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(statErr))
}

func TestImportAppendsAcrossBatches(t *testing.T) {
	b, store := testBank(t, nil)
	ctx := context.Background()

	_, err := b.Import(ctx, rawItems(t, `{"stem": "batch one"}`))
	require.NoError(t, err)
	_, err = b.Import(ctx, rawItems(t, `{"stem": "batch two"}`))
	require.NoError(t, err)

	assert.Equal(t, 2, b.Total())

	// Reopen from disk: both batches survived.
	reopened, err := New(ctx, recordstore.OpenFile(store.Path()), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, reopened.Total())
}

func TestImportPreservesStructure(t *testing.T) {
	b, _ := testBank(t, nil)

	report, err := b.Import(context.Background(), rawItems(t,
		`{"stem": "passage", "structureType": "COMPOSITE",
		  "metadata": {"knowledgePointIds": ["BIO-C01"], "source": "2020 mock"}}`))
	require.NoError(t, err)
	require.Len(t, report.Accepted, 1)

	q := report.Accepted[0]
	assert.Equal(t, types.StructureComposite, q.StructureType)
	assert.True(t, q.Composite())
	assert.Equal(t, []string{"BIO-C01"}, q.Metadata.KnowledgePointIDs)
	assert.Equal(t, "2020 mock", q.Metadata.Source)
}

func TestImportRejectsBadStructureType(t *testing.T) {
	b, _ := testBank(t, nil)

	report, err := b.Import(context.Background(), rawItems(t,
		`{"stem": "typo", "structureType": "COMPOUND"}`))
	require.NoError(t, err)
	assert.Empty(t, report.Accepted)
	require.Len(t, report.Rejected, 1)
	assert.Contains(t, report.Rejected[0].Reason, "StructureType")
}

// --- file payload tests ---

func TestImportFileSingleObject(t *testing.T) {
	b, _ := testBank(t, nil)

	path := filepath.Join(t.TempDir(), "one.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"stem": "single record payload"}`), 0o644))

	report, err := b.ImportFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, report.Accepted, 1)
	assert.Equal(t, "single record payload", report.Accepted[0].Stem)
}

func TestImportFileArrayEquivalence(t *testing.T) {
	// A single object and a one-element array behave identically apart
	// from the generated identifier.
	record := `{"stem": "same record", "metadata": {"source": "2021 final"}}`

	single, _ := testBank(t, nil)
	pathSingle := filepath.Join(t.TempDir(), "single.json")
	require.NoError(t, os.WriteFile(pathSingle, []byte(record), 0o644))
	repSingle, err := single.ImportFile(context.Background(), pathSingle)
	require.NoError(t, err)

	batch, _ := testBank(t, nil)
	pathBatch := filepath.Join(t.TempDir(), "batch.json")
	require.NoError(t, os.WriteFile(pathBatch, []byte("["+record+"]"), 0o644))
	repBatch, err := batch.ImportFile(context.Background(), pathBatch)
	require.NoError(t, err)

	require.Len(t, repSingle.Accepted, 1)
	require.Len(t, repBatch.Accepted, 1)

	a, b2 := repSingle.Accepted[0], repBatch.Accepted[0]
	assert.NotEqual(t, a.QuestionID, b2.QuestionID)
	assert.Equal(t, a.Stem, b2.Stem)
	assert.Equal(t, a.Metadata, b2.Metadata)
	assert.Equal(t, a.StructureType, b2.StructureType)
}

func TestImportFileInvalidPayload(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "bare scalar", content: `42`},
		{name: "truncated array", content: `[{"stem": "x"}`},
		{name: "not json at all", content: `stem,answer\n2+2,4`},
		{name: "truncated object", content: `{"stem": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, store := testBank(t, nil)

			path := filepath.Join(t.TempDir(), "payload.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := b.ImportFile(context.Background(), path)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidPayload)

			assert.Equal(t, 0, b.Total())
			_, statErr := os.Stat(store.Path())
			assert.True(t, os.IsNotExist(statErr), "a rejected payload must not mutate the store")
		})
	}
}

func TestImportFileMissing(t *testing.T) {
	b, _ := testBank(t, nil)

	_, err := b.ImportFile(context.Background(), filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidPayload)
}
