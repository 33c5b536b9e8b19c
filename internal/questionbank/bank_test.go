package questionbank

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwen/qbank/internal/recordstore"
	"github.com/jwen/qbank/pkg/types"
)

// --- test helpers ---

func strPtr(s string) *string { return &s }

// seedQuestions is a small bank: one composite question with two children
// and one standalone atomic question with rich metadata.
func seedQuestions() []types.Question {
	return []types.Question{
		{
			QuestionID:    "q-parent",
			StructureType: types.StructureComposite,
			Stem:          "Read the passage about mitochondria, then answer the sub-questions.",
			Metadata:      types.QuestionMetadata{KnowledgePointIDs: []string{"BIO-C01-S02"}},
		},
		{
			QuestionID:    "q-child1",
			StructureType: types.StructureAtomic,
			ParentID:      strPtr("q-parent"),
			Stem:          "Which organelle produces most of the cell's ATP?",
			Metadata:      types.QuestionMetadata{KnowledgePointIDs: []string{"BIO-C01-S02"}, QuestionType: "choice"},
		},
		{
			QuestionID:    "q-child2",
			StructureType: types.StructureAtomic,
			ParentID:      strPtr("q-parent"),
			Stem:          "Explain why the inner membrane is folded.",
			Metadata:      types.QuestionMetadata{KnowledgePointIDs: []string{"BIO-C01-S02"}, MarkedWrong: true},
		},
		{
			QuestionID:    "q-solo",
			StructureType: types.StructureAtomic,
			Stem:          "2+2=?",
			Metadata: types.QuestionMetadata{
				KnowledgePointIDs: []string{"MATH-A01"},
				Source:            "2019 final",
				QuestionType:      "fill-in",
			},
		},
	}
}

func testBank(t *testing.T, questions []types.Question) (*Bank, *recordstore.File) {
	t.Helper()
	store := recordstore.OpenFile(filepath.Join(t.TempDir(), "questions.json"))
	if questions != nil {
		require.NoError(t, store.Save(context.Background(), questions))
	}
	b, err := New(context.Background(), store, nil)
	require.NoError(t, err)
	return b, store
}

// --- construction tests ---

func TestNewEmptyStore(t *testing.T) {
	b, _ := testBank(t, nil)
	assert.Equal(t, 0, b.Total())
}

func TestNewFailsOnCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"stem"`), 0o644))

	_, err := New(context.Background(), recordstore.OpenFile(path), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, recordstore.ErrParse)
}

// --- lookup tests ---

func TestGet(t *testing.T) {
	b, _ := testBank(t, seedQuestions())

	got, ok := b.Get("q-solo")
	require.True(t, ok)
	assert.Equal(t, "2+2=?", got.Stem)

	_, ok = b.Get("q-missing")
	assert.False(t, ok)
}

func TestChildren(t *testing.T) {
	b, _ := testBank(t, seedQuestions())

	kids := b.Children("q-parent")
	require.Len(t, kids, 2)
	ids := []string{kids[0].QuestionID, kids[1].QuestionID}
	assert.ElementsMatch(t, []string{"q-child1", "q-child2"}, ids)

	assert.Empty(t, b.Children("q-solo"))
	assert.Empty(t, b.Children("q-missing"))
}

// --- context tests ---

func TestGetContext(t *testing.T) {
	tests := []struct {
		name         string
		id           string
		wantTarget   bool
		wantParent   string
		wantChildren []string
	}{
		{
			name:       "atomic without parent",
			id:         "q-solo",
			wantTarget: true,
		},
		{
			name:         "composite collects children",
			id:           "q-parent",
			wantTarget:   true,
			wantChildren: []string{"q-child1", "q-child2"},
		},
		{
			name:       "child resolves parent",
			id:         "q-child1",
			wantTarget: true,
			wantParent: "q-parent",
		},
		{
			name: "unknown id yields zero context",
			id:   "q-missing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := testBank(t, seedQuestions())

			ctx := b.GetContext(tt.id)

			if !tt.wantTarget {
				assert.Nil(t, ctx.Target)
				assert.Nil(t, ctx.Parent)
				assert.Empty(t, ctx.Children)
				return
			}

			require.NotNil(t, ctx.Target)
			assert.Equal(t, tt.id, ctx.Target.QuestionID)

			if tt.wantParent == "" {
				assert.Nil(t, ctx.Parent)
			} else {
				require.NotNil(t, ctx.Parent)
				assert.Equal(t, tt.wantParent, ctx.Parent.QuestionID)
			}

			var gotChildren []string
			for _, c := range ctx.Children {
				gotChildren = append(gotChildren, c.QuestionID)
			}
			assert.ElementsMatch(t, tt.wantChildren, gotChildren)
		})
	}
}

func TestGetContextDanglingParent(t *testing.T) {
	b, _ := testBank(t, []types.Question{{
		QuestionID:    "q-stray",
		StructureType: types.StructureAtomic,
		ParentID:      strPtr("q-deleted"),
		Stem:          "stray child",
	}})

	ctx := b.GetContext("q-stray")
	require.NotNil(t, ctx.Target)
	assert.Nil(t, ctx.Parent, "dangling parent reference must surface as absent")
}

func TestGetContextAtomicChildHasNoChildren(t *testing.T) {
	// A question that is itself a child never collects children, even if
	// another record wrongly points at it.
	qs := append(seedQuestions(), types.Question{
		QuestionID:    "q-grandchild",
		StructureType: types.StructureAtomic,
		ParentID:      strPtr("q-child1"),
		Stem:          "nested deeper than the structure allows",
	})
	b, _ := testBank(t, qs)

	ctx := b.GetContext("q-child1")
	assert.Empty(t, ctx.Children, "ATOMIC targets must not collect children")
}

// --- stats tests ---

func TestStats(t *testing.T) {
	b, _ := testBank(t, seedQuestions())

	s := b.Stats()
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 3, s.Atomic)
	assert.Equal(t, 1, s.Composite)
	assert.Equal(t, 1, s.MarkedWrong)
}
