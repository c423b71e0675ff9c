package reference

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/report-analyzer/constants"
	"github.com/joseph-ayodele/report-analyzer/internal/entity"
	"github.com/joseph-ayodele/report-analyzer/internal/llm"
)

func countingCompleter(response string, calls *int) llm.CompleterFunc {
	return func(ctx context.Context, prompt string) (string, error) {
		*calls++
		return response, nil
	}
}

func newTestStore(t *testing.T) Store {
	t.Helper()
	return NewJSONFileStore(filepath.Join(t.TempDir(), "learned.json"))
}

func TestResolve_StandardFirst(t *testing.T) {
	calls := 0
	r := NewResolver(newTestStore(t), countingCompleter(`{"found": true, "low": 1, "high": 2}`, &calls), nil)

	res := r.Resolve(context.Background(), "glucose", constants.GenderUnknown, "Glucose 110 mg/dL")
	require.NotNil(t, res.Range)
	assert.Equal(t, constants.SourceStandard, res.Source)
	assert.Equal(t, 70.0, res.Range.Low)
	assert.Zero(t, calls, "standard hits never reach the model")
}

func TestResolve_LearnedBeforeExtraction(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.Upsert(ctx, "procalcitonin", entity.LearnedRange{Low: 0, High: 0.25, Unit: "ng/mL"}))

	calls := 0
	r := NewResolver(store, countingCompleter(`{"found": true, "low": 9, "high": 9}`, &calls), nil)

	res := r.Resolve(ctx, "procalcitonin", constants.GenderUnknown, "some text")
	require.NotNil(t, res.Range)
	assert.Equal(t, constants.SourceLearned, res.Source)
	assert.Equal(t, 0.25, res.Range.High)
	assert.Zero(t, calls)
}

func TestResolve_ExtractionWritesThrough(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	calls := 0
	r := NewResolver(store, countingCompleter(`{"found": true, "low": 0, "high": 0.25, "unit": "ng/mL", "confidence": "high"}`, &calls), nil)

	res := r.Resolve(ctx, "procalcitonin", constants.GenderUnknown, "Procalcitonin 0.1 ng/mL (normal < 0.25)")
	require.NotNil(t, res.Range)
	assert.Equal(t, constants.SourceExtracted, res.Source)
	assert.Equal(t, 1, calls)

	// The range is persisted before Resolve returns.
	lr, ok, err := store.Get(ctx, "procalcitonin")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 0.25, lr.High)
	assert.Equal(t, "extracted_from_report", lr.Source)

	// A second run over the same store resolves from tier 2 without
	// another model call.
	r2 := NewResolver(store, countingCompleter(`{"found": false}`, &calls), nil)
	res2 := r2.Resolve(ctx, "procalcitonin", constants.GenderUnknown, "unrelated text")
	require.NotNil(t, res2.Range)
	assert.Equal(t, constants.SourceLearned, res2.Source)
	assert.Equal(t, 1, calls)
}

func TestResolve_MemoizesWithinRun(t *testing.T) {
	calls := 0
	r := NewResolver(newTestStore(t), countingCompleter(`{"found": false}`, &calls), nil)

	first := r.Resolve(context.Background(), "mystery marker", constants.GenderUnknown, "text")
	second := r.Resolve(context.Background(), "mystery marker", constants.GenderUnknown, "text")

	assert.Equal(t, constants.SourceNone, first.Source)
	assert.Equal(t, constants.SourceNone, second.Source)
	assert.Equal(t, 1, calls, "a repeated test costs at most one model call per run")
}

func TestResolve_NotFoundIsAMiss(t *testing.T) {
	calls := 0
	r := NewResolver(newTestStore(t), countingCompleter(`{"found": false, "low": null, "high": null}`, &calls), nil)

	res := r.Resolve(context.Background(), "mystery marker", constants.GenderUnknown, "text")
	assert.Nil(t, res.Range)
	assert.Equal(t, constants.SourceNone, res.Source)
}

func TestResolve_ModelErrorIsAMiss(t *testing.T) {
	failing := llm.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("timeout")
	})
	r := NewResolver(newTestStore(t), failing, nil)

	res := r.Resolve(context.Background(), "mystery marker", constants.GenderUnknown, "text")
	assert.Nil(t, res.Range)
	assert.Equal(t, constants.SourceNone, res.Source)
}

func TestResolve_NilCompleterSkipsExtraction(t *testing.T) {
	r := NewResolver(newTestStore(t), nil, nil)

	res := r.Resolve(context.Background(), "mystery marker", constants.GenderUnknown, "text")
	assert.Equal(t, constants.SourceNone, res.Source)
}
