package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/report-analyzer/constants"
	"github.com/joseph-ayodele/report-analyzer/internal/llm"
)

func TestCandidates_ParsesModelOutput(t *testing.T) {
	var gotPrompt string
	completer := llm.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		gotPrompt = prompt
		return `Here are the results:
[
  {"test_name": "Glucose", "test_value": "110", "units": "mg/dL", "reference_range": "70-99"},
  {"test_name": "Hemoglobin", "test_value": "14.2", "units": "g/dL"}
]`, nil
	})

	e := NewExtractor(completer, nil)
	got := e.Candidates(context.Background(), "Glucose: 110 mg/dL (70-99)\nHemoglobin: 14.2 g/dL", constants.CategoryLaboratory)

	require.Len(t, got, 2)
	assert.Equal(t, "Glucose", got[0].Name)
	assert.Equal(t, "110", got[0].Value)
	assert.Equal(t, "mg/dL", got[0].Unit)
	assert.Equal(t, "70-99", got[0].DeclaredRange)
	assert.Equal(t, constants.MethodGenerative, got[0].Method)

	assert.Contains(t, gotPrompt, "LAB REPORT")
	assert.Contains(t, gotPrompt, "laboratory test results")
}

func TestCandidates_TruncatesLongDocuments(t *testing.T) {
	var promptLen int
	completer := llm.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		promptLen = len(prompt)
		return "[]", nil
	})

	e := NewExtractor(completer, nil)
	e.Candidates(context.Background(), strings.Repeat("x", 50000), constants.CategoryMixed)

	// Prompt scaffolding plus at most the excerpt cap.
	assert.Less(t, promptLen, extractExcerptLimit+2000)
}

func TestCandidates_DegradesOnModelError(t *testing.T) {
	completer := llm.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("rate limited")
	})

	e := NewExtractor(completer, nil)
	assert.Empty(t, e.Candidates(context.Background(), "some text", constants.CategoryMixed))
}

func TestCandidates_DegradesOnGarbage(t *testing.T) {
	completer := llm.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		return "I found several interesting values but cannot list them.", nil
	})

	e := NewExtractor(completer, nil)
	assert.Empty(t, e.Candidates(context.Background(), "some text", constants.CategoryMixed))
}

func TestCandidates_SkipsBlankEntries(t *testing.T) {
	completer := llm.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		return `[{"test_name": "  ", "test_value": "5"}, {"test_name": "TSH", "test_value": "2.1", "units": "mIU/L"}]`, nil
	})

	e := NewExtractor(completer, nil)
	got := e.Candidates(context.Background(), "TSH 2.1", constants.CategoryLaboratory)

	require.Len(t, got, 1)
	assert.Equal(t, "TSH", got[0].Name)
}
