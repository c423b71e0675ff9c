package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/report-analyzer/constants"
	"github.com/joseph-ayodele/report-analyzer/internal/entity"
	"github.com/joseph-ayodele/report-analyzer/internal/llm"
	"github.com/joseph-ayodele/report-analyzer/internal/reference"
)

func testResolver(t *testing.T, completer llm.Completer) *reference.Resolver {
	t.Helper()
	store := reference.NewJSONFileStore(filepath.Join(t.TempDir(), "learned.json"))
	return reference.NewResolver(store, completer, nil)
}

func validated(name, value, unit string) entity.ValidatedRecord {
	return entity.ValidatedRecord{
		Name:          name,
		Value:         value,
		Unit:          unit,
		Method:        constants.MethodGenerative,
		CanonicalName: reference.CanonicalName(name),
	}
}

func TestClassify_StandardRange(t *testing.T) {
	ctx := context.Background()
	records := []entity.ValidatedRecord{
		validated("Glucose", "110", "mg/dL"),
		validated("Glucose", "85", "mg/dL"),
	}

	analyzed, explanations := classify(ctx, testResolver(t, nil), nil, records,
		constants.GenderUnknown, "doc", constants.CategoryLaboratory, slog.Default())

	require.Len(t, analyzed, 2)
	assert.Empty(t, explanations)

	high := analyzed[0]
	assert.Equal(t, constants.StatusHigh, high.Status)
	assert.Equal(t, constants.SourceStandard, high.Source)
	assert.Equal(t, constants.ConfidenceHigh, high.Confidence)
	assert.Contains(t, high.Analysis, "Above normal range (70-99 mg/dL)")
	assert.Equal(t, "70-99 mg/dL", high.Reference)

	normal := analyzed[1]
	assert.Equal(t, constants.StatusNormal, normal.Status)
}

func TestClassify_BoundariesAreInclusive(t *testing.T) {
	ctx := context.Background()
	records := []entity.ValidatedRecord{
		validated("Glucose", "70", "mg/dL"),
		validated("Glucose", "99", "mg/dL"),
	}

	analyzed, _ := classify(ctx, testResolver(t, nil), nil, records,
		constants.GenderUnknown, "doc", constants.CategoryLaboratory, slog.Default())

	require.Len(t, analyzed, 2)
	assert.Equal(t, constants.StatusNormal, analyzed[0].Status, "value on the low bound is normal")
	assert.Equal(t, constants.StatusNormal, analyzed[1].Status, "value on the high bound is normal")
}

func TestClassify_GenderSelectsRange(t *testing.T) {
	ctx := context.Background()
	records := []entity.ValidatedRecord{validated("Hemoglobin", "13.0", "g/dL")}

	// 13.0 is low for a male, normal for a female.
	asMale, _ := classify(ctx, testResolver(t, nil), nil, records,
		constants.GenderMale, "doc", constants.CategoryLaboratory, slog.Default())
	require.Len(t, asMale, 1)
	assert.Equal(t, constants.StatusLow, asMale[0].Status)

	asFemale, _ := classify(ctx, testResolver(t, nil), nil, records,
		constants.GenderFemale, "doc", constants.CategoryLaboratory, slog.Default())
	require.Len(t, asFemale, 1)
	assert.Equal(t, constants.StatusNormal, asFemale[0].Status)
}

func TestClassify_NonNumericShortCircuits(t *testing.T) {
	ctx := context.Background()

	// A completer that fails the test if reached.
	tripwire := llm.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		t.Fatal("non-numeric values must not reach the model")
		return "", nil
	})

	records := []entity.ValidatedRecord{
		{Name: "Echo Grade", Value: "II+", Unit: "", CanonicalName: "echo grade", Method: constants.MethodGenerative},
	}

	analyzed, explanations := classify(ctx, testResolver(t, tripwire), tripwire, records,
		constants.GenderUnknown, "doc", constants.CategoryMixed, slog.Default())

	require.Len(t, analyzed, 1)
	assert.Empty(t, explanations)
	assert.Equal(t, constants.StatusUnknown, analyzed[0].Status)
	assert.Equal(t, constants.ConfidenceLow, analyzed[0].Confidence)
	assert.Nil(t, analyzed[0].NumericValue)
	assert.Equal(t, "Non-numeric value", analyzed[0].Analysis)
	assert.Equal(t, constants.SourceNone, analyzed[0].Source)
}

func TestClassify_UnitMismatchDowngradesConfidence(t *testing.T) {
	ctx := context.Background()
	records := []entity.ValidatedRecord{validated("Glucose", "5.2", "mmol/L")}

	analyzed, _ := classify(ctx, testResolver(t, nil), nil, records,
		constants.GenderUnknown, "doc", constants.CategoryLaboratory, slog.Default())

	require.Len(t, analyzed, 1)
	got := analyzed[0]
	assert.Equal(t, constants.ConfidenceMedium, got.Confidence, "standard hit downgraded on unit mismatch")
	require.Len(t, got.Notes, 1)
	assert.Contains(t, got.Notes[0], "mmol/L")
	assert.Contains(t, got.Notes[0], "mg/dL")
}

func TestClassify_NoReferenceGetsOneExplanationPerName(t *testing.T) {
	ctx := context.Background()
	calls := 0
	completer := llm.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		if strings.Contains(prompt, "reference range mentioned") {
			// Tier-3 in-document extraction finds nothing.
			return `{"found": false}`, nil
		}
		calls++
		return `{
  "description": "Measures an uncommon marker",
  "estimated_range": "0-1 units",
  "interpretation": "Slightly above typical",
  "clinical_significance": "Usually benign",
  "concern_level": "low",
  "doctor_consultation": "yes - routine follow-up",
  "additional_context": ""
}`, nil
	})

	records := []entity.ValidatedRecord{
		validated("Mystery Marker", "1.2", "units"),
		validated("Mystery Marker", "1.3", "units"),
	}

	analyzed, explanations := classify(ctx, testResolver(t, completer), completer, records,
		constants.GenderUnknown, "doc", constants.CategoryLaboratory, slog.Default())

	require.Len(t, analyzed, 2)
	assert.Equal(t, 1, calls, "one explanation per distinct raw name")
	require.Contains(t, explanations, "Mystery Marker")

	got := analyzed[0]
	assert.Equal(t, constants.StatusNoReference, got.Status)
	assert.Equal(t, constants.SourceGenerated, got.Source)
	assert.Equal(t, constants.ConfidenceMedium, got.Confidence)
	assert.Contains(t, got.Analysis, "Slightly above typical")
	assert.Contains(t, got.Analysis, "Typical range: 0-1 units")
	assert.Equal(t, "See detailed explanation below", got.Reference)
}

func TestClassify_ExplanationFallbackOnModelFailure(t *testing.T) {
	ctx := context.Background()
	completer := llm.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		return "not json at all", nil
	})

	records := []entity.ValidatedRecord{validated("Mystery Marker", "1.2", "units")}

	analyzed, explanations := classify(ctx, testResolver(t, completer), completer, records,
		constants.GenderUnknown, "doc", constants.CategoryLaboratory, slog.Default())

	require.Len(t, analyzed, 1)
	exp, ok := explanations["Mystery Marker"]
	require.True(t, ok)
	assert.Equal(t, "This measures Mystery Marker", exp.Description)
	assert.Contains(t, exp.Interpretation, "1.2 units")
	assert.Equal(t, constants.StatusNoReference, analyzed[0].Status)
}
