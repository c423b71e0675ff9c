package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/report-analyzer/constants"
	"github.com/joseph-ayodele/report-analyzer/internal/entity"
)

func TestValidate_KeepsRealTests(t *testing.T) {
	candidates := []entity.CandidateRecord{
		{Name: "Hemoglobin", Value: "14.2", Unit: "g/dL", Method: constants.MethodGenerative},
		{Name: "FBS", Value: "110", Unit: "mg/dL", Method: constants.MethodGenerative},
	}

	validated, issues := validate(candidates)
	require.Len(t, validated, 2)
	assert.Empty(t, issues)

	assert.Equal(t, "hemoglobin", validated[0].CanonicalName)
	assert.Equal(t, "glucose", validated[1].CanonicalName)
	assert.Equal(t, "Hemoglobin", validated[0].Name, "display name keeps the source phrasing")
}

func TestValidate_RejectsFurniture(t *testing.T) {
	candidates := []entity.CandidateRecord{
		{Name: "Patient Name", Value: "John Smith 45"},
		{Name: "Page", Value: "2"},
		{Name: "Report Date", Value: "2026-01-15"},
		{Name: "Impression", Value: "1"},
	}

	validated, issues := validate(candidates)
	assert.Empty(t, validated)
	assert.Len(t, issues, 4)
	assert.Contains(t, issues[0], "Patient Name")
}

func TestValidate_RejectsVerdictValues(t *testing.T) {
	validated, issues := validate([]entity.CandidateRecord{
		{Name: "Echotexture", Value: "Normal (grade 1)"},
	})
	assert.Empty(t, validated)
	assert.Len(t, issues, 1)
}

func TestValidate_RequiresDigitInValue(t *testing.T) {
	validated, _ := validate([]entity.CandidateRecord{
		{Name: "Color", Value: "Yellow"},
	})
	assert.Empty(t, validated)
}

func TestValidate_RejectsMissingFields(t *testing.T) {
	validated, issues := validate([]entity.CandidateRecord{
		{Name: "", Value: "5"},
		{Name: "TSH", Value: "   "},
	})
	assert.Empty(t, validated)
	require.Len(t, issues, 2)
	assert.Contains(t, issues[0], "Entry 1")
	assert.Contains(t, issues[1], "Entry 2")
}

func TestValidate_NameLengthBounds(t *testing.T) {
	long := make([]byte, 101)
	for i := range long {
		long[i] = 'x'
	}

	validated, _ := validate([]entity.CandidateRecord{
		{Name: "K", Value: "4.1"},
		{Name: string(long), Value: "4.1"},
	})
	assert.Empty(t, validated)
}
