package export

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/report-analyzer/constants"
	"github.com/joseph-ayodele/report-analyzer/internal/entity"
)

func sampleReport() *entity.AnalysisReport {
	v := 110.0
	return &entity.AnalysisReport{
		Success: true,
		Patient: entity.PatientInfo{Name: "Jane Roe", Gender: constants.GenderFemale},
		Records: []entity.AnalyzedRecord{
			{
				ValidatedRecord: entity.ValidatedRecord{
					Name:          "Glucose",
					Value:         "110",
					Unit:          "mg/dL",
					CanonicalName: "glucose",
					Method:        constants.MethodGenerative,
				},
				NumericValue: &v,
				Status:       constants.StatusHigh,
				Analysis:     "Above normal range (70-99 mg/dL)",
				Reference:    "70-99 mg/dL",
				Confidence:   constants.ConfidenceHigh,
				Source:       constants.SourceStandard,
			},
		},
		NumericResults: map[string]float64{"glucose": 110},
		Category:       constants.CategoryLaboratory,
	}
}

func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()
	s := NewService(dir, nil)

	path, err := s.WriteJSON(sampleReport(), "report_analysis")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, true, decoded["success"])
	assert.Contains(t, decoded, "detailed_results")
	assert.Contains(t, decoded, "raw_extracted_tests")
}

func TestWriteXLSX(t *testing.T) {
	dir := t.TempDir()
	s := NewService(dir, nil)

	path, err := s.WriteXLSX(sampleReport(), "report_analysis")
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	name, err := f.GetCellValue("Results", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Glucose", name)

	status, err := f.GetCellValue("Results", "D2")
	require.NoError(t, err)
	assert.Equal(t, "HIGH", status)
}
