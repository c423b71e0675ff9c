package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joseph-ayodele/report-analyzer/constants"
)

func TestDetectCategory(t *testing.T) {
	tests := []struct {
		name string
		text string
		want constants.DocumentCategory
	}{
		{
			name: "lab report",
			text: "Laboratory blood test results. Hemoglobin: 14.2 g/dL. Glucose: 95 mg/dL. WBC: 7.5",
			want: constants.CategoryLaboratory,
		},
		{
			name: "imaging report",
			text: "Ultrasound abdomen. Liver size 14.2 cm. Right kidney 10.5 cm. Spleen normal.",
			want: constants.CategoryImaging,
		},
		{
			name: "single keyword is not enough",
			text: "Glucose noted somewhere in this otherwise unremarkable text.",
			want: constants.CategoryMixed,
		},
		{
			name: "tie defaults to mixed",
			text: "usg done. glucose checked.",
			want: constants.CategoryMixed,
		},
		{
			name: "empty text",
			text: "",
			want: constants.CategoryMixed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectCategory(tt.text))
		})
	}
}

func TestUsesPatternExtraction(t *testing.T) {
	assert.True(t, constants.CategoryImaging.UsesPatternExtraction())
	assert.True(t, constants.CategoryMixed.UsesPatternExtraction())
	assert.False(t, constants.CategoryLaboratory.UsesPatternExtraction())
}
