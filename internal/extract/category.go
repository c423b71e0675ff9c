// Package extract turns raw report text into candidate test records.
// Two strategies compose: generative extraction guided by
// category-specific instructions, and deterministic pattern matching
// for anatomical measurements in imaging reports.
package extract

import (
	"strings"

	"github.com/joseph-ayodele/report-analyzer/constants"
)

// Fixed keyword sets for subject-matter classification. Counting is
// order-independent; ties and low-signal documents default to Mixed.
var (
	imagingKeywords = []string{
		"ultrasound", "usg", "sonography", "scan", "size", "measurement",
		"cm", "mm", "liver", "kidney", "spleen", "prostate",
	}
	labKeywords = []string{
		"laboratory", "lab", "blood test", "cbc", "glucose",
		"creatinine", "hemoglobin", "wbc", "rbc",
	}
)

// DetectCategory classifies a document as laboratory, imaging or mixed
// by keyword frequency. A category wins only with a strictly greater
// count and at least 2 hits.
func DetectCategory(text string) constants.DocumentCategory {
	lower := strings.ToLower(text)

	imagingCount := 0
	for _, kw := range imagingKeywords {
		if strings.Contains(lower, kw) {
			imagingCount++
		}
	}
	labCount := 0
	for _, kw := range labKeywords {
		if strings.Contains(lower, kw) {
			labCount++
		}
	}

	switch {
	case imagingCount > labCount && imagingCount >= 2:
		return constants.CategoryImaging
	case labCount > imagingCount && labCount >= 2:
		return constants.CategoryLaboratory
	default:
		return constants.CategoryMixed
	}
}
