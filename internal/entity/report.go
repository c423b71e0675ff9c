package entity

import (
	"github.com/joseph-ayodele/report-analyzer/constants"
)

// PatientInfo is the demographic header extracted from the report.
type PatientInfo struct {
	Name   string           `json:"name"`
	Age    *int             `json:"age"`
	Gender constants.Gender `json:"gender"`
}

// Statistics aggregates analyzed records by status.
type Statistics struct {
	Total       int `json:"total_tests"`
	Normal      int `json:"normal_count"`
	Abnormal    int `json:"abnormal_count"`
	Unknown     int `json:"unknown_count"`
	NoReference int `json:"no_reference_count"`
}

// ConfidenceSummary aggregates analyzed records by confidence tier.
type ConfidenceSummary struct {
	High   int `json:"high_confidence"`
	Medium int `json:"medium_confidence"`
	Low    int `json:"low_confidence"`
}

// SourceSummary aggregates analyzed records by reference provenance.
type SourceSummary struct {
	Standard  int `json:"standard"`
	Learned   int `json:"learned"`
	Extracted int `json:"extracted"`
	Generated int `json:"ai_generated"`
}

// AnalysisReport is the sole hand-off artifact to reporting, export and
// presentation collaborators. Records preserve classification order.
type AnalysisReport struct {
	Success bool `json:"success"`

	// Populated only when Success is false.
	Message    string `json:"message,omitempty"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`

	Patient          PatientInfo                `json:"patient_info"`
	Summary          string                     `json:"summary"`
	Recommendations  string                     `json:"recommendations"`
	NumericResults   map[string]float64         `json:"raw_extracted_tests"`
	Stats            Statistics                 `json:"statistics"`
	Records          []AnalyzedRecord           `json:"detailed_results"`
	ValidationIssues []string                   `json:"validation_issues"`
	Confidence       ConfidenceSummary          `json:"confidence_summary"`
	Sources          SourceSummary              `json:"reference_sources"`
	Explanations     map[string]Explanation     `json:"missing_ranges_explanation"`
	IsScanned        bool                       `json:"is_scanned"`
	ExtractionScore  float64                    `json:"extraction_confidence"`
	Category         constants.DocumentCategory `json:"document_category"`
}
