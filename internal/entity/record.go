package entity

import (
	"github.com/joseph-ayodele/report-analyzer/constants"
)

// CandidateRecord is a test measurement as extracted from the source
// document, before any validation. Strings are raw: Value may itself be
// a range like "70-99". Never mutated after creation.
type CandidateRecord struct {
	Name          string                     `json:"test_name"`
	Value         string                     `json:"test_value"`
	Unit          string                     `json:"units"`
	DeclaredRange string                     `json:"reference_range,omitempty"`
	Method        constants.ExtractionMethod `json:"extraction_method"`
}

// DedupKey identifies a candidate across extraction strategies.
// Intentionally exact-string, not semantic: differently phrased
// spellings of one test both survive for audit.
func (c CandidateRecord) DedupKey() string {
	return c.Name + "_" + c.Value
}

// ValidatedRecord is a candidate that passed the plausibility filter,
// with trimmed fields and a canonical lookup key. DisplayName preserves
// the source phrasing for user-facing output.
type ValidatedRecord struct {
	Name          string                     `json:"test_name"`
	Value         string                     `json:"test_value"`
	Unit          string                     `json:"units"`
	DeclaredRange string                     `json:"reference_range,omitempty"`
	Method        constants.ExtractionMethod `json:"extraction_method"`
	CanonicalName string                     `json:"normalized_name"`
}

// AnalyzedRecord is the terminal per-test entity: a validated record
// plus classification against its resolved reference range.
type AnalyzedRecord struct {
	ValidatedRecord

	NumericValue *float64                  `json:"numeric_value"`
	Status       constants.TestStatus      `json:"status"`
	Analysis     string                    `json:"analysis"`
	Reference    string                    `json:"resolved_range,omitempty"`
	Confidence   constants.Confidence      `json:"confidence"`
	Source       constants.ReferenceSource `json:"reference_source"`
	Notes        []string                  `json:"confidence_notes,omitempty"`
}
