package constants

// TestStatus is the classification of a numeric result against its
// resolved reference range.
type TestStatus string

// Stable values (store these exact strings in artifacts).
const (
	StatusNormal      TestStatus = "normal"
	StatusHigh        TestStatus = "high"
	StatusLow         TestStatus = "low"
	StatusNoReference TestStatus = "no_reference"
	StatusUnknown     TestStatus = "unknown"
)

// Abnormal reports whether the status counts toward the abnormal total.
func (s TestStatus) Abnormal() bool {
	return s == StatusHigh || s == StatusLow
}

// Confidence is the trust tier assigned to an analyzed record.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ReferenceSource is the provenance of a resolved reference range.
type ReferenceSource string

const (
	SourceStandard  ReferenceSource = "standard"
	SourceLearned   ReferenceSource = "learned"
	SourceExtracted ReferenceSource = "extracted"
	SourceGenerated ReferenceSource = "ai_generated"
	SourceNone      ReferenceSource = "none"
)

// ExtractionMethod records which strategy produced a candidate.
type ExtractionMethod string

const (
	MethodGenerative ExtractionMethod = "llm"
	MethodPattern    ExtractionMethod = "regex"
)
