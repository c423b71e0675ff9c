package pipeline

import (
	"github.com/joseph-ayodele/report-analyzer/constants"
	"github.com/joseph-ayodele/report-analyzer/internal/entity"
)

// assemble folds the per-record results into the final artifact.
// Narrative sections are filled in by the caller.
func assemble(analyzed []entity.AnalyzedRecord, patient entity.PatientInfo,
	category constants.DocumentCategory, explanations map[string]entity.Explanation,
	issues []string, isScanned bool, score float64,
) *entity.AnalysisReport {

	report := &entity.AnalysisReport{
		Success:          true,
		Patient:          patient,
		NumericResults:   make(map[string]float64),
		Records:          analyzed,
		ValidationIssues: issues,
		Explanations:     explanations,
		IsScanned:        isScanned,
		ExtractionScore:  score,
		Category:         category,
	}
	if report.ValidationIssues == nil {
		report.ValidationIssues = []string{}
	}

	for _, r := range analyzed {
		report.Stats.Total++
		switch r.Status {
		case constants.StatusNormal:
			report.Stats.Normal++
		case constants.StatusHigh, constants.StatusLow:
			report.Stats.Abnormal++
		case constants.StatusUnknown:
			report.Stats.Unknown++
		case constants.StatusNoReference:
			report.Stats.NoReference++
		}

		switch r.Confidence {
		case constants.ConfidenceHigh:
			report.Confidence.High++
		case constants.ConfidenceMedium:
			report.Confidence.Medium++
		case constants.ConfidenceLow:
			report.Confidence.Low++
		}

		switch r.Source {
		case constants.SourceStandard:
			report.Sources.Standard++
		case constants.SourceLearned:
			report.Sources.Learned++
		case constants.SourceExtracted:
			report.Sources.Extracted++
		case constants.SourceGenerated:
			report.Sources.Generated++
		}

		if r.NumericValue != nil {
			report.NumericResults[r.CanonicalName] = *r.NumericValue
		}
	}

	return report
}
