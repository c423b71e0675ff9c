package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/report-analyzer/constants"
	"github.com/joseph-ayodele/report-analyzer/internal/entity"
	"github.com/joseph-ayodele/report-analyzer/internal/llm"
	"github.com/joseph-ayodele/report-analyzer/internal/reference"
)

// classify resolves a reference range for every validated record and
// grades the result against it. Records keep their input order. Tests
// with no resolvable range get one generative explanation per distinct
// raw name, keyed by that raw name in the returned map.
func classify(ctx context.Context, resolver *reference.Resolver, completer llm.Completer,
	validated []entity.ValidatedRecord, gender constants.Gender,
	docText string, category constants.DocumentCategory, log *slog.Logger,
) ([]entity.AnalyzedRecord, map[string]entity.Explanation) {

	analyzed := make([]entity.AnalyzedRecord, 0, len(validated))
	explanations := make(map[string]entity.Explanation)

	for _, rec := range validated {
		numeric := parseNumeric(rec.Value)
		if numeric == nil {
			// Short-circuit: a non-numeric value never reaches range
			// resolution or comparison.
			analyzed = append(analyzed, entity.AnalyzedRecord{
				ValidatedRecord: rec,
				Status:          constants.StatusUnknown,
				Analysis:        "Non-numeric value",
				Confidence:      constants.ConfidenceLow,
				Source:          constants.SourceNone,
			})
			continue
		}

		res := resolver.Resolve(ctx, rec.CanonicalName, gender, docText)

		if res.Range == nil {
			if _, seen := explanations[rec.Name]; !seen {
				log.Info("classify.explain", "test", rec.Name)
				explanations[rec.Name] = explain(ctx, completer, rec.Name, rec.Value, rec.Unit, category, log)
			}
			exp := explanations[rec.Name]

			analysis := exp.Interpretation
			if exp.EstimatedRange != "" && exp.EstimatedRange != "varies by individual" {
				analysis += fmt.Sprintf(". Typical range: %s", exp.EstimatedRange)
			}

			analyzed = append(analyzed, entity.AnalyzedRecord{
				ValidatedRecord: rec,
				NumericValue:    numeric,
				Status:          constants.StatusNoReference,
				Analysis:        analysis,
				Reference:       "See detailed explanation below",
				Confidence:      constants.ConfidenceMedium,
				Source:          constants.SourceGenerated,
			})
			continue
		}

		analyzed = append(analyzed, grade(rec, *numeric, res))
	}

	return analyzed, explanations
}

// grade compares one numeric result against its resolved range. Range
// boundaries are inclusive; a value exactly on either bound is normal.
func grade(rec entity.ValidatedRecord, value float64, res reference.Resolution) entity.AnalyzedRecord {
	rr := *res.Range
	unit := rr.Unit
	if unit == "" {
		unit = rec.Unit
	}
	span := fmt.Sprintf("%s-%s %s", formatNum(rr.Low), formatNum(rr.High), unit)

	var status constants.TestStatus
	var analysis string
	switch {
	case value < rr.Low:
		status = constants.StatusLow
		analysis = fmt.Sprintf("Below normal range (%s)", span)
	case value > rr.High:
		status = constants.StatusHigh
		analysis = fmt.Sprintf("Above normal range (%s)", span)
	default:
		status = constants.StatusNormal
		analysis = fmt.Sprintf("Within normal range (%s)", span)
	}

	confidence := constants.ConfidenceMedium
	if res.Source == constants.SourceStandard {
		confidence = constants.ConfidenceHigh
	}
	switch res.Source {
	case constants.SourceExtracted:
		analysis += " (range extracted from report)"
	case constants.SourceLearned:
		analysis += " (using previously learned range)"
	}

	out := entity.AnalyzedRecord{
		ValidatedRecord: rec,
		NumericValue:    &value,
		Status:          status,
		Analysis:        analysis,
		Reference:       span,
		Confidence:      confidence,
		Source:          res.Source,
	}

	// A unit disagreement between the document and the reference entry
	// means the comparison may not be apples-to-apples.
	if rec.Unit != "" && rr.Unit != "" && !strings.EqualFold(strings.TrimSpace(rec.Unit), strings.TrimSpace(rr.Unit)) {
		if out.Confidence == constants.ConfidenceHigh {
			out.Confidence = constants.ConfidenceMedium
		}
		out.Notes = append(out.Notes, fmt.Sprintf("reported unit %q differs from reference unit %q", rec.Unit, rr.Unit))
	}

	return out
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
