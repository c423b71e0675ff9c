package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/joseph-ayodele/report-analyzer/constants"
	"github.com/joseph-ayodele/report-analyzer/internal/entity"
	"github.com/joseph-ayodele/report-analyzer/internal/llm"
)

// fallbackExplanation is returned whenever the generative call fails so
// a no-reference record always carries something actionable.
func fallbackExplanation(name, value, unit string) entity.Explanation {
	return entity.Explanation{
		Description:          fmt.Sprintf("This measures %s", name),
		EstimatedRange:       "Please consult your doctor for typical ranges",
		Interpretation:       fmt.Sprintf("Your value is %s %s", value, unit),
		ClinicalSignificance: "Clinical interpretation needed",
		ConcernLevel:         "medium",
		ConsultationAdvice:   "yes - for proper interpretation",
		AdditionalContext:    "Discuss with your healthcare provider",
	}
}

// explain generates the comprehensive no-reference explanation for one
// test result.
func explain(ctx context.Context, completer llm.Completer, name, value, unit string, category constants.DocumentCategory, log *slog.Logger) entity.Explanation {
	if completer == nil {
		return fallbackExplanation(name, value, unit)
	}

	content, err := completer.Complete(ctx, buildExplanationPrompt(name, value, unit, category))
	if err != nil {
		log.Warn("explain.call_failed", "test", name, "error", err)
		return fallbackExplanation(name, value, unit)
	}

	raw, err := llm.FirstJSONObject(content)
	if err != nil {
		log.Warn("explain.no_json", "test", name, "error", err)
		return fallbackExplanation(name, value, unit)
	}
	if err := llm.ValidateJSONAgainstSchema(llm.ExplanationSchema(), raw); err != nil {
		log.Warn("explain.schema_invalid", "test", name, "error", err)
		return fallbackExplanation(name, value, unit)
	}

	var exp entity.Explanation
	if err := json.Unmarshal(raw, &exp); err != nil {
		log.Warn("explain.decode_error", "test", name, "error", err)
		return fallbackExplanation(name, value, unit)
	}
	return exp
}

func buildExplanationPrompt(name, value, unit string, category constants.DocumentCategory) string {
	return fmt.Sprintf(`You are a medical expert. Provide comprehensive information about this test result.

Test: %s
Value: %s %s
Report Type: %s

Provide detailed response:

1. **What This Measures**: Brief explanation (2-3 sentences)
2. **Typical Range**: Based on medical knowledge, what's a typical/normal range? Be specific with numbers if possible.
3. **Your Result**: Interpretation of the value %s %s
4. **Clinical Significance**: What does this value potentially indicate?
5. **When to Be Concerned**: What values would be concerning?
6. **Recommendation**: Should patient discuss with doctor?

Format as JSON:
{
  "description": "What this measures",
  "estimated_range": "Typical range with units (e.g., '20-30 ml')",
  "interpretation": "Interpretation of this specific value",
  "clinical_significance": "What this means clinically",
  "concern_level": "low/medium/high",
  "doctor_consultation": "yes/no and brief reason",
  "additional_context": "Any other relevant information"
}

Be specific, helpful, and medically accurate. Return ONLY valid JSON.`, name, value, unit, string(category), value, unit)
}
