package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/joseph-ayodele/report-analyzer/constants"
	"github.com/joseph-ayodele/report-analyzer/internal/entity"
	"github.com/joseph-ayodele/report-analyzer/internal/llm"
)

const allNormalRecommendations = `
## Recommendations

✅ **Excellent News!**
All your measurements are within normal healthy ranges.

### Maintain Your Health:
- **Hydration**: Drink 8-10 glasses of water daily
- **Balanced Diet**: Include plenty of fruits and vegetables
- **Regular Exercise**: Aim for 150 minutes per week of moderate activity
- **Adequate Sleep**: Get 7-9 hours of quality sleep
- **Stress Management**: Practice relaxation techniques
- **Regular Check-ups**: Schedule annual health screenings

### Follow-Up:
- Annual physical examination
- Continue monitoring as recommended by your healthcare provider
`

const fallbackRecommendations = `
## Recommendations

### General Health Guidance:
- Maintain a balanced, nutritious diet
- Stay well-hydrated (8-10 glasses of water daily)
- Exercise regularly (150 minutes per week)
- Get adequate sleep (7-9 hours nightly)
- Manage stress through relaxation techniques
- Avoid smoking and limit alcohol

### Follow-Up:
- Schedule an appointment with your healthcare provider to discuss these results
- Bring this report to your appointment
- Ask your doctor about any concerns or questions you have

### When to Seek Immediate Care:
- Severe pain
- Persistent symptoms
- Fever or infection signs
- Any symptoms that concern you
`

// narrator produces the two free-text sections of the artifact. Both
// degrade to deterministic fallback text when the model misbehaves.
type narrator struct {
	completer llm.Completer
	log       *slog.Logger
}

func stoneRecord(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "calculus") || strings.Contains(lower, "stone")
}

// summarize writes the patient-facing narrative for the whole report.
func (n narrator) summarize(ctx context.Context, analyzed []entity.AnalyzedRecord,
	patient entity.PatientInfo, category constants.DocumentCategory,
	explanations map[string]entity.Explanation,
) string {
	var normal, high, low, noRef int
	for _, r := range analyzed {
		switch r.Status {
		case constants.StatusNormal:
			normal++
		case constants.StatusHigh:
			high++
		case constants.StatusLow:
			low++
		case constants.StatusNoReference:
			noRef++
		}
	}

	fallback := fmt.Sprintf(`
## Overall Assessment
We've analyzed your %s report with %d findings.

## Results Summary
- Normal findings: %d
- Findings needing attention: %d
- Specialized measurements: %d

## What To Do Next
Please schedule an appointment with your healthcare provider to discuss these results in detail.
`, category, len(analyzed), normal, high+low, noRef)

	if n.completer == nil {
		return fallback
	}

	resultsJSON, err := json.MarshalIndent(analyzed, "", "  ")
	if err != nil {
		return fallback
	}

	var noRefDetails strings.Builder
	if noRef > 0 && len(explanations) > 0 {
		noRefDetails.WriteString("\n\nTESTS REQUIRING DETAILED EXPLANATION:\n")
		for _, r := range analyzed {
			if r.Status != constants.StatusNoReference {
				continue
			}
			exp, ok := explanations[r.Name]
			if !ok {
				continue
			}
			fmt.Fprintf(&noRefDetails, "\n- %s: %s %s\n", r.Name, r.Value, r.Unit)
			fmt.Fprintf(&noRefDetails, "  Description: %s\n", exp.Description)
			fmt.Fprintf(&noRefDetails, "  Typical Range: %s\n", exp.EstimatedRange)
			fmt.Fprintf(&noRefDetails, "  Interpretation: %s\n", exp.Interpretation)
		}
	}

	prompt := fmt.Sprintf(`Create a clear, empathetic, comprehensive summary of this %s report for the patient.

**Patient Information:**
- Name: %s
- Age: %s
- Gender: %s
Total findings: %d
Normal: %d
High: %d
Low: %d
Requiring explanation: %d

All Results:
%s%s

Write a comprehensive, empathetic summary with these sections:

## Overall Assessment
(Start with reassuring tone, mention what was evaluated)

## What Was Measured
(Brief explanation of what these tests/measurements mean)

## Key Findings

### Tests Within Normal Range
(List all normal results briefly - be reassuring)

### Results Requiring Attention
(For HIGH/LOW results, explain each one clearly)

### Special Measurements
(For tests without standard ranges, use the detailed explanations provided above.
Present the information in a clear, non-alarming way. Include the typical ranges and
interpretations that were provided.)

**IMPORTANT GUIDELINES**:
- For NORMAL results: Clearly state "This is within the healthy range"
- For HIGH results: Explain what this might indicate
- For LOW results: Explain what this might indicate
- For tests without standard ranges: Use the detailed explanations provided, be thorough but reassuring
- For stones/calculi: Explain size significance (stones <5mm often pass naturally)
- Never say "no reference range available" - instead use the provided explanations
- Be specific with numbers and ranges

## What This Means for You
(Practical implications in everyday language)

## Next Steps
(What the patient should do - doctor consultation timing, etc.)

Guidelines:
- Use warm, conversational, supportive tone
- Avoid medical jargon or explain it simply
- Use analogies when helpful
- Be honest but reassuring
- Short paragraphs for easy reading
- For tests without standard ranges, present information confidently using the AI explanations

Write the summary now:`, category, patient.Name, formatAge(patient.Age), patient.Gender,
		len(analyzed), normal, high, low, noRef, resultsJSON, noRefDetails.String())

	content, err := n.completer.Complete(ctx, prompt)
	if err != nil || strings.TrimSpace(content) == "" {
		n.log.Warn("narrative.summary_failed", "error", err)
		return fallback
	}
	return content
}

// recommend writes the lifestyle-guidance section. Stone findings get a
// dedicated urology-focused prompt; an all-normal report skips the
// model entirely.
func (n narrator) recommend(ctx context.Context, analyzed []entity.AnalyzedRecord,
	patient entity.PatientInfo, category constants.DocumentCategory,
) string {
	var abnormal, stones []entity.AnalyzedRecord
	hasStones := false
	for _, r := range analyzed {
		if r.Status.Abnormal() {
			abnormal = append(abnormal, r)
		}
		lower := strings.ToLower(r.Name)
		if stoneRecord(r.Name) || strings.Contains(lower, "echogenic") {
			hasStones = true
		}
		if stoneRecord(r.Name) {
			stones = append(stones, r)
		}
	}

	if len(abnormal) == 0 && !hasStones {
		return allNormalRecommendations
	}
	if n.completer == nil {
		return fallbackRecommendations
	}

	var prompt string
	if hasStones {
		findingsJSON, err := json.MarshalIndent(stones, "", "  ")
		if err != nil {
			return fallbackRecommendations
		}
		prompt = fmt.Sprintf(`Based on this imaging report showing kidney stones/calculi, provide specific lifestyle recommendations.

**Patient Information:**
- Name: %s
- Age: %s
- Gender: %s

Findings:
%s

Provide practical recommendations in these sections:

## Dietary Recommendations
(Specific foods to eat/avoid for kidney stone prevention)

## Hydration Guidelines
(Detailed fluid intake recommendations)

## Lifestyle Modifications
(Exercise, habits that help prevent stones)

## Medical Follow-Up
(When to see a doctor, urgency level based on stone size)

## Warning Signs
(Symptoms that require immediate medical attention)

Be specific, practical, and reassuring. Use bullet points.
Keep language simple and actionable.`, patient.Name, formatAge(patient.Age), patient.Gender, findingsJSON)
	} else {
		abnormalJSON, err := json.MarshalIndent(abnormal, "", "  ")
		if err != nil {
			return fallbackRecommendations
		}
		prompt = fmt.Sprintf(`Based on these %s findings, provide general wellness recommendations.

**Patient Information:**
- Name: %s
- Age: %s
- Gender: %s

Abnormal Results:
%s

Provide recommendations in sections:

## General Health Guidance
(Overall lifestyle recommendations)

## Dietary Suggestions
(If applicable to the findings)

## When to Consult a Doctor
(Urgency and what to discuss)

## Monitoring
(What to watch for)

Be supportive, specific, and practical.
Use bullet points for readability.`, category, patient.Name, formatAge(patient.Age), patient.Gender, abnormalJSON)
	}

	content, err := n.completer.Complete(ctx, prompt)
	if err != nil || strings.TrimSpace(content) == "" {
		n.log.Warn("narrative.recommendations_failed", "error", err)
		return fallbackRecommendations
	}
	return content
}

func formatAge(age *int) string {
	if age == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d", *age)
}
