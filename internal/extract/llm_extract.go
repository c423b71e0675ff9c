package extract

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

// extractExcerptLimit bounds the report text sent to the model.
const extractExcerptLimit = 8000

var categoryInstructions = map[constants.DocumentCategory]string{
	constants.CategoryImaging:    "Extract anatomical measurements with units (cm, mm, ml, grams). Include organ sizes and any calculi/stones found.",
	constants.CategoryLaboratory: "Extract laboratory test results with numeric values and units.",
	constants.CategoryMixed:      "Extract both laboratory values and imaging measurements.",
}

// Extractor pulls candidate test results out of raw report text with a
// generative model.
type Extractor struct {
	completer llm.Completer
	log       *slog.Logger
}

func NewExtractor(completer llm.Completer, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{completer: completer, log: logger}
}

type candidatePayload struct {
	TestName       string `json:"test_name"`
	TestValue      string `json:"test_value"`
	Units          string `json:"units"`
	ReferenceRange string `json:"reference_range"`
}

// Candidates asks the model for every test result in the text. Model
// and parse failures are not fatal to the pipeline; they degrade to an
// empty candidate list so pattern extraction can still contribute.
func (e *Extractor) Candidates(ctx context.Context, text string, category constants.DocumentCategory) []entity.CandidateRecord {
	prompt := buildExtractionPrompt(text, category)

	e.log.Info("extract.llm.start", "category", string(category), "prompt_len", len(prompt))

	content, err := e.completer.Complete(ctx, prompt)
	if err != nil {
		e.log.Warn("extract.llm.complete_error", "error", err)
		return nil
	}

	raw, err := llm.FirstJSONArray(content)
	if err != nil {
		e.log.Warn("extract.llm.no_json_array", "error", err, "content_len", len(content))
		return nil
	}
	if err := llm.ValidateJSONAgainstSchema(llm.CandidateArraySchema(), raw); err != nil {
		e.log.Warn("extract.llm.schema_invalid", "error", err)
		return nil
	}

	var payload []candidatePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		e.log.Warn("extract.llm.decode_error", "error", err)
		return nil
	}

	out := make([]entity.CandidateRecord, 0, len(payload))
	for _, p := range payload {
		name := strings.TrimSpace(p.TestName)
		value := strings.TrimSpace(p.TestValue)
		if name == "" || value == "" {
			continue
		}
		out = append(out, entity.CandidateRecord{
			Name:          name,
			Value:         value,
			Unit:          strings.TrimSpace(p.Units),
			DeclaredRange: strings.TrimSpace(p.ReferenceRange),
			Method:        constants.MethodGenerative,
		})
	}

	e.log.Info("extract.llm.ok", "candidates", len(out))
	return out
}

func buildExtractionPrompt(text string, category constants.DocumentCategory) string {
	instruction, ok := categoryInstructions[category]
	if !ok {
		instruction = "Extract medical test results."
	}
	excerpt := text
	if len(excerpt) > extractExcerptLimit {
		excerpt = excerpt[:extractExcerptLimit]
	}

	return fmt.Sprintf(`You are a medical report parser. Extract ALL actual test results and measurements from this report.

DOCUMENT TYPE: %s REPORT
%s

RULES:
1. Extract ONLY tests/measurements EXPLICITLY mentioned
2. DO NOT extract demographics (name, age, gender, address)
3. DO NOT extract metadata (date, page numbers, report IDs)
4. Each entry MUST have a numeric value
5. Include the unit of measurement
6. For imaging: include organ names with "Size", "Length", or "Volume"
7. For stones/calculi: include the size with "Calculus Size" or "Stone Size"

Report Text:
%s

Return JSON array:
[
  {
    "test_name": "Exact name from report",
    "test_value": "Numeric value",
    "units": "Unit (cm, mm, ml, mg/dL, etc.)",
    "reference_range": "If provided"
  }
]

Return ONLY the JSON array.`, strings.ToUpper(string(category)), instruction, excerpt)
}
