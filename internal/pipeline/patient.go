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

// patientExcerptLimit bounds the header excerpt sent with the
// demographic prompt. Patient blocks sit at the top of reports.
const patientExcerptLimit = 1500

var unknownPatient = entity.PatientInfo{
	Name:   "Unknown",
	Gender: constants.GenderUnknown,
}

type patientPayload struct {
	Name   string `json:"name"`
	Age    *int   `json:"age"`
	Gender string `json:"gender"`
}

// extractPatient asks the model for the demographic header. Every
// failure mode degrades to the Unknown patient; demographics are never
// fatal to a run.
func extractPatient(ctx context.Context, completer llm.Completer, text string, log *slog.Logger) entity.PatientInfo {
	if completer == nil {
		return unknownPatient
	}

	excerpt := text
	if len(excerpt) > patientExcerptLimit {
		excerpt = excerpt[:patientExcerptLimit]
	}

	content, err := completer.Complete(ctx, buildPatientPrompt(excerpt))
	if err != nil {
		log.Warn("patient.extract.call_failed", "error", err)
		return unknownPatient
	}

	raw, err := llm.FirstJSONObject(content)
	if err != nil {
		log.Warn("patient.extract.no_json", "error", err)
		return unknownPatient
	}
	if err := llm.ValidateJSONAgainstSchema(llm.PatientInfoSchema(), raw); err != nil {
		log.Warn("patient.extract.schema_invalid", "error", err)
		return unknownPatient
	}

	var p patientPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		log.Warn("patient.extract.decode_error", "error", err)
		return unknownPatient
	}

	info := entity.PatientInfo{
		Name:   strings.TrimSpace(p.Name),
		Age:    p.Age,
		Gender: constants.ParseGender(p.Gender),
	}
	if info.Name == "" {
		info.Name = "Unknown"
	}

	log.Info("patient.extract.ok", "name", info.Name, "gender", string(info.Gender))
	return info
}

func buildPatientPrompt(excerpt string) string {
	return fmt.Sprintf(`Extract patient information from this report.

Text:
%s

Return JSON with these fields:
{
  "name": "Patient full name or 'Unknown' if not found",
  "age": <number or null>,
  "gender": "male"/"female"/"unknown"
}

IMPORTANT:
- Extract the patient's name if clearly mentioned (e.g., "Patient Name:", "Name:", in header)
- Do NOT extract doctor names, hospital names, or report IDs
- If multiple names appear, choose the one labeled as "Patient"
- Return "Unknown" for name if not clearly identifiable

Return ONLY valid JSON.`, excerpt)
}
