package llm

// JSON Schemas (draft 2020-12 subset) for every structured payload we
// request from the generative capability. Built as generic maps so they
// can be embedded into prompts and validated locally with the same
// source of truth.

// CandidateArraySchema constrains the candidate-extraction response: an
// array of test records with string fields.
func CandidateArraySchema() map[string]any {
	return map[string]any{
		"type": "array",
		"items": map[string]any{
			"type":                 "object",
			"additionalProperties": true,
			"properties": map[string]any{
				"test_name":       map[string]any{"type": "string", "minLength": 1},
				"test_value":      map[string]any{"type": "string"},
				"units":           map[string]any{"type": "string"},
				"reference_range": map[string]any{"type": "string"},
			},
			"required": []string{"test_name", "test_value"},
		},
	}
}

// RangeResultSchema constrains the in-document reference extraction
// response. low/high are nullable because found:false carries nulls.
func RangeResultSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": true,
		"properties": map[string]any{
			"found":      map[string]any{"type": "boolean"},
			"low":        map[string]any{"type": []string{"number", "null"}},
			"high":       map[string]any{"type": []string{"number", "null"}},
			"unit":       map[string]any{"type": []string{"string", "null"}},
			"confidence": map[string]any{"type": "string", "enum": []string{"high", "medium", "low"}},
		},
		"required": []string{"found"},
	}
}

// ExplanationSchema constrains the no-reference explanation response.
func ExplanationSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": true,
		"properties": map[string]any{
			"description":           map[string]any{"type": "string"},
			"estimated_range":       map[string]any{"type": "string"},
			"interpretation":        map[string]any{"type": "string"},
			"clinical_significance": map[string]any{"type": "string"},
			"concern_level":         map[string]any{"type": "string", "enum": []string{"low", "medium", "high"}},
			"doctor_consultation":   map[string]any{"type": "string"},
			"additional_context":    map[string]any{"type": "string"},
		},
		"required": []string{"description", "interpretation"},
	}
}

// PatientInfoSchema constrains the demographic-header response.
func PatientInfoSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": true,
		"properties": map[string]any{
			"name":   map[string]any{"type": "string"},
			"age":    map[string]any{"type": []string{"integer", "null"}},
			"gender": map[string]any{"type": "string"},
		},
		"required": []string{"name"},
	}
}
