package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstJSONObject_Plain(t *testing.T) {
	raw, err := FirstJSONObject(`{"found": true, "low": 70, "high": 99}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"found": true, "low": 70, "high": 99}`, string(raw))
}

func TestFirstJSONObject_SurroundingProse(t *testing.T) {
	raw, err := FirstJSONObject("Sure! Here is the result:\n{\"found\": false}\nLet me know if you need more.")
	require.NoError(t, err)
	assert.JSONEq(t, `{"found": false}`, string(raw))
}

func TestFirstJSONObject_CodeFence(t *testing.T) {
	raw, err := FirstJSONObject("```json\n{\"name\": \"Unknown\", \"age\": null}\n```")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name": "Unknown", "age": null}`, string(raw))
}

func TestFirstJSONObject_BracesInsideStrings(t *testing.T) {
	raw, err := FirstJSONObject(`{"analysis": "value {in} braces", "ok": true}`)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, DecodeObject(string(raw), &out))
	assert.Equal(t, "value {in} braces", out["analysis"])
}

func TestFirstJSONObject_NoObject(t *testing.T) {
	_, err := FirstJSONObject("I could not find any reference range in the document.")
	assert.Error(t, err)
}

func TestFirstJSONArray_SurroundingProse(t *testing.T) {
	raw, err := FirstJSONArray("Here you go:\n[{\"test_name\": \"Glucose\", \"test_value\": \"110\"}]")
	require.NoError(t, err)

	var out []map[string]any
	require.NoError(t, DecodeArray(string(raw), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "Glucose", out[0]["test_name"])
}

func TestFirstJSONArray_NestedObjects(t *testing.T) {
	raw, err := FirstJSONArray(`[{"a": [1, 2]}, {"b": {"c": "]"}}]`)
	require.NoError(t, err)

	var out []map[string]any
	require.NoError(t, DecodeArray(string(raw), &out))
	assert.Len(t, out, 2)
}

func TestValidateJSONAgainstSchema(t *testing.T) {
	ok := []byte(`[{"test_name": "Glucose", "test_value": "110", "units": "mg/dL"}]`)
	require.NoError(t, ValidateJSONAgainstSchema(CandidateArraySchema(), ok))

	missing := []byte(`[{"test_value": "110"}]`)
	assert.Error(t, ValidateJSONAgainstSchema(CandidateArraySchema(), missing))

	rangeOK := []byte(`{"found": true, "low": 1.5, "high": 3, "unit": "mg/dL", "confidence": "high"}`)
	require.NoError(t, ValidateJSONAgainstSchema(RangeResultSchema(), rangeOK))

	rangeNulls := []byte(`{"found": false, "low": null, "high": null}`)
	require.NoError(t, ValidateJSONAgainstSchema(RangeResultSchema(), rangeNulls))

	rangeBad := []byte(`{"low": 1}`)
	assert.Error(t, ValidateJSONAgainstSchema(RangeResultSchema(), rangeBad))
}
