package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/report-analyzer/constants"
)

func TestCanonicalName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Glucose", "glucose"},
		{"FBS", "glucose"},
		{"Fasting Blood Sugar", "glucose"},
		{"Hb", "hemoglobin"},
		{"Haemoglobin", "hemoglobin"},
		{"Hemoglobin (Hb)", "hemoglobin"},
		{"Glucose:", "glucose"},
		{"  blood   sugar  ", "glucose"},
		{"Rt Kidney", "right kidney size"},
		{"Rt Kidney Size", "right kidney size"},
		{"Something Novel", "something novel"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanonicalName(tt.in), "input %q", tt.in)
	}
}

func TestStandardLookup_Basic(t *testing.T) {
	r, ok := StandardLookup("glucose", constants.GenderUnknown)
	require.True(t, ok)
	assert.Equal(t, 70.0, r.Low)
	assert.Equal(t, 99.0, r.High)
	assert.Equal(t, "mg/dL", r.Unit)
}

func TestStandardLookup_GenderSpecific(t *testing.T) {
	male, ok := StandardLookup("hemoglobin", constants.GenderMale)
	require.True(t, ok)
	assert.Equal(t, 13.5, male.Low)
	assert.Equal(t, 17.5, male.High)

	female, ok := StandardLookup("hemoglobin", constants.GenderFemale)
	require.True(t, ok)
	assert.Equal(t, 12.0, female.Low)
	assert.Equal(t, 15.5, female.High)

	// Unknown gender falls back to the unisex entry.
	base, ok := StandardLookup("hemoglobin", constants.GenderUnknown)
	require.True(t, ok)
	assert.Equal(t, 12.0, base.Low)
	assert.Equal(t, 15.5, base.High)
}

func TestStandardLookup_UnderscoreFallback(t *testing.T) {
	// Imaging entries are keyed with underscores; lookups by spaced
	// name still resolve.
	r, ok := StandardLookup("spleen size", constants.GenderUnknown)
	require.True(t, ok)
	assert.Equal(t, "cm", r.Unit)
}

func TestStandardLookup_Miss(t *testing.T) {
	_, ok := StandardLookup("qualitative hcg interpretation", constants.GenderUnknown)
	assert.False(t, ok)
}
