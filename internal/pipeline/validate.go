package pipeline

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/joseph-ayodele/report-analyzer/internal/entity"
	"github.com/joseph-ayodele/report-analyzer/internal/reference"
)

// Tokens that mark an extracted name as document furniture rather than
// a measurement. Substring match against the lowercased name.
var nameDenylist = []string{
	"page", "date", "time", "patient", "doctor", "hospital",
	"phone", "address", "name", "age", "gender", "report",
	"signature", "stamp", "normal", "abnormal", "within limits",
	"unremarkable", "finding", "impression", "conclusion",
}

// Verdict words that sometimes leak into the value field.
var valueDenylist = []string{"normal", "abnormal", "within limits"}

var hasDigit = regexp.MustCompile(`\d`)

// plausible applies the structural filter for one candidate: non-empty
// fields, no furniture tokens, a digit somewhere in the value, name
// length within bounds.
func plausible(name, value string) bool {
	if name == "" || value == "" {
		return false
	}

	nameLower := strings.ToLower(name)
	for _, fp := range nameDenylist {
		if strings.Contains(nameLower, fp) {
			return false
		}
	}

	valueLower := strings.ToLower(value)
	for _, fp := range valueDenylist {
		if strings.Contains(valueLower, fp) {
			return false
		}
	}

	if !hasDigit.MatchString(value) {
		return false
	}
	if len(name) < 2 || len(name) > 100 {
		return false
	}
	return true
}

// validate filters candidates down to plausible records and attaches
// the canonical lookup key. Rejections are reported as human-readable
// issues, positionally numbered against the candidate list.
func validate(candidates []entity.CandidateRecord) ([]entity.ValidatedRecord, []string) {
	validated := make([]entity.ValidatedRecord, 0, len(candidates))
	var issues []string

	for i, c := range candidates {
		name := strings.TrimSpace(c.Name)
		value := strings.TrimSpace(c.Value)

		if name == "" || value == "" {
			issues = append(issues, fmt.Sprintf("Entry %d: Missing name or value", i+1))
			continue
		}
		if !plausible(name, value) {
			issues = append(issues, fmt.Sprintf("Entry %d: Invalid - %s", i+1, name))
			continue
		}

		validated = append(validated, entity.ValidatedRecord{
			Name:          name,
			Value:         value,
			Unit:          strings.TrimSpace(c.Unit),
			DeclaredRange: strings.TrimSpace(c.DeclaredRange),
			Method:        c.Method,
			CanonicalName: reference.CanonicalName(name),
		})
	}
	return validated, issues
}
