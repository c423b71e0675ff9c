package extract

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/report-analyzer/constants"
	"github.com/joseph-ayodele/report-analyzer/internal/entity"
)

// Regex templates tuned to anatomical phrasing in ultrasound/imaging
// reports. Each template names the organ/finding group, then a number
// and unit.
type imagingPattern struct {
	re   *regexp.Regexp
	kind string // "organ" | "kidney" | "stone" | "prostate"
}

var imagingPatterns = []imagingPattern{
	{regexp.MustCompile(`(?i)(liver|kidney|spleen|prostate|gallbladder|pancreas|aorta)\s*(?:size|length|measurement|volume|weight)?\s*[:\-]?\s*([\d.]+)\s*(cm|mm|ml|grams?)`), "organ"},
	{regexp.MustCompile(`(?i)(right\s+kidney|left\s+kidney|rt\s+kidney|lt\s+kidney)(?:\s+size)?\s*[:\-]?\s*([\d.]+)\s*(cm|mm)`), "kidney"},
	{regexp.MustCompile(`(?i)(calculus|stone|calculi|concretion|echogenic\s+foci)\s*(?:size|at)?\s*[:\-]?\s*([\d.]+)\s*(mm|cm)`), "stone"},
	{regexp.MustCompile(`(?i)(?:prostate|gland)\s*(?:size|volume|weight)?\s*[:\-]?\s*([\d.]+)\s*(ml|grams?|cc)`), "prostate"},
}

// Measurements extracts anatomical measurements with the fixed pattern
// set. Overlapping templates match the same phrase more than once, so
// matches are deduplicated by (name, value, unit).
func Measurements(text string) []entity.CandidateRecord {
	var out []entity.CandidateRecord
	seen := make(map[string]struct{})

	for _, p := range imagingPatterns {
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			var name, value, unit string
			switch p.kind {
			case "prostate":
				name = "Prostate Size"
				value, unit = m[1], m[2]
			default:
				name = titleWords(normalizeSpace(m[1])) + " Size"
				value, unit = m[2], m[3]
			}
			unit = strings.ToLower(unit)

			key := name + "_" + value + "_" + unit
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			out = append(out, entity.CandidateRecord{
				Name:   name,
				Value:  value,
				Unit:   unit,
				Method: constants.MethodPattern,
			})
		}
	}
	return out
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func titleWords(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
