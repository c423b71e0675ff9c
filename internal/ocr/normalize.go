package ocr

import (
	"regexp"
	"strings"
)

var (
	reBlankRuns = regexp.MustCompile(`\n{3,}`)
	reLineNoise = regexp.MustCompile(`[|¦~_]{3,}`)
)

// Normalize cleans up decoder/OCR artifacts without touching content:
// unifies line endings, strips repeated box-drawing noise, collapses
// runs of blank lines.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = reLineNoise.ReplaceAllString(s, "")
	s = reBlankRuns.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
