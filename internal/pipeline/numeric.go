package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

var firstNumber = regexp.MustCompile(`(\d+\.?\d*)`)

// parseNumeric coerces an extracted value string to a float. A value
// expressed as a range ("70-99") coerces to its midpoint, matching how
// reports quote span results. Returns nil when no number is present;
// the caller classifies those as unknown rather than failing.
func parseNumeric(value string) *float64 {
	cleaned := strings.TrimSpace(strings.ReplaceAll(value, ",", ""))
	if cleaned == "" {
		return nil
	}

	if strings.Contains(cleaned, "-") && !strings.HasPrefix(cleaned, "-") {
		parts := strings.SplitN(cleaned, "-", 2)
		if len(parts) == 2 {
			lo := firstNumber.FindString(parts[0])
			hi := firstNumber.FindString(parts[1])
			if lo != "" && hi != "" {
				l, errL := strconv.ParseFloat(lo, 64)
				h, errH := strconv.ParseFloat(hi, 64)
				if errL == nil && errH == nil {
					mid := (l + h) / 2
					return &mid
				}
			}
		}
	}

	if m := firstNumber.FindString(cleaned); m != "" {
		if v, err := strconv.ParseFloat(m, 64); err == nil {
			return &v
		}
	}
	return nil
}
