package entity

import (
	"encoding/json"
	"time"
)

// ReferenceRange is a clinical normal range for a test.
type ReferenceRange struct {
	Low            float64 `json:"low"`
	High           float64 `json:"high"`
	Unit           string  `json:"unit"`
	GenderSpecific bool    `json:"gender_specific,omitempty"`
}

// Contains reports whether v falls inside the inclusive range.
func (r ReferenceRange) Contains(v float64) bool {
	return v >= r.Low && v <= r.High
}

// LearnedRange is a reference range persisted by the resolution engine,
// keyed by canonical test name in the learned store.
type LearnedRange struct {
	Low         float64   `json:"low"`
	High        float64   `json:"high"`
	Unit        string    `json:"unit"`
	Source      string    `json:"source"`
	LearnedDate time.Time `json:"learned_date"`
	Confidence  string    `json:"confidence"`
}

// Range converts the stored entry back to a ReferenceRange.
func (l LearnedRange) Range() ReferenceRange {
	return ReferenceRange{Low: l.Low, High: l.High, Unit: l.Unit}
}

// Timestamp layouts accepted for learned_date. New writes are RFC3339;
// legacy JSON files carry bare ISO-8601 with no offset and an optional
// fractional second.
var learnedDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
}

// UnmarshalJSON decodes learned_date leniently so legacy mapping files
// remain readable. An unparseable timestamp degrades to the zero time
// instead of invalidating the whole entry.
func (l *LearnedRange) UnmarshalJSON(data []byte) error {
	type alias LearnedRange
	aux := struct {
		*alias
		LearnedDate string `json:"learned_date"`
	}{alias: (*alias)(l)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	l.LearnedDate = time.Time{}
	for _, layout := range learnedDateLayouts {
		if t, err := time.Parse(layout, aux.LearnedDate); err == nil {
			l.LearnedDate = t
			break
		}
	}
	return nil
}

// Explanation is the generative fallback for tests without any
// resolvable range, keyed by the original (non-normalized) test name.
type Explanation struct {
	Description          string `json:"description"`
	EstimatedRange       string `json:"estimated_range"`
	Interpretation       string `json:"interpretation"`
	ClinicalSignificance string `json:"clinical_significance"`
	ConcernLevel         string `json:"concern_level"`
	ConsultationAdvice   string `json:"doctor_consultation"`
	AdditionalContext    string `json:"additional_context,omitempty"`
}
