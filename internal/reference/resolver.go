package reference

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

// docExcerptLimit bounds the document excerpt sent with the
// in-document extraction prompt.
const docExcerptLimit = 3000

// Resolution is the outcome of one reference lookup.
type Resolution struct {
	Range  *entity.ReferenceRange
	Source constants.ReferenceSource
}

// Resolver walks the four-tier fallback chain for one analysis run.
// Results are memoized by canonical name for the lifetime of the
// Resolver, so a test repeated in one document costs at most one
// generative call. A fresh Resolver is built per run.
type Resolver struct {
	store     Store
	completer llm.Completer
	log       *slog.Logger
	memo      map[string]Resolution
}

func NewResolver(store Store, completer llm.Completer, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{
		store:     store,
		completer: completer,
		log:       log,
		memo:      make(map[string]Resolution),
	}
}

// Resolve returns the reference range for a canonical test name, or a
// SourceNone resolution when every tier misses. A miss is a valid
// outcome, never an error: the caller proceeds to generative
// explanation. docText is the full report text for tier 3.
func (r *Resolver) Resolve(ctx context.Context, canonical string, gender constants.Gender, docText string) Resolution {
	if res, ok := r.memo[canonical]; ok {
		return res
	}
	res := r.resolve(ctx, canonical, gender, docText)
	r.memo[canonical] = res
	return res
}

func (r *Resolver) resolve(ctx context.Context, canonical string, gender constants.Gender, docText string) Resolution {
	// Tier 1: compiled standard table.
	if rr, ok := StandardLookup(canonical, gender); ok {
		return Resolution{Range: &rr, Source: constants.SourceStandard}
	}

	// Tier 2: learned store, read fresh so writes from concurrent
	// analyses are visible.
	if lr, ok, err := r.store.Get(ctx, canonical); err != nil {
		// Store trouble reads as "no learned ranges yet".
		r.log.Warn("reference.learned.read_failed", "test", canonical, "error", err)
	} else if ok {
		rr := lr.Range()
		return Resolution{Range: &rr, Source: constants.SourceLearned}
	}

	// Tier 3: in-document extraction, written through to the learned
	// store before returning so the very next unresolved occurrence
	// hits tier 2.
	if rr, ok := r.extractFromDocument(ctx, canonical, docText); ok {
		if err := r.store.Upsert(ctx, canonical, entity.LearnedRange{
			Low:        rr.Low,
			High:       rr.High,
			Unit:       rr.Unit,
			Source:     "extracted_from_report",
			Confidence: "medium",
		}); err != nil {
			r.log.Warn("reference.learned.write_failed", "test", canonical, "error", err)
		} else {
			r.log.Info("reference.learned.saved", "test", canonical, "low", rr.Low, "high", rr.High, "unit", rr.Unit)
		}
		return Resolution{Range: &rr, Source: constants.SourceExtracted}
	}

	// Tier 4: miss.
	return Resolution{Source: constants.SourceNone}
}

// rangeResult mirrors the strict JSON shape requested from the
// generative capability in tier 3.
type rangeResult struct {
	Found      bool     `json:"found"`
	Low        *float64 `json:"low"`
	High       *float64 `json:"high"`
	Unit       *string  `json:"unit"`
	Confidence string   `json:"confidence"`
}

func (r *Resolver) extractFromDocument(ctx context.Context, canonical, docText string) (entity.ReferenceRange, bool) {
	if r.completer == nil || strings.TrimSpace(docText) == "" {
		return entity.ReferenceRange{}, false
	}

	r.log.Info("reference.extract.start", "test", canonical)

	resp, err := r.completer.Complete(ctx, buildRangePrompt(canonical, docText))
	if err != nil {
		r.log.Warn("reference.extract.call_failed", "test", canonical, "error", err)
		return entity.ReferenceRange{}, false
	}

	raw, err := llm.FirstJSONObject(resp)
	if err != nil {
		r.log.Warn("reference.extract.no_json", "test", canonical, "error", err)
		return entity.ReferenceRange{}, false
	}
	if err := llm.ValidateJSONAgainstSchema(llm.RangeResultSchema(), raw); err != nil {
		r.log.Warn("reference.extract.schema_invalid", "test", canonical, "error", err)
		return entity.ReferenceRange{}, false
	}

	var res rangeResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return entity.ReferenceRange{}, false
	}
	if !res.Found || res.Low == nil || res.High == nil {
		return entity.ReferenceRange{}, false
	}

	unit := ""
	if res.Unit != nil {
		unit = strings.TrimSpace(*res.Unit)
	}
	return entity.ReferenceRange{Low: *res.Low, High: *res.High, Unit: unit}, true
}

func buildRangePrompt(testName, docText string) string {
	excerpt := docText
	if len(excerpt) > docExcerptLimit {
		excerpt = excerpt[:docExcerptLimit]
	}
	return fmt.Sprintf(`Look at this medical report and find if there's a reference range mentioned for %q.

Report excerpt:
%s

Search for patterns like:
- "Normal range: X-Y"
- "Reference: X-Y"
- "(X-Y)" next to the test
- "Normal: X-Y"

Return JSON:
{
  "found": true/false,
  "low": <number or null>,
  "high": <number or null>,
  "unit": "<unit or null>",
  "confidence": "high"/"medium"/"low"
}

If you cannot find a reference range for this specific test, return found: false.
Return ONLY valid JSON.`, testName, excerpt)
}
