// Package pipeline turns one report document into a complete analysis
// artifact: acquire text, detect the category, extract and validate
// candidate results, classify each against a resolved reference range,
// then synthesize the narrative sections.
package pipeline

import (
	"context"
	"log/slog"
	"math"

	"github.com/joseph-ayodele/report-analyzer/constants"
	"github.com/joseph-ayodele/report-analyzer/internal/common"
	"github.com/joseph-ayodele/report-analyzer/internal/entity"
	"github.com/joseph-ayodele/report-analyzer/internal/extract"
	"github.com/joseph-ayodele/report-analyzer/internal/llm"
	"github.com/joseph-ayodele/report-analyzer/internal/ocr"
	"github.com/joseph-ayodele/report-analyzer/internal/reference"
)

// extractionScoreDivisor calibrates the extraction-confidence score: a
// report yielding 30 or more unique candidates scores 1.0.
const extractionScoreDivisor = 30

// Options are per-run knobs.
type Options struct {
	// GenderOverride, when specific, wins over the gender extracted
	// from the document for reference-range selection.
	GenderOverride constants.Gender
}

// Processor wires the stages together. Collaborators are injected so
// tests can stub the external surfaces (subprocesses and the model).
type Processor struct {
	acquirer  *ocr.Extractor
	extractor *extract.Extractor
	store     reference.Store
	completer llm.Completer
	log       *slog.Logger
}

func NewProcessor(acquirer *ocr.Extractor, extractor *extract.Extractor,
	store reference.Store, completer llm.Completer, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		acquirer:  acquirer,
		extractor: extractor,
		store:     store,
		completer: completer,
		log:       logger,
	}
}

// Analyze runs the full pipeline over one PDF. The artifact is always
// usable: a fatal stage error produces a failure artifact carrying the
// error detail and a remediation hint, and the same error is returned
// so callers can set an exit status.
func (p *Processor) Analyze(ctx context.Context, pdfPath string, opts Options) (*entity.AnalysisReport, error) {
	log := p.log.With("path", pdfPath)
	log.Info("analyze.start")

	// Acquisition. Text layer first, OCR when the page is image-only.
	acq, err := p.acquirer.Acquire(ctx, pdfPath)
	if err != nil {
		log.Error("analyze.acquire_failed", "error", err)
		return failureArtifact(err), err
	}

	category := extract.DetectCategory(acq.Text)
	log.Info("analyze.acquired", "chars", len(acq.Text), "scanned", acq.IsScanned, "category", string(category))

	// Demographics. Never fatal.
	patient := extractPatient(ctx, p.completer, acq.Text, log)
	gender := patient.Gender
	if opts.GenderOverride.Specific() {
		gender = opts.GenderOverride
	}

	// Extraction: generative always, patterns for imaging content,
	// deduplicated by (name, value) with first occurrence winning.
	candidates := p.extractor.Candidates(ctx, acq.Text, category)
	llmCount := len(candidates)
	if category.UsesPatternExtraction() {
		candidates = append(candidates, extract.Measurements(acq.Text)...)
	}
	unique := dedupe(candidates)
	log.Info("analyze.extracted", "total", len(unique), "llm", llmCount, "regex", len(candidates)-llmCount)

	if len(unique) == 0 {
		log.Error("analyze.no_candidates")
		return failureArtifact(common.ErrNoTestsExtracted), common.ErrNoTestsExtracted
	}
	score := math.Min(1, float64(len(unique))/extractionScoreDivisor)

	// Validation.
	validated, issues := validate(unique)
	if len(validated) == 0 {
		log.Error("analyze.no_valid_candidates", "issues", len(issues))
		return failureArtifact(common.ErrNoValidTests), common.ErrNoValidTests
	}
	log.Info("analyze.validated", "kept", len(validated), "rejected", len(issues))

	// Classification against the four-tier reference chain. The
	// resolver is per-run so memoized misses never outlive a document.
	resolver := reference.NewResolver(p.store, p.completer, log)
	analyzed, explanations := classify(ctx, resolver, p.completer, validated, gender, acq.Text, category, log)

	// Narrative.
	n := narrator{completer: p.completer, log: log}
	summary := n.summarize(ctx, analyzed, patient, category, explanations)
	recommendations := n.recommend(ctx, analyzed, patient, category)

	report := assemble(analyzed, patient, category, explanations, issues, acq.IsScanned, score)
	report.Summary = summary
	report.Recommendations = recommendations

	log.Info("analyze.done",
		"tests", report.Stats.Total,
		"normal", report.Stats.Normal,
		"abnormal", report.Stats.Abnormal,
		"no_reference", report.Stats.NoReference)
	return report, nil
}

func dedupe(candidates []entity.CandidateRecord) []entity.CandidateRecord {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]entity.CandidateRecord, 0, len(candidates))
	for _, c := range candidates {
		key := c.DedupKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}

func failureArtifact(err error) *entity.AnalysisReport {
	return &entity.AnalysisReport{
		Success:    false,
		Message:    "Issue processing your report.",
		Details:    err.Error(),
		Suggestion: common.Remediation(err),
	}
}
