// Package ocr acquires raw text from a report document. It tries the
// PDF's embedded text layer first; when the document is image-only it
// rasterizes each page and runs optical character recognition.
package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joseph-ayodele/report-analyzer/internal/common"
)

// Below this many characters of embedded text a PDF is treated as a
// scanned (image-only) document.
const scannedTextThreshold = 100

type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	TesseractLang string // default "eng"
	DPI           int    // rasterization DPI for scanned PDFs, default 300
	MaxPages      int    // 0 = no limit

	TessdataDir string
}

// AcquisitionResult is the outcome of text acquisition for one document.
type AcquisitionResult struct {
	Text      string
	Pages     int
	IsScanned bool
	Method    string // "pdf-text" | "pdf-ocr"
	Language  string
	Duration  time.Duration
	Warnings  []string
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	return &Extractor{cfg: cfg, runner: execRunner{}, logger: logger}
}

// WithRunner swaps the command runner; used by tests.
func (e *Extractor) WithRunner(r Runner) *Extractor {
	e.runner = r
	return e
}

// Acquire extracts the document's text. A short or empty text layer
// switches to the OCR path and marks the result as scanned. When OCR is
// needed but tesseract is not installed, the error is
// common.ErrOCRUnavailable so the caller can fail with a specific
// remediation instead of silently producing empty output.
func (e *Extractor) Acquire(ctx context.Context, path string) (AcquisitionResult, error) {
	start := time.Now()
	e.logger.Debug("ocr.acquire.start", "path", path)

	text, pages, warns, err := e.pdfToText(ctx, path)
	if err == nil && len(strings.TrimSpace(text)) >= scannedTextThreshold {
		res := AcquisitionResult{
			Text:     Normalize(text),
			Pages:    pages,
			Method:   "pdf-text",
			Warnings: warns,
			Duration: time.Since(start),
		}
		e.logger.Info("ocr.acquire.ok", "method", res.Method, "pages", res.Pages, "chars", len(res.Text))
		return res, nil
	}
	if err != nil {
		warns = append(warns, fmt.Sprintf("pdftotext: %v", err))
	}

	// Image-only document: OCR path.
	e.logger.Info("ocr.acquire.scanned_detected", "path", path, "text_chars", len(strings.TrimSpace(text)))

	if _, lerr := e.runner.LookPath(e.cfg.Tesseract); lerr != nil {
		return AcquisitionResult{IsScanned: true, Warnings: warns, Duration: time.Since(start)},
			fmt.Errorf("%w: %s not found", common.ErrOCRUnavailable, e.cfg.Tesseract)
	}

	ocrText, ocrPages, ocrWarns, err := e.pdfToOCR(ctx, path)
	warns = append(warns, ocrWarns...)
	if err != nil {
		return AcquisitionResult{IsScanned: true, Warnings: warns, Duration: time.Since(start)},
			fmt.Errorf("%w: %v", common.ErrUnreadableDocument, err)
	}
	if strings.TrimSpace(ocrText) == "" {
		return AcquisitionResult{IsScanned: true, Pages: ocrPages, Warnings: warns, Duration: time.Since(start)},
			common.ErrUnreadableDocument
	}

	res := AcquisitionResult{
		Text:      Normalize(ocrText),
		Pages:     ocrPages,
		IsScanned: true,
		Method:    "pdf-ocr",
		Language:  e.cfg.TesseractLang,
		Warnings:  warns,
		Duration:  time.Since(start),
	}
	e.logger.Info("ocr.acquire.ok", "method", res.Method, "pages", res.Pages, "chars", len(res.Text))
	return res, nil
}
