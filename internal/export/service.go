// Package export renders an analysis artifact into shareable files.
package export

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/report-analyzer/internal/entity"
)

// Service produces the on-disk artifacts for one completed analysis.
type Service struct {
	outputDir string
	logger    *slog.Logger
}

func NewService(outputDir string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if outputDir == "" {
		outputDir = "."
	}
	return &Service{outputDir: outputDir, logger: logger}
}

// WriteJSON writes the full artifact as pretty-printed JSON and returns
// the path.
func (s *Service) WriteJSON(report *entity.AnalysisReport, baseName string) (string, error) {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(s.outputDir, baseName+".json")
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	s.logger.Info("export.json.ok", "path", path, "bytes", len(data))
	return path, nil
}

// WriteXLSX renders per-test results into an XLSX workbook and returns
// the path. Rows keep the artifact's record order.
func (s *Service) WriteXLSX(report *entity.AnalysisReport, baseName string) (string, error) {
	start := time.Now()

	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Results"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return "", err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Test",
		"Value",
		"Unit",
		"Status",
		"Reference Range",
		"Source",
		"Confidence",
		"Analysis",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range report.Records {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, r.Name)
		write(2, r.Value)
		write(3, r.Unit)
		write(4, strings.ToUpper(string(r.Status)))
		write(5, r.Reference)
		write(6, string(r.Source))
		write(7, string(r.Confidence))
		write(8, truncate(r.Analysis, 140))
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 28)
	_ = f.SetColWidth(sheet, "B", "C", 12)
	_ = f.SetColWidth(sheet, "D", "D", 14)
	_ = f.SetColWidth(sheet, "E", "E", 22)
	_ = f.SetColWidth(sheet, "F", "G", 14)
	_ = f.SetColWidth(sheet, "H", "H", 60)

	path := filepath.Join(s.outputDir, baseName+".xlsx")
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"path", path,
		"rows", len(report.Records),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return path, nil
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
