package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/report-analyzer/constants"
	"github.com/joseph-ayodele/report-analyzer/internal/common"
	"github.com/joseph-ayodele/report-analyzer/internal/export"
	"github.com/joseph-ayodele/report-analyzer/internal/extract"
	"github.com/joseph-ayodele/report-analyzer/internal/llm/openai"
	"github.com/joseph-ayodele/report-analyzer/internal/ocr"
	"github.com/joseph-ayodele/report-analyzer/internal/pipeline"
)

var (
	analyzeGender string
	analyzeOutput string
	analyzeXLSX   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [report.pdf]",
	Short: "Analyze one report PDF",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeGender, "gender", "g", "", "Patient gender hint (male/female), overrides the document")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "Output directory (default from OUTPUT_DIR)")
	analyzeCmd.Flags().BoolVar(&analyzeXLSX, "xlsx", false, "Also write an XLSX results sheet")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	pdfPath := args[0]
	if !constants.IsPDFExt(filepath.Ext(pdfPath)) {
		return fmt.Errorf("unsupported file type %q: only PDF is supported", filepath.Ext(pdfPath))
	}
	if _, err := os.Stat(pdfPath); err != nil {
		return fmt.Errorf("cannot read %s: %w", pdfPath, err)
	}

	cfg := common.LoadConfig()
	if analyzeOutput != "" {
		cfg.Export.OutputDir = analyzeOutput
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := slog.Default()

	store, err := openStore(cfg.Store)
	if err != nil {
		return fmt.Errorf("open learned-range store: %w", err)
	}
	defer store.Close()

	completer := openai.NewClient(openai.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger)

	acquirer := ocr.NewExtractor(ocr.Config{
		Pdftotext:     cfg.OCR.Pdftotext,
		Pdftoppm:      cfg.OCR.Pdftoppm,
		Tesseract:     cfg.OCR.Tesseract,
		TesseractLang: cfg.OCR.TesseractLang,
		DPI:           cfg.OCR.DPI,
		MaxPages:      cfg.OCR.MaxPages,
		TessdataDir:   cfg.OCR.TessdataDir,
	}, logger)

	processor := pipeline.NewProcessor(acquirer, extract.NewExtractor(completer, logger), store, completer, logger)

	report, runErr := processor.Analyze(cmd.Context(), pdfPath, pipeline.Options{
		GenderOverride: constants.ParseGender(analyzeGender),
	})

	exporter := export.NewService(cfg.Export.OutputDir, logger)
	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath)) + "_analysis"

	jsonPath, err := exporter.WriteJSON(report, base)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "analysis written:", jsonPath)

	if analyzeXLSX && report.Success {
		xlsxPath, err := exporter.WriteXLSX(report, base)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "results sheet written:", xlsxPath)
	}

	if runErr != nil {
		return fmt.Errorf("analysis failed: %w", runErr)
	}
	return nil
}
