package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/report-analyzer/internal/common"
	"github.com/joseph-ayodele/report-analyzer/internal/reference"
)

var rootCmd = &cobra.Command{
	Use:   "analyzer",
	Short: "Analyze medical lab and imaging reports",
	Long: `Extracts test results from medical report PDFs, classifies each
against clinical reference ranges, and writes a patient-facing analysis.`,
	SilenceUsage: true,
}

// openStore builds the learned-range store for the configured backend.
func openStore(cfg common.StoreConfig) (reference.Store, error) {
	switch cfg.Backend {
	case "json":
		return reference.NewJSONFileStore(cfg.Path), nil
	case "sqlite", "":
		return reference.NewSQLiteStore(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown reference store backend %q", cfg.Backend)
	}
}
