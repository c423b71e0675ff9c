package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/report-analyzer/internal/common"
	"github.com/joseph-ayodele/report-analyzer/internal/reference"
)

var rangesCmd = &cobra.Command{
	Use:   "ranges",
	Short: "Inspect and migrate learned reference ranges",
}

var rangesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every learned reference range",
	Args:  cobra.NoArgs,
	RunE:  runRangesList,
}

var rangesImportCmd = &cobra.Command{
	Use:   "import [legacy.json]",
	Short: "Import a legacy JSON range file into the configured store",
	Args:  cobra.ExactArgs(1),
	RunE:  runRangesImport,
}

func init() {
	rangesCmd.AddCommand(rangesListCmd)
	rangesCmd.AddCommand(rangesImportCmd)
	rootCmd.AddCommand(rangesCmd)
}

func runRangesList(cmd *cobra.Command, args []string) error {
	cfg := common.LoadConfig()

	store, err := openStore(cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	all, err := store.All(cmd.Context())
	if err != nil {
		return fmt.Errorf("read learned ranges: %w", err)
	}
	if len(all) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no learned ranges yet")
		return nil
	}

	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TEST\tLOW\tHIGH\tUNIT\tSOURCE\tLEARNED")
	for _, name := range names {
		lr := all[name]
		fmt.Fprintf(w, "%s\t%g\t%g\t%s\t%s\t%s\n",
			name, lr.Low, lr.High, lr.Unit, lr.Source, lr.LearnedDate.Format("2006-01-02"))
	}
	return w.Flush()
}

func runRangesImport(cmd *cobra.Command, args []string) error {
	cfg := common.LoadConfig()

	dst, err := openStore(cfg.Store)
	if err != nil {
		return err
	}
	defer dst.Close()

	src := reference.NewJSONFileStore(args[0])
	all, err := src.All(cmd.Context())
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}
	if len(all) == 0 {
		return fmt.Errorf("%s contains no learned ranges", args[0])
	}

	for name, lr := range all {
		if err := dst.Upsert(cmd.Context(), name, lr); err != nil {
			return fmt.Errorf("import %q: %w", name, err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "imported %d learned ranges\n", len(all))
	return nil
}
