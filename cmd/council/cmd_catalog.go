package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/unbobounbobo/press-council/internal/catalog"
)

func newCatalogCommand() *cobra.Command {
	var catalogFile string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Show the backends, personas, and presets",
		Long: `Show the catalog the pipeline draws from: writer/editor backends,
journalist personas, and the named presets with their cost estimates.

With --catalog, entries from the overlay file are merged over the builtin
catalog before printing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load(catalogFile)
			if err != nil {
				return fmt.Errorf("failed to load catalog: %w", err)
			}
			printCatalog(cmd.OutOrStdout(), cat)
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogFile, "catalog", "council.yaml", "Catalog overlay file (missing file uses the builtin catalog)")

	return cmd
}

//nolint:errcheck // display-only writes; errors are not actionable
func printCatalog(w io.Writer, cat *catalog.Catalog) {
	fmt.Fprintln(w, "BACKENDS")
	fmt.Fprintf(w, "  %s %s %s %s\n",
		padRight("ID", 8), padRight("Name", 20), padRight("Model", 32), "Cost")
	for _, b := range cat.Backends() {
		fmt.Fprintf(w, "  %s %s %s %.1fx\n",
			padRight(b.ID, 8),
			padRight(truncateName(b.Name, 20), 20),
			padRight(truncateName(b.Model, 32), 32),
			b.CostFactor)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "PERSONAS")
	fmt.Fprintf(w, "  %s %s %s %s\n",
		padRight("ID", 10), padRight("Name", 20), padRight("Outlet", 22), "Focus")
	for _, p := range cat.Profiles() {
		fmt.Fprintf(w, "  %s %s %s %s\n",
			padRight(p.ID, 10),
			padRight(truncateName(p.Name, 20), 20),
			padRight(truncateName(p.Outlet, 22), 22),
			strings.Join(p.FocusAreas, ", "))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "PRESETS")
	for _, p := range cat.Presets() {
		cost := cat.EstimateCost(p.Writers, p.Assignments, p.Editor)
		minutes := cat.EstimateMinutes(p.Writers, p.Assignments)
		fmt.Fprintf(w, "  %s %s\n", padRight(p.ID, 10), p.Name)
		fmt.Fprintf(w, "  %s writers=%s editor=%s evaluations=%d (~%d min, ~%d units)\n",
			padRight("", 10),
			strings.Join(p.Writers, ","), p.Editor, len(p.Assignments), minutes, cost)
	}
}
