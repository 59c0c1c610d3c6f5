package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/unbobounbobo/press-council/internal/catalog"
	"github.com/unbobounbobo/press-council/internal/wizard"
)

func newNewCommand() *cobra.Command {
	var newCatalog string

	cmd := &cobra.Command{
		Use:   "new <request.json>",
		Short: "Compose a run request interactively",
		Long: `Compose a run request with an interactive wizard and save it as JSON.

The wizard walks through the announcement text, preset, writers, editor,
and evaluation strictness, with choices drawn from the catalog. The saved
file is consumed by "council run --request".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outPath := args[0]

			cat, err := catalog.Load(newCatalog)
			if err != nil {
				return fmt.Errorf("failed to load catalog: %w", err)
			}

			spec, err := wizard.RunRequestWizard(cmd.InOrStdin(), cmd.OutOrStdout(), cat)
			if err != nil {
				return err
			}

			data, err := wizard.GenerateRequest(spec)
			if err != nil {
				return err
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return fmt.Errorf("failed to write request: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Request saved: %s\n", outPath)                  //nolint:errcheck
			fmt.Fprintf(cmd.OutOrStdout(), "Run it with: council run --request %s\n", outPath) //nolint:errcheck
			return nil
		},
	}

	cmd.Flags().StringVar(&newCatalog, "catalog", "council.yaml", "Catalog overlay file (missing file uses the builtin catalog)")

	return cmd
}
