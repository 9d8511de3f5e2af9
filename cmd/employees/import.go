package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ogurasousui/employees-management/internal/adapters/csvfile"
	"github.com/ogurasousui/employees-management/internal/core/importer"
	"github.com/spf13/cobra"
)

func newImportCmd(opts *rootOptions) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import employees from a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("dry-run") {
				dryRun = opts.cfg.Import.DefaultDryRun
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer f.Close()

			rows, err := csvfile.ReadBatchRows(f)
			if err != nil {
				return err
			}

			return opts.withApp(cmd, func(ctx context.Context, a *app) error {
				outcome, err := a.reconciler.ImportRows(ctx, rows, importer.Options{DryRun: dryRun})
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if outcome.DryRun {
					fmt.Fprintln(out, "dry run: no changes were saved")
				}
				fmt.Fprintf(out, "inserted: %d\nfailed: %d\n", outcome.Inserted, outcome.Failed)
				for _, msg := range outcome.Errors {
					fmt.Fprintf(out, "  %s\n", msg)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate the file without saving anything")
	return cmd
}
