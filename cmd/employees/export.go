package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ogurasousui/employees-management/internal/adapters/csvfile"
	"github.com/ogurasousui/employees-management/internal/adapters/xlsx"
	"github.com/ogurasousui/employees-management/internal/core/employee"
	"github.com/ogurasousui/employees-management/internal/core/export"
	"github.com/ogurasousui/employees-management/internal/platform/config"
	"github.com/spf13/cobra"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Export all employees to CSV or XLSX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if !cmd.Flags().Changed("format") {
				format = formatFromPath(path, opts.cfg.Export.DefaultFormat)
			}
			format = strings.ToLower(format)
			if format != config.ExportFormatCSV && format != config.ExportFormatXLSX {
				return fmt.Errorf("unsupported format %q", format)
			}

			return opts.withApp(cmd, func(ctx context.Context, a *app) error {
				records, err := projectAll(ctx, a)
				if err != nil {
					return err
				}

				err = writeFile(path, func(w io.Writer) error {
					if format == config.ExportFormatXLSX {
						return xlsx.WriteRecords(w, opts.cfg.Export.SheetName, records)
					}
					return csvfile.WriteRecords(w, records)
				})
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "exported %d employees to %s\n", len(records), path)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "output format: csv or xlsx (defaults to the file extension or config)")
	return cmd
}

func projectAll(ctx context.Context, a *app) ([]export.Record, error) {
	employees, err := a.employees.ListEmployees(ctx, employee.ListEmployeesInput{})
	if err != nil {
		return nil, err
	}
	return a.projector.Project(ctx, employees)
}

func formatFromPath(path, fallback string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return config.ExportFormatXLSX
	case ".csv":
		return config.ExportFormatCSV
	default:
		return fallback
	}
}

// writeFile は fn の書き込みが成功した場合のみファイルを確定させます。
const exportFileMode = 0o644

func writeFile(path string, fn func(w io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".export-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := fn(tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	// CreateTemp は 0600 で作成するため、通常のファイル作成と同じ権限に揃える
	if err := tmp.Chmod(exportFileMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
