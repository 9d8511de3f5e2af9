package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ogurasousui/employees-management/internal/adapters/csvfile"
	"github.com/ogurasousui/employees-management/internal/adapters/xlsx"
	"github.com/ogurasousui/employees-management/internal/core/report"
	"github.com/spf13/cobra"
)

func newReportCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summaries over all employees",
	}

	cmd.AddCommand(
		newAgeRangesCmd(opts),
		newByPositionCmd(opts),
		newByTypeCmd(opts),
		newAgeFilterCmd(opts),
		newSummaryCmd(opts),
	)
	return cmd
}

func newAgeRangesCmd(opts *rootOptions) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "age-ranges",
		Short: "Count employees per age range",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app) error {
				records, err := projectAll(ctx, a)
				if err != nil {
					return err
				}
				buckets := report.AgeRanges(records)

				if outPath != "" {
					return writeFile(outPath, func(w io.Writer) error {
						return csvfile.WriteAgeRanges(w, buckets)
					})
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "AGE RANGE\tCOUNT")
				for _, b := range buckets {
					fmt.Fprintf(tw, "%s\t%d\n", b.Label, b.Count)
				}
				return tw.Flush()
			})
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "write the result to a CSV file")
	return cmd
}

func newByPositionCmd(opts *rootOptions) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "by-position",
		Short: "Count employees per position",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app) error {
				records, err := projectAll(ctx, a)
				if err != nil {
					return err
				}
				counts := report.CountByPosition(records)

				if outPath != "" {
					return writeFile(outPath, func(w io.Writer) error {
						return csvfile.WritePositionCounts(w, counts)
					})
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "POSITION\tCOUNT")
				for _, c := range counts {
					fmt.Fprintf(tw, "%s\t%d\n", c.Position, c.Count)
				}
				return tw.Flush()
			})
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "write the result to a CSV file")
	return cmd
}

func newByTypeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "by-type",
		Short: "Count BASE and HONORARY employees",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app) error {
				records, err := projectAll(ctx, a)
				if err != nil {
					return err
				}
				split := report.SplitByType(records)

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "BASE:     %d\n", split.Base)
				fmt.Fprintf(out, "HONORARY: %d\n", split.Honorary)
				fmt.Fprintf(out, "total:    %d\n", split.Total())
				return nil
			})
		},
	}
}

func newAgeFilterCmd(opts *rootOptions) *cobra.Command {
	var minAge, maxAge int

	cmd := &cobra.Command{
		Use:   "age-filter",
		Short: "List employees whose age is within a range",
		RunE: func(cmd *cobra.Command, args []string) error {
			if minAge > maxAge {
				return fmt.Errorf("--min (%d) must not exceed --max (%d)", minAge, maxAge)
			}

			return opts.withApp(cmd, func(ctx context.Context, a *app) error {
				records, err := projectAll(ctx, a)
				if err != nil {
					return err
				}
				filtered := report.FilterByAge(records, minAge, maxAge)
				if len(filtered) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "no employees")
					return nil
				}
				return printRecords(cmd.OutOrStdout(), filtered)
			})
		},
	}

	cmd.Flags().IntVar(&minAge, "min", 25, "minimum age (inclusive)")
	cmd.Flags().IntVar(&maxAge, "max", 35, "maximum age (inclusive)")
	return cmd
}

func newSummaryCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary FILE",
		Short: "Write all reports to an XLSX workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app) error {
				records, err := projectAll(ctx, a)
				if err != nil {
					return err
				}

				summary := xlsx.Summary{
					AgeRanges: report.AgeRanges(records),
					Positions: report.CountByPosition(records),
					TypeSplit: report.SplitByType(records),
				}
				if err := writeFile(args[0], func(w io.Writer) error {
					return xlsx.WriteSummary(w, summary)
				}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote summary of %d employees to %s\n", len(records), args[0])
				return nil
			})
		},
	}
}
