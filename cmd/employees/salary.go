package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ogurasousui/employees-management/internal/core/salary"
	"github.com/spf13/cobra"
)

func newSalaryCmd(opts *rootOptions) *cobra.Command {
	var years, extraHours string

	cmd := &cobra.Command{
		Use:   "salary NSS",
		Short: "Calculate the salary of an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nss, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid nss %q: %w", args[0], err)
			}

			var params salary.PeriodParams
			if cmd.Flags().Changed("years") {
				params.YearsOfService = &years
			}
			if cmd.Flags().Changed("extra-hours") {
				params.ExtraHours = &extraHours
			}

			return opts.withApp(cmd, func(ctx context.Context, a *app) error {
				result, err := a.salaries.CalculateForNSS(ctx, nss, params)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				b := result.Breakdown
				fmt.Fprintf(out, "employee:   %s (nss %d)\n", result.Employee.FullName(), result.Employee.NSS)
				fmt.Fprintf(out, "type:       %s\n", b.Type)
				fmt.Fprintf(out, "base:       %s\n", b.Base.StringFixed(2))
				fmt.Fprintf(out, "multiplier: %s\n", b.Multiplier.String())
				fmt.Fprintf(out, "salary:     %s\n", b.Display())
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&years, "years", "", "years of service (BASE employees)")
	cmd.Flags().StringVar(&extraHours, "extra-hours", "", "extra hours (HONORARY employees, default 0)")
	return cmd
}
