package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/ogurasousui/employees-management/internal/core/position"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newPositionCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "position",
		Short: "Manage positions",
	}

	cmd.AddCommand(
		newPositionAddCmd(opts),
		newPositionUpdateCmd(opts),
		newPositionDeleteCmd(opts),
		newPositionListCmd(opts),
	)
	return cmd
}

func newPositionAddCmd(opts *rootOptions) *cobra.Command {
	var baseSalary string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			salary, err := decimal.NewFromString(baseSalary)
			if err != nil {
				return fmt.Errorf("base_salary: %w", err)
			}

			return opts.withApp(cmd, func(ctx context.Context, a *app) error {
				created, err := a.positions.CreatePosition(ctx, position.CreatePositionInput{
					Name:       args[0],
					BaseSalary: salary,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created position %s (%s)\n", created.Name, created.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&baseSalary, "base-salary", "0", "base hourly salary")
	return cmd
}

func newPositionUpdateCmd(opts *rootOptions) *cobra.Command {
	var name, baseSalary string

	cmd := &cobra.Command{
		Use:   "update NAME",
		Short: "Rename a position or change its base salary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in position.UpdatePositionInput
			if cmd.Flags().Changed("name") {
				in.Name = &name
			}
			if cmd.Flags().Changed("base-salary") {
				salary, err := decimal.NewFromString(baseSalary)
				if err != nil {
					return fmt.Errorf("base_salary: %w", err)
				}
				in.BaseSalary = &salary
			}

			return opts.withApp(cmd, func(ctx context.Context, a *app) error {
				current, err := a.positions.FindPositionByName(ctx, args[0])
				if err != nil {
					return err
				}
				in.ID = current.ID

				updated, err := a.positions.UpdatePosition(ctx, in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "updated position %s (%s)\n", updated.Name, updated.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&baseSalary, "base-salary", "", "new base hourly salary")
	return cmd
}

func newPositionDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a position that no employee references",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app) error {
				current, err := a.positions.FindPositionByName(ctx, args[0])
				if err != nil {
					return err
				}
				if err := a.positions.DeletePosition(ctx, position.DeletePositionInput{ID: current.ID}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted position %s\n", current.Name)
				return nil
			})
		},
	}
}

func newPositionListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List positions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app) error {
				positions, err := a.positions.ListPositions(ctx)
				if err != nil {
					return err
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "NAME\tBASE SALARY")
				for _, p := range positions {
					fmt.Fprintf(tw, "%s\t%s\n", p.Name, p.BaseSalary.StringFixed(2))
				}
				return tw.Flush()
			})
		},
	}
}
