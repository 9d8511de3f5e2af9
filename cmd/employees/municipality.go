package main

import (
	"context"
	"fmt"

	"github.com/ogurasousui/employees-management/internal/core/municipality"
	"github.com/spf13/cobra"
)

func newMunicipalityCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "municipality",
		Short: "Manage municipalities",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add NAME",
			Short: "Add a municipality",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.withApp(cmd, func(ctx context.Context, a *app) error {
					created, err := a.municipalities.CreateMunicipality(ctx, municipality.CreateMunicipalityInput{Name: args[0]})
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "created municipality %s (%s)\n", created.Name, created.ID)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "rename NAME NEW_NAME",
			Short: "Rename a municipality",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.withApp(cmd, func(ctx context.Context, a *app) error {
					current, err := a.municipalities.FindMunicipalityByName(ctx, args[0])
					if err != nil {
						return err
					}
					renamed, err := a.municipalities.RenameMunicipality(ctx, municipality.RenameMunicipalityInput{ID: current.ID, Name: args[1]})
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "renamed municipality %s to %s\n", current.Name, renamed.Name)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "delete NAME",
			Short: "Delete a municipality that no employee references",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.withApp(cmd, func(ctx context.Context, a *app) error {
					current, err := a.municipalities.FindMunicipalityByName(ctx, args[0])
					if err != nil {
						return err
					}
					if err := a.municipalities.DeleteMunicipality(ctx, municipality.DeleteMunicipalityInput{ID: current.ID}); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "deleted municipality %s\n", current.Name)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List municipalities",
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.withApp(cmd, func(ctx context.Context, a *app) error {
					list, err := a.municipalities.ListMunicipalities(ctx)
					if err != nil {
						return err
					}
					for _, m := range list {
						fmt.Fprintln(cmd.OutOrStdout(), m.Name)
					}
					return nil
				})
			},
		},
	)
	return cmd
}
