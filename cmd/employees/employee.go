package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ogurasousui/employees-management/internal/core/employee"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type employeeFlags struct {
	nss          int64
	firstName    string
	lastNameF    string
	lastNameM    string
	birthDate    string
	empType      string
	position     string
	municipality string
	hourlyRate   string
	hoursWorked  int
}

func (f *employeeFlags) register(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&f.nss, "nss", 0, "social security number")
	cmd.Flags().StringVar(&f.firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&f.lastNameF, "last-name-f", "", "paternal last name")
	cmd.Flags().StringVar(&f.lastNameM, "last-name-m", "", "maternal last name")
	cmd.Flags().StringVar(&f.birthDate, "birth-date", "", "birth date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.empType, "type", "", "employee type: BASE or HONORARY")
	cmd.Flags().StringVar(&f.position, "position", "", "position name")
	cmd.Flags().StringVar(&f.municipality, "municipality", "", "municipality name")
	cmd.Flags().StringVar(&f.hourlyRate, "hourly-rate", "", "hourly rate (HONORARY)")
	cmd.Flags().IntVar(&f.hoursWorked, "hours-worked", 0, "hours worked per week (HONORARY)")
}

func newEmployeeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employee",
		Short: "Manage employees",
	}

	cmd.AddCommand(
		newEmployeeAddCmd(opts),
		newEmployeeUpdateCmd(opts),
		newEmployeeDeleteCmd(opts),
		newEmployeeGetCmd(opts),
		newEmployeeListCmd(opts),
	)
	return cmd
}

func newEmployeeAddCmd(opts *rootOptions) *cobra.Command {
	var f employeeFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an employee",
		RunE: func(cmd *cobra.Command, args []string) error {
			birth, err := employee.ParseDate(f.birthDate)
			if err != nil {
				return fmt.Errorf("birth_date: %w", err)
			}

			in := employee.CreateEmployeeInput{
				NSS:       f.nss,
				FirstName: f.firstName,
				LastNameF: f.lastNameF,
				LastNameM: f.lastNameM,
				BirthDate: birth,
				Type:      f.empType,
			}
			if cmd.Flags().Changed("hourly-rate") {
				rate, err := decimal.NewFromString(f.hourlyRate)
				if err != nil {
					return fmt.Errorf("hourly_rate: %w: %v", employee.ErrFormat, err)
				}
				in.HourlyRate = &rate
			}
			if cmd.Flags().Changed("hours-worked") {
				in.HoursWorked = &f.hoursWorked
			}

			return opts.withApp(cmd, func(ctx context.Context, a *app) error {
				if in.PositionID, err = positionIDByName(ctx, a, f.position); err != nil {
					return err
				}
				if in.MunicipalityID, err = municipalityIDByName(ctx, a, f.municipality); err != nil {
					return err
				}

				created, err := a.employees.CreateEmployee(ctx, in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created employee %s (nss %d)\n", created.ID, created.NSS)
				return nil
			})
		},
	}

	f.register(cmd)
	_ = cmd.MarkFlagRequired("nss")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("position")
	_ = cmd.MarkFlagRequired("municipality")
	return cmd
}

func newEmployeeUpdateCmd(opts *rootOptions) *cobra.Command {
	var f employeeFlags

	cmd := &cobra.Command{
		Use:   "update NSS",
		Short: "Update an employee identified by NSS",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := parseNSSArg(args[0])
			if err != nil {
				return err
			}

			var in employee.UpdateEmployeeInput
			flags := cmd.Flags()
			if flags.Changed("nss") {
				in.NSS = &f.nss
			}
			if flags.Changed("first-name") {
				in.FirstName = &f.firstName
			}
			if flags.Changed("last-name-f") {
				in.LastNameF = &f.lastNameF
			}
			if flags.Changed("last-name-m") {
				in.LastNameM = &f.lastNameM
			}
			if flags.Changed("birth-date") {
				in.BirthDate = &f.birthDate
			}
			if flags.Changed("type") {
				in.Type = &f.empType
			}
			if flags.Changed("hourly-rate") {
				rate, err := decimal.NewFromString(f.hourlyRate)
				if err != nil {
					return fmt.Errorf("hourly_rate: %w: %v", employee.ErrFormat, err)
				}
				in.HourlyRate = &rate
			}
			if flags.Changed("hours-worked") {
				in.HoursWorked = &f.hoursWorked
			}

			return opts.withApp(cmd, func(ctx context.Context, a *app) error {
				emp, err := a.employees.FindEmployeeByNSS(ctx, current)
				if err != nil {
					return err
				}
				in.ID = emp.ID

				if flags.Changed("position") {
					id, err := positionIDByName(ctx, a, f.position)
					if err != nil {
						return err
					}
					in.PositionID = &id
				}
				if flags.Changed("municipality") {
					id, err := municipalityIDByName(ctx, a, f.municipality)
					if err != nil {
						return err
					}
					in.MunicipalityID = &id
				}

				updated, err := a.employees.UpdateEmployee(ctx, in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "updated employee %s (nss %d)\n", updated.ID, updated.NSS)
				return nil
			})
		},
	}

	f.register(cmd)
	return cmd
}

func newEmployeeDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete NSS",
		Short: "Delete an employee identified by NSS",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nss, err := parseNSSArg(args[0])
			if err != nil {
				return err
			}

			return opts.withApp(cmd, func(ctx context.Context, a *app) error {
				emp, err := a.employees.DeleteEmployeeByNSS(ctx, nss)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted employee %s (nss %d)\n", emp.ID, emp.NSS)
				return nil
			})
		},
	}
}

func newEmployeeGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get NSS",
		Short: "Show an employee identified by NSS",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nss, err := parseNSSArg(args[0])
			if err != nil {
				return err
			}

			return opts.withApp(cmd, func(ctx context.Context, a *app) error {
				emp, err := a.employees.FindEmployeeByNSS(ctx, nss)
				if err != nil {
					return err
				}
				records, err := a.projector.Project(ctx, []*employee.Employee{emp})
				if err != nil {
					return err
				}
				return printRecords(cmd.OutOrStdout(), records)
			})
		},
	}
}

func newEmployeeListCmd(opts *rootOptions) *cobra.Command {
	var empType, positionName, municipalityName string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List employees ordered by paternal last name",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app) error {
				var in employee.ListEmployeesInput
				if cmd.Flags().Changed("type") {
					in.Type = &empType
				}

				var err error
				if positionName != "" {
					if in.PositionID, err = positionIDByName(ctx, a, positionName); err != nil {
						return err
					}
				}
				if municipalityName != "" {
					if in.MunicipalityID, err = municipalityIDByName(ctx, a, municipalityName); err != nil {
						return err
					}
				}

				employees, err := a.employees.ListEmployees(ctx, in)
				if err != nil {
					return err
				}
				if len(employees) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "no employees")
					return nil
				}
				records, err := a.projector.Project(ctx, employees)
				if err != nil {
					return err
				}
				return printRecords(cmd.OutOrStdout(), records)
			})
		},
	}

	cmd.Flags().StringVar(&empType, "type", "", "filter by employee type")
	cmd.Flags().StringVar(&positionName, "position", "", "filter by position name")
	cmd.Flags().StringVar(&municipalityName, "municipality", "", "filter by municipality name")
	return cmd
}

func parseNSSArg(raw string) (int64, error) {
	nss, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("nss: %w: %v", employee.ErrFormat, err)
	}
	return nss, nil
}

func positionIDByName(ctx context.Context, a *app, name string) (string, error) {
	p, err := a.positions.FindPositionByName(ctx, name)
	if err != nil {
		return "", fmt.Errorf("position %q: %w", name, err)
	}
	return p.ID, nil
}

func municipalityIDByName(ctx context.Context, a *app, name string) (string, error) {
	m, err := a.municipalities.FindMunicipalityByName(ctx, name)
	if err != nil {
		return "", fmt.Errorf("municipality %q: %w", name, err)
	}
	return m.ID, nil
}
