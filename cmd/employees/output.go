package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ogurasousui/employees-management/internal/core/employee"
	"github.com/ogurasousui/employees-management/internal/core/export"
)

func printRecords(w io.Writer, records []export.Record) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NSS\tNAME\tPOSITION\tMUNICIPALITY\tTYPE\tRATE\tHOURS\tBIRTH DATE\tAGE")
	for _, r := range records {
		fmt.Fprintf(tw, "%d\t%s %s %s\t%s\t%s\t%s\t%s\t%d\t%s\t%d\n",
			r.NSS,
			r.FirstName, r.LastNameF, r.LastNameM,
			orDash(r.Position),
			orDash(r.Municipality),
			r.EmployeeType,
			r.HourlyRate.StringFixed(2),
			r.HoursWorked,
			r.BirthDate.Format(employee.DateLayout),
			r.Age,
		)
	}
	return tw.Flush()
}

func orDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
