// Package xlsx は出力レコードとレポートを Excel ブックとして書き出します。
package xlsx

import (
	"fmt"
	"io"

	"github.com/ogurasousui/employees-management/internal/core/employee"
	"github.com/ogurasousui/employees-management/internal/core/export"
	"github.com/ogurasousui/employees-management/internal/core/report"
	"github.com/xuri/excelize/v2"
)

const (
	defaultSheet = "Sheet1"

	// DefaultRecordsSheet は社員一覧シートの既定名です。
	DefaultRecordsSheet = "employees"
	AgeRangesSheet      = "age_ranges"
	PositionsSheet      = "by_position"
	TypeSplitSheet      = "by_type"
)

var recordHeader = []any{
	"nss", "first_name", "last_name_f", "last_name_m", "position", "municipality",
	"employee_type", "hourly_rate", "hours_worked", "birth_date", "age",
}

// WriteRecords は出力レコードを 1 シートのブックとして書き出します。
func WriteRecords(w io.Writer, sheet string, records []export.Record) error {
	if sheet == "" {
		sheet = DefaultRecordsSheet
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		return fmt.Errorf("xlsx: rename sheet: %w", err)
	}

	rows := make([][]any, 0, len(records)+1)
	rows = append(rows, recordHeader)
	for _, rec := range records {
		rows = append(rows, []any{
			rec.NSS,
			rec.FirstName,
			rec.LastNameF,
			rec.LastNameM,
			nullable(rec.Position),
			nullable(rec.Municipality),
			rec.EmployeeType,
			rec.HourlyRate.InexactFloat64(),
			rec.HoursWorked,
			rec.BirthDate.Format(employee.DateLayout),
			rec.Age,
		})
	}
	if err := writeRows(f, sheet, rows); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx: write workbook: %w", err)
	}
	return nil
}

// Summary はレポートブックの内容です。
type Summary struct {
	AgeRanges []report.Bucket
	Positions []report.PositionCount
	TypeSplit report.TypeSplit
}

// WriteSummary は各レポートをシートごとに書き出します。
func WriteSummary(w io.Writer, summary Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheet, AgeRangesSheet); err != nil {
		return fmt.Errorf("xlsx: rename sheet: %w", err)
	}

	ageRows := [][]any{{"age_range", "count"}}
	for _, b := range summary.AgeRanges {
		ageRows = append(ageRows, []any{b.Label, b.Count})
	}
	if err := writeRows(f, AgeRangesSheet, ageRows); err != nil {
		return err
	}

	positionRows := [][]any{{"position", "count"}}
	for _, c := range summary.Positions {
		positionRows = append(positionRows, []any{c.Position, c.Count})
	}
	if _, err := f.NewSheet(PositionsSheet); err != nil {
		return fmt.Errorf("xlsx: new sheet %s: %w", PositionsSheet, err)
	}
	if err := writeRows(f, PositionsSheet, positionRows); err != nil {
		return err
	}

	typeRows := [][]any{
		{"employee_type", "count"},
		{string(employee.TypeBase), summary.TypeSplit.Base},
		{string(employee.TypeHonorary), summary.TypeSplit.Honorary},
	}
	if _, err := f.NewSheet(TypeSplitSheet); err != nil {
		return fmt.Errorf("xlsx: new sheet %s: %w", TypeSplitSheet, err)
	}
	if err := writeRows(f, TypeSplitSheet, typeRows); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx: write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("xlsx: cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("xlsx: %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
