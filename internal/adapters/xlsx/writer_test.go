package xlsx

import (
	"bytes"
	"testing"
	"time"

	"github.com/ogurasousui/employees-management/internal/core/export"
	"github.com/ogurasousui/employees-management/internal/core/report"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func openWorkbook(t *testing.T, buf *bytes.Buffer) *excelize.File {
	t.Helper()

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("failed to open workbook: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestWriteRecords(t *testing.T) {
	t.Parallel()

	analyst := "Analyst"
	records := []export.Record{
		{
			NSS:          1001,
			FirstName:    "Ana",
			LastNameF:    "Lopez",
			LastNameM:    "Diaz",
			Position:     &analyst,
			EmployeeType: "HONORARY",
			HourlyRate:   decimal.RequireFromString("150.5"),
			HoursWorked:  12,
			BirthDate:    time.Date(1990, 1, 15, 0, 0, 0, 0, time.UTC),
			Age:          34,
		},
	}

	var buf bytes.Buffer
	if err := WriteRecords(&buf, "nomina", records); err != nil {
		t.Fatalf("WriteRecords returned error: %v", err)
	}

	f := openWorkbook(t, &buf)
	if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != "nomina" {
		t.Fatalf("unexpected sheets %v", sheets)
	}

	rows, err := f.GetRows("nomina")
	if err != nil {
		t.Fatalf("GetRows returned error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "nss" || rows[0][10] != "age" {
		t.Fatalf("unexpected header %v", rows[0])
	}

	got := rows[1]
	if got[0] != "1001" || got[4] != "Analyst" || got[5] != "" || got[7] != "150.5" || got[8] != "12" || got[9] != "1990-01-15" || got[10] != "34" {
		t.Fatalf("unexpected data row %v", got)
	}
}

func TestWriteRecords_DefaultSheet(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteRecords(&buf, "", nil); err != nil {
		t.Fatalf("WriteRecords returned error: %v", err)
	}

	f := openWorkbook(t, &buf)
	if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != DefaultRecordsSheet {
		t.Fatalf("unexpected sheets %v", sheets)
	}
}

func TestWriteSummary(t *testing.T) {
	t.Parallel()

	summary := Summary{
		AgeRanges: []report.Bucket{{Label: "18-21", Count: 1}, {Label: "22-28", Count: 4}},
		Positions: []report.PositionCount{{Position: "Analyst", Count: 5}},
		TypeSplit: report.TypeSplit{Base: 3, Honorary: 2},
	}

	var buf bytes.Buffer
	if err := WriteSummary(&buf, summary); err != nil {
		t.Fatalf("WriteSummary returned error: %v", err)
	}

	f := openWorkbook(t, &buf)
	sheets := f.GetSheetList()
	want := []string{AgeRangesSheet, PositionsSheet, TypeSplitSheet}
	if len(sheets) != len(want) {
		t.Fatalf("unexpected sheets %v", sheets)
	}
	for i := range want {
		if sheets[i] != want[i] {
			t.Fatalf("sheet %d: expected %s, got %s", i, want[i], sheets[i])
		}
	}

	ageRows, err := f.GetRows(AgeRangesSheet)
	if err != nil {
		t.Fatalf("GetRows returned error: %v", err)
	}
	if len(ageRows) != 3 || ageRows[2][0] != "22-28" || ageRows[2][1] != "4" {
		t.Fatalf("unexpected age rows %v", ageRows)
	}

	typeRows, err := f.GetRows(TypeSplitSheet)
	if err != nil {
		t.Fatalf("GetRows returned error: %v", err)
	}
	if len(typeRows) != 3 || typeRows[1][0] != "BASE" || typeRows[1][1] != "3" || typeRows[2][1] != "2" {
		t.Fatalf("unexpected type rows %v", typeRows)
	}
}
