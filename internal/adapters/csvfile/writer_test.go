package csvfile

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/ogurasousui/employees-management/internal/core/export"
	"github.com/ogurasousui/employees-management/internal/core/report"
	"github.com/shopspring/decimal"
)

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
			EmployeeType: "BASE",
			HourlyRate:   decimal.RequireFromString("150.5"),
			BirthDate:    time.Date(1990, 1, 15, 0, 0, 0, 0, time.UTC),
			Age:          34,
		},
	}

	var buf bytes.Buffer
	if err := WriteRecords(&buf, records); err != nil {
		t.Fatalf("WriteRecords returned error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %q", buf.String())
	}
	if lines[0] != "nss,first_name,last_name_f,last_name_m,position,municipality,employee_type,hourly_rate,hours_worked,birth_date,age" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if lines[1] != "1001,Ana,Lopez,Diaz,Analyst,,BASE,150.50,0,1990-01-15,34" {
		t.Fatalf("unexpected row %q", lines[1])
	}
}

func TestWriteAgeRanges(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteAgeRanges(&buf, []report.Bucket{{Label: "18-21", Count: 2}, {Label: "41+", Count: 0}}); err != nil {
		t.Fatalf("WriteAgeRanges returned error: %v", err)
	}
	if got, want := buf.String(), "age_range,count\n18-21,2\n41+,0\n"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWritePositionCounts(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WritePositionCounts(&buf, []report.PositionCount{{Position: "Analyst", Count: 3}}); err != nil {
		t.Fatalf("WritePositionCounts returned error: %v", err)
	}
	if got, want := buf.String(), "position,count\nAnalyst,3\n"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
