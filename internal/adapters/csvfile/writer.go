package csvfile

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/ogurasousui/employees-management/internal/core/employee"
	"github.com/ogurasousui/employees-management/internal/core/export"
	"github.com/ogurasousui/employees-management/internal/core/report"
)

type recordCSV struct {
	NSS          int64  `csv:"nss"`
	FirstName    string `csv:"first_name"`
	LastNameF    string `csv:"last_name_f"`
	LastNameM    string `csv:"last_name_m"`
	Position     string `csv:"position"`
	Municipality string `csv:"municipality"`
	EmployeeType string `csv:"employee_type"`
	HourlyRate   string `csv:"hourly_rate"`
	HoursWorked  int    `csv:"hours_worked"`
	BirthDate    string `csv:"birth_date"`
	Age          int    `csv:"age"`
}

type bucketCSV struct {
	Range string `csv:"age_range"`
	Count int    `csv:"count"`
}

type positionCountCSV struct {
	Position string `csv:"position"`
	Count    int    `csv:"count"`
}

// WriteRecords は出力レコードをヘッダ付き CSV として書き出します。未解決の名称は空欄になります。
func WriteRecords(w io.Writer, records []export.Record) error {
	rows := make([]*recordCSV, 0, len(records))
	for _, rec := range records {
		rows = append(rows, &recordCSV{
			NSS:          rec.NSS,
			FirstName:    rec.FirstName,
			LastNameF:    rec.LastNameF,
			LastNameM:    rec.LastNameM,
			Position:     deref(rec.Position),
			Municipality: deref(rec.Municipality),
			EmployeeType: rec.EmployeeType,
			HourlyRate:   rec.HourlyRate.StringFixed(2),
			HoursWorked:  rec.HoursWorked,
			BirthDate:    rec.BirthDate.Format(employee.DateLayout),
			Age:          rec.Age,
		})
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("csvfile: write records: %w", err)
	}
	return nil
}

// WriteAgeRanges は年齢区分ごとの人数を書き出します。
func WriteAgeRanges(w io.Writer, buckets []report.Bucket) error {
	rows := make([]*bucketCSV, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, &bucketCSV{Range: b.Label, Count: b.Count})
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("csvfile: write age ranges: %w", err)
	}
	return nil
}

// WritePositionCounts は職位ごとの人数を書き出します。
func WritePositionCounts(w io.Writer, counts []report.PositionCount) error {
	rows := make([]*positionCountCSV, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, &positionCountCSV{Position: c.Position, Count: c.Count})
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("csvfile: write position counts: %w", err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
