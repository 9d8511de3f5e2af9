// Package csvfile は社員 CSV の読み込みと書き出しを行います。
package csvfile

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/ogurasousui/employees-management/internal/core/importer"
)

var (
	// ErrMissingHeader はヘッダ行が存在しない場合に返却されます。
	ErrMissingHeader = errors.New("csvfile: header row is required")
	// ErrMissingColumns は必須列が不足している場合に返却されます。
	ErrMissingColumns = errors.New("csvfile: missing required columns")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ImportColumns は取り込み CSV の必須列です。
var ImportColumns = []string{
	"nss",
	"first_name",
	"last_name_f",
	"last_name_m",
	"position",
	"municipality",
	"birth_date",
	"employee_type",
	"hourly_rate",
	"hours_worked",
}

type batchRowCSV struct {
	NSS          string `csv:"nss"`
	FirstName    string `csv:"first_name"`
	LastNameF    string `csv:"last_name_f"`
	LastNameM    string `csv:"last_name_m"`
	Position     string `csv:"position"`
	Municipality string `csv:"municipality"`
	BirthDate    string `csv:"birth_date"`
	EmployeeType string `csv:"employee_type"`
	HourlyRate   string `csv:"hourly_rate"`
	HoursWorked  string `csv:"hours_worked"`
}

// ReadBatchRows はヘッダ付き CSV を読み込み、取り込み行へ変換します。
// 値の型変換は行わず、各行にデータ行番号 (1 始まり) を付与します。
func ReadBatchRows(r io.Reader) ([]importer.BatchRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("csvfile: read: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	header, err := newReader(data).Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrMissingHeader
		}
		return nil, fmt.Errorf("csvfile: read header: %w", err)
	}
	if err := checkColumns(header); err != nil {
		return nil, err
	}

	var parsed []*batchRowCSV
	if err := gocsv.UnmarshalCSV(newReader(data), &parsed); err != nil {
		return nil, fmt.Errorf("csvfile: decode rows: %w", err)
	}

	rows := make([]importer.BatchRow, 0, len(parsed))
	for i, p := range parsed {
		rows = append(rows, importer.BatchRow{
			Row:          i + 1,
			NSS:          p.NSS,
			FirstName:    p.FirstName,
			LastNameF:    p.LastNameF,
			LastNameM:    p.LastNameM,
			Position:     p.Position,
			Municipality: p.Municipality,
			BirthDate:    p.BirthDate,
			EmployeeType: p.EmployeeType,
			HourlyRate:   p.HourlyRate,
			HoursWorked:  p.HoursWorked,
		})
	}
	return rows, nil
}

func newReader(data []byte) *csv.Reader {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	return reader
}

func checkColumns(header []string) error {
	present := make(map[string]struct{}, len(header))
	for _, h := range header {
		present[h] = struct{}{}
	}

	var missing []string
	for _, col := range ImportColumns {
		if _, ok := present[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return nil
}
