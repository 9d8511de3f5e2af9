package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ogurasousui/employees-management/internal/core/employee"
	"github.com/shopspring/decimal"
)

type parsedRow struct {
	nss          int64
	firstName    string
	lastNameF    string
	lastNameM    string
	position     string
	municipality string
	birthDate    time.Time
	employeeType string
	hourlyRate   decimal.Decimal
	hoursWorked  int
}

// parseRow は文字列の行を型変換します。失敗時は元の変換エラーの文言を含めます。
func parseRow(row BatchRow) (*parsedRow, error) {
	nss, err := strconv.ParseInt(strings.TrimSpace(row.NSS), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("nss: %w: %v", employee.ErrFormat, err)
	}

	rate, err := decimal.NewFromString(strings.TrimSpace(row.HourlyRate))
	if err != nil {
		return nil, fmt.Errorf("hourly_rate: %w: %v", employee.ErrFormat, err)
	}

	hours, err := strconv.Atoi(strings.TrimSpace(row.HoursWorked))
	if err != nil {
		return nil, fmt.Errorf("hours_worked: %w: %v", employee.ErrFormat, err)
	}

	birth, err := employee.ParseDate(row.BirthDate)
	if err != nil {
		return nil, fmt.Errorf("birth_date: %w", err)
	}

	positionName := strings.TrimSpace(row.Position)
	if positionName == "" {
		return nil, fmt.Errorf("position: %w", employee.ErrMissingField)
	}

	municipalityName := strings.TrimSpace(row.Municipality)
	if municipalityName == "" {
		return nil, fmt.Errorf("municipality: %w", employee.ErrMissingField)
	}

	return &parsedRow{
		nss:          nss,
		firstName:    row.FirstName,
		lastNameF:    row.LastNameF,
		lastNameM:    row.LastNameM,
		position:     positionName,
		municipality: municipalityName,
		birthDate:    birth,
		employeeType: row.EmployeeType,
		hourlyRate:   rate,
		hoursWorked:  hours,
	}, nil
}
