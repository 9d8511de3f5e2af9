// Package salary は社員区分ごとの給与計算規則を実装します。
package salary

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ogurasousui/employees-management/internal/core/employee"
	"github.com/shopspring/decimal"
)

var (
	baseWeeklyHours      = decimal.NewFromInt(40)
	seniorityRatePerYear = decimal.RequireFromString("0.01")
	extraHourRate        = decimal.RequireFromString("0.002")
	one                  = decimal.NewFromInt(1)
)

// PeriodParams は計算期間ごとに入力される値です。
// 値は入力されたままの文字列で受け取り、nil は未入力を表します。
type PeriodParams struct {
	// YearsOfService は勤続年数です。BASE では必須です。
	YearsOfService *string
	// ExtraHours は時間外勤務時間です。HONORARY で未入力の場合は 0 として扱います。
	ExtraHours *string
}

// Breakdown は計算の内訳です。各値は丸めていません。
type Breakdown struct {
	Type       employee.Type
	Base       decimal.Decimal
	Multiplier decimal.Decimal
	Final      decimal.Decimal
}

// Display は表示用に小数点以下 2 桁へ丸めた最終給与を返します。
func (b Breakdown) Display() string {
	return b.Final.StringFixed(2)
}

// Calculator は給与を計算します。内部状態を持たないため同じ入力には常に同じ結果を返します。
type Calculator struct{}

// NewCalculator は Calculator を生成します。
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Calculate は最終給与を返します。
func (c *Calculator) Calculate(emp *employee.Employee, params PeriodParams) (decimal.Decimal, error) {
	b, err := c.Breakdown(emp, params)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return b.Final, nil
}

// Breakdown は社員区分に応じた計算内訳を返します。
//
//	BASE:     base = hourly_rate * 40,           final = base * (1 + years * 0.01)
//	HONORARY: base = hourly_rate * hours_worked, final = base * (1 + extra_hours * 0.002)
func (c *Calculator) Breakdown(emp *employee.Employee, params PeriodParams) (Breakdown, error) {
	if emp == nil {
		return Breakdown{}, errors.New("salary: employee is required")
	}

	switch emp.Type {
	case employee.TypeBase:
		if params.YearsOfService == nil || strings.TrimSpace(*params.YearsOfService) == "" {
			return Breakdown{}, fmt.Errorf("years_of_service: %w", employee.ErrMissingField)
		}
		years, err := parseCount("years_of_service", *params.YearsOfService)
		if err != nil {
			return Breakdown{}, err
		}
		base := emp.HourlyRate.Mul(baseWeeklyHours)
		multiplier := one.Add(decimal.NewFromInt(years).Mul(seniorityRatePerYear))
		return Breakdown{Type: emp.Type, Base: base, Multiplier: multiplier, Final: base.Mul(multiplier)}, nil

	case employee.TypeHonorary:
		var extra int64
		if params.ExtraHours != nil && strings.TrimSpace(*params.ExtraHours) != "" {
			parsed, err := parseCount("extra_hours", *params.ExtraHours)
			if err != nil {
				return Breakdown{}, err
			}
			extra = parsed
		}
		base := emp.HourlyRate.Mul(decimal.NewFromInt(int64(emp.HoursWorked)))
		multiplier := one.Add(decimal.NewFromInt(extra).Mul(extraHourRate))
		return Breakdown{Type: emp.Type, Base: base, Multiplier: multiplier, Final: base.Mul(multiplier)}, nil

	default:
		return Breakdown{}, fmt.Errorf("employee_type %q: %w", emp.Type, employee.ErrUnsupportedType)
	}
}

func parseCount(field, raw string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q must be an integer: %w", field, raw, employee.ErrFormat)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s %d must not be negative: %w", field, n, employee.ErrRange)
	}
	return n, nil
}
