package salary

import (
	"context"
	"fmt"

	"github.com/ogurasousui/employees-management/internal/core/employee"
)

// EmployeeFinder は NSS による社員検索を提供します。
type EmployeeFinder interface {
	FindEmployeeByNSS(ctx context.Context, nss int64) (*employee.Employee, error)
}

// Result は NSS 指定の給与計算結果です。
type Result struct {
	Employee  *employee.Employee
	Breakdown Breakdown
}

// Service は NSS で社員を特定して給与を計算するユースケースです。
type Service struct {
	employees EmployeeFinder
	calc      *Calculator
}

// NewService は Service を生成します。
func NewService(employees EmployeeFinder, calc *Calculator) *Service {
	if calc == nil {
		calc = NewCalculator()
	}
	return &Service{employees: employees, calc: calc}
}

// CalculateForNSS は NSS の社員の給与を計算します。
func (s *Service) CalculateForNSS(ctx context.Context, nss int64, params PeriodParams) (*Result, error) {
	emp, err := s.employees.FindEmployeeByNSS(ctx, nss)
	if err != nil {
		return nil, fmt.Errorf("nss %d: %w", nss, err)
	}

	b, err := s.calc.Breakdown(emp, params)
	if err != nil {
		return nil, err
	}
	return &Result{Employee: emp, Breakdown: b}, nil
}
