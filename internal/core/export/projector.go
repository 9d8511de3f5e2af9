// Package export は社員の集合を外部出力向けのフラットな表形式へ変換します。
package export

import (
	"context"
	"errors"
	"time"

	"github.com/ogurasousui/employees-management/internal/core/employee"
	"github.com/ogurasousui/employees-management/internal/core/municipality"
	"github.com/ogurasousui/employees-management/internal/core/position"
	"github.com/shopspring/decimal"
)

// ErrEmptyInput は出力対象の社員が 0 件の場合に返却されます。
var ErrEmptyInput = errors.New("export: no employees to export")

// Record は出力 1 行分です。参照先が解決できない職位・市町村は nil になります。
type Record struct {
	NSS          int64
	FirstName    string
	LastNameF    string
	LastNameM    string
	Position     *string
	Municipality *string
	EmployeeType string
	HourlyRate   decimal.Decimal
	HoursWorked  int
	BirthDate    time.Time
	Age          int
}

// Clock は年齢計算の基準時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// PositionReader は職位名の解決に利用します。
type PositionReader interface {
	FindByID(ctx context.Context, id string) (*position.Position, error)
}

// MunicipalityReader は市町村名の解決に利用します。
type MunicipalityReader interface {
	FindByID(ctx context.Context, id string) (*municipality.Municipality, error)
}

// Projector は社員を Record へ変換します。
type Projector struct {
	positions      PositionReader
	municipalities MunicipalityReader
	clock          Clock
}

// NewProjector は Projector を生成します。
func NewProjector(positions PositionReader, municipalities MunicipalityReader, clock Clock) *Projector {
	if clock == nil {
		clock = realClock{}
	}
	return &Projector{positions: positions, municipalities: municipalities, clock: clock}
}

// Project は入力順・件数を保ったまま社員を Record に変換します。入力が空の場合は ErrEmptyInput を返します。
func (p *Projector) Project(ctx context.Context, employees []*employee.Employee) ([]Record, error) {
	if len(employees) == 0 {
		return nil, ErrEmptyInput
	}

	ref := p.clock.Now()
	positionNames := make(map[string]*string)
	municipalityNames := make(map[string]*string)

	records := make([]Record, 0, len(employees))
	for _, emp := range employees {
		posName, err := p.positionName(ctx, emp.PositionID, positionNames)
		if err != nil {
			return nil, err
		}
		munName, err := p.municipalityName(ctx, emp.MunicipalityID, municipalityNames)
		if err != nil {
			return nil, err
		}

		records = append(records, Record{
			NSS:          emp.NSS,
			FirstName:    emp.FirstName,
			LastNameF:    emp.LastNameF,
			LastNameM:    emp.LastNameM,
			Position:     posName,
			Municipality: munName,
			EmployeeType: string(emp.Type),
			HourlyRate:   emp.HourlyRate,
			HoursWorked:  emp.HoursWorked,
			BirthDate:    emp.BirthDate,
			Age:          AgeAt(emp.BirthDate, ref),
		})
	}

	return records, nil
}

func (p *Projector) positionName(ctx context.Context, id string, cache map[string]*string) (*string, error) {
	if name, ok := cache[id]; ok {
		return name, nil
	}
	var name *string
	if id != "" {
		found, err := p.positions.FindByID(ctx, id)
		switch {
		case err == nil:
			name = &found.Name
		case errors.Is(err, position.ErrPositionNotFound):
		default:
			return nil, err
		}
	}
	cache[id] = name
	return name, nil
}

func (p *Projector) municipalityName(ctx context.Context, id string, cache map[string]*string) (*string, error) {
	if name, ok := cache[id]; ok {
		return name, nil
	}
	var name *string
	if id != "" {
		found, err := p.municipalities.FindByID(ctx, id)
		switch {
		case err == nil:
			name = &found.Name
		case errors.Is(err, municipality.ErrMunicipalityNotFound):
		default:
			return nil, err
		}
	}
	cache[id] = name
	return name, nil
}

// AgeAt は floor((ref - birth).days / 365) で満年齢を求めます。
func AgeAt(birth, ref time.Time) int {
	const day = 24 * time.Hour
	elapsed := ref.Sub(birth)
	days := int64(elapsed / day)
	if elapsed%day < 0 {
		days--
	}
	return int(floorDiv(days, 365))
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
