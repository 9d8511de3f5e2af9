package employee

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Type は社員区分を表します。
type Type string

const (
	TypeBase     Type = "BASE"
	TypeHonorary Type = "HONORARY"
)

// Employee は社員エンティティです。
// 職位と市町村は ID で参照し、名称の解決はリポジトリ経由で行います。
type Employee struct {
	ID             string
	NSS            int64
	FirstName      string
	LastNameF      string
	LastNameM      string
	BirthDate      time.Time
	Type           Type
	PositionID     string
	MunicipalityID string
	HourlyRate     decimal.Decimal
	HoursWorked    int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FullName は名・父姓・母姓を連結した氏名を返します。
func (e *Employee) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{e.FirstName, e.LastNameF, e.LastNameM} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
