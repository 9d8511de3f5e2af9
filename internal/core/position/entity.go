package position

import (
	"time"

	"github.com/shopspring/decimal"
)

// Position は職位エンティティです。
type Position struct {
	ID         string
	Name       string
	BaseSalary decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
