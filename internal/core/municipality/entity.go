package municipality

import "time"

// Municipality は市町村エンティティです。
type Municipality struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
