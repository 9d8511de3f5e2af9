package position

import "context"

// Repository は職位エンティティの永続化を行うインターフェースです。
type Repository interface {
	Create(ctx context.Context, position *Position) (*Position, error)
	Update(ctx context.Context, position *Position) (*Position, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Position, error)
	FindByName(ctx context.Context, name string) (*Position, error)
	List(ctx context.Context) ([]*Position, error)
}

// UsageCounter は職位を参照している社員数を数えます。
type UsageCounter interface {
	CountByPosition(ctx context.Context, positionID string) (int, error)
}
