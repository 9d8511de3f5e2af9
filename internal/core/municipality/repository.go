package municipality

import "context"

// Repository は市町村永続化の抽象です。
type Repository interface {
	Create(ctx context.Context, municipality *Municipality) (*Municipality, error)
	Update(ctx context.Context, municipality *Municipality) (*Municipality, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Municipality, error)
	FindByName(ctx context.Context, name string) (*Municipality, error)
	List(ctx context.Context) ([]*Municipality, error)
}

// UsageCounter は市町村を参照している社員数を数えます。
type UsageCounter interface {
	CountByMunicipality(ctx context.Context, municipalityID string) (int, error)
}
