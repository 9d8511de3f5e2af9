package employee

import "context"

// Repository は社員永続化の抽象です。
type Repository interface {
	Create(ctx context.Context, employee *Employee) (*Employee, error)
	InsertMany(ctx context.Context, employees []*Employee) error
	Update(ctx context.Context, employee *Employee) (*Employee, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByNSS(ctx context.Context, nss int64) (*Employee, error)
	List(ctx context.Context, filter ListEmployeesFilter) ([]*Employee, error)
	CountByPosition(ctx context.Context, positionID string) (int, error)
	CountByMunicipality(ctx context.Context, municipalityID string) (int, error)
}

// ListEmployeesFilter は一覧取得用フィルタです。空の項目は条件に含めません。
type ListEmployeesFilter struct {
	Type           *Type
	PositionID     string
	MunicipalityID string
}
