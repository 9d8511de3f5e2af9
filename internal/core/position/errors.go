package position

import "errors"

var (
	// ErrPositionNotFound は職位が存在しない場合に返却されます。
	ErrPositionNotFound = errors.New("position: not found")
	// ErrNameAlreadyExists は職位名が重複している場合に返却されます。
	ErrNameAlreadyExists = errors.New("position: name already exists")
	// ErrInvalidID は ID が不正な場合に返却されます。
	ErrInvalidID = errors.New("position: invalid id")
	// ErrInvalidName は職位名が不正な場合に返却されます。
	ErrInvalidName = errors.New("position: invalid name")
	// ErrInvalidBaseSalary は基本給が負数の場合に返却されます。
	ErrInvalidBaseSalary = errors.New("position: invalid base salary")
	// ErrPositionInUse は社員から参照されている職位を削除しようとした場合に返却されます。
	ErrPositionInUse = errors.New("position: referenced by employees")
)
