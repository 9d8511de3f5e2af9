package employee

import "errors"

var (
	ErrInvalidID         = errors.New("employee: invalid id")
	ErrEmployeeNotFound  = errors.New("employee: not found")
	ErrDuplicateKey      = errors.New("employee: duplicate key")
	ErrReferenceNotFound = errors.New("employee: reference not found")
	ErrInvalidEnum       = errors.New("employee: invalid enum value")
	ErrMissingField      = errors.New("employee: missing field")
	ErrRange             = errors.New("employee: value out of range")
	ErrFormat            = errors.New("employee: invalid format")
	ErrUnsupportedType   = errors.New("employee: unsupported employee type")
	ErrPersistence       = errors.New("employee: persistence failure")
)
