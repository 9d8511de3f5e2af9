package municipality

import "errors"

var (
	ErrMunicipalityNotFound = errors.New("municipality: not found")
	ErrNameAlreadyExists    = errors.New("municipality: name already exists")
	ErrInvalidID            = errors.New("municipality: invalid id")
	ErrInvalidName          = errors.New("municipality: invalid name")
	ErrMunicipalityInUse    = errors.New("municipality: referenced by employees")
)
