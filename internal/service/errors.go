package service

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrValidation         = errors.New("invalid input")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrConflict           = errors.New("conflict")
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrOutOfStock         = errors.New("reward out of stock")
	ErrRewardUnavailable  = errors.New("reward unavailable")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// notFound turns gorm's missing-row error into ErrNotFound and passes any
// other error through.
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return wrap(ErrNotFound, what)
	}
	return err
}

func wrap(sentinel error, detail string) error {
	if detail == "" {
		return sentinel
	}
	return &detailedError{sentinel: sentinel, detail: detail}
}

type detailedError struct {
	sentinel error
	detail   string
}

func (e *detailedError) Error() string { return e.detail }
func (e *detailedError) Unwrap() error { return e.sentinel }
