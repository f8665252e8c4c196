package store

import "errors"

var (
	ErrAccountExists       = errors.New("address already tracked")
	ErrRecordNotFound      = errors.New("record not found")
	ErrConstraintViolation = errors.New("database constraint violation")
)
