package shared

import "errors"

var (
	ErrNotFound        = errors.New("resource not found")
	ErrDuplicate       = errors.New("duplicate entry")
	ErrInvalidID       = errors.New("invalid ID")
	ErrRequiredField   = errors.New("field is required")
	ErrHasTransactions = errors.New("record has transaction history")
)
