package store

import "errors"

var (
	ErrNotFound              = errors.New("not found")
	ErrAlreadyExists         = errors.New("already exists")
	ErrValidation            = errors.New("validation error")
	ErrInvalidLoginPassword  = errors.New("invalid login/password")
	ErrForbidden             = errors.New("forbidden")
	ErrPaymentMethodRequired = errors.New("payment method required")
)
