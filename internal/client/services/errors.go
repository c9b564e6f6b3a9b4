package services

import (
	"errors"
	"fmt"
)

var (
	ErrAuthRequired               = errors.New("authentication required")
	ErrCredentialsRequired        = errors.New("email and password are required")
	ErrRegistrationFieldsRequired = errors.New("name, email and password are required")
	ErrNameRequired               = errors.New("name is required")
	ErrInvalidAmount              = errors.New("amount must be a positive number")
	ErrEmailMissing               = errors.New("email not found in session")
	ErrVolunteerNotFound          = errors.New("volunteer not found")
	ErrPaymentMethodRequired      = errors.New("payment method required")
	ErrPlanNotFound               = errors.New("plan not found")
	ErrCardTokenRequired          = errors.New("card token is required")
	ErrNoToken                    = errors.New("login response has no token")
	ErrInvoiceMissing             = errors.New("payment url not found")
)

// AuthRequiredError is returned by gated operations attempted without a
// session. It matches ErrAuthRequired.
type AuthRequiredError struct {
	Action string
}

func (e *AuthRequiredError) Error() string {
	return fmt.Sprintf("%s: login to %s", ErrAuthRequired, e.Action)
}

func (e *AuthRequiredError) Unwrap() error {
	return ErrAuthRequired
}
