package utils

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("invalid input")
	ErrDatabaseError      = errors.New("database error")
	ErrPaymentNotFound    = errors.New("payment status not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrAccountExists      = errors.New("account already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ProviderError carries the push-payment provider's rejection message so the
// submitting client sees the actionable text verbatim.
type ProviderError struct {
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("payment provider rejected request: %s", e.Message)
}

// ReconciliationError wraps a store-write failure during callback processing.
// It is logged server-side only; the provider still gets an ack so it does
// not retry indefinitely.
type ReconciliationError struct {
	CheckoutRequestID string
	Err               error
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("reconciliation failed for %s: %v", e.CheckoutRequestID, e.Err)
}

func (e *ReconciliationError) Unwrap() error { return e.Err }
