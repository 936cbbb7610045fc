package payments

import (
	"errors"
	"fmt"

	"github.com/paylane/paylane/internal/pkg/models"
)

var (
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrMethodNotFound      = errors.New("payment method not found")
	ErrRecipientNotFound   = errors.New("recipient user not found")
	ErrNotPaymentSender    = errors.New("only the payment sender can update this payment")
	ErrPaymentAccessDenied = errors.New("no access to this payment")
	ErrSelfPayment         = errors.New("cannot send payment to yourself")

	// ErrStatusConflict means a concurrent transition committed between
	// the caller reading the payment and this write. Retryable from the
	// client's side, surfaced as a conflict rather than a server fault.
	ErrStatusConflict = errors.New("payment status changed concurrently")

	// ErrInvariantViolation indicates a bug, not bad input: a counter
	// decrement would drive a stats counter negative. Surfaced as a 500,
	// never as a client error.
	ErrInvariantViolation = errors.New("payment method stats invariant violated")
)

// InvalidTransitionError reports a rejected payment status change, carrying
// the attempted edge
type InvalidTransitionError struct {
	From models.PaymentStatus
	To   models.PaymentStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot change payment status from %s to %s", e.From, e.To)
}

// NewInvalidTransitionError creates an InvalidTransitionError for the edge
func NewInvalidTransitionError(from, to models.PaymentStatus) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

// ValidationError reports malformed input with field-level detail
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for the given field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
