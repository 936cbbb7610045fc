package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
)

// MethodType represents the kind of payment method
type MethodType string

const (
	MethodTypeBank       MethodType = "bank"
	MethodTypeCreditCard MethodType = "credit_card"
	MethodTypeDebitCard  MethodType = "debit_card"
	MethodTypeUPI        MethodType = "upi_id"
)

// MethodTypes lists every recognized payment method type
var MethodTypes = []MethodType{
	MethodTypeBank,
	MethodTypeCreditCard,
	MethodTypeDebitCard,
	MethodTypeUPI,
}

// IsValid reports whether t is a recognized method type
func (t MethodType) IsValid() bool {
	for _, mt := range MethodTypes {
		if t == mt {
			return true
		}
	}
	return false
}

// PaymentMethod represents a stored means of payment with running stats.
// The three counters are mutated only through payment status transitions
// and the recalculation pass, never directly by handlers.
type PaymentMethod struct {
	ID                 uuid.UUID      `json:"id" db:"id"`
	UserID             uuid.UUID      `json:"user_id" db:"user_id"`
	Type               MethodType     `json:"type" db:"type"`
	Details            types.JSONText `json:"details" db:"details"`
	IsDefault          bool           `json:"is_default" db:"is_default"`
	SuccessfulPayments int            `json:"successful_payments" db:"successful_payments"`
	FailedPayments     int            `json:"failed_payments" db:"failed_payments"`
	DisputedPayments   int            `json:"disputed_payments" db:"disputed_payments"`
	ArchivedAt         *time.Time     `json:"archived_at,omitempty" db:"archived_at"`
	LastUsedAt         *time.Time     `json:"last_used_at,omitempty" db:"last_used_at"`
	CreatedAt          time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at" db:"updated_at"`
}

// TotalPayments is the number of referencing payments counted in a bucket
func (m *PaymentMethod) TotalPayments() int {
	return m.SuccessfulPayments + m.FailedPayments + m.DisputedPayments
}

// SuccessRate is successful / total, or 0 when no payments are counted
func (m *PaymentMethod) SuccessRate() float64 {
	total := m.TotalPayments()
	if total == 0 {
		return 0
	}
	return float64(m.SuccessfulPayments) / float64(total)
}

// CreateMethodRequest is the payload for registering a payment method
type CreateMethodRequest struct {
	Type    MethodType             `json:"type"`
	Details map[string]interface{} `json:"details"`
}

// SetDefaultRequest is the payload for toggling a method's default flag
type SetDefaultRequest struct {
	IsDefault bool `json:"is_default"`
}

// MethodStats is the per-method statistics view
type MethodStats struct {
	Type               MethodType `json:"type"`
	SuccessfulPayments int        `json:"successful_payments"`
	FailedPayments     int        `json:"failed_payments"`
	DisputedPayments   int        `json:"disputed_payments"`
	TotalPayments      int        `json:"total_payments"`
	SuccessRate        float64    `json:"success_rate"`
}
