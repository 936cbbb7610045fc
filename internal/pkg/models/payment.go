package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the lifecycle state of a payment
type PaymentStatus string

const (
	PaymentStatusPending          PaymentStatus = "pending"
	PaymentStatusCompleted        PaymentStatus = "completed"
	PaymentStatusFailed           PaymentStatus = "failed"
	PaymentStatusCancelled        PaymentStatus = "cancelled"
	PaymentStatusDisputed         PaymentStatus = "disputed"
	PaymentStatusDisputedAccepted PaymentStatus = "disputed_accepted"
	PaymentStatusDisputedRejected PaymentStatus = "disputed_rejected"
	PaymentStatusRefunded         PaymentStatus = "refunded"
)

// AllowedTransitions is the single source of truth for valid payment status
// changes. Statuses that map to an empty slice are terminal. Dispute
// accept/reject is currently driven by the sender; changing that policy only
// requires touching this table and the ownership check in the usecase.
var AllowedTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending:          {PaymentStatusCancelled, PaymentStatusCompleted},
	PaymentStatusCompleted:        {PaymentStatusDisputed, PaymentStatusRefunded},
	PaymentStatusFailed:           {},
	PaymentStatusCancelled:        {},
	PaymentStatusDisputed:         {PaymentStatusDisputedRejected, PaymentStatusDisputedAccepted},
	PaymentStatusDisputedAccepted: {PaymentStatusRefunded},
	PaymentStatusDisputedRejected: {},
	PaymentStatusRefunded:         {},
}

// StatusDescriptions holds the canonical timeline description per status
var StatusDescriptions = map[PaymentStatus]string{
	PaymentStatusPending:          "Payment is pending",
	PaymentStatusCompleted:        "Payment completed successfully",
	PaymentStatusFailed:           "Payment failed",
	PaymentStatusCancelled:        "Payment was cancelled",
	PaymentStatusDisputed:         "Payment is under dispute",
	PaymentStatusDisputedAccepted: "Dispute was accepted",
	PaymentStatusDisputedRejected: "Dispute was rejected",
	PaymentStatusRefunded:         "Payment was refunded",
}

// IsValid reports whether s is a recognized payment status
func (s PaymentStatus) IsValid() bool {
	_, ok := AllowedTransitions[s]
	return ok
}

// IsTerminal reports whether the status has no outgoing transitions
func (s PaymentStatus) IsTerminal() bool {
	targets, ok := AllowedTransitions[s]
	return ok && len(targets) == 0
}

// CanTransitionTo reports whether the edge s -> target is in the table
func (s PaymentStatus) CanTransitionTo(target PaymentStatus) bool {
	for _, t := range AllowedTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// StatBucket is the payment method counter a status contributes to
type StatBucket int

const (
	BucketNone StatBucket = iota
	BucketSuccessful
	BucketFailed
	BucketDisputed
)

// BucketFor maps a payment status to its stats bucket. Both the incremental
// transition path and the full recalculation use this mapping so the two can
// never drift apart.
func BucketFor(s PaymentStatus) StatBucket {
	switch s {
	case PaymentStatusCompleted:
		return BucketSuccessful
	case PaymentStatusFailed, PaymentStatusCancelled:
		return BucketFailed
	case PaymentStatusDisputed, PaymentStatusDisputedAccepted, PaymentStatusDisputedRejected:
		return BucketDisputed
	default:
		return BucketNone
	}
}

// AllStatuses lists every payment status in a stable order
var AllStatuses = []PaymentStatus{
	PaymentStatusPending,
	PaymentStatusCompleted,
	PaymentStatusFailed,
	PaymentStatusCancelled,
	PaymentStatusDisputed,
	PaymentStatusDisputedAccepted,
	PaymentStatusDisputedRejected,
	PaymentStatusRefunded,
}

// StatusesInBucket returns the statuses mapping to the given bucket, derived
// from BucketFor so SQL-side grouping can never diverge from the Go mapping
func StatusesInBucket(b StatBucket) []PaymentStatus {
	var statuses []PaymentStatus
	for _, s := range AllStatuses {
		if BucketFor(s) == b {
			statuses = append(statuses, s)
		}
	}
	return statuses
}

// Payment represents a transfer from one user to another
type Payment struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	FromUserID      uuid.UUID       `json:"from_user_id" db:"from_user_id"`
	ToUserID        uuid.UUID       `json:"to_user_id" db:"to_user_id"`
	PaymentMethodID uuid.UUID       `json:"payment_method_id" db:"payment_method_id"`
	Amount          decimal.Decimal `json:"amount" db:"amount"`
	Description     string          `json:"description,omitempty" db:"description"`
	Status          PaymentStatus   `json:"status" db:"status"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`

	Timeline []TimelineEntry `json:"timeline,omitempty" db:"-"`
}

// CreatePaymentRequest is the payload for creating a payment
type CreatePaymentRequest struct {
	ToUserID        string `json:"to_user_id"`
	PaymentMethodID string `json:"payment_method_id"`
	Amount          string `json:"amount"`
	Description     string `json:"description,omitempty"`
}

// UpdateStatusRequest is the payload for a payment status transition
type UpdateStatusRequest struct {
	Status PaymentStatus `json:"status"`
	Notes  string        `json:"notes,omitempty"`
}

// PaymentList is a paginated payment listing
type PaymentList struct {
	Payments []*Payment `json:"payments"`
	Total    int        `json:"total"`
	HasMore  bool       `json:"has_more"`
}

// PaymentStats aggregates a user's sent and received payment totals
type PaymentStats struct {
	TotalSent          decimal.Decimal `json:"total_sent"`
	TotalSentCount     int             `json:"total_sent_count"`
	TotalReceived      decimal.Decimal `json:"total_received"`
	TotalReceivedCount int             `json:"total_received_count"`
}
