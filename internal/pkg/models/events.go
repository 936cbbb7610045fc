package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatusEvent is published after every committed status transition
type PaymentStatusEvent struct {
	PaymentID       uuid.UUID       `json:"payment_id"`
	FromUserID      uuid.UUID       `json:"from_user_id"`
	ToUserID        uuid.UUID       `json:"to_user_id"`
	PaymentMethodID uuid.UUID       `json:"payment_method_id"`
	PreviousStatus  PaymentStatus   `json:"previous_status"`
	NewStatus       PaymentStatus   `json:"new_status"`
	Amount          decimal.Decimal `json:"amount"`
	Timestamp       time.Time       `json:"timestamp"`
}

// DisputeEvent is published when a payment enters a dispute-related status.
// The dispute-resolution ledger bridge consumes this feed; the status values
// here remain the source of truth it reads from.
type DisputeEvent struct {
	PaymentID uuid.UUID     `json:"payment_id"`
	Status    PaymentStatus `json:"status"`
	RaisedBy  uuid.UUID     `json:"raised_by"`
	Notes     string        `json:"notes,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}
