package models

import (
	"time"

	"github.com/google/uuid"
)

// TimelineEntry is an immutable audit record of one status change on a
// payment. Entries ordered by created_at ascending reconstruct the full
// history of the payment.
type TimelineEntry struct {
	ID          uuid.UUID     `json:"id" db:"id"`
	PaymentID   uuid.UUID     `json:"payment_id" db:"payment_id"`
	Status      PaymentStatus `json:"status" db:"status"`
	Description string        `json:"description" db:"description"`
	Notes       string        `json:"notes,omitempty" db:"notes"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
}
