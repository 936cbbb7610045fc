package payments

import (
	"context"

	"github.com/google/uuid"

	"github.com/paylane/paylane/internal/pkg/models"
)

// StatsDelta is the counter adjustment one status transition applies to a
// payment method. Values are -1, 0 or +1 per bucket.
type StatsDelta struct {
	Successful int
	Failed     int
	Disputed   int
}

// IsZero reports whether the delta changes no counter
func (d StatsDelta) IsZero() bool {
	return d.Successful == 0 && d.Failed == 0 && d.Disputed == 0
}

// TransitionParams carries everything the repository needs to commit one
// status transition atomically: status update, timeline append and stats
// delta apply together or not at all.
type TransitionParams struct {
	PaymentID       uuid.UUID
	PaymentMethodID uuid.UUID
	From            models.PaymentStatus
	To              models.PaymentStatus
	Description     string
	Notes           string
	Delta           StatsDelta
}

// PaymentRepo defines the persistence operations for payments
type PaymentRepo interface {
	CreatePayment(ctx context.Context, payment *models.Payment) error
	GetPaymentByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	GetTimeline(ctx context.Context, paymentID uuid.UUID) ([]models.TimelineEntry, error)
	ListPayments(ctx context.Context, userID uuid.UUID, direction string, status *models.PaymentStatus, limit, offset int) (*models.PaymentList, error)
	GetUserPaymentStats(ctx context.Context, userID uuid.UUID) (*models.PaymentStats, error)
	ApplyTransition(ctx context.Context, params TransitionParams) (*models.Payment, error)
	UserExists(ctx context.Context, id uuid.UUID) (bool, error)
}

// MethodRepo defines the persistence operations for payment methods
type MethodRepo interface {
	CreateMethod(ctx context.Context, method *models.PaymentMethod) error
	GetOwnedMethod(ctx context.Context, id, ownerID uuid.UUID) (*models.PaymentMethod, error)
	ListMethods(ctx context.Context, ownerID uuid.UUID, includeArchived bool) ([]*models.PaymentMethod, error)
	ArchiveMethod(ctx context.Context, id, ownerID uuid.UUID) (*models.PaymentMethod, error)
	SetDefault(ctx context.Context, id, ownerID uuid.UUID, isDefault bool) (*models.PaymentMethod, error)
	RecalculateStats(ctx context.Context, id uuid.UUID) (*models.PaymentMethod, error)
}
