package payments

import (
	"context"

	"github.com/google/uuid"

	"github.com/paylane/paylane/internal/pkg/models"
)

// Payment listing directions
const (
	DirectionSent     = "sent"
	DirectionReceived = "received"
	DirectionAll      = "all"
)

// PaymentUC defines the payment use cases
type PaymentUC interface {
	CreatePayment(ctx context.Context, fromUserID uuid.UUID, req *models.CreatePaymentRequest) (*models.Payment, error)
	GetPayment(ctx context.Context, userID, paymentID uuid.UUID) (*models.Payment, error)
	ListPayments(ctx context.Context, userID uuid.UUID, direction string, status *models.PaymentStatus, limit, offset int) (*models.PaymentList, error)
	UpdateStatus(ctx context.Context, requesterID, paymentID uuid.UUID, req *models.UpdateStatusRequest) (*models.Payment, error)
	GetPaymentStats(ctx context.Context, userID uuid.UUID) (*models.PaymentStats, error)
}

// MethodUC defines the payment method use cases
type MethodUC interface {
	CreateMethod(ctx context.Context, ownerID uuid.UUID, req *models.CreateMethodRequest) (*models.PaymentMethod, error)
	GetMethod(ctx context.Context, id, ownerID uuid.UUID) (*models.PaymentMethod, error)
	ListMethods(ctx context.Context, ownerID uuid.UUID, includeArchived bool) ([]*models.PaymentMethod, error)
	ArchiveMethod(ctx context.Context, id, ownerID uuid.UUID) (*models.PaymentMethod, error)
	SetDefault(ctx context.Context, id, ownerID uuid.UUID, isDefault bool) (*models.PaymentMethod, error)
	GetStats(ctx context.Context, id, ownerID uuid.UUID) (*models.MethodStats, error)
	RecalculateStats(ctx context.Context, id, ownerID uuid.UUID) (*models.MethodStats, error)
}

// RoutingUC defines the smart routing use case
type RoutingUC interface {
	Rank(ctx context.Context, userID uuid.UUID) (*models.RankResult, error)
}
