package payments

import (
	"context"

	"github.com/paylane/paylane/internal/pkg/models"
)

// RoutingGW fetches the external probability distribution over payment
// method types
type RoutingGW interface {
	GetPrediction(ctx context.Context) (*models.RoutingPrediction, error)
}

// EventGW publishes payment lifecycle events for downstream consumers,
// including the dispute-resolution ledger bridge
type EventGW interface {
	PublishStatusEvent(ctx context.Context, event *models.PaymentStatusEvent) error
	PublishDisputeEvent(ctx context.Context, event *models.DisputeEvent) error
}
