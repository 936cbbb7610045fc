package nsq

import (
	"context"

	"github.com/paylane/paylane/internal/pkg/constants"
	"github.com/paylane/paylane/internal/pkg/models"
	pkgnsq "github.com/paylane/paylane/internal/pkg/nsq"
)

// EventsGW publishes payment lifecycle events to NSQ
type EventsGW struct {
	producer *pkgnsq.Producer
}

// NewEventsGW creates a new events gateway
func NewEventsGW(producer *pkgnsq.Producer) *EventsGW {
	return &EventsGW{producer: producer}
}

// PublishStatusEvent publishes a payment status transition
func (g *EventsGW) PublishStatusEvent(_ context.Context, event *models.PaymentStatusEvent) error {
	return g.producer.Publish(constants.TopicPaymentStatusChanged, event)
}

// PublishDisputeEvent publishes a dispute lifecycle event for the
// dispute-resolution ledger feed
func (g *EventsGW) PublishDisputeEvent(_ context.Context, event *models.DisputeEvent) error {
	return g.producer.Publish(constants.TopicPaymentDisputes, event)
}
