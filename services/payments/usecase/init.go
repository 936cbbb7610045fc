package usecase

import (
	"github.com/paylane/paylane/internal/pkg/models"
	"github.com/paylane/paylane/services/payments"
)

// PaymentsUC implements the payments.PaymentUC, payments.MethodUC and
// payments.RoutingUC interfaces
type PaymentsUC struct {
	cfg         *models.Config
	paymentRepo payments.PaymentRepo
	methodRepo  payments.MethodRepo
	routingGW   payments.RoutingGW
	eventGW     payments.EventGW
}

// NewPaymentsUC creates a new payments usecase instance
func NewPaymentsUC(
	cfg *models.Config,
	paymentRepo payments.PaymentRepo,
	methodRepo payments.MethodRepo,
	routingGW payments.RoutingGW,
	eventGW payments.EventGW,
) *PaymentsUC {
	return &PaymentsUC{
		cfg:         cfg,
		paymentRepo: paymentRepo,
		methodRepo:  methodRepo,
		routingGW:   routingGW,
		eventGW:     eventGW,
	}
}
