package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/paylane/paylane/internal/pkg/middleware"
	"github.com/paylane/paylane/internal/utils"
	"github.com/paylane/paylane/services/payments"
)

// RoutingHandler handles smart routing requests
type RoutingHandler struct {
	routingUC payments.RoutingUC
}

// NewRoutingHandler creates a new routing handler
func NewRoutingHandler(routingUC payments.RoutingUC) *RoutingHandler {
	return &RoutingHandler{
		routingUC: routingUC,
	}
}

// SmartRouting ranks the caller's active payment methods by blended score
func (h *RoutingHandler) SmartRouting(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	result, err := h.routingUC.Rank(c.Request().Context(), userID)
	if err != nil {
		return writeDomainError(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Payment methods ranked successfully", result)
}
