package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/paylane/paylane/internal/pkg/middleware"
	"github.com/paylane/paylane/internal/pkg/models"
	"github.com/paylane/paylane/services/payments/handler/http"
)

// Handler coordinates the HTTP handlers for the payments service
type Handler struct {
	paymentHandler *http.PaymentHandler
	methodHandler  *http.MethodHandler
	routingHandler *http.RoutingHandler
	cfg            *models.Config
}

// NewHandler creates and initializes all handlers
func NewHandler(
	paymentHandler *http.PaymentHandler,
	methodHandler *http.MethodHandler,
	routingHandler *http.RoutingHandler,
	cfg *models.Config,
) *Handler {
	return &Handler{
		paymentHandler: paymentHandler,
		methodHandler:  methodHandler,
		routingHandler: routingHandler,
		cfg:            cfg,
	}
}

// RegisterRoutes sets up all HTTP routes. Every payments route requires an
// authenticated user.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	auth := middleware.JWTAuthMiddleware(h.cfg.JWT)

	paymentGroup := e.Group("/payments", auth)
	paymentGroup.POST("", h.paymentHandler.CreatePayment)
	paymentGroup.GET("", h.paymentHandler.ListPayments)
	paymentGroup.GET("/stats", h.paymentHandler.GetStats)
	paymentGroup.GET("/:id", h.paymentHandler.GetPayment)
	paymentGroup.PATCH("/:id/status", h.paymentHandler.UpdateStatus)

	methodGroup := e.Group("/payment-methods", auth)
	methodGroup.POST("", h.methodHandler.CreateMethod)
	methodGroup.GET("", h.methodHandler.ListMethods)
	methodGroup.GET("/:id", h.methodHandler.GetMethod)
	methodGroup.DELETE("/:id", h.methodHandler.ArchiveMethod)
	methodGroup.PATCH("/:id/default", h.methodHandler.SetDefault)
	methodGroup.GET("/:id/stats", h.methodHandler.GetMethodStats)
	methodGroup.POST("/:id/stats/recalculate", h.methodHandler.RecalculateStats)

	e.GET("/smart-routing", h.routingHandler.SmartRouting, auth)
}
