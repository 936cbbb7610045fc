package http

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/paylane/paylane/internal/pkg/middleware"
	"github.com/paylane/paylane/internal/pkg/models"
	"github.com/paylane/paylane/internal/utils"
	"github.com/paylane/paylane/services/payments"
)

// PaymentHandler handles HTTP requests for payment operations
type PaymentHandler struct {
	paymentUC payments.PaymentUC
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentUC payments.PaymentUC) *PaymentHandler {
	return &PaymentHandler{
		paymentUC: paymentUC,
	}
}

// CreatePayment handles payment creation requests
func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req models.CreatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	payment, err := h.paymentUC.CreatePayment(c.Request().Context(), userID, &req)
	if err != nil {
		return writeDomainError(c, err)
	}

	return utils.SuccessResponse(c, http.StatusCreated, "Payment created successfully", payment)
}

// GetPayment handles payment retrieval requests, timeline included
func (h *PaymentHandler) GetPayment(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid payment ID")
	}

	payment, err := h.paymentUC.GetPayment(c.Request().Context(), userID, paymentID)
	if err != nil {
		return writeDomainError(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Payment retrieved successfully", payment)
}

// ListPayments handles paginated payment listing requests
func (h *PaymentHandler) ListPayments(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	direction := c.QueryParam("direction")
	if direction == "" {
		direction = payments.DirectionAll
	}

	var status *models.PaymentStatus
	if raw := c.QueryParam("status"); raw != "" {
		s := models.PaymentStatus(raw)
		status = &s
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	list, err := h.paymentUC.ListPayments(c.Request().Context(), userID, direction, status, limit, offset)
	if err != nil {
		return writeDomainError(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Payments retrieved successfully", list)
}

// UpdateStatus handles payment status transition requests
func (h *PaymentHandler) UpdateStatus(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid payment ID")
	}

	var req models.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	payment, err := h.paymentUC.UpdateStatus(c.Request().Context(), userID, paymentID, &req)
	if err != nil {
		return writeDomainError(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Payment status updated successfully", payment)
}

// GetStats handles user payment stats requests
func (h *PaymentHandler) GetStats(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	stats, err := h.paymentUC.GetPaymentStats(c.Request().Context(), userID)
	if err != nil {
		return writeDomainError(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Payment stats retrieved successfully", stats)
}
