package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/paylane/paylane/internal/pkg/middleware"
	"github.com/paylane/paylane/internal/pkg/models"
	"github.com/paylane/paylane/internal/utils"
	"github.com/paylane/paylane/services/payments"
)

// MethodHandler handles HTTP requests for payment method operations
type MethodHandler struct {
	methodUC payments.MethodUC
}

// NewMethodHandler creates a new payment method handler
func NewMethodHandler(methodUC payments.MethodUC) *MethodHandler {
	return &MethodHandler{
		methodUC: methodUC,
	}
}

// CreateMethod handles payment method registration requests
func (h *MethodHandler) CreateMethod(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req models.CreateMethodRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	method, err := h.methodUC.CreateMethod(c.Request().Context(), userID, &req)
	if err != nil {
		return writeDomainError(c, err)
	}

	return utils.SuccessResponse(c, http.StatusCreated, "Payment method created successfully", method)
}

// GetMethod handles payment method retrieval requests
func (h *MethodHandler) GetMethod(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	methodID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid payment method ID")
	}

	method, err := h.methodUC.GetMethod(c.Request().Context(), methodID, userID)
	if err != nil {
		return writeDomainError(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Payment method retrieved successfully", method)
}

// ListMethods handles payment method listing requests
func (h *MethodHandler) ListMethods(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	includeArchived := c.QueryParam("include_archived") == "true"

	methods, err := h.methodUC.ListMethods(c.Request().Context(), userID, includeArchived)
	if err != nil {
		return writeDomainError(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Payment methods retrieved successfully", methods)
}

// ArchiveMethod handles payment method archival requests
func (h *MethodHandler) ArchiveMethod(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	methodID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid payment method ID")
	}

	method, err := h.methodUC.ArchiveMethod(c.Request().Context(), methodID, userID)
	if err != nil {
		return writeDomainError(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Payment method archived successfully", method)
}

// SetDefault handles default payment method toggle requests
func (h *MethodHandler) SetDefault(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	methodID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid payment method ID")
	}

	var req models.SetDefaultRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	method, err := h.methodUC.SetDefault(c.Request().Context(), methodID, userID, req.IsDefault)
	if err != nil {
		return writeDomainError(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Payment method updated successfully", method)
}

// GetMethodStats handles per-method stats requests
func (h *MethodHandler) GetMethodStats(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	methodID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid payment method ID")
	}

	stats, err := h.methodUC.GetStats(c.Request().Context(), methodID, userID)
	if err != nil {
		return writeDomainError(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Payment method stats retrieved successfully", stats)
}

// RecalculateStats handles stats recalculation requests
func (h *MethodHandler) RecalculateStats(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	methodID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid payment method ID")
	}

	stats, err := h.methodUC.RecalculateStats(c.Request().Context(), methodID, userID)
	if err != nil {
		return writeDomainError(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Payment method stats recalculated successfully", stats)
}
