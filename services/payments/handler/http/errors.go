package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/paylane/paylane/internal/pkg/logger"
	"github.com/paylane/paylane/internal/utils"
	"github.com/paylane/paylane/services/payments"
)

// writeDomainError maps domain errors onto HTTP responses. Invariant
// violations are logged loudly and surfaced as opaque 500s; everything the
// client can act on keeps its message.
func writeDomainError(c echo.Context, err error) error {
	var validationErr *payments.ValidationError
	var transitionErr *payments.InvalidTransitionError

	switch {
	case errors.As(err, &validationErr), errors.As(err, &transitionErr), errors.Is(err, payments.ErrSelfPayment):
		return utils.BadRequestResponse(c, err.Error())
	case errors.Is(err, payments.ErrPaymentNotFound),
		errors.Is(err, payments.ErrMethodNotFound),
		errors.Is(err, payments.ErrRecipientNotFound):
		return utils.NotFoundResponse(c, err.Error())
	case errors.Is(err, payments.ErrNotPaymentSender),
		errors.Is(err, payments.ErrPaymentAccessDenied):
		return utils.ForbiddenResponse(c, err.Error())
	case errors.Is(err, payments.ErrStatusConflict):
		return utils.ErrorResponseHandler(c, http.StatusConflict, err.Error())
	case errors.Is(err, payments.ErrInvariantViolation):
		logger.Error("Payment stats invariant violated",
			logger.String("path", c.Path()),
			logger.Err(err),
		)
		return utils.InternalServerErrorResponse(c, "")
	default:
		logger.Error("Unhandled payments error",
			logger.String("path", c.Path()),
			logger.Err(err),
		)
		return utils.InternalServerErrorResponse(c, "")
	}
}
