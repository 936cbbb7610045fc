package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/paylane/paylane/internal/pkg/logger"
	"github.com/paylane/paylane/internal/pkg/models"
	"github.com/paylane/paylane/internal/utils"
	"github.com/paylane/paylane/services/payments"
)

// CreateMethod validates and registers a new payment method for the owner.
// The owner's first active method is automatically marked default.
func (uc *PaymentsUC) CreateMethod(ctx context.Context, ownerID uuid.UUID, req *models.CreateMethodRequest) (*models.PaymentMethod, error) {
	if !req.Type.IsValid() {
		return nil, payments.NewValidationError("type", "must be one of bank, credit_card, debit_card, upi_id")
	}

	if err := validateMethodDetails(req.Type, req.Details); err != nil {
		return nil, err
	}

	detailsJSON, err := json.Marshal(req.Details)
	if err != nil {
		return nil, fmt.Errorf("failed to encode method details: %w", err)
	}

	now := time.Now()
	method := &models.PaymentMethod{
		ID:        uuid.New(),
		UserID:    ownerID,
		Type:      req.Type,
		Details:   detailsJSON,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.methodRepo.CreateMethod(ctx, method); err != nil {
		return nil, fmt.Errorf("failed to create payment method: %w", err)
	}

	logger.Info("Payment method created",
		logger.String("method_id", method.ID.String()),
		logger.String("user_id", ownerID.String()),
		logger.String("type", string(method.Type)),
	)

	return method, nil
}

// validateMethodDetails enforces the type-specific shape of the details blob
func validateMethodDetails(methodType models.MethodType, details map[string]interface{}) error {
	requireString := func(field string) error {
		val, ok := details[field].(string)
		if !ok || val == "" {
			return payments.NewValidationError("details."+field, "is required")
		}
		return nil
	}

	switch methodType {
	case models.MethodTypeCreditCard, models.MethodTypeDebitCard:
		if err := requireString("last4"); err != nil {
			return err
		}
		if last4 := details["last4"].(string); len(last4) != 4 {
			return payments.NewValidationError("details.last4", "must be exactly 4 digits")
		}
	case models.MethodTypeBank:
		if err := requireString("accountNumber"); err != nil {
			return err
		}
		if err := requireString("routingNumber"); err != nil {
			return err
		}
	case models.MethodTypeUPI:
		if err := requireString("upiId"); err != nil {
			return err
		}
	}
	return nil
}

// GetMethod retrieves a payment method owned by the caller
func (uc *PaymentsUC) GetMethod(ctx context.Context, id, ownerID uuid.UUID) (*models.PaymentMethod, error) {
	return uc.methodRepo.GetOwnedMethod(ctx, id, ownerID)
}

// ListMethods lists the caller's payment methods, newest first
func (uc *PaymentsUC) ListMethods(ctx context.Context, ownerID uuid.UUID, includeArchived bool) ([]*models.PaymentMethod, error) {
	return uc.methodRepo.ListMethods(ctx, ownerID, includeArchived)
}

// ArchiveMethod soft-deletes a payment method, preserving its stats. When
// the archived method was the default, the most recently created active
// method is promoted in the same transaction.
func (uc *PaymentsUC) ArchiveMethod(ctx context.Context, id, ownerID uuid.UUID) (*models.PaymentMethod, error) {
	method, err := uc.methodRepo.ArchiveMethod(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	logger.Info("Payment method archived",
		logger.String("method_id", id.String()),
		logger.String("user_id", ownerID.String()),
	)

	return method, nil
}

// SetDefault toggles the default flag. Setting a method default demotes
// every other active method of the same owner in the same transaction.
func (uc *PaymentsUC) SetDefault(ctx context.Context, id, ownerID uuid.UUID, isDefault bool) (*models.PaymentMethod, error) {
	return uc.methodRepo.SetDefault(ctx, id, ownerID, isDefault)
}

// GetStats returns the per-method statistics view. Archived methods are not
// visible here.
func (uc *PaymentsUC) GetStats(ctx context.Context, id, ownerID uuid.UUID) (*models.MethodStats, error) {
	method, err := uc.methodRepo.GetOwnedMethod(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if method.ArchivedAt != nil {
		return nil, payments.ErrMethodNotFound
	}

	return methodStatsView(method), nil
}

// RecalculateStats rebuilds the method's counters from the full payment
// history. Idempotent; used to repair drift.
func (uc *PaymentsUC) RecalculateStats(ctx context.Context, id, ownerID uuid.UUID) (*models.MethodStats, error) {
	method, err := uc.methodRepo.GetOwnedMethod(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if method.ArchivedAt != nil {
		return nil, payments.ErrMethodNotFound
	}

	recalculated, err := uc.methodRepo.RecalculateStats(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to recalculate method stats: %w", err)
	}

	logger.Info("Payment method stats recalculated",
		logger.String("method_id", id.String()),
		logger.Int("successful", recalculated.SuccessfulPayments),
		logger.Int("failed", recalculated.FailedPayments),
		logger.Int("disputed", recalculated.DisputedPayments),
	)

	return methodStatsView(recalculated), nil
}

func methodStatsView(method *models.PaymentMethod) *models.MethodStats {
	return &models.MethodStats{
		Type:               method.Type,
		SuccessfulPayments: method.SuccessfulPayments,
		FailedPayments:     method.FailedPayments,
		DisputedPayments:   method.DisputedPayments,
		TotalPayments:      method.TotalPayments(),
		SuccessRate:        utils.Round2(method.SuccessRate()),
	}
}
