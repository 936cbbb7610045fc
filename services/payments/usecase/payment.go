package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paylane/paylane/internal/pkg/logger"
	"github.com/paylane/paylane/internal/pkg/models"
	"github.com/paylane/paylane/services/payments"
)

// maxPaymentAmount bounds a single payment
var maxPaymentAmount = decimal.NewFromInt(1000000)

const maxDescriptionLength = 500

// CreatePayment validates the request and creates a pending payment with its
// initial timeline entry
func (uc *PaymentsUC) CreatePayment(ctx context.Context, fromUserID uuid.UUID, req *models.CreatePaymentRequest) (*models.Payment, error) {
	toUserID, err := uuid.Parse(req.ToUserID)
	if err != nil {
		return nil, payments.NewValidationError("to_user_id", "must be a valid UUID")
	}
	methodID, err := uuid.Parse(req.PaymentMethodID)
	if err != nil {
		return nil, payments.NewValidationError("payment_method_id", "must be a valid UUID")
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, payments.NewValidationError("amount", "must be a decimal number")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, payments.NewValidationError("amount", "must be positive")
	}
	if amount.GreaterThan(maxPaymentAmount) {
		return nil, payments.NewValidationError("amount", "exceeds the maximum payment amount")
	}
	if len(req.Description) > maxDescriptionLength {
		return nil, payments.NewValidationError("description", "must be at most 500 characters")
	}

	if fromUserID == toUserID {
		return nil, payments.ErrSelfPayment
	}

	method, err := uc.methodRepo.GetOwnedMethod(ctx, methodID, fromUserID)
	if err != nil {
		return nil, err
	}
	if method.ArchivedAt != nil {
		return nil, payments.ErrMethodNotFound
	}

	exists, err := uc.paymentRepo.UserExists(ctx, toUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify recipient: %w", err)
	}
	if !exists {
		return nil, payments.ErrRecipientNotFound
	}

	now := time.Now()
	payment := &models.Payment{
		ID:              uuid.New(),
		FromUserID:      fromUserID,
		ToUserID:        toUserID,
		PaymentMethodID: methodID,
		Amount:          amount,
		Description:     req.Description,
		Status:          models.PaymentStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := uc.paymentRepo.CreatePayment(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	logger.Info("Payment created",
		logger.String("payment_id", payment.ID.String()),
		logger.String("from_user_id", fromUserID.String()),
		logger.String("amount", amount.String()),
	)

	return payment, nil
}

// GetPayment retrieves a payment with its timeline; only the sender or
// recipient may read it
func (uc *PaymentsUC) GetPayment(ctx context.Context, userID, paymentID uuid.UUID) (*models.Payment, error) {
	payment, err := uc.paymentRepo.GetPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if payment.FromUserID != userID && payment.ToUserID != userID {
		return nil, payments.ErrPaymentAccessDenied
	}

	timeline, err := uc.paymentRepo.GetTimeline(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment timeline: %w", err)
	}
	payment.Timeline = timeline

	return payment, nil
}

// ListPayments lists the user's sent, received or all payments with
// pagination and an optional status filter
func (uc *PaymentsUC) ListPayments(ctx context.Context, userID uuid.UUID, direction string, status *models.PaymentStatus, limit, offset int) (*models.PaymentList, error) {
	switch direction {
	case payments.DirectionSent, payments.DirectionReceived, payments.DirectionAll:
	default:
		return nil, payments.NewValidationError("direction", "must be one of sent, received, all")
	}

	if status != nil && !status.IsValid() {
		return nil, payments.NewValidationError("status", "unknown payment status")
	}

	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	return uc.paymentRepo.ListPayments(ctx, userID, direction, status, limit, offset)
}

// GetPaymentStats aggregates the caller's sent and received totals
func (uc *PaymentsUC) GetPaymentStats(ctx context.Context, userID uuid.UUID) (*models.PaymentStats, error) {
	return uc.paymentRepo.GetUserPaymentStats(ctx, userID)
}

// UpdateStatus drives the payment status state machine. The status update,
// timeline entry and payment method stats delta commit atomically; lifecycle
// events are published after the commit.
func (uc *PaymentsUC) UpdateStatus(ctx context.Context, requesterID, paymentID uuid.UUID, req *models.UpdateStatusRequest) (*models.Payment, error) {
	if !req.Status.IsValid() {
		return nil, payments.NewValidationError("status", "unknown payment status")
	}

	payment, err := uc.paymentRepo.GetPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if payment.FromUserID != requesterID {
		return nil, payments.ErrNotPaymentSender
	}

	if !payment.Status.CanTransitionTo(req.Status) {
		return nil, payments.NewInvalidTransitionError(payment.Status, req.Status)
	}

	params := payments.TransitionParams{
		PaymentID:       paymentID,
		PaymentMethodID: payment.PaymentMethodID,
		From:            payment.Status,
		To:              req.Status,
		Description:     models.StatusDescriptions[req.Status],
		Notes:           req.Notes,
		Delta:           TransitionDelta(payment.Status, req.Status),
	}

	updated, err := uc.paymentRepo.ApplyTransition(ctx, params)
	if err != nil {
		return nil, err
	}

	uc.publishTransitionEvents(ctx, updated, payment.Status, req)

	return updated, nil
}

// publishTransitionEvents emits the status event and, for dispute statuses,
// the ledger-facing dispute event. Publish failures never roll back the
// committed transition; they are logged and the consumer catches up from
// the timeline.
func (uc *PaymentsUC) publishTransitionEvents(ctx context.Context, payment *models.Payment, previous models.PaymentStatus, req *models.UpdateStatusRequest) {
	if uc.eventGW == nil {
		return
	}

	now := time.Now().UTC()
	statusEvent := &models.PaymentStatusEvent{
		PaymentID:       payment.ID,
		FromUserID:      payment.FromUserID,
		ToUserID:        payment.ToUserID,
		PaymentMethodID: payment.PaymentMethodID,
		PreviousStatus:  previous,
		NewStatus:       req.Status,
		Amount:          payment.Amount,
		Timestamp:       now,
	}
	if err := uc.eventGW.PublishStatusEvent(ctx, statusEvent); err != nil {
		logger.Error("Failed to publish payment status event",
			logger.String("payment_id", payment.ID.String()),
			logger.Err(err),
		)
	}

	if models.BucketFor(req.Status) != models.BucketDisputed {
		return
	}
	disputeEvent := &models.DisputeEvent{
		PaymentID: payment.ID,
		Status:    req.Status,
		RaisedBy:  payment.FromUserID,
		Notes:     req.Notes,
		Timestamp: now,
	}
	if err := uc.eventGW.PublishDisputeEvent(ctx, disputeEvent); err != nil {
		logger.Error("Failed to publish dispute event",
			logger.String("payment_id", payment.ID.String()),
			logger.Err(err),
		)
	}
}
