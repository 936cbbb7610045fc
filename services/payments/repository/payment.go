package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/paylane/paylane/internal/pkg/models"
	"github.com/paylane/paylane/services/payments"
)

// CreatePayment inserts the payment, its initial timeline entry and touches
// the payment method's last_used_at in one transaction
func (r *PaymentRepo) CreatePayment(ctx context.Context, payment *models.Payment) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO payments (id, from_user_id, to_user_id, payment_method_id,
			amount, description, status, created_at, updated_at
		) VALUES (:id, :from_user_id, :to_user_id, :payment_method_id,
			:amount, :description, :status, :created_at, :updated_at)
	`
	_, err = tx.NamedExecContext(ctx, query, payment)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	entry := models.TimelineEntry{
		ID:          uuid.New(),
		PaymentID:   payment.ID,
		Status:      models.PaymentStatusPending,
		Description: "Payment created",
		Notes:       "Payment has been initiated",
		CreatedAt:   payment.CreatedAt,
	}
	timelineQuery := `
		INSERT INTO payment_timeline (id, payment_id, status, description, notes, created_at)
		VALUES (:id, :payment_id, :status, :description, :notes, :created_at)
	`
	_, err = tx.NamedExecContext(ctx, timelineQuery, entry)
	if err != nil {
		return fmt.Errorf("failed to insert timeline entry: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE payment_methods SET last_used_at = $1, updated_at = $1 WHERE id = $2`,
		payment.CreatedAt, payment.PaymentMethodID,
	)
	if err != nil {
		return fmt.Errorf("failed to touch payment method: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetPaymentByID retrieves a payment by its ID
func (r *PaymentRepo) GetPaymentByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	query := `
		SELECT id, from_user_id, to_user_id, payment_method_id,
			amount, description, status, created_at, updated_at
		FROM payments
		WHERE id = $1
	`

	var payment models.Payment
	err := r.db.GetContext(ctx, &payment, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, payments.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return &payment, nil
}

// GetTimeline returns the payment's status history, oldest first
func (r *PaymentRepo) GetTimeline(ctx context.Context, paymentID uuid.UUID) ([]models.TimelineEntry, error) {
	query := `
		SELECT id, payment_id, status, description, notes, created_at
		FROM payment_timeline
		WHERE payment_id = $1
		ORDER BY created_at ASC
	`

	timeline := []models.TimelineEntry{}
	err := r.db.SelectContext(ctx, &timeline, query, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment timeline: %w", err)
	}

	return timeline, nil
}

// ListPayments pages through the user's payments in the given direction,
// newest first, optionally filtered by status
func (r *PaymentRepo) ListPayments(ctx context.Context, userID uuid.UUID, direction string, status *models.PaymentStatus, limit, offset int) (*models.PaymentList, error) {
	var where string
	switch direction {
	case payments.DirectionSent:
		where = "from_user_id = $1"
	case payments.DirectionReceived:
		where = "to_user_id = $1"
	default:
		where = "(from_user_id = $1 OR to_user_id = $1)"
	}

	args := []interface{}{userID}
	if status != nil {
		where += fmt.Sprintf(" AND status = $%d", len(args)+1)
		args = append(args, *status)
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM payments WHERE " + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to count payments: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, from_user_id, to_user_id, payment_method_id,
			amount, description, status, created_at, updated_at
		FROM payments
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	list := []*models.Payment{}
	if err := r.db.SelectContext(ctx, &list, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	return &models.PaymentList{
		Payments: list,
		Total:    total,
		HasMore:  offset+len(list) < total,
	}, nil
}

// GetUserPaymentStats aggregates the user's sent and received totals in one
// scan. Every status counts toward the totals, pending and refunded included.
func (r *PaymentRepo) GetUserPaymentStats(ctx context.Context, userID uuid.UUID) (*models.PaymentStats, error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE from_user_id = $1), 0) AS total_sent,
			COUNT(*) FILTER (WHERE from_user_id = $1) AS total_sent_count,
			COALESCE(SUM(amount) FILTER (WHERE to_user_id = $1), 0) AS total_received,
			COUNT(*) FILTER (WHERE to_user_id = $1) AS total_received_count
		FROM payments
		WHERE from_user_id = $1 OR to_user_id = $1
	`

	var stats models.PaymentStats
	err := r.db.QueryRowxContext(ctx, query, userID).Scan(
		&stats.TotalSent,
		&stats.TotalSentCount,
		&stats.TotalReceived,
		&stats.TotalReceivedCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment stats: %w", err)
	}

	return &stats, nil
}

// ApplyTransition commits one status transition atomically: the status
// update is a compare-and-set against the expected current status, the
// timeline entry is appended and the method counters are adjusted with
// non-negativity guards. A CAS miss rolls back with
// payments.ErrStatusConflict; a counter guard failing rolls back with
// payments.ErrInvariantViolation.
func (r *PaymentRepo) ApplyTransition(ctx context.Context, params payments.TransitionParams) (*models.Payment, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()

	res, err := tx.ExecContext(ctx,
		`UPDATE payments SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		params.To, now, params.PaymentID, params.From,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}
	if affected, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("failed to read rows affected: %w", err)
	} else if affected == 0 {
		// a concurrent transition won the race after the edge was validated
		return nil, fmt.Errorf("%w: %s -> %s", payments.ErrStatusConflict, params.From, params.To)
	}

	entry := models.TimelineEntry{
		ID:          uuid.New(),
		PaymentID:   params.PaymentID,
		Status:      params.To,
		Description: params.Description,
		Notes:       params.Notes,
		CreatedAt:   now,
	}
	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO payment_timeline (id, payment_id, status, description, notes, created_at)
		VALUES (:id, :payment_id, :status, :description, :notes, :created_at)
	`, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to insert timeline entry: %w", err)
	}

	res, err = tx.ExecContext(ctx, `
		UPDATE payment_methods
		SET successful_payments = successful_payments + $1,
			failed_payments = failed_payments + $2,
			disputed_payments = disputed_payments + $3,
			updated_at = $4
		WHERE id = $5
			AND successful_payments + $1 >= 0
			AND failed_payments + $2 >= 0
			AND disputed_payments + $3 >= 0
	`, params.Delta.Successful, params.Delta.Failed, params.Delta.Disputed, now, params.PaymentMethodID)
	if err != nil {
		return nil, fmt.Errorf("failed to apply stats delta: %w", err)
	}
	if affected, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("failed to read rows affected: %w", err)
	} else if affected == 0 {
		// a counter would go negative; never clamp, refuse the transition
		return nil, payments.ErrInvariantViolation
	}

	var payment models.Payment
	err = tx.GetContext(ctx, &payment, `
		SELECT id, from_user_id, to_user_id, payment_method_id,
			amount, description, status, created_at, updated_at
		FROM payments
		WHERE id = $1
	`, params.PaymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload payment: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &payment, nil
}

// UserExists reports whether a user row with the given ID exists
func (r *PaymentRepo) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}
