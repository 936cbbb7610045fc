package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/paylane/paylane/internal/pkg/models"
	"github.com/paylane/paylane/services/payments"
)

const methodColumns = `id, user_id, type, details, is_default,
	successful_payments, failed_payments, disputed_payments,
	archived_at, last_used_at, created_at, updated_at`

// lockOwnerMethods serializes payment method writes per owner for the
// duration of the transaction. Row locks alone cannot do this: two
// concurrent demote-then-promote sequences (or two first-create default
// checks) each scan before the other commits, and both end up default.
func lockOwnerMethods(ctx context.Context, tx *sqlx.Tx, ownerID uuid.UUID) error {
	_, err := tx.ExecContext(ctx,
		`SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`,
		ownerID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to lock owner methods: %w", err)
	}
	return nil
}

// CreateMethod inserts the payment method; the owner's first active method
// becomes the default
func (r *MethodRepo) CreateMethod(ctx context.Context, method *models.PaymentMethod) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := lockOwnerMethods(ctx, tx, method.UserID); err != nil {
		return err
	}

	var activeCount int
	err = tx.GetContext(ctx, &activeCount,
		`SELECT COUNT(*) FROM payment_methods WHERE user_id = $1 AND archived_at IS NULL`,
		method.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to count active methods: %w", err)
	}
	method.IsDefault = activeCount == 0

	query := `
		INSERT INTO payment_methods (id, user_id, type, details, is_default,
			successful_payments, failed_payments, disputed_payments,
			created_at, updated_at
		) VALUES (:id, :user_id, :type, :details, :is_default,
			:successful_payments, :failed_payments, :disputed_payments,
			:created_at, :updated_at)
	`
	_, err = tx.NamedExecContext(ctx, query, method)
	if err != nil {
		return fmt.Errorf("failed to insert payment method: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetOwnedMethod retrieves a payment method scoped to its owner
func (r *MethodRepo) GetOwnedMethod(ctx context.Context, id, ownerID uuid.UUID) (*models.PaymentMethod, error) {
	query := fmt.Sprintf(`SELECT %s FROM payment_methods WHERE id = $1 AND user_id = $2`, methodColumns)

	var method models.PaymentMethod
	err := r.db.GetContext(ctx, &method, query, id, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, payments.ErrMethodNotFound
		}
		return nil, fmt.Errorf("failed to get payment method: %w", err)
	}

	return &method, nil
}

// ListMethods returns the owner's payment methods, newest first. Archived
// methods are excluded unless includeArchived is set.
func (r *MethodRepo) ListMethods(ctx context.Context, ownerID uuid.UUID, includeArchived bool) ([]*models.PaymentMethod, error) {
	query := fmt.Sprintf(`SELECT %s FROM payment_methods WHERE user_id = $1`, methodColumns)
	if !includeArchived {
		query += ` AND archived_at IS NULL`
	}
	query += ` ORDER BY created_at DESC`

	methods := []*models.PaymentMethod{}
	if err := r.db.SelectContext(ctx, &methods, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}

	return methods, nil
}

// ArchiveMethod soft-deletes the method, keeping its stats readable through
// history. When the archived method was the default, the most recently
// created active method is promoted in the same transaction.
func (r *MethodRepo) ArchiveMethod(ctx context.Context, id, ownerID uuid.UUID) (*models.PaymentMethod, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := lockOwnerMethods(ctx, tx, ownerID); err != nil {
		return nil, err
	}

	var method models.PaymentMethod
	query := fmt.Sprintf(`SELECT %s FROM payment_methods WHERE id = $1 AND user_id = $2 AND archived_at IS NULL FOR UPDATE`, methodColumns)
	err = tx.GetContext(ctx, &method, query, id, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, payments.ErrMethodNotFound
		}
		return nil, fmt.Errorf("failed to get payment method: %w", err)
	}

	now := time.Now()
	_, err = tx.ExecContext(ctx,
		`UPDATE payment_methods SET archived_at = $1, is_default = FALSE, updated_at = $1 WHERE id = $2`,
		now, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to archive payment method: %w", err)
	}

	if method.IsDefault {
		_, err = tx.ExecContext(ctx, `
			UPDATE payment_methods SET is_default = TRUE, updated_at = $1
			WHERE id = (
				SELECT id FROM payment_methods
				WHERE user_id = $2 AND archived_at IS NULL
				ORDER BY created_at DESC
				LIMIT 1
			)
		`, now, ownerID)
		if err != nil {
			return nil, fmt.Errorf("failed to promote replacement default: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	method.ArchivedAt = &now
	method.IsDefault = false
	method.UpdatedAt = now
	return &method, nil
}

// SetDefault toggles the default flag. Making a method the default first
// demotes every other method of the owner so at most one default exists.
func (r *MethodRepo) SetDefault(ctx context.Context, id, ownerID uuid.UUID, isDefault bool) (*models.PaymentMethod, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := lockOwnerMethods(ctx, tx, ownerID); err != nil {
		return nil, err
	}

	now := time.Now()

	if isDefault {
		_, err = tx.ExecContext(ctx,
			`UPDATE payment_methods SET is_default = FALSE, updated_at = $1 WHERE user_id = $2 AND id <> $3 AND is_default`,
			now, ownerID, id,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to demote existing default: %w", err)
		}
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE payment_methods SET is_default = $1, updated_at = $2 WHERE id = $3 AND user_id = $4 AND archived_at IS NULL`,
		isDefault, now, id, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update default flag: %w", err)
	}
	if affected, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("failed to read rows affected: %w", err)
	} else if affected == 0 {
		return nil, payments.ErrMethodNotFound
	}

	var method models.PaymentMethod
	query := fmt.Sprintf(`SELECT %s FROM payment_methods WHERE id = $1`, methodColumns)
	if err = tx.GetContext(ctx, &method, query, id); err != nil {
		return nil, fmt.Errorf("failed to reload payment method: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &method, nil
}

// RecalculateStats rebuilds the method's counters from the payment table.
// Status-to-counter grouping derives from the same bucket mapping the
// incremental path uses, so the two cannot drift apart.
func (r *MethodRepo) RecalculateStats(ctx context.Context, id uuid.UUID) (*models.PaymentMethod, error) {
	query, args, err := sqlx.In(`
		UPDATE payment_methods
		SET successful_payments = (SELECT COUNT(*) FROM payments WHERE payment_method_id = payment_methods.id AND status IN (?)),
			failed_payments = (SELECT COUNT(*) FROM payments WHERE payment_method_id = payment_methods.id AND status IN (?)),
			disputed_payments = (SELECT COUNT(*) FROM payments WHERE payment_method_id = payment_methods.id AND status IN (?)),
			last_used_at = (SELECT MAX(created_at) FROM payments WHERE payment_method_id = payment_methods.id),
			updated_at = ?
		WHERE id = ?
	`,
		models.StatusesInBucket(models.BucketSuccessful),
		models.StatusesInBucket(models.BucketFailed),
		models.StatusesInBucket(models.BucketDisputed),
		time.Now(),
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build recalculation query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to recalculate method stats: %w", err)
	}
	if affected, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("failed to read rows affected: %w", err)
	} else if affected == 0 {
		return nil, payments.ErrMethodNotFound
	}

	var method models.PaymentMethod
	selectQuery := fmt.Sprintf(`SELECT %s FROM payment_methods WHERE id = $1`, methodColumns)
	if err := r.db.GetContext(ctx, &method, selectQuery, id); err != nil {
		return nil, fmt.Errorf("failed to reload payment method: %w", err)
	}

	return &method, nil
}
