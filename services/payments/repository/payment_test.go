package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paylane/paylane/internal/pkg/models"
	"github.com/paylane/paylane/services/payments"
)

func setupPaymentRepoTest(t *testing.T) (*PaymentRepo, sqlmock.Sqlmock, func()) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")

	repo := &PaymentRepo{
		db:  sqlxDB,
		cfg: &models.Config{},
	}

	cleanup := func() {
		sqlxDB.Close()
	}

	return repo, mock, cleanup
}

var paymentColumns = []string{
	"id", "from_user_id", "to_user_id", "payment_method_id",
	"amount", "description", "status", "created_at", "updated_at",
}

func TestCreatePayment(t *testing.T) {
	repo, mock, cleanup := setupPaymentRepoTest(t)
	defer cleanup()

	now := time.Now()
	payment := &models.Payment{
		ID:              uuid.New(),
		FromUserID:      uuid.New(),
		ToUserID:        uuid.New(),
		PaymentMethodID: uuid.New(),
		Amount:          decimal.NewFromFloat(99.99),
		Description:     "Rent share",
		Status:          models.PaymentStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	mock.ExpectBegin()
	mock.ExpectExec("^INSERT INTO payments").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("^INSERT INTO payment_timeline").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("^UPDATE payment_methods SET last_used_at").
		WithArgs(now, payment.PaymentMethodID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.CreatePayment(context.Background(), payment)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPaymentByID(t *testing.T) {
	testCases := []struct {
		name       string
		mockSetup  func(mock sqlmock.Sqlmock, id uuid.UUID)
		assertFunc func(t *testing.T, payment *models.Payment, err error)
	}{
		{
			name: "Success",
			mockSetup: func(mock sqlmock.Sqlmock, id uuid.UUID) {
				rows := sqlmock.NewRows(paymentColumns).
					AddRow(id, uuid.New(), uuid.New(), uuid.New(),
						"45.00", "Groceries", "completed", time.Now(), time.Now())
				mock.ExpectQuery("^SELECT (.+) FROM payments").
					WithArgs(id).
					WillReturnRows(rows)
			},
			assertFunc: func(t *testing.T, payment *models.Payment, err error) {
				assert.NoError(t, err)
				assert.NotNil(t, payment)
				assert.Equal(t, models.PaymentStatusCompleted, payment.Status)
				assert.True(t, payment.Amount.Equal(decimal.NewFromInt(45)))
			},
		},
		{
			name: "Not Found",
			mockSetup: func(mock sqlmock.Sqlmock, id uuid.UUID) {
				mock.ExpectQuery("^SELECT (.+) FROM payments").
					WithArgs(id).
					WillReturnRows(sqlmock.NewRows(paymentColumns))
			},
			assertFunc: func(t *testing.T, payment *models.Payment, err error) {
				assert.Nil(t, payment)
				assert.ErrorIs(t, err, payments.ErrPaymentNotFound)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, cleanup := setupPaymentRepoTest(t)
			defer cleanup()

			id := uuid.New()
			tc.mockSetup(mock, id)

			payment, err := repo.GetPaymentByID(context.Background(), id)

			tc.assertFunc(t, payment, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestListPayments_Sent(t *testing.T) {
	repo, mock, cleanup := setupPaymentRepoTest(t)
	defer cleanup()

	userID := uuid.New()

	mock.ExpectQuery("^SELECT COUNT\\(\\*\\) FROM payments WHERE from_user_id").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	rows := sqlmock.NewRows(paymentColumns).
		AddRow(uuid.New(), userID, uuid.New(), uuid.New(),
			"10.00", "", "pending", time.Now(), time.Now()).
		AddRow(uuid.New(), userID, uuid.New(), uuid.New(),
			"20.00", "", "completed", time.Now(), time.Now())
	mock.ExpectQuery("^SELECT (.+) FROM payments WHERE from_user_id (.+) ORDER BY created_at DESC").
		WithArgs(userID, 2, 0).
		WillReturnRows(rows)

	list, err := repo.ListPayments(context.Background(), userID, payments.DirectionSent, nil, 2, 0)

	assert.NoError(t, err)
	assert.Len(t, list.Payments, 2)
	assert.Equal(t, 3, list.Total)
	assert.True(t, list.HasMore)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPayments_StatusFilter(t *testing.T) {
	repo, mock, cleanup := setupPaymentRepoTest(t)
	defer cleanup()

	userID := uuid.New()
	status := models.PaymentStatusDisputed

	mock.ExpectQuery("^SELECT COUNT\\(\\*\\) FROM payments").
		WithArgs(userID, status).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("^SELECT (.+) FROM payments").
		WithArgs(userID, status, 20, 0).
		WillReturnRows(sqlmock.NewRows(paymentColumns).
			AddRow(uuid.New(), userID, uuid.New(), uuid.New(),
				"75.00", "", "disputed", time.Now(), time.Now()))

	list, err := repo.ListPayments(context.Background(), userID, payments.DirectionAll, &status, 20, 0)

	assert.NoError(t, err)
	assert.Len(t, list.Payments, 1)
	assert.False(t, list.HasMore)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTimeline(t *testing.T) {
	repo, mock, cleanup := setupPaymentRepoTest(t)
	defer cleanup()

	paymentID := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "payment_id", "status", "description", "notes", "created_at"}).
		AddRow(uuid.New(), paymentID, "pending", "Payment created", "Payment has been initiated", time.Now().Add(-time.Hour)).
		AddRow(uuid.New(), paymentID, "completed", "Payment completed successfully", "", time.Now())
	mock.ExpectQuery("^SELECT (.+) FROM payment_timeline (.+) ORDER BY created_at ASC").
		WithArgs(paymentID).
		WillReturnRows(rows)

	timeline, err := repo.GetTimeline(context.Background(), paymentID)

	assert.NoError(t, err)
	require.Len(t, timeline, 2)
	assert.Equal(t, models.PaymentStatusPending, timeline[0].Status)
	assert.Equal(t, models.PaymentStatusCompleted, timeline[1].Status)
}

func TestApplyTransition(t *testing.T) {
	testCases := []struct {
		name       string
		params     func(paymentID, methodID uuid.UUID) payments.TransitionParams
		mockSetup  func(mock sqlmock.Sqlmock, paymentID, methodID uuid.UUID)
		assertFunc func(t *testing.T, payment *models.Payment, err error)
	}{
		{
			name: "Success - pending to completed",
			params: func(paymentID, methodID uuid.UUID) payments.TransitionParams {
				return payments.TransitionParams{
					PaymentID:       paymentID,
					PaymentMethodID: methodID,
					From:            models.PaymentStatusPending,
					To:              models.PaymentStatusCompleted,
					Description:     "Payment completed successfully",
					Delta:           payments.StatsDelta{Successful: 1},
				}
			},
			mockSetup: func(mock sqlmock.Sqlmock, paymentID, methodID uuid.UUID) {
				mock.ExpectBegin()
				mock.ExpectExec("^UPDATE payments SET status").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("^INSERT INTO payment_timeline").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("^UPDATE payment_methods").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectQuery("^SELECT (.+) FROM payments").
					WithArgs(paymentID).
					WillReturnRows(sqlmock.NewRows(paymentColumns).
						AddRow(paymentID, uuid.New(), uuid.New(), methodID,
							"45.00", "", "completed", time.Now(), time.Now()))
				mock.ExpectCommit()
			},
			assertFunc: func(t *testing.T, payment *models.Payment, err error) {
				assert.NoError(t, err)
				assert.Equal(t, models.PaymentStatusCompleted, payment.Status)
			},
		},
		{
			name: "Conflict - CAS misses on stale status",
			params: func(paymentID, methodID uuid.UUID) payments.TransitionParams {
				return payments.TransitionParams{
					PaymentID:       paymentID,
					PaymentMethodID: methodID,
					From:            models.PaymentStatusPending,
					To:              models.PaymentStatusCancelled,
					Delta:           payments.StatsDelta{Failed: 1},
				}
			},
			mockSetup: func(mock sqlmock.Sqlmock, paymentID, methodID uuid.UUID) {
				mock.ExpectBegin()
				mock.ExpectExec("^UPDATE payments SET status").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectRollback()
			},
			assertFunc: func(t *testing.T, payment *models.Payment, err error) {
				assert.Nil(t, payment)
				assert.ErrorIs(t, err, payments.ErrStatusConflict)
				assert.Contains(t, err.Error(), "pending -> cancelled")
			},
		},
		{
			name: "Invariant - counter would go negative",
			params: func(paymentID, methodID uuid.UUID) payments.TransitionParams {
				return payments.TransitionParams{
					PaymentID:       paymentID,
					PaymentMethodID: methodID,
					From:            models.PaymentStatusCompleted,
					To:              models.PaymentStatusDisputed,
					Delta:           payments.StatsDelta{Successful: -1, Disputed: 1},
				}
			},
			mockSetup: func(mock sqlmock.Sqlmock, paymentID, methodID uuid.UUID) {
				mock.ExpectBegin()
				mock.ExpectExec("^UPDATE payments SET status").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("^INSERT INTO payment_timeline").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("^UPDATE payment_methods").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectRollback()
			},
			assertFunc: func(t *testing.T, payment *models.Payment, err error) {
				assert.Nil(t, payment)
				assert.ErrorIs(t, err, payments.ErrInvariantViolation)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, cleanup := setupPaymentRepoTest(t)
			defer cleanup()

			paymentID := uuid.New()
			methodID := uuid.New()
			tc.mockSetup(mock, paymentID, methodID)

			payment, err := repo.ApplyTransition(context.Background(), tc.params(paymentID, methodID))

			tc.assertFunc(t, payment, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGetUserPaymentStats(t *testing.T) {
	repo, mock, cleanup := setupPaymentRepoTest(t)
	defer cleanup()

	userID := uuid.New()
	rows := sqlmock.NewRows([]string{"total_sent", "total_sent_count", "total_received", "total_received_count"}).
		AddRow("120.50", 3, "40.00", 1)
	// totals aggregate payments in every status, not just completed ones
	mock.ExpectQuery("^SELECT (.+) FROM payments WHERE from_user_id = \\$1 OR to_user_id = \\$1").
		WithArgs(userID).
		WillReturnRows(rows)

	stats, err := repo.GetUserPaymentStats(context.Background(), userID)

	assert.NoError(t, err)
	assert.True(t, stats.TotalSent.Equal(decimal.RequireFromString("120.50")))
	assert.Equal(t, 3, stats.TotalSentCount)
	assert.Equal(t, 1, stats.TotalReceivedCount)
}

func TestUserExists(t *testing.T) {
	repo, mock, cleanup := setupPaymentRepoTest(t)
	defer cleanup()

	id := uuid.New()
	mock.ExpectQuery("^SELECT EXISTS").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.UserExists(context.Background(), id)

	assert.NoError(t, err)
	assert.True(t, exists)
}
