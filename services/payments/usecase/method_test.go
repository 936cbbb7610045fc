package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/paylane/paylane/internal/pkg/models"
	"github.com/paylane/paylane/services/payments"
)

func TestCreateMethod_Success(t *testing.T) {
	ctx := context.Background()
	mockMethodRepo := new(MockMethodRepo)

	ownerID := uuid.New()
	mockMethodRepo.On("CreateMethod", ctx, mock.AnythingOfType("*models.PaymentMethod")).Return(nil)

	uc := NewPaymentsUC(testConfig(), new(MockPaymentRepo), mockMethodRepo, nil, nil)

	req := &models.CreateMethodRequest{
		Type:    models.MethodTypeCreditCard,
		Details: map[string]interface{}{"last4": "4242", "brand": "visa"},
	}

	method, err := uc.CreateMethod(ctx, ownerID, req)

	assert.NoError(t, err)
	assert.Equal(t, ownerID, method.UserID)
	assert.Equal(t, models.MethodTypeCreditCard, method.Type)
	assert.JSONEq(t, `{"last4":"4242","brand":"visa"}`, string(method.Details))
	mockMethodRepo.AssertExpectations(t)
}

func TestCreateMethod_DetailValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		methodType models.MethodType
		details    map[string]interface{}
		wantField  string
	}{
		{
			name:       "unknown type",
			methodType: models.MethodType("crypto"),
			details:    map[string]interface{}{},
			wantField:  "type",
		},
		{
			name:       "credit card missing last4",
			methodType: models.MethodTypeCreditCard,
			details:    map[string]interface{}{"brand": "visa"},
			wantField:  "details.last4",
		},
		{
			name:       "debit card last4 wrong length",
			methodType: models.MethodTypeDebitCard,
			details:    map[string]interface{}{"last4": "42"},
			wantField:  "details.last4",
		},
		{
			name:       "bank missing routing number",
			methodType: models.MethodTypeBank,
			details:    map[string]interface{}{"accountNumber": "12345678"},
			wantField:  "details.routingNumber",
		},
		{
			name:       "upi missing id",
			methodType: models.MethodTypeUPI,
			details:    map[string]interface{}{},
			wantField:  "details.upiId",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewPaymentsUC(testConfig(), new(MockPaymentRepo), new(MockMethodRepo), nil, nil)

			method, err := uc.CreateMethod(ctx, uuid.New(), &models.CreateMethodRequest{
				Type:    tt.methodType,
				Details: tt.details,
			})

			assert.Nil(t, method)
			var validationErr *payments.ValidationError
			assert.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tt.wantField, validationErr.Field)
		})
	}
}

func TestGetStats_View(t *testing.T) {
	ctx := context.Background()
	mockMethodRepo := new(MockMethodRepo)

	ownerID := uuid.New()
	methodID := uuid.New()
	method := &models.PaymentMethod{
		ID:                 methodID,
		UserID:             ownerID,
		Type:               models.MethodTypeBank,
		SuccessfulPayments: 8,
		FailedPayments:     2,
		DisputedPayments:   0,
	}
	mockMethodRepo.On("GetOwnedMethod", ctx, methodID, ownerID).Return(method, nil)

	uc := NewPaymentsUC(testConfig(), new(MockPaymentRepo), mockMethodRepo, nil, nil)

	stats, err := uc.GetStats(ctx, methodID, ownerID)

	assert.NoError(t, err)
	assert.Equal(t, 10, stats.TotalPayments)
	assert.Equal(t, 0.8, stats.SuccessRate)
}

func TestGetStats_ArchivedMethodHidden(t *testing.T) {
	ctx := context.Background()
	mockMethodRepo := new(MockMethodRepo)

	ownerID := uuid.New()
	methodID := uuid.New()
	archivedAt := time.Now()
	method := &models.PaymentMethod{
		ID:         methodID,
		UserID:     ownerID,
		ArchivedAt: &archivedAt,
	}
	mockMethodRepo.On("GetOwnedMethod", ctx, methodID, ownerID).Return(method, nil)

	uc := NewPaymentsUC(testConfig(), new(MockPaymentRepo), mockMethodRepo, nil, nil)

	stats, err := uc.GetStats(ctx, methodID, ownerID)

	assert.Nil(t, stats)
	assert.ErrorIs(t, err, payments.ErrMethodNotFound)
}

func TestRecalculateStats_ReturnsRepairedView(t *testing.T) {
	ctx := context.Background()
	mockMethodRepo := new(MockMethodRepo)

	ownerID := uuid.New()
	methodID := uuid.New()

	// counters drifted; the rebuild from payment history is authoritative
	drifted := &models.PaymentMethod{
		ID:                 methodID,
		UserID:             ownerID,
		Type:               models.MethodTypeUPI,
		SuccessfulPayments: 5,
	}
	repaired := &models.PaymentMethod{
		ID:                 methodID,
		UserID:             ownerID,
		Type:               models.MethodTypeUPI,
		SuccessfulPayments: 3,
		FailedPayments:     1,
	}
	mockMethodRepo.On("GetOwnedMethod", ctx, methodID, ownerID).Return(drifted, nil)
	mockMethodRepo.On("RecalculateStats", ctx, methodID).Return(repaired, nil)

	uc := NewPaymentsUC(testConfig(), new(MockPaymentRepo), mockMethodRepo, nil, nil)

	stats, err := uc.RecalculateStats(ctx, methodID, ownerID)

	assert.NoError(t, err)
	assert.Equal(t, 3, stats.SuccessfulPayments)
	assert.Equal(t, 4, stats.TotalPayments)
	assert.Equal(t, 0.75, stats.SuccessRate)
	mockMethodRepo.AssertExpectations(t)
}
