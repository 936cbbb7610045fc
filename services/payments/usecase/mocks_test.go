package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/paylane/paylane/internal/pkg/models"
	"github.com/paylane/paylane/services/payments"
)

// Mock Payment Repository
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) CreatePayment(ctx context.Context, payment *models.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepo) GetPaymentByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockPaymentRepo) GetTimeline(ctx context.Context, paymentID uuid.UUID) ([]models.TimelineEntry, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TimelineEntry), args.Error(1)
}

func (m *MockPaymentRepo) ListPayments(ctx context.Context, userID uuid.UUID, direction string, status *models.PaymentStatus, limit, offset int) (*models.PaymentList, error) {
	args := m.Called(ctx, userID, direction, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaymentList), args.Error(1)
}

func (m *MockPaymentRepo) GetUserPaymentStats(ctx context.Context, userID uuid.UUID) (*models.PaymentStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaymentStats), args.Error(1)
}

func (m *MockPaymentRepo) ApplyTransition(ctx context.Context, params payments.TransitionParams) (*models.Payment, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockPaymentRepo) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// Mock Method Repository
type MockMethodRepo struct {
	mock.Mock
}

func (m *MockMethodRepo) CreateMethod(ctx context.Context, method *models.PaymentMethod) error {
	args := m.Called(ctx, method)
	return args.Error(0)
}

func (m *MockMethodRepo) GetOwnedMethod(ctx context.Context, id, ownerID uuid.UUID) (*models.PaymentMethod, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaymentMethod), args.Error(1)
}

func (m *MockMethodRepo) ListMethods(ctx context.Context, ownerID uuid.UUID, includeArchived bool) ([]*models.PaymentMethod, error) {
	args := m.Called(ctx, ownerID, includeArchived)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PaymentMethod), args.Error(1)
}

func (m *MockMethodRepo) ArchiveMethod(ctx context.Context, id, ownerID uuid.UUID) (*models.PaymentMethod, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaymentMethod), args.Error(1)
}

func (m *MockMethodRepo) SetDefault(ctx context.Context, id, ownerID uuid.UUID, isDefault bool) (*models.PaymentMethod, error) {
	args := m.Called(ctx, id, ownerID, isDefault)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaymentMethod), args.Error(1)
}

func (m *MockMethodRepo) RecalculateStats(ctx context.Context, id uuid.UUID) (*models.PaymentMethod, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaymentMethod), args.Error(1)
}

// Mock Routing Gateway
type MockRoutingGW struct {
	mock.Mock
}

func (m *MockRoutingGW) GetPrediction(ctx context.Context) (*models.RoutingPrediction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RoutingPrediction), args.Error(1)
}

// Mock Event Gateway
type MockEventGW struct {
	mock.Mock
}

func (m *MockEventGW) PublishStatusEvent(ctx context.Context, event *models.PaymentStatusEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventGW) PublishDisputeEvent(ctx context.Context, event *models.DisputeEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func testConfig() *models.Config {
	return &models.Config{
		Routing: models.RoutingConfig{
			ServiceURL:        "http://localhost:5001",
			TimeoutSeconds:    3,
			SuccessRateWeight: 0.4,
			FallbackProb:      0.25,
		},
	}
}
