package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dharmasatrya/travelbooking/internal/models"
)

// MockUpstream is a mock implementation of workflow.Upstream
type MockUpstream struct {
	mock.Mock
}

func (m *MockUpstream) Search(ctx context.Context, criteria models.SearchCriteria) (*models.SearchResponse, error) {
	args := m.Called(ctx, criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SearchResponse), args.Error(1)
}

func (m *MockUpstream) CreateBooking(ctx context.Context, token string, draft models.BookingDraft, idempotencyKey string) (*models.Booking, error) {
	args := m.Called(ctx, token, draft, idempotencyKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockUpstream) InitializePayment(ctx context.Context, token string, req models.PaymentRequest) (*models.PaymentResponse, error) {
	args := m.Called(ctx, token, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaymentResponse), args.Error(1)
}
