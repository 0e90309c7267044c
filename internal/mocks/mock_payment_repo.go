package mocks

import (
	"context"

	"github.com/cinetix/movie-booking-api/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockPaymentRepo struct {
	mock.Mock
	domain.PaymentRepository
}

func (m *MockPaymentRepo) ApplyToBooking(
	ctx context.Context,
	bookingID, userID int,
	method string,
	unitPrice decimal.Decimal) (*domain.Payment, error) {

	args := m.Called(ctx, bookingID, userID, method, unitPrice)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepo) GetByBookingId(ctx context.Context, bookingID int) ([]domain.Payment, error) {
	args := m.Called(ctx, bookingID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Payment), args.Error(1)
}
