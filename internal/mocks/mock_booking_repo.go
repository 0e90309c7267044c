package mocks

import (
	"context"

	"github.com/cinetix/movie-booking-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepo struct {
	mock.Mock
	domain.BookingRepository
}

func (m *MockBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepo) Cancel(ctx context.Context, bookingID int) error {
	args := m.Called(ctx, bookingID)
	return args.Error(0)
}

func (m *MockBookingRepo) GetById(ctx context.Context, bookingID int) (*domain.BookingDetail, error) {
	args := m.Called(ctx, bookingID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.BookingDetail), args.Error(1)
}

func (m *MockBookingRepo) GetAll(ctx context.Context) ([]domain.BookingDetail, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.BookingDetail), args.Error(1)
}

func (m *MockBookingRepo) GetAllByUserId(ctx context.Context, userID int) ([]domain.BookingDetail, error) {
	args := m.Called(ctx, userID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.BookingDetail), args.Error(1)
}

func (m *MockBookingRepo) GetActiveSeatIdsByScreeningId(ctx context.Context, screeningID int) ([]int, error) {
	args := m.Called(ctx, screeningID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]int), args.Error(1)
}
