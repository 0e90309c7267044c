package mocks

import (
	"context"

	"github.com/cinetix/movie-booking-api/internal/domain"
)

type MockSeatRepo struct {
	GetSeatsByRoomFunc       func(ctx context.Context, roomID int) ([]domain.Seat, error)
	GetSeatsByRoomAndIdsFunc func(ctx context.Context, roomID int, seatIDs []int) ([]domain.Seat, error)
}

func (m *MockSeatRepo) GetSeatsByRoom(ctx context.Context, roomID int) ([]domain.Seat, error) {
	return m.GetSeatsByRoomFunc(ctx, roomID)
}

func (m *MockSeatRepo) GetSeatsByRoomAndIds(
	ctx context.Context,
	roomID int,
	seatIDs []int) ([]domain.Seat, error) {

	return m.GetSeatsByRoomAndIdsFunc(ctx, roomID, seatIDs)
}
