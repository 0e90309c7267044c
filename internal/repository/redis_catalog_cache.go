package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cinetix/movie-booking-api/internal/domain"
	"github.com/redis/go-redis/v9"
)

const catalogCacheTTL = 10 * time.Minute

// RedisCatalogCache is a read-through cache over the screening and seat
// repositories. It only caches immutable reference data (screening metadata
// and room grids); occupancy is always read live from the bookings, so a
// cache hit can never show a stale availability decision.
type RedisCatalogCache struct {
	redis      redis.UniversalClient
	screenings domain.ScreeningRepository
	seats      domain.SeatRepository
}

func NewRedisCatalogCache(
	client redis.UniversalClient,
	screenings domain.ScreeningRepository,
	seats domain.SeatRepository) *RedisCatalogCache {

	return &RedisCatalogCache{
		redis:      client,
		screenings: screenings,
		seats:      seats,
	}
}

func (c *RedisCatalogCache) GetById(ctx context.Context, id int) (*domain.Screening, error) {
	key := screeningKey(id)

	cached, err := c.redis.Get(ctx, key).Bytes()
	if err == nil {
		var screening domain.Screening

		if err = json.Unmarshal(cached, &screening); err == nil {
			return &screening, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		return nil, err
	}

	screening, err := c.screenings.GetById(ctx, id)
	if err != nil {
		return nil, err
	}

	c.store(ctx, key, screening)

	return screening, nil
}

func (c *RedisCatalogCache) GetSeatsByRoom(ctx context.Context, roomID int) ([]domain.Seat, error) {
	key := roomSeatsKey(roomID)

	cached, err := c.redis.Get(ctx, key).Bytes()
	if err == nil {
		var seats []domain.Seat

		if err = json.Unmarshal(cached, &seats); err == nil {
			return seats, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		return nil, err
	}

	seats, err := c.seats.GetSeatsByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	c.store(ctx, key, seats)

	return seats, nil
}

// GetSeatsByRoomAndIds filters the cached grid instead of hitting the seats
// table; membership of a seat in a room is as immutable as the grid itself.
func (c *RedisCatalogCache) GetSeatsByRoomAndIds(
	ctx context.Context,
	roomID int,
	seatIDs []int) ([]domain.Seat, error) {

	seats, err := c.GetSeatsByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	requested := make(map[int]bool, len(seatIDs))
	for _, id := range seatIDs {
		requested[id] = true
	}

	matched := make([]domain.Seat, 0, len(seatIDs))

	for _, seat := range seats {
		if requested[seat.ID] {
			matched = append(matched, seat)
		}
	}

	return matched, nil
}

// store is best effort; a failed write only costs the next reader a DB trip.
func (c *RedisCatalogCache) store(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}

	c.redis.Set(ctx, key, data, catalogCacheTTL)
}

func screeningKey(id int) string {
	return fmt.Sprintf("catalog:screening:%d", id)
}

func roomSeatsKey(roomID int) string {
	return fmt.Sprintf("catalog:room_seats:%d", roomID)
}
