package repository

import (
	"context"

	"github.com/cinetix/movie-booking-api/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresSeatRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSeatRepository(db *pgxpool.Pool) *PostgresSeatRepository {
	return &PostgresSeatRepository{
		db: db,
	}
}

func (p *PostgresSeatRepository) GetSeatsByRoom(ctx context.Context, roomID int) ([]domain.Seat, error) {
	query := `
		SELECT id, room_id, seat_row, seat_number
		FROM seats
		WHERE room_id = $1
		ORDER BY seat_row, seat_number
	`

	return p.querySeats(ctx, query, roomID)
}

func (p *PostgresSeatRepository) GetSeatsByRoomAndIds(
	ctx context.Context,
	roomID int,
	seatIDs []int) ([]domain.Seat, error) {

	query := `
		SELECT id, room_id, seat_row, seat_number
		FROM seats
		WHERE room_id = $1 AND id = ANY($2)
		ORDER BY seat_row, seat_number
	`

	return p.querySeats(ctx, query, roomID, seatIDs)
}

func (p *PostgresSeatRepository) querySeats(ctx context.Context, query string, args ...any) ([]domain.Seat, error) {
	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.Seat, 0)

	for rows.Next() {
		var seat domain.Seat

		err = rows.Scan(&seat.ID, &seat.RoomID, &seat.Row, &seat.Number)
		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}
