package repository

import (
	"context"
	"errors"

	"github.com/cinetix/movie-booking-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresScreeningRepository struct {
	db *pgxpool.Pool
}

func NewPostgresScreeningRepository(db *pgxpool.Pool) *PostgresScreeningRepository {
	return &PostgresScreeningRepository{
		db: db,
	}
}

func (p *PostgresScreeningRepository) GetById(ctx context.Context, id int) (*domain.Screening, error) {
	query := `
		SELECT sc.id, sc.movie_id, sc.room_id, sc.start_time, m.title, r.name, c.name
		FROM screenings sc
		JOIN movies m ON sc.movie_id = m.id
		JOIN rooms r ON sc.room_id = r.id
		JOIN cinemas c ON r.cinema_id = c.id
		WHERE sc.id = $1
	`

	var screening domain.Screening

	err := p.db.QueryRow(ctx, query, id).Scan(
		&screening.ID,
		&screening.MovieID,
		&screening.RoomID,
		&screening.StartTime,
		&screening.MovieTitle,
		&screening.RoomName,
		&screening.CinemaName,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &screening, nil
}
