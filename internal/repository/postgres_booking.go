package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/cinetix/movie-booking-api/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Advisory lock class for per-screening reservation serialization. The pair
// (class, screening id) scopes the lock to one screening, so reservations
// for different screenings never serialize against each other.
const reservationLockClass = 7621

type PostgresBookingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepository(db *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

// Create commits the booking atomically: inside one transaction it takes a
// per-screening advisory lock, re-validates the requested seats against the
// active claim set, and only then inserts the booking and its claims. The
// partial unique index on booking_seats (screening_id, seat_id) over
// unreleased rows backs this up at the storage layer.
func (p *PostgresBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1, $2)", reservationLockClass, booking.ScreeningID)
		if err != nil {
			return err
		}

		seatIDs := make([]int, len(booking.Seats))
		for i, seat := range booking.Seats {
			seatIDs[i] = seat.ID
		}

		conflicts, err := p.findConflictingSeats(ctx, tx, booking.ScreeningID, seatIDs)
		if err != nil {
			return err
		}

		if len(conflicts) > 0 {
			return &domain.SeatConflictError{ScreeningID: booking.ScreeningID, Seats: conflicts}
		}

		query := `
			INSERT INTO bookings (user_id, screening_id, status)
			VALUES ($1, $2, $3)
			RETURNING id, created_at
		`

		err = tx.QueryRow(
			ctx,
			query,
			booking.UserID,
			booking.ScreeningID,
			domain.BookingStatusPending).Scan(&booking.ID, &booking.CreatedAt)

		if err != nil {
			return err
		}

		rows := make([][]any, 0, len(booking.Seats))
		for _, seat := range booking.Seats {
			rows = append(rows, []any{
				booking.ID,
				booking.ScreeningID,
				seat.ID,
			})
		}

		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"booking_seats"},
			[]string{"booking_id", "screening_id", "seat_id"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			// Unreachable while the advisory lock holds, but the unique
			// index is the second line of defense if it ever doesn't.
			if isUniqueViolation(err) {
				return &domain.SeatConflictError{
					ScreeningID: booking.ScreeningID,
					Seats:       seatLabels(booking.Seats),
				}
			}

			return err
		}

		booking.Status = domain.BookingStatusPending

		return nil
	})

	return mapContention(err)
}

func (p *PostgresBookingRepository) findConflictingSeats(
	ctx context.Context,
	tx pgx.Tx,
	screeningID int,
	seatIDs []int) ([]string, error) {

	query := `
		SELECT s.seat_row, s.seat_number
		FROM booking_seats bs
		JOIN seats s ON bs.seat_id = s.id
		WHERE bs.screening_id = $1 AND NOT bs.released AND bs.seat_id = ANY($2)
		ORDER BY s.seat_row, s.seat_number
	`

	rows, err := tx.Query(ctx, query, screeningID, seatIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var labels []string

	for rows.Next() {
		var row, number int

		if err = rows.Scan(&row, &number); err != nil {
			return nil, err
		}

		labels = append(labels, domain.SeatLabel(row, number))
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return labels, nil
}

// Cancel transitions the booking to Cancelled and releases its seat claims
// in one transaction. The booking row is locked first so a concurrent
// payment or second cancel observes a settled state, never a half-applied
// one. Claims are released by flipping the released flag, which keeps the
// active-claim unique index accurate without deleting audit rows.
func (p *PostgresBookingRepository) Cancel(ctx context.Context, bookingID int) error {
	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			SELECT b.status, sc.start_time
			FROM bookings b
			JOIN screenings sc ON b.screening_id = sc.id
			WHERE b.id = $1
			FOR UPDATE OF b
		`

		var status domain.BookingStatus
		var startTime time.Time

		err := tx.QueryRow(ctx, query, bookingID).Scan(&status, &startTime)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		if status == domain.BookingStatusCancelled {
			return domain.ErrBookingAlreadyCancelled
		}

		if !startTime.After(time.Now().UTC()) {
			return domain.ErrCancelWindowClosed
		}

		_, err = tx.Exec(ctx, "UPDATE bookings SET status = $1 WHERE id = $2", domain.BookingStatusCancelled, bookingID)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, "UPDATE booking_seats SET released = TRUE WHERE booking_id = $1", bookingID)

		return err
	})

	return mapContention(err)
}

func (p *PostgresBookingRepository) GetActiveSeatIdsByScreeningId(
	ctx context.Context,
	screeningID int) ([]int, error) {

	query := `
		SELECT seat_id
		FROM booking_seats
		WHERE screening_id = $1 AND NOT released
	`

	rows, err := p.db.Query(ctx, query, screeningID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seatIDs := make([]int, 0)

	for rows.Next() {
		var seatID int

		if err = rows.Scan(&seatID); err != nil {
			return nil, err
		}

		seatIDs = append(seatIDs, seatID)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seatIDs, nil
}

const bookingDetailColumns = `
	b.id,
	b.user_id,
	b.screening_id,
	b.status,
	b.created_at,
	m.title,
	c.name,
	r.name,
	sc.start_time,
	COALESCE(jsonb_agg(
		jsonb_build_object(
			'id', s.id,
			'roomId', s.room_id,
			'row', s.seat_row,
			'number', s.seat_number
		) ORDER BY s.seat_row, s.seat_number
	) FILTER (WHERE s.id IS NOT NULL), '[]') AS seats
`

const bookingDetailJoins = `
	FROM bookings b
	JOIN screenings sc ON b.screening_id = sc.id
	JOIN movies m ON sc.movie_id = m.id
	JOIN rooms r ON sc.room_id = r.id
	JOIN cinemas c ON r.cinema_id = c.id
	LEFT JOIN booking_seats bs ON bs.booking_id = b.id
	LEFT JOIN seats s ON bs.seat_id = s.id
`

const bookingDetailGroupBy = `
	GROUP BY b.id, b.user_id, b.screening_id, b.status, b.created_at, m.title, c.name, r.name, sc.start_time
`

func (p *PostgresBookingRepository) GetById(ctx context.Context, bookingID int) (*domain.BookingDetail, error) {
	query := "SELECT " + bookingDetailColumns + bookingDetailJoins + " WHERE b.id = $1 " + bookingDetailGroupBy

	var detail domain.BookingDetail
	var seatsJson json.RawMessage

	err := p.db.QueryRow(ctx, query, bookingID).Scan(
		&detail.ID,
		&detail.UserID,
		&detail.ScreeningID,
		&detail.Status,
		&detail.CreatedAt,
		&detail.MovieTitle,
		&detail.CinemaName,
		&detail.RoomName,
		&detail.StartTime,
		&seatsJson,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	if err := json.Unmarshal(seatsJson, &detail.Seats); err != nil {
		return nil, err
	}

	return &detail, nil
}

func (p *PostgresBookingRepository) GetAll(ctx context.Context) ([]domain.BookingDetail, error) {
	query := "SELECT " + bookingDetailColumns + bookingDetailJoins + bookingDetailGroupBy + " ORDER BY b.created_at DESC"

	return p.queryDetails(ctx, query)
}

func (p *PostgresBookingRepository) GetAllByUserId(ctx context.Context, userID int) ([]domain.BookingDetail, error) {
	query := "SELECT " + bookingDetailColumns + bookingDetailJoins +
		" WHERE b.user_id = $1 " + bookingDetailGroupBy + " ORDER BY b.created_at DESC"

	return p.queryDetails(ctx, query, userID)
}

func (p *PostgresBookingRepository) queryDetails(
	ctx context.Context,
	query string,
	args ...any) ([]domain.BookingDetail, error) {

	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]domain.BookingDetail, 0)

	for rows.Next() {
		var detail domain.BookingDetail
		var seatsJson json.RawMessage

		err = rows.Scan(
			&detail.ID,
			&detail.UserID,
			&detail.ScreeningID,
			&detail.Status,
			&detail.CreatedAt,
			&detail.MovieTitle,
			&detail.CinemaName,
			&detail.RoomName,
			&detail.StartTime,
			&seatsJson,
		)
		if err != nil {
			return nil, err
		}

		if err := json.Unmarshal(seatsJson, &detail.Seats); err != nil {
			return nil, err
		}

		details = append(details, detail)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return details, nil
}

func runInTx(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	var txOptions pgx.TxOptions

	tx, err := db.BeginTx(ctx, txOptions)
	if err != nil {
		return err
	}

	err = fn(tx)
	if err == nil {
		return tx.Commit(ctx)
	}

	rollbackErr := tx.Rollback(ctx)
	if rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
		return errors.Join(err, rollbackErr)
	}

	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// mapContention turns a deadline hit while waiting on the transaction or
// lock manager into the retryable busy condition callers expect.
func mapContention(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return domain.ErrReservationBusy
	}

	return err
}

func seatLabels(seats []domain.Seat) []string {
	labels := make([]string, len(seats))
	for i, seat := range seats {
		labels[i] = seat.Label()
	}

	return labels
}
