package repository

import (
	"context"
	"errors"

	"github.com/cinetix/movie-booking-api/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PostgresPaymentRepository struct {
	db *pgxpool.Pool
}

func NewPostgresPaymentRepository(db *pgxpool.Pool) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{
		db: db,
	}
}

// ApplyToBooking settles the booking inside one transaction. The booking row
// is locked FOR UPDATE so duplicate submissions serialize: the first one
// commits the Pending -> Paid transition plus the payment row, the second
// observes Paid and fails with ErrBookingAlreadyPaid without writing
// anything.
func (p *PostgresPaymentRepository) ApplyToBooking(
	ctx context.Context,
	bookingID, userID int,
	method string,
	unitPrice decimal.Decimal) (*domain.Payment, error) {

	var payment domain.Payment

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			SELECT user_id, status
			FROM bookings
			WHERE id = $1
			FOR UPDATE
		`

		var ownerID int
		var status domain.BookingStatus

		err := tx.QueryRow(ctx, query, bookingID).Scan(&ownerID, &status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		if ownerID != userID {
			return domain.ErrForbidden
		}

		switch status {
		case domain.BookingStatusPaid:
			return domain.ErrBookingAlreadyPaid
		case domain.BookingStatusCancelled:
			return domain.ErrBookingCancelled
		}

		var seatCount int

		err = tx.QueryRow(ctx, "SELECT COUNT(*) FROM booking_seats WHERE booking_id = $1", bookingID).Scan(&seatCount)
		if err != nil {
			return err
		}

		payment = domain.Payment{
			BookingID: bookingID,
			Reference: uuid.NewString(),
			Method:    method,
			Amount:    unitPrice.Mul(decimal.NewFromInt(int64(seatCount))),
			Status:    domain.PaymentStatusSuccess,
		}

		_, err = tx.Exec(ctx, "UPDATE bookings SET status = $1 WHERE id = $2", domain.BookingStatusPaid, bookingID)
		if err != nil {
			return err
		}

		query = `
			INSERT INTO payments (booking_id, reference, method, amount, status)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, paid_at
		`

		return tx.QueryRow(
			ctx,
			query,
			payment.BookingID,
			payment.Reference,
			payment.Method,
			payment.Amount,
			payment.Status).Scan(&payment.ID, &payment.PaidAt)
	})

	if err != nil {
		return nil, mapContention(err)
	}

	return &payment, nil
}

func (p *PostgresPaymentRepository) GetByBookingId(ctx context.Context, bookingID int) ([]domain.Payment, error) {
	query := `
		SELECT id, booking_id, reference, method, amount, status, paid_at
		FROM payments
		WHERE booking_id = $1
		ORDER BY paid_at
	`

	rows, err := p.db.Query(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]domain.Payment, 0)

	for rows.Next() {
		var payment domain.Payment

		err = rows.Scan(
			&payment.ID,
			&payment.BookingID,
			&payment.Reference,
			&payment.Method,
			&payment.Amount,
			&payment.Status,
			&payment.PaidAt,
		)
		if err != nil {
			return nil, err
		}

		payments = append(payments, payment)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return payments, nil
}
