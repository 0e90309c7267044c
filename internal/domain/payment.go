package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

// Failed attempts are not persisted, so Success is the only stored status.
const PaymentStatusSuccess PaymentStatus = "Success"

type Payment struct {
	ID        int
	BookingID int
	Reference string
	Method    string
	Amount    decimal.Decimal
	Status    PaymentStatus
	PaidAt    time.Time
}

type PaymentRepository interface {
	// ApplyToBooking settles a Pending booking owned by userID: it
	// transitions the booking to Paid and appends exactly one payment row,
	// both in the same transaction. The amount is seat count times
	// unitPrice. Repeat calls fail with ErrBookingAlreadyPaid and do not
	// create a second row; cancelled bookings fail with ErrBookingCancelled.
	ApplyToBooking(ctx context.Context, bookingID, userID int, method string, unitPrice decimal.Decimal) (*Payment, error)

	GetByBookingId(ctx context.Context, bookingID int) ([]Payment, error)
}
