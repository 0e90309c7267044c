package domain

import (
	"context"
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "Pending"
	BookingStatusPaid      BookingStatus = "Paid"
	BookingStatusCancelled BookingStatus = "Cancelled"
)

// Active reports whether the booking's seat claims count toward occupancy.
func (s BookingStatus) Active() bool {
	return s != BookingStatusCancelled
}

type Booking struct {
	ID          int
	UserID      int
	ScreeningID int
	Status      BookingStatus
	CreatedAt   time.Time
	Seats       []Seat
}

// BookingDetail is the joined read model of a booking: the booking row plus
// the screening context and claimed seats needed by list/detail responses.
type BookingDetail struct {
	ID          int
	UserID      int
	ScreeningID int
	Status      BookingStatus
	MovieTitle  string
	CinemaName  string
	RoomName    string
	StartTime   time.Time
	CreatedAt   time.Time
	Seats       []Seat
}

func (d BookingDetail) SeatLabels() []string {
	labels := make([]string, len(d.Seats))
	for i, seat := range d.Seats {
		labels[i] = seat.Label()
	}

	return labels
}

type BookingRepository interface {
	// Create commits the booking and its seat claims as one atomic unit.
	// When any requested seat is already claimed by an active booking for
	// the same screening it returns a *SeatConflictError and nothing is
	// persisted. On success the booking's ID, Status and CreatedAt are
	// populated.
	Create(ctx context.Context, booking *Booking) error

	// Cancel transitions the booking to Cancelled and releases its seat
	// claims in the same transaction. It fails with
	// ErrBookingAlreadyCancelled or ErrCancelWindowClosed when the
	// transition is illegal.
	Cancel(ctx context.Context, bookingID int) error

	GetById(ctx context.Context, bookingID int) (*BookingDetail, error)
	GetAll(ctx context.Context) ([]BookingDetail, error)
	GetAllByUserId(ctx context.Context, userID int) ([]BookingDetail, error)

	// GetActiveSeatIdsByScreeningId returns the seat ids claimed by all
	// non-cancelled bookings of the screening.
	GetActiveSeatIdsByScreeningId(ctx context.Context, screeningID int) ([]int, error)
}
