package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRecordNotFound          = errors.New("record not found")
	ErrForbidden               = errors.New("requester does not own this resource")
	ErrCancelWindowClosed      = errors.New("cancellation is not allowed after the screening has started")
	ErrBookingAlreadyCancelled = errors.New("booking is already cancelled")
	ErrBookingAlreadyPaid      = errors.New("booking is already paid")
	ErrBookingCancelled        = errors.New("cannot pay for a cancelled booking")
	ErrReservationBusy         = errors.New("could not complete the operation in time, please retry")
)

// SeatConflictError reports the seats that were already claimed by another
// active booking at the moment the failed attempt was validated.
type SeatConflictError struct {
	ScreeningID int
	Seats       []string
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf("seats already booked for screening %d: %s", e.ScreeningID, strings.Join(e.Seats, ", "))
}
