package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/cinetix/movie-booking-api/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	ErrBookingNotFound       = "The booking does not exist"
	ErrBookingAlreadySettled = "This booking has already been paid"
	ErrBookingIsCancelled    = "Cannot pay for a cancelled booking"
	confirmationMailTemplate = "booking_confirmation.tmpl"
)

type PaymentRequest struct {
	BookingId int    `json:"bookingId" validate:"required,gt=0"`
	Method    string `json:"method" validate:"required,max=50"`
}

type PaymentReceiptResponse struct {
	BookingId  int             `json:"bookingId"`
	Reference  string          `json:"reference"`
	Status     string          `json:"status"`
	Method     string          `json:"method"`
	Amount     decimal.Decimal `json:"amount"`
	PaidAt     time.Time       `json:"paidAt"`
	MovieTitle string          `json:"movieTitle"`
	CinemaName string          `json:"cinemaName"`
	RoomName   string          `json:"roomName"`
	StartTime  time.Time       `json:"startTime"`
	Seats      []string        `json:"seats"`
}

// ApplyPaymentHandler settles a Pending booking. Settlement is idempotent: a
// repeat submission gets a conflict and never a second payment row.
func (app *application) ApplyPaymentHandler(w http.ResponseWriter, r *http.Request) {
	var input PaymentRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	userId := app.contextGetUserId(r)

	ctx, cancel := context.WithTimeout(r.Context(), app.config.booking.opTimeout)
	defer cancel()

	payment, err := app.paymentRepo.ApplyToBooking(ctx, input.BookingId, userId, input.Method, app.config.booking.unitPrice)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithMsg(w, r, ErrBookingNotFound)
		case errors.Is(err, domain.ErrForbidden):
			app.forbiddenResponse(w, r)
		case errors.Is(err, domain.ErrBookingAlreadyPaid):
			app.conflictResponse(w, r, ErrBookingAlreadySettled)
		case errors.Is(err, domain.ErrBookingCancelled):
			app.conflictResponse(w, r, ErrBookingIsCancelled)
		case errors.Is(err, domain.ErrReservationBusy):
			app.busyResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	detail, err := app.bookingRepo.GetById(r.Context(), input.BookingId)
	if err != nil {
		// The payment is committed at this point; the receipt context is
		// the only thing missing.
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := PaymentReceiptResponse{
		BookingId:  detail.ID,
		Reference:  payment.Reference,
		Status:     string(domain.BookingStatusPaid),
		Method:     payment.Method,
		Amount:     payment.Amount,
		PaidAt:     payment.PaidAt,
		MovieTitle: detail.MovieTitle,
		CinemaName: detail.CinemaName,
		RoomName:   detail.RoomName,
		StartTime:  detail.StartTime,
		Seats:      detail.SeatLabels(),
	}

	app.sendConfirmationMail(r, resp)

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// sendConfirmationMail is best effort: a mail failure is logged, never
// surfaced to the paying client.
func (app *application) sendConfirmationMail(r *http.Request, receipt PaymentReceiptResponse) {
	email := app.contextGetEmail(r)
	if email == "" {
		return
	}

	logger := app.contextGetLogger(r)

	data := map[string]any{
		"MovieTitle": receipt.MovieTitle,
		"CinemaName": receipt.CinemaName,
		"RoomName":   receipt.RoomName,
		"StartTime":  receipt.StartTime.Format(time.RFC1123),
		"Seats":      strings.Join(receipt.Seats, ", "),
		"Amount":     receipt.Amount.String(),
		"Reference":  receipt.Reference,
	}

	app.background(func() {
		err := app.mailer.Send(email, confirmationMailTemplate, data)
		if err != nil {
			logger.Error("failed to send booking confirmation mail", "booking_id", receipt.BookingId, "error", err)
		}
	})
}
