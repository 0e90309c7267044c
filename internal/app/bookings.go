package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cinetix/movie-booking-api/internal/domain"
)

const (
	ErrScreeningNotFound       = "The screening does not exist"
	ErrUnknownSeats            = "One or more selected seats do not exist in the screening room"
	ErrBookingAlreadyCancelled = "The booking is already cancelled"
	ErrCancelWindowClosed      = "The screening has already started, the booking can no longer be cancelled"
)

type CreateBookingRequest struct {
	ScreeningId int   `json:"screeningId" validate:"required,gt=0"`
	SeatIds     []int `json:"seatIds" validate:"required,min=1,unique,dive,gt=0"`
}

// BookingResponse is the single booking projection for every role; UserId is
// only populated for the admin view scope.
type BookingResponse struct {
	BookingId   int       `json:"bookingId"`
	UserId      *int      `json:"userId,omitempty"`
	ScreeningId int       `json:"screeningId"`
	Status      string    `json:"status"`
	MovieTitle  string    `json:"movieTitle"`
	CinemaName  string    `json:"cinemaName"`
	RoomName    string    `json:"roomName"`
	StartTime   time.Time `json:"startTime"`
	TotalSeats  int       `json:"totalSeats"`
	Seats       []string  `json:"seats"`
	CreatedAt   time.Time `json:"createdAt"`
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

type CancelBookingResponse struct {
	BookingId int    `json:"bookingId"`
	Status    string `json:"status"`
}

func (app *application) CreateBookingHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input CreateBookingRequest

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

	screening, err := app.screeningRepo.GetById(r.Context(), input.ScreeningId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithMsg(w, r, ErrScreeningNotFound)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	// The seat map endpoint already refuses started screenings, but the
	// engine must not trust the client to have gone through it.
	if screening.Started(time.Now().UTC()) {
		app.conflictResponse(w, r, ErrScreeningStarted)
		return
	}

	seats, err := app.seatRepo.GetSeatsByRoomAndIds(r.Context(), screening.RoomID, input.SeatIds)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if len(seats) != len(input.SeatIds) {
		logger.Warn(
			"booking rejected: unknown seats in request",
			"screening_id", input.ScreeningId,
			"requested_seats", input.SeatIds,
		)
		app.errorResponse(w, r, http.StatusUnprocessableEntity, ErrUnknownSeats)
		return
	}

	booking := &domain.Booking{
		UserID:      app.contextGetUserId(r),
		ScreeningID: input.ScreeningId,
		Seats:       seats,
	}

	ctx, cancel := context.WithTimeout(r.Context(), app.config.booking.opTimeout)
	defer cancel()

	err = app.bookingRepo.Create(ctx, booking)
	if err != nil {
		var conflict *domain.SeatConflictError

		switch {
		case errors.As(err, &conflict):
			logger.Warn("booking lost seat race", "screening_id", input.ScreeningId, "conflicted_seats", conflict.Seats)
			app.seatConflictResponse(w, r, conflict)
		case errors.Is(err, domain.ErrReservationBusy):
			app.busyResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := BookingResponse{
		BookingId:   booking.ID,
		ScreeningId: booking.ScreeningID,
		Status:      string(booking.Status),
		MovieTitle:  screening.MovieTitle,
		CinemaName:  screening.CinemaName,
		RoomName:    screening.RoomName,
		StartTime:   screening.StartTime,
		TotalSeats:  len(booking.Seats),
		Seats:       seatLabels(booking.Seats),
		CreatedAt:   booking.CreatedAt,
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) CancelBookingHandler(w http.ResponseWriter, r *http.Request) {
	bookingID, err := app.readIDParam(r, "bookingID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	detail, err := app.bookingRepo.GetById(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	role := app.contextGetRole(r)
	if !role.IsAdmin() && detail.UserID != app.contextGetUserId(r) {
		app.forbiddenResponse(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), app.config.booking.opTimeout)
	defer cancel()

	err = app.bookingRepo.Cancel(ctx, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrBookingAlreadyCancelled):
			app.conflictResponse(w, r, ErrBookingAlreadyCancelled)
		case errors.Is(err, domain.ErrCancelWindowClosed):
			app.conflictResponse(w, r, ErrCancelWindowClosed)
		case errors.Is(err, domain.ErrReservationBusy):
			app.busyResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := CancelBookingResponse{
		BookingId: bookingID,
		Status:    string(domain.BookingStatusCancelled),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetBookingsHandler(w http.ResponseWriter, r *http.Request) {
	scope := domain.ViewScopeFor(app.contextGetRole(r))

	var details []domain.BookingDetail
	var err error

	if scope == domain.ViewScopeAdmin {
		details, err = app.bookingRepo.GetAll(r.Context())
	} else {
		details, err = app.bookingRepo.GetAllByUserId(r.Context(), app.contextGetUserId(r))
	}

	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	bookings := make([]BookingResponse, len(details))
	for i, detail := range details {
		bookings[i] = toBookingResponse(detail, scope)
	}

	err = app.writeJSON(w, http.StatusOK, BookingListResponse{Bookings: bookings}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetBookingHandler(w http.ResponseWriter, r *http.Request) {
	bookingID, err := app.readIDParam(r, "bookingID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	detail, err := app.bookingRepo.GetById(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	scope := domain.ViewScopeFor(app.contextGetRole(r))
	if scope != domain.ViewScopeAdmin && detail.UserID != app.contextGetUserId(r) {
		// Forbidden rather than NotFound: existence of a booking id is not
		// secret, access to its contents is.
		app.forbiddenResponse(w, r)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toBookingResponse(*detail, scope), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toBookingResponse(detail domain.BookingDetail, scope domain.ViewScope) BookingResponse {
	resp := BookingResponse{
		BookingId:   detail.ID,
		ScreeningId: detail.ScreeningID,
		Status:      string(detail.Status),
		MovieTitle:  detail.MovieTitle,
		CinemaName:  detail.CinemaName,
		RoomName:    detail.RoomName,
		StartTime:   detail.StartTime,
		TotalSeats:  len(detail.Seats),
		Seats:       detail.SeatLabels(),
		CreatedAt:   detail.CreatedAt,
	}

	if scope == domain.ViewScopeAdmin {
		userId := detail.UserID
		resp.UserId = &userId
	}

	return resp
}

func seatLabels(seats []domain.Seat) []string {
	labels := make([]string, len(seats))
	for i, seat := range seats {
		labels[i] = seat.Label()
	}

	return labels
}
