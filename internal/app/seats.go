package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/cinetix/movie-booking-api/internal/domain"
)

const ErrScreeningStarted = "The screening has already started, seat selection is closed"

type SeatMapResponse struct {
	ScreeningId int        `json:"screeningId"`
	MovieTitle  string     `json:"movieTitle"`
	CinemaName  string     `json:"cinemaName"`
	RoomName    string     `json:"roomName"`
	StartTime   time.Time  `json:"startTime"`
	TotalSeats  int        `json:"totalSeats"`
	Seats       []SeatView `json:"seats"`
}

type SeatView struct {
	SeatId int    `json:"seatId"`
	Row    int    `json:"row"`
	Number int    `json:"number"`
	Label  string `json:"label"`
	Booked bool   `json:"booked"`
}

// GetSeatMapByScreening is the availability read path: the room's full grid
// with a seat marked booked iff a non-cancelled booking claims it.
func (app *application) GetSeatMapByScreening(w http.ResponseWriter, r *http.Request) {
	screeningID, err := app.readIDParam(r, "screeningID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	screening, err := app.screeningRepo.GetById(r.Context(), screeningID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if screening.Started(time.Now().UTC()) {
		app.conflictResponse(w, r, ErrScreeningStarted)
		return
	}

	seats, err := app.seatRepo.GetSeatsByRoom(r.Context(), screening.RoomID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	takenSeatIds, err := app.bookingRepo.GetActiveSeatIdsByScreeningId(r.Context(), screeningID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := toSeatMapResponse(screening, seats, takenSeatIds)

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toSeatMapResponse(screening *domain.Screening, seats []domain.Seat, takenSeatIds []int) SeatMapResponse {
	taken := make(map[int]bool, len(takenSeatIds))
	for _, seatId := range takenSeatIds {
		taken[seatId] = true
	}

	seatViews := make([]SeatView, len(seats))

	// Seats are pre-sorted by (row, number), so the response order is the
	// grid order clients render directly.
	for i, seat := range seats {
		seatViews[i] = SeatView{
			SeatId: seat.ID,
			Row:    seat.Row,
			Number: seat.Number,
			Label:  seat.Label(),
			Booked: taken[seat.ID],
		}
	}

	return SeatMapResponse{
		ScreeningId: screening.ID,
		MovieTitle:  screening.MovieTitle,
		CinemaName:  screening.CinemaName,
		RoomName:    screening.RoomName,
		StartTime:   screening.StartTime,
		TotalSeats:  len(seatViews),
		Seats:       seatViews,
	}
}
