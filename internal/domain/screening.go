package domain

import (
	"context"
	"time"
)

// Screening is read-only reference data owned by the catalog. Once bookings
// exist against it the catalog never mutates it.
type Screening struct {
	ID         int       `json:"id"`
	MovieID    int       `json:"movieId"`
	RoomID     int       `json:"roomId"`
	MovieTitle string    `json:"movieTitle"`
	CinemaName string    `json:"cinemaName"`
	RoomName   string    `json:"roomName"`
	StartTime  time.Time `json:"startTime"`
}

// Started reports whether seat selection and cancellation are cut off.
// A screening counts as started when its start time is at or before now.
func (s Screening) Started(now time.Time) bool {
	return !s.StartTime.After(now)
}

type ScreeningRepository interface {
	GetById(ctx context.Context, id int) (*Screening, error)
}
