package domain

import (
	"context"
	"fmt"
)

type Seat struct {
	ID     int `json:"id"`
	RoomID int `json:"roomId"`
	Row    int `json:"row"`
	Number int `json:"number"`
}

// Label renders the human seat label, e.g. row 1 number 5 -> "A5". Row
// letters wrap past 'Z' back to 'A', so rows 1 and 27 both render as 'A'.
// This mirrors the label scheme clients already display; do not change it
// without coordinating with them.
func (s Seat) Label() string {
	return SeatLabel(s.Row, s.Number)
}

func SeatLabel(row, number int) string {
	return fmt.Sprintf("%c%d", 'A'+byte((row-1)%26), number)
}

type SeatRepository interface {
	// GetSeatsByRoom returns the room's full grid ordered by (row, number).
	GetSeatsByRoom(ctx context.Context, roomID int) ([]Seat, error)

	// GetSeatsByRoomAndIds returns only the seats of the room whose ids are
	// in seatIDs. Ids that do not exist or belong to another room are
	// silently absent from the result; callers compare lengths.
	GetSeatsByRoomAndIds(ctx context.Context, roomID int, seatIDs []int) ([]Seat, error)
}
