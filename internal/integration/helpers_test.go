package integration_test

import (
	"context"
	"time"
)

// seededCatalog holds the ids produced by seedCatalog so tests can refer to
// the rows they just created.
type seededCatalog struct {
	CinemaID    int
	MovieID     int
	RoomID      int
	SeatIDs     []int
	ScreeningID int
}

// seedCatalog creates one cinema, one movie, one room with a TestRoomRows x
// TestRoomCols grid and one screening starting at startTime.
func (s *BaseSuite) seedCatalog(startTime time.Time) seededCatalog {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var c seededCatalog

	err := s.db.QueryRow(ctx, `
		INSERT INTO cinemas (name, city, address)
		VALUES ($1, 'Istanbul', '1 Cinema St')
		RETURNING id`, TestCinemaName).Scan(&c.CinemaID)
	s.Require().NoError(err)

	err = s.db.QueryRow(ctx, `
		INSERT INTO movies (title, description, duration_minutes)
		VALUES ($1, 'A space epic.', 169)
		RETURNING id`, TestMovieTitle).Scan(&c.MovieID)
	s.Require().NoError(err)

	err = s.db.QueryRow(ctx, `
		INSERT INTO rooms (cinema_id, name)
		VALUES ($1, $2)
		RETURNING id`, c.CinemaID, TestRoomName).Scan(&c.RoomID)
	s.Require().NoError(err)

	for row := 1; row <= TestRoomRows; row++ {
		for number := 1; number <= TestRoomCols; number++ {
			var seatID int

			err = s.db.QueryRow(ctx, `
				INSERT INTO seats (room_id, seat_row, seat_number)
				VALUES ($1, $2, $3)
				RETURNING id`, c.RoomID, row, number).Scan(&seatID)
			s.Require().NoError(err)

			c.SeatIDs = append(c.SeatIDs, seatID)
		}
	}

	err = s.db.QueryRow(ctx, `
		INSERT INTO screenings (movie_id, room_id, start_time)
		VALUES ($1, $2, $3)
		RETURNING id`, c.MovieID, c.RoomID, startTime).Scan(&c.ScreeningID)
	s.Require().NoError(err)

	return c
}

// addScreening creates another screening in the catalog's room.
func (s *BaseSuite) addScreening(c seededCatalog, startTime time.Time) int {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var screeningID int

	err := s.db.QueryRow(ctx, `
		INSERT INTO screenings (movie_id, room_id, start_time)
		VALUES ($1, $2, $3)
		RETURNING id`, c.MovieID, c.RoomID, startTime).Scan(&screeningID)
	s.Require().NoError(err)

	return screeningID
}

func (s *BaseSuite) countRows(query string, args ...any) int {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var count int
	s.Require().NoError(s.db.QueryRow(ctx, query, args...).Scan(&count))

	return count
}

func futureStart() time.Time {
	return time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)
}

func pastStart() time.Time {
	return time.Now().Add(-time.Hour).UTC().Truncate(time.Second)
}
