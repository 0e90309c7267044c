package integration_test

const (
	dbName         = "movie_booking"
	dbUser         = "test_user"
	dbPassword     = "test_password"
	cacheImageName = "redis:7"

	// Seeded catalog
	TestCinemaName = "Downtown Cinema"
	TestRoomName   = "Room A"
	TestMovieTitle = "Interstellar"
	TestRoomRows   = 3
	TestRoomCols   = 4

	// Users
	TestUserId      = 1
	TestOtherUserId = 2
)
