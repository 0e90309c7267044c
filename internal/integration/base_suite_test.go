package integration_test

import (
	"context"
	"log"
	"time"

	"github.com/cinetix/movie-booking-api/internal/domain"
	"github.com/cinetix/movie-booking-api/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
)

// BaseSuite wires the repository layer against real Postgres and Redis
// containers. Feature suites embed it and seed their own catalog rows.
type BaseSuite struct {
	suite.Suite
	dbContainer    *PostgresContainer
	cacheContainer *RedisContainer

	db    *pgxpool.Pool
	redis *redis.Client

	screeningRepo domain.ScreeningRepository
	seatRepo      domain.SeatRepository
	bookingRepo   domain.BookingRepository
	paymentRepo   domain.PaymentRepository
}

func (s *BaseSuite) SetupSuite() {
	ctx := context.Background()

	postgresContainer, err := getDbContainer(ctx)
	if err != nil {
		log.Printf("failed to start container: %s", err)
		return
	}

	redisContainer, err := getCacheContainer(ctx)
	if err != nil {
		log.Printf("failed to start container: %s", err)
		return
	}

	s.dbContainer = postgresContainer
	s.cacheContainer = redisContainer

	db, err := pgxpool.New(ctx, postgresContainer.ConnectionString)
	if err != nil {
		log.Printf("cannot create db pool: %s", err)
		return
	}

	s.db = db
	s.redis = redis.NewClient(&redis.Options{Addr: redisContainer.ConnectionString})

	s.screeningRepo = repository.NewPostgresScreeningRepository(db)
	s.seatRepo = repository.NewPostgresSeatRepository(db)
	s.bookingRepo = repository.NewPostgresBookingRepository(db)
	s.paymentRepo = repository.NewPostgresPaymentRepository(db)
}

func (s *BaseSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.redis != nil {
		s.redis.Close()
	}
	if err := testcontainers.TerminateContainer(s.dbContainer.Container.Container); err != nil {
		log.Printf("failed to terminate container: %s", err)
	}
	if err := testcontainers.TerminateContainer(s.cacheContainer.Container); err != nil {
		log.Printf("failed to terminate container: %s", err)
	}
}

// SetupTest resets all mutable state; the seeded catalog is rebuilt per test
// so every test starts from a clean, fully known world.
func (s *BaseSuite) SetupTest() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := s.db.Exec(ctx, `
		TRUNCATE payments, booking_seats, bookings, screenings, seats, rooms, movies, cinemas
		RESTART IDENTITY CASCADE`)
	s.Require().NoError(err)

	s.Require().NoError(s.redis.FlushAll(ctx).Err())
}
