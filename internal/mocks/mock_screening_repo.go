package mocks

import (
	"context"

	"github.com/cinetix/movie-booking-api/internal/domain"
)

type MockScreeningRepo struct {
	GetByIdFunc func(ctx context.Context, id int) (*domain.Screening, error)
}

func (m *MockScreeningRepo) GetById(ctx context.Context, id int) (*domain.Screening, error) {
	return m.GetByIdFunc(ctx, id)
}
