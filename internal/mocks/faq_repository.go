package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"symptra-health/internal/domain"
)

type FAQRepository struct {
	mock.Mock
}

func (m *FAQRepository) Create(ctx context.Context, faq *domain.FAQ) error {
	args := m.Called(ctx, faq)
	return args.Error(0)
}

func (m *FAQRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.FAQ, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FAQ), args.Error(1)
}

func (m *FAQRepository) List(ctx context.Context) ([]domain.FAQ, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FAQ), args.Error(1)
}

func (m *FAQRepository) Update(ctx context.Context, faq *domain.FAQ) (bool, error) {
	args := m.Called(ctx, faq)
	return args.Bool(0), args.Error(1)
}

func (m *FAQRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
