package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"symptra-health/internal/domain"
)

type RequestRepository struct {
	mock.Mock
}

func (m *RequestRepository) Create(ctx context.Context, req *domain.Request) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *RequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}

func (m *RequestRepository) List(ctx context.Context, filter domain.RequestFilter) ([]domain.Request, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Request), args.Error(1)
}

func (m *RequestRepository) Resolve(ctx context.Context, req *domain.Request) (bool, error) {
	args := m.Called(ctx, req)
	return args.Bool(0), args.Error(1)
}

func (m *RequestRepository) ResolvePendingForArticle(ctx context.Context, articleID uuid.UUID, status domain.RequestStatus, reviewedBy uuid.UUID, notes *string) (int64, error) {
	args := m.Called(ctx, articleID, status, reviewedBy, notes)
	return args.Get(0).(int64), args.Error(1)
}
