package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"symptra-health/internal/domain"
)

type ArticleRepository struct {
	mock.Mock
}

func (m *ArticleRepository) Create(ctx context.Context, article *domain.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *ArticleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *ArticleRepository) List(ctx context.Context, status *domain.ArticleStatus) ([]domain.Article, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Article), args.Error(1)
}

func (m *ArticleRepository) Update(ctx context.Context, article *domain.Article, expected domain.ArticleStatus) (bool, error) {
	args := m.Called(ctx, article, expected)
	return args.Bool(0), args.Error(1)
}

func (m *ArticleRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from []domain.ArticleStatus, to domain.ArticleStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *ArticleRepository) SetStatus(ctx context.Context, id uuid.UUID, status domain.ArticleStatus) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}

func (m *ArticleRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
