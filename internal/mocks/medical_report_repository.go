package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"symptra-health/internal/domain"
)

type MedicalReportRepository struct {
	mock.Mock
}

func (m *MedicalReportRepository) Create(ctx context.Context, report *domain.MedicalReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MedicalReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.MedicalReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MedicalReport), args.Error(1)
}

func (m *MedicalReportRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.MedicalReport, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MedicalReport), args.Error(1)
}

func (m *MedicalReportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
