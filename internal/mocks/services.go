package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"symptra-health/internal/domain"
)

type Dispatcher struct {
	mock.Mock
}

func (m *Dispatcher) Dispatch(ctx context.Context, req *domain.Request) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) NotifyRequestProcessed(ctx context.Context, req *domain.Request) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *NotificationService) NotifyArticleReviewed(ctx context.Context, article *domain.Article, outcome domain.RequestStatus, reviewNotes *string) error {
	args := m.Called(ctx, article, outcome, reviewNotes)
	return args.Error(0)
}

type AuditService struct {
	mock.Mock
}

func (m *AuditService) Record(ctx context.Context, input domain.CreateAuditLogInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

func (m *AuditService) ListForEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]domain.AuditLog, error) {
	args := m.Called(ctx, entityType, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLog), args.Error(1)
}

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendWelcomeEmail(ctx context.Context, toEmail, name string) error {
	args := m.Called(ctx, toEmail, name)
	return args.Error(0)
}

func (m *EmailService) SendRequestStatusEmail(ctx context.Context, toEmail, recipientName, subject, status string, reviewNotes *string) error {
	args := m.Called(ctx, toEmail, recipientName, subject, status, reviewNotes)
	return args.Error(0)
}
