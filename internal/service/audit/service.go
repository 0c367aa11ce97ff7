package audit

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"symptra-health/internal/domain"
	"symptra-health/internal/repository"
)

type Service interface {
	Record(ctx context.Context, input domain.CreateAuditLogInput) error
	ListForEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]domain.AuditLog, error)
}

type service struct {
	auditRepo repository.AuditLogRepository
}

func NewService(auditRepo repository.AuditLogRepository) Service {
	return &service{
		auditRepo: auditRepo,
	}
}

func (s *service) Record(ctx context.Context, input domain.CreateAuditLogInput) error {
	log := &domain.AuditLog{
		ID:         uuid.New(),
		UserID:     input.UserID,
		Action:     input.Action,
		EntityType: input.EntityType,
		EntityID:   input.EntityID,
		OldValue:   marshalValue(input.OldValue),
		NewValue:   marshalValue(input.NewValue),
		IPAddress:  input.IPAddress,
		UserAgent:  input.UserAgent,
	}

	return s.auditRepo.Create(ctx, log)
}

func (s *service) ListForEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]domain.AuditLog, error) {
	return s.auditRepo.ListByEntity(ctx, entityType, entityID)
}

func marshalValue(v interface{}) json.RawMessage {
	if v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return raw
}
