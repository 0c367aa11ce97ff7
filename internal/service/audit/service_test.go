package audit_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"symptra-health/internal/domain"
	"symptra-health/internal/mocks"
	"symptra-health/internal/service/audit"
)

func TestAuditService_Record(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.AuditLogRepository)
	svc := audit.NewService(repo)
	reviewer := uuid.New()
	requestID := uuid.New()

	repo.On("Create", ctx, mock.MatchedBy(func(log *domain.AuditLog) bool {
		return log.ID != uuid.Nil &&
			log.UserID == reviewer &&
			log.EntityID == requestID &&
			log.Action == domain.AuditProcessRequest &&
			string(log.NewValue) == `{"status":"approved"}` &&
			log.OldValue == nil
	})).Return(nil).Once()

	err := svc.Record(ctx, domain.CreateAuditLogInput{
		UserID:     reviewer,
		Action:     domain.AuditProcessRequest,
		EntityType: domain.AuditEntityRequest,
		EntityID:   requestID,
		NewValue:   map[string]string{"status": "approved"},
	})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
