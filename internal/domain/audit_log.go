package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type AuditLog struct {
	ID         uuid.UUID       `json:"id" db:"id"`
	UserID     uuid.UUID       `json:"userId" db:"user_id"`
	Action     string          `json:"action" db:"action"`
	EntityType string          `json:"entityType" db:"entity_type"`
	EntityID   uuid.UUID       `json:"entityId" db:"entity_id"`
	OldValue   json.RawMessage `json:"oldValue,omitempty" db:"old_value"`
	NewValue   json.RawMessage `json:"newValue,omitempty" db:"new_value"`
	IPAddress  *string         `json:"ipAddress,omitempty" db:"ip_address"`
	UserAgent  *string         `json:"userAgent,omitempty" db:"user_agent"`
	CreatedAt  time.Time       `json:"createdAt" db:"created_at"`

	// ReviewerName is empty once the acting user has been deleted.
	ReviewerName *string `json:"reviewerName,omitempty" db:"reviewer_name"`
}

type CreateAuditLogInput struct {
	UserID     uuid.UUID
	Action     string
	EntityType string
	EntityID   uuid.UUID
	OldValue   interface{}
	NewValue   interface{}
	IPAddress  *string
	UserAgent  *string
}

const (
	AuditProcessRequest = "PROCESS_REQUEST"
	AuditReviewArticle  = "REVIEW_ARTICLE"
	AuditDeleteArticle  = "DELETE_ARTICLE"

	AuditEntityRequest = "REQUEST"
	AuditEntityArticle = "ARTICLE"
)

// RequestMeta identifies the client behind an audited action.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// ClientDetails returns the audit columns for m, leaving empty values unset.
func (m *RequestMeta) ClientDetails() (ipAddress, userAgent *string) {
	if m == nil {
		return nil, nil
	}
	if m.IPAddress != "" {
		ip := m.IPAddress
		ipAddress = &ip
	}
	if m.UserAgent != "" {
		ua := m.UserAgent
		userAgent = &ua
	}
	return ipAddress, userAgent
}
