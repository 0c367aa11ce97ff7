package domain

import (
	"time"

	"github.com/google/uuid"
)

const DefaultFAQCategory = "General"

type FAQ struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Question  string    `json:"question" db:"question"`
	Answer    string    `json:"answer" db:"answer"`
	Category  string    `json:"category" db:"category"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type FAQInput struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
}
