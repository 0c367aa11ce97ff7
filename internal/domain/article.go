package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Article struct {
	ID        uuid.UUID      `json:"id" db:"id"`
	Title     string         `json:"title" db:"title"`
	Content   string         `json:"content" db:"content"`
	Category  string         `json:"category" db:"category"`
	Tags      pq.StringArray `json:"tags" db:"tags"`
	AuthorID  uuid.UUID      `json:"authorId" db:"author_id"`
	Status    ArticleStatus  `json:"status" db:"status"`
	CreatedAt time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time      `json:"updatedAt" db:"updated_at"`

	Author *UserSummary `json:"author,omitempty" db:"-"`
}

type ArticleStatus string

const (
	ArticleDraft     ArticleStatus = "draft"
	ArticlePending   ArticleStatus = "pending"
	ArticlePublished ArticleStatus = "published"
	ArticleRejected  ArticleStatus = "rejected"
)

// CanSubmit reports whether an article in s may be sent for review.
func (s ArticleStatus) CanSubmit() bool {
	return s == ArticleDraft || s == ArticleRejected
}

// IsEditLocked reports whether non-admin edits are blocked in s.
func (s ArticleStatus) IsEditLocked() bool {
	return s == ArticlePending || s == ArticlePublished
}

// ArticleStatusFor maps a review outcome onto the article state it produces.
func ArticleStatusFor(outcome RequestStatus) ArticleStatus {
	if outcome == RequestApproved {
		return ArticlePublished
	}
	return ArticleRejected
}

// IsOwnedBy reports whether user may act as the article's author.
func (a *Article) IsOwnedBy(user *User) bool {
	return user != nil && a.AuthorID == user.ID
}

type ArticleInput struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

type ReviewArticleInput struct {
	Status      RequestStatus `json:"status"`
	ReviewNotes *string       `json:"reviewNotes,omitempty"`
}

var (
	ErrArticleFieldsRequired  = NewValidationError("Title, content and category are required")
	ErrArticleUpdateForbidden = NewForbiddenError("Not authorized to update this article")
	ErrArticleSubmitForbidden = NewForbiddenError("Not authorized to submit this article")
	ErrArticleAccessDenied    = NewForbiddenError("Access denied")
	ErrArticleNotPending      = NewInvalidStateError("Can only review pending articles")
)

// ErrArticleLocked reports an operation that status does not allow.
func ErrArticleLocked(action string, status ArticleStatus) *AppError {
	return NewInvalidStateError("Cannot " + action + " article in " + string(status) + " status")
}

var ErrArticleStatusChanged = NewInvalidStateError("Article status changed, reload and try again")
