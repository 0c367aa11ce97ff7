package notification

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"symptra-health/internal/domain"
	"symptra-health/internal/repository"
	"symptra-health/internal/service/email"
)

// Service tells submitters and authors about review outcomes.
type Service interface {
	NotifyRequestProcessed(ctx context.Context, req *domain.Request) error
	NotifyArticleReviewed(ctx context.Context, article *domain.Article, outcome domain.RequestStatus, reviewNotes *string) error
}

type service struct {
	userRepo repository.UserRepository
	emailSvc email.Service
	logger   *zap.Logger
}

func NewService(userRepo repository.UserRepository, emailSvc email.Service, logger *zap.Logger) Service {
	return &service{
		userRepo: userRepo,
		emailSvc: emailSvc,
		logger:   logger,
	}
}

func (s *service) NotifyRequestProcessed(ctx context.Context, req *domain.Request) error {
	if req.SubmittedByID == nil {
		return nil
	}

	submitter, err := s.userRepo.GetByID(ctx, *req.SubmittedByID)
	if err != nil {
		return err
	}
	if submitter == nil {
		s.logger.Debug("submitter no longer exists, skipping notification",
			zap.String("request_id", req.ID.String()))
		return nil
	}

	return s.emailSvc.SendRequestStatusEmail(ctx, submitter.Email, submitter.Name,
		requestSubject(req.Type), string(req.Status), req.ReviewNotes)
}

func (s *service) NotifyArticleReviewed(ctx context.Context, article *domain.Article, outcome domain.RequestStatus, reviewNotes *string) error {
	author, err := s.userRepo.GetByID(ctx, article.AuthorID)
	if err != nil {
		return err
	}
	if author == nil {
		return nil
	}

	subject := `article "` + article.Title + `"`
	return s.emailSvc.SendRequestStatusEmail(ctx, author.Email, author.Name, subject, string(outcome), reviewNotes)
}

// requestSubject renders a request type for humans, e.g. "appointment booking".
func requestSubject(t domain.RequestType) string {
	if t == domain.RequestContactUsInquiry {
		return "contact inquiry"
	}
	return strings.ReplaceAll(string(t), "_", " ") + " request"
}
