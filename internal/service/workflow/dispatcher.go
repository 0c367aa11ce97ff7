package workflow

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"symptra-health/internal/domain"
)

// ArticleMutator applies the outcome of an article_approval request to the
// referenced article. A missing article is not an error.
type ArticleMutator interface {
	ApplyReviewOutcome(ctx context.Context, articleID uuid.UUID, outcome domain.RequestStatus) error
}

// Dispatcher applies the domain consequence of a processed request.
type Dispatcher interface {
	Dispatch(ctx context.Context, req *domain.Request) error
}

type dispatcher struct {
	articles ArticleMutator
}

func NewDispatcher(articles ArticleMutator) Dispatcher {
	return &dispatcher{articles: articles}
}

func (d *dispatcher) Dispatch(ctx context.Context, req *domain.Request) error {
	if !req.Status.IsReviewOutcome() {
		return fmt.Errorf("dispatch request %s: %q is not a review outcome", req.ID, req.Status)
	}

	switch payload := req.Data.(type) {
	case domain.ArticleApprovalPayload:
		if d.articles == nil {
			return fmt.Errorf("dispatch request %s: no article mutator configured", req.ID)
		}
		return d.articles.ApplyReviewOutcome(ctx, payload.ArticleID, req.Status)
	case domain.ProductApprovalPayload,
		domain.UserRegistrationPayload,
		domain.AppointmentBookingPayload,
		domain.FreeConsultationPayload,
		domain.ContactUsInquiryPayload:
		return nil
	default:
		return fmt.Errorf("dispatch request %s: unsupported payload %T", req.ID, req.Data)
	}
}
