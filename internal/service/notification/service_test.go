package notification_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"symptra-health/internal/domain"
	"symptra-health/internal/mocks"
	"symptra-health/internal/service/notification"
)

func TestNotifyRequestProcessed(t *testing.T) {
	ctx := context.Background()
	notes := "See you Monday"

	t.Run("emails the submitter", func(t *testing.T) {
		users := new(mocks.UserRepository)
		mailer := new(mocks.EmailService)
		svc := notification.NewService(users, mailer, zap.NewNop())
		submitter := &domain.User{ID: uuid.New(), Name: "Ana", Email: "ana@example.com"}

		users.On("GetByID", ctx, submitter.ID).Return(submitter, nil).Once()
		mailer.On("SendRequestStatusEmail", ctx, "ana@example.com", "Ana", "appointment booking request", "approved", &notes).
			Return(nil).Once()

		err := svc.NotifyRequestProcessed(ctx, &domain.Request{
			ID:            uuid.New(),
			Type:          domain.RequestAppointmentBooking,
			Status:        domain.RequestApproved,
			SubmittedByID: &submitter.ID,
			ReviewNotes:   &notes,
		})

		assert.NoError(t, err)
		mailer.AssertExpectations(t)
	})

	t.Run("anonymous requests are skipped", func(t *testing.T) {
		users := new(mocks.UserRepository)
		mailer := new(mocks.EmailService)
		svc := notification.NewService(users, mailer, zap.NewNop())

		err := svc.NotifyRequestProcessed(ctx, &domain.Request{ID: uuid.New(), Type: domain.RequestContactUsInquiry})

		assert.NoError(t, err)
		users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		mailer.AssertNotCalled(t, "SendRequestStatusEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("deleted submitter is skipped", func(t *testing.T) {
		users := new(mocks.UserRepository)
		mailer := new(mocks.EmailService)
		svc := notification.NewService(users, mailer, zap.NewNop())
		id := uuid.New()
		users.On("GetByID", ctx, id).Return(nil, nil).Once()

		err := svc.NotifyRequestProcessed(ctx, &domain.Request{ID: uuid.New(), SubmittedByID: &id})

		assert.NoError(t, err)
	})
}

func TestNotifyArticleReviewed(t *testing.T) {
	ctx := context.Background()
	users := new(mocks.UserRepository)
	mailer := new(mocks.EmailService)
	svc := notification.NewService(users, mailer, zap.NewNop())
	author := &domain.User{ID: uuid.New(), Name: "Dr. Lee", Email: "lee@example.com"}

	users.On("GetByID", ctx, author.ID).Return(author, nil).Once()
	mailer.On("SendRequestStatusEmail", ctx, "lee@example.com", "Dr. Lee", `article "Hydration"`, "rejected", (*string)(nil)).
		Return(nil).Once()

	err := svc.NotifyArticleReviewed(ctx, &domain.Article{AuthorID: author.ID, Title: "Hydration"}, domain.RequestRejected, nil)

	assert.NoError(t, err)
	mailer.AssertExpectations(t)
}
