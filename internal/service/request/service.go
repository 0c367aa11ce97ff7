package request

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"symptra-health/internal/domain"
	"symptra-health/internal/repository"
	"symptra-health/internal/service/audit"
	"symptra-health/internal/service/notification"
	"symptra-health/internal/service/workflow"
)

type Service interface {
	Create(ctx context.Context, submittedBy *uuid.UUID, input domain.CreateRequestInput) (*domain.Request, error)
	ListAll(ctx context.Context) ([]domain.Request, error)
	ListPending(ctx context.Context) ([]domain.Request, error)
	ListMine(ctx context.Context, callerID uuid.UUID) ([]domain.Request, error)
	Process(ctx context.Context, id uuid.UUID, input domain.ProcessRequestInput, reviewerID uuid.UUID, meta *domain.RequestMeta) (*domain.Request, error)
	BulkProcess(ctx context.Context, input domain.BulkProcessInput, reviewerID uuid.UUID, meta *domain.RequestMeta) (*domain.BulkProcessResult, error)
}

type service struct {
	requestRepo repository.RequestRepository
	userRepo    repository.UserRepository
	tx          repository.TransactionManager
	dispatcher  workflow.Dispatcher
	auditSvc    audit.Service
	notifSvc    notification.Service
	logger      *zap.Logger
}

func NewService(
	requestRepo repository.RequestRepository,
	userRepo repository.UserRepository,
	tx repository.TransactionManager,
	dispatcher workflow.Dispatcher,
	auditSvc audit.Service,
	notifSvc notification.Service,
	logger *zap.Logger,
) Service {
	return &service{
		requestRepo: requestRepo,
		userRepo:    userRepo,
		tx:          tx,
		dispatcher:  dispatcher,
		auditSvc:    auditSvc,
		notifSvc:    notifSvc,
		logger:      logger,
	}
}

func (s *service) Create(ctx context.Context, submittedBy *uuid.UUID, input domain.CreateRequestInput) (*domain.Request, error) {
	payload, err := domain.DecodeRequestPayload(input.Type, input.Data)
	if err != nil {
		return nil, err
	}

	req := &domain.Request{
		ID:            uuid.New(),
		Type:          input.Type,
		Data:          payload,
		Status:        domain.RequestPending,
		SubmittedByID: submittedBy,
	}

	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	return req, nil
}

func (s *service) ListAll(ctx context.Context) ([]domain.Request, error) {
	return s.list(ctx, domain.RequestFilter{})
}

func (s *service) ListPending(ctx context.Context) ([]domain.Request, error) {
	status := domain.RequestPending
	return s.list(ctx, domain.RequestFilter{Status: &status})
}

func (s *service) ListMine(ctx context.Context, callerID uuid.UUID) ([]domain.Request, error) {
	if callerID == uuid.Nil {
		return nil, domain.ErrNotAuthenticated
	}
	return s.list(ctx, domain.RequestFilter{SubmittedBy: &callerID})
}

func (s *service) list(ctx context.Context, filter domain.RequestFilter) ([]domain.Request, error) {
	requests, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}

	s.attachParticipants(ctx, requests)
	return requests, nil
}

func (s *service) Process(ctx context.Context, id uuid.UUID, input domain.ProcessRequestInput, reviewerID uuid.UUID, meta *domain.RequestMeta) (*domain.Request, error) {
	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load request %s: %w", id, err)
	}
	if req == nil {
		return nil, domain.ErrRequestNotFound
	}

	if !input.Status.IsReviewOutcome() {
		return nil, domain.ErrInvalidReviewStatus
	}

	if req.Status != domain.RequestPending {
		return nil, domain.ErrRequestAlreadyProcessed
	}

	if err := s.resolve(ctx, req, input.Status, input.ReviewNotes, reviewerID); err != nil {
		return nil, err
	}

	s.afterProcess(ctx, req, reviewerID, meta)

	processed := []domain.Request{*req}
	s.attachParticipants(ctx, processed)
	return &processed[0], nil
}

func (s *service) BulkProcess(ctx context.Context, input domain.BulkProcessInput, reviewerID uuid.UUID, meta *domain.RequestMeta) (*domain.BulkProcessResult, error) {
	if len(input.RequestIDs) == 0 {
		return nil, domain.ErrRequestIDsRequired
	}
	if !input.Status.IsReviewOutcome() {
		return nil, domain.ErrInvalidReviewStatus
	}

	result := &domain.BulkProcessResult{ProcessedRequests: []uuid.UUID{}}

	for _, rawID := range input.RequestIDs {
		id, err := uuid.Parse(rawID)
		if err != nil {
			continue
		}

		req, err := s.requestRepo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("load request %s: %w", id, err)
		}
		if req == nil || req.Status != domain.RequestPending {
			continue
		}

		if err := s.resolve(ctx, req, input.Status, input.ReviewNotes, reviewerID); err != nil {
			if errors.Is(err, domain.ErrRequestAlreadyProcessed) {
				continue
			}
			return nil, err
		}

		s.afterProcess(ctx, req, reviewerID, meta)
		result.ProcessedRequests = append(result.ProcessedRequests, id)
	}

	result.Count = len(result.ProcessedRequests)
	return result, nil
}

// resolve records the review and runs the request's side effect in one
// transaction. req is only updated when the transaction commits.
func (s *service) resolve(ctx context.Context, req *domain.Request, status domain.RequestStatus, notes *string, reviewerID uuid.UUID) error {
	updated := *req
	updated.Status = status
	updated.ReviewNotes = notes
	updated.ReviewedByID = &reviewerID

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		ok, err := s.requestRepo.Resolve(txCtx, &updated)
		if err != nil {
			return fmt.Errorf("resolve request %s: %w", req.ID, err)
		}
		if !ok {
			return domain.ErrRequestAlreadyProcessed
		}

		return s.dispatcher.Dispatch(txCtx, &updated)
	})
	if err != nil {
		return err
	}

	*req = updated
	return nil
}

func (s *service) afterProcess(ctx context.Context, req *domain.Request, reviewerID uuid.UUID, meta *domain.RequestMeta) {
	if s.auditSvc != nil {
		ip, ua := meta.ClientDetails()
		err := s.auditSvc.Record(ctx, domain.CreateAuditLogInput{
			UserID:     reviewerID,
			Action:     domain.AuditProcessRequest,
			EntityType: domain.AuditEntityRequest,
			EntityID:   req.ID,
			OldValue:   map[string]interface{}{"status": domain.RequestPending},
			NewValue:   map[string]interface{}{"status": req.Status, "reviewNotes": req.ReviewNotes},
			IPAddress:  ip,
			UserAgent:  ua,
		})
		if err != nil {
			s.logger.Warn("failed to record audit log",
				zap.String("request_id", req.ID.String()), zap.Error(err))
		}
	}

	if s.notifSvc != nil {
		processed := *req
		go func() {
			if err := s.notifSvc.NotifyRequestProcessed(context.Background(), &processed); err != nil {
				s.logger.Warn("failed to notify submitter",
					zap.String("request_id", processed.ID.String()), zap.Error(err))
			}
		}()
	}
}

// attachParticipants resolves submitter and reviewer summaries in place.
// Lookup failures leave the summaries empty.
func (s *service) attachParticipants(ctx context.Context, requests []domain.Request) {
	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	for i := range requests {
		for _, id := range []*uuid.UUID{requests[i].SubmittedByID, requests[i].ReviewedByID} {
			if id == nil {
				continue
			}
			if _, ok := seen[*id]; !ok {
				seen[*id] = struct{}{}
				ids = append(ids, *id)
			}
		}
	}
	if len(ids) == 0 {
		return
	}

	summaries, err := s.userRepo.GetSummaries(ctx, ids)
	if err != nil {
		s.logger.Warn("failed to load request participants", zap.Error(err))
		return
	}

	for i := range requests {
		if id := requests[i].SubmittedByID; id != nil {
			requests[i].SubmittedBy = summaries[*id]
		}
		if id := requests[i].ReviewedByID; id != nil {
			requests[i].ReviewedBy = summaries[*id]
		}
	}
}
