package article

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"symptra-health/internal/domain"
	"symptra-health/internal/repository"
	"symptra-health/internal/service/audit"
	"symptra-health/internal/service/notification"
	"symptra-health/internal/service/workflow"
)

const publishedCacheKey = "articles:published"

type Service interface {
	ListPublished(ctx context.Context) ([]domain.Article, error)
	ListAll(ctx context.Context) ([]domain.Article, error)
	Get(ctx context.Context, id uuid.UUID, viewer *domain.User) (*domain.Article, error)
	Create(ctx context.Context, author *domain.User, input domain.ArticleInput) (*domain.Article, error)
	Update(ctx context.Context, id uuid.UUID, actor *domain.User, input domain.ArticleInput) (*domain.Article, error)
	Delete(ctx context.Context, id uuid.UUID, actor *domain.User, meta *domain.RequestMeta) error
	Submit(ctx context.Context, id uuid.UUID, actor *domain.User) (*domain.Article, error)
	Review(ctx context.Context, id uuid.UUID, reviewer *domain.User, input domain.ReviewArticleInput, meta *domain.RequestMeta) (*domain.Article, error)

	workflow.ArticleMutator
}

type service struct {
	articleRepo repository.ArticleRepository
	requestRepo repository.RequestRepository
	userRepo    repository.UserRepository
	tx          repository.TransactionManager
	auditSvc    audit.Service
	notifSvc    notification.Service
	redis       *redis.Client
	cacheTTL    time.Duration
	logger      *zap.Logger
}

func NewService(
	articleRepo repository.ArticleRepository,
	requestRepo repository.RequestRepository,
	userRepo repository.UserRepository,
	tx repository.TransactionManager,
	auditSvc audit.Service,
	notifSvc notification.Service,
	redis *redis.Client,
	cacheTTL time.Duration,
	logger *zap.Logger,
) Service {
	return &service{
		articleRepo: articleRepo,
		requestRepo: requestRepo,
		userRepo:    userRepo,
		tx:          tx,
		auditSvc:    auditSvc,
		notifSvc:    notifSvc,
		redis:       redis,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

func (s *service) ListPublished(ctx context.Context) ([]domain.Article, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, publishedCacheKey).Result(); err == nil {
			var articles []domain.Article
			if json.Unmarshal([]byte(cached), &articles) == nil {
				return articles, nil
			}
		}
	}

	status := domain.ArticlePublished
	articles, err := s.articleRepo.List(ctx, &status)
	if err != nil {
		return nil, fmt.Errorf("list published articles: %w", err)
	}
	s.attachAuthors(ctx, articles)

	if s.redis != nil {
		if data, err := json.Marshal(articles); err == nil {
			if err := s.redis.Set(ctx, publishedCacheKey, data, s.cacheTTL).Err(); err != nil {
				s.logger.Warn("failed to cache published articles", zap.Error(err))
			}
		}
	}

	return articles, nil
}

func (s *service) ListAll(ctx context.Context) ([]domain.Article, error) {
	articles, err := s.articleRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	s.attachAuthors(ctx, articles)
	return articles, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID, viewer *domain.User) (*domain.Article, error) {
	article, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if article.Status != domain.ArticlePublished && !article.IsOwnedBy(viewer) && !viewer.IsAdmin() {
		return nil, domain.ErrArticleAccessDenied
	}

	return s.withAuthor(ctx, article), nil
}

func (s *service) Create(ctx context.Context, author *domain.User, input domain.ArticleInput) (*domain.Article, error) {
	if author == nil {
		return nil, domain.ErrNotAuthenticated
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	article := &domain.Article{
		ID:       uuid.New(),
		Title:    strings.TrimSpace(input.Title),
		Content:  input.Content,
		Category: strings.TrimSpace(input.Category),
		Tags:     pq.StringArray(input.Tags),
		AuthorID: author.ID,
		Status:   domain.ArticleDraft,
	}

	if err := s.articleRepo.Create(ctx, article); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	article.Author = author.Summary()
	return article, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, actor *domain.User, input domain.ArticleInput) (*domain.Article, error) {
	article, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if !article.IsOwnedBy(actor) && !actor.IsAdmin() {
		return nil, domain.ErrArticleUpdateForbidden
	}
	if article.Status.IsEditLocked() && !actor.IsAdmin() {
		return nil, domain.ErrArticleLocked("update", article.Status)
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	loadedStatus := article.Status
	wasPublished := loadedStatus == domain.ArticlePublished

	article.Title = strings.TrimSpace(input.Title)
	article.Content = input.Content
	article.Category = strings.TrimSpace(input.Category)
	article.Tags = pq.StringArray(input.Tags)
	if !actor.IsAdmin() {
		article.Status = domain.ArticleDraft
	}

	ok, err := s.articleRepo.Update(ctx, article, loadedStatus)
	if err != nil {
		return nil, fmt.Errorf("update article %s: %w", id, err)
	}
	if !ok {
		return nil, domain.ErrArticleStatusChanged
	}

	if wasPublished {
		s.invalidatePublished(ctx)
	}

	return s.withAuthor(ctx, article), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID, actor *domain.User, meta *domain.RequestMeta) error {
	if !actor.IsAdmin() {
		return domain.ErrAdminRequired
	}

	found, err := s.articleRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete article %s: %w", id, err)
	}
	if !found {
		return domain.ErrArticleNotFound
	}

	s.invalidatePublished(ctx)
	s.recordAudit(ctx, actor.ID, domain.AuditDeleteArticle, id, nil, meta)
	return nil
}

func (s *service) Submit(ctx context.Context, id uuid.UUID, actor *domain.User) (*domain.Article, error) {
	article, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if !article.IsOwnedBy(actor) {
		return nil, domain.ErrArticleSubmitForbidden
	}
	if !article.Status.CanSubmit() {
		return nil, domain.ErrArticleLocked("submit", article.Status)
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		ok, err := s.articleRepo.TransitionStatus(txCtx, id,
			[]domain.ArticleStatus{domain.ArticleDraft, domain.ArticleRejected}, domain.ArticlePending)
		if err != nil {
			return fmt.Errorf("submit article %s: %w", id, err)
		}
		if !ok {
			return domain.ErrArticleStatusChanged
		}

		submitter := actor.ID
		req := &domain.Request{
			ID:            uuid.New(),
			Type:          domain.RequestArticleApproval,
			Data:          domain.ArticleApprovalPayload{ArticleID: article.ID, Title: article.Title},
			Status:        domain.RequestPending,
			SubmittedByID: &submitter,
		}
		if err := s.requestRepo.Create(txCtx, req); err != nil {
			return fmt.Errorf("create approval request for article %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	article.Status = domain.ArticlePending
	return s.withAuthor(ctx, article), nil
}

func (s *service) Review(ctx context.Context, id uuid.UUID, reviewer *domain.User, input domain.ReviewArticleInput, meta *domain.RequestMeta) (*domain.Article, error) {
	if !reviewer.IsAdmin() {
		return nil, domain.ErrAdminRequired
	}
	if !input.Status.IsReviewOutcome() {
		return nil, domain.NewValidationError("Invalid status. Must be approved or rejected")
	}

	article, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if article.Status != domain.ArticlePending {
		return nil, domain.ErrArticleNotPending
	}

	target := domain.ArticleStatusFor(input.Status)

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		ok, err := s.articleRepo.TransitionStatus(txCtx, id, []domain.ArticleStatus{domain.ArticlePending}, target)
		if err != nil {
			return fmt.Errorf("review article %s: %w", id, err)
		}
		if !ok {
			return domain.ErrArticleNotPending
		}

		resolved, err := s.requestRepo.ResolvePendingForArticle(txCtx, id, input.Status, reviewer.ID, input.ReviewNotes)
		if err != nil {
			return fmt.Errorf("resolve approval requests for article %s: %w", id, err)
		}
		s.logger.Debug("resolved approval requests",
			zap.String("article_id", id.String()), zap.Int64("count", resolved))
		return nil
	})
	if err != nil {
		return nil, err
	}

	article.Status = target
	s.invalidatePublished(ctx)
	s.recordAudit(ctx, reviewer.ID, domain.AuditReviewArticle, id, map[string]interface{}{
		"status":      target,
		"reviewNotes": input.ReviewNotes,
	}, meta)

	if s.notifSvc != nil {
		reviewed := *article
		go func() {
			if err := s.notifSvc.NotifyArticleReviewed(context.Background(), &reviewed, input.Status, input.ReviewNotes); err != nil {
				s.logger.Warn("failed to notify author",
					zap.String("article_id", reviewed.ID.String()), zap.Error(err))
			}
		}()
	}

	return s.withAuthor(ctx, article), nil
}

// ApplyReviewOutcome sets the article status produced by a processed
// article_approval request, whatever the article's current status.
func (s *service) ApplyReviewOutcome(ctx context.Context, articleID uuid.UUID, outcome domain.RequestStatus) error {
	found, err := s.articleRepo.SetStatus(ctx, articleID, domain.ArticleStatusFor(outcome))
	if err != nil {
		return fmt.Errorf("apply review outcome to article %s: %w", articleID, err)
	}
	if !found {
		s.logger.Info("approval request references a deleted article",
			zap.String("article_id", articleID.String()))
		return nil
	}

	s.invalidatePublished(ctx)
	return nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load article %s: %w", id, err)
	}
	if article == nil {
		return nil, domain.ErrArticleNotFound
	}
	return article, nil
}

func (s *service) withAuthor(ctx context.Context, article *domain.Article) *domain.Article {
	articles := []domain.Article{*article}
	s.attachAuthors(ctx, articles)
	return &articles[0]
}

func (s *service) attachAuthors(ctx context.Context, articles []domain.Article) {
	if len(articles) == 0 {
		return
	}

	seen := make(map[uuid.UUID]struct{}, len(articles))
	ids := make([]uuid.UUID, 0, len(articles))
	for i := range articles {
		if _, ok := seen[articles[i].AuthorID]; !ok {
			seen[articles[i].AuthorID] = struct{}{}
			ids = append(ids, articles[i].AuthorID)
		}
	}

	summaries, err := s.userRepo.GetSummaries(ctx, ids)
	if err != nil {
		s.logger.Warn("failed to load article authors", zap.Error(err))
		return
	}

	for i := range articles {
		articles[i].Author = summaries[articles[i].AuthorID]
	}
}

func (s *service) invalidatePublished(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, publishedCacheKey).Err(); err != nil {
		s.logger.Warn("failed to invalidate published articles cache", zap.Error(err))
	}
}

func (s *service) recordAudit(ctx context.Context, userID uuid.UUID, action string, articleID uuid.UUID, newValue interface{}, meta *domain.RequestMeta) {
	if s.auditSvc == nil {
		return
	}

	ip, ua := meta.ClientDetails()
	err := s.auditSvc.Record(ctx, domain.CreateAuditLogInput{
		UserID:     userID,
		Action:     action,
		EntityType: domain.AuditEntityArticle,
		EntityID:   articleID,
		NewValue:   newValue,
		IPAddress:  ip,
		UserAgent:  ua,
	})
	if err != nil {
		s.logger.Warn("failed to record audit log",
			zap.String("article_id", articleID.String()), zap.Error(err))
	}
}

func validateInput(input domain.ArticleInput) error {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Content) == "" || strings.TrimSpace(input.Category) == "" {
		return domain.ErrArticleFieldsRequired
	}
	return nil
}
