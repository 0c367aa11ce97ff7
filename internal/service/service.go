package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"symptra-health/internal/config"
	"symptra-health/internal/repository"
	"symptra-health/internal/service/analysis"
	"symptra-health/internal/service/article"
	"symptra-health/internal/service/audit"
	"symptra-health/internal/service/auth"
	"symptra-health/internal/service/email"
	"symptra-health/internal/service/faq"
	"symptra-health/internal/service/notification"
	"symptra-health/internal/service/request"
	"symptra-health/internal/service/user"
	"symptra-health/internal/service/workflow"
)

type Services struct {
	Auth         auth.Service
	User         user.Service
	Request      request.Service
	Article      article.Service
	FAQ          faq.Service
	Analysis     analysis.Service
	Audit        audit.Service
	Notification notification.Service
	Email        email.Service
}

// Options carries the collaborators that live outside this repository.
type Options struct {
	Extractors []analysis.TextExtractor
	Analyzer   analysis.ReportAnalyzer
}

func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, cfg *config.Config, logger *zap.Logger, opts Options) *Services {
	emailService := email.NewService(cfg)
	auditService := audit.NewService(repos.AuditLog)
	notificationService := notification.NewService(repos.User, emailService, logger)
	authService := auth.NewService(repos.User, emailService, cfg, logger)
	userService := user.NewService(repos.User)
	faqService := faq.NewService(repos.FAQ)

	articleService := article.NewService(
		repos.Article,
		repos.Request,
		repos.User,
		repos.Tx,
		auditService,
		notificationService,
		redis,
		cfg.PublishedCacheTTL,
		logger,
	)

	dispatcher := workflow.NewDispatcher(articleService)
	requestService := request.NewService(
		repos.Request,
		repos.User,
		repos.Tx,
		dispatcher,
		auditService,
		notificationService,
		logger,
	)

	extractors := append([]analysis.TextExtractor{analysis.NewPlainTextExtractor()}, opts.Extractors...)
	var blobs analysis.BlobStore
	if minioClient != nil {
		blobs = analysis.NewMinIOStore(minioClient, cfg.MinIOBucket)
	}
	analysisService := analysis.NewService(repos.MedicalReport, extractors, opts.Analyzer, blobs, logger)

	return &Services{
		Auth:         authService,
		User:         userService,
		Request:      requestService,
		Article:      articleService,
		FAQ:          faqService,
		Analysis:     analysisService,
		Audit:        auditService,
		Notification: notificationService,
		Email:        emailService,
	}
}
