package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"symptra-health/internal/domain"
	"symptra-health/internal/repository"
)

const pastedTextName = "Pasted Text"

var (
	ErrNoReportInput       = domain.NewValidationError("No file or text provided.")
	ErrUnsupportedFileType = domain.NewValidationError("Only PDF and plain text files are supported in this mode.")
	ErrEmptyReportText     = domain.NewValidationError("Extracted text is empty.")
	ErrReportAccessDenied  = domain.NewForbiddenError("Not authorized to delete this report.")
	ErrAnalyzerUnavailable = domain.NewInternalError("Report analysis is not configured", nil)
)

type Service interface {
	Analyze(ctx context.Context, userID uuid.UUID, input domain.AnalyzeReportInput) (*domain.MedicalReport, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]domain.MedicalReport, error)
	Delete(ctx context.Context, id uuid.UUID, actor *domain.User) error
}

type service struct {
	reportRepo repository.MedicalReportRepository
	extractors []TextExtractor
	analyzer   ReportAnalyzer
	blobs      BlobStore
	logger     *zap.Logger
}

// NewService builds the report analysis service. analyzer and blobs may be
// nil; without an analyzer every analysis fails with an internal error.
func NewService(
	reportRepo repository.MedicalReportRepository,
	extractors []TextExtractor,
	analyzer ReportAnalyzer,
	blobs BlobStore,
	logger *zap.Logger,
) Service {
	return &service{
		reportRepo: reportRepo,
		extractors: extractors,
		analyzer:   analyzer,
		blobs:      blobs,
		logger:     logger,
	}
}

func (s *service) Analyze(ctx context.Context, userID uuid.UUID, input domain.AnalyzeReportInput) (*domain.MedicalReport, error) {
	if input.File == nil && strings.TrimSpace(input.ReportText) == "" {
		return nil, ErrNoReportInput
	}

	reportText := input.ReportText
	fileName := pastedTextName
	if input.File != nil {
		text, err := s.extract(ctx, input.File)
		if err != nil {
			return nil, err
		}
		reportText = text
		fileName = input.File.FileName
	}

	if strings.TrimSpace(reportText) == "" {
		return nil, ErrEmptyReportText
	}

	if s.analyzer == nil {
		return nil, ErrAnalyzerUnavailable
	}

	analysis, err := s.analyzer.Analyze(ctx, reportText)
	if err != nil {
		return nil, domain.NewInternalError("Report analysis failed", err)
	}

	now := time.Now()
	report := &domain.MedicalReport{
		ID:                uuid.New(),
		UserID:            userID,
		ReportTextSnippet: domain.Snippet(reportText),
		AIAnalysis:        analysis,
		OriginalFileName:  &fileName,
		AnalysisTimestamp: now,
	}

	if input.File != nil && s.blobs != nil {
		storagePath := fmt.Sprintf("reports/%s/%s", now.Format("2006/01"), report.ID.String())
		if err := s.blobs.Put(ctx, storagePath, input.File.Content, input.File.MimeType); err != nil {
			return nil, fmt.Errorf("store report upload: %w", err)
		}
		report.StoragePath = &storagePath
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		s.removeBlob(ctx, report)
		return nil, fmt.Errorf("create medical report: %w", err)
	}

	return report, nil
}

func (s *service) ListMine(ctx context.Context, userID uuid.UUID) ([]domain.MedicalReport, error) {
	return s.reportRepo.ListByUser(ctx, userID)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID, actor *domain.User) error {
	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load medical report %s: %w", id, err)
	}
	if report == nil {
		return domain.ErrReportNotFound
	}
	if actor == nil || (report.UserID != actor.ID && !actor.IsAdmin()) {
		return ErrReportAccessDenied
	}

	if err := s.reportRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete medical report %s: %w", id, err)
	}

	s.removeBlob(ctx, report)
	return nil
}

func (s *service) extract(ctx context.Context, upload *domain.ReportUpload) (string, error) {
	for _, extractor := range s.extractors {
		if !extractor.Supports(upload.MimeType) {
			continue
		}
		text, err := extractor.Extract(ctx, upload)
		if errors.Is(err, errNotUTF8) {
			return "", domain.NewValidationError("Uploaded text file is not valid UTF-8.")
		}
		if err != nil {
			return "", fmt.Errorf("extract report text: %w", err)
		}
		return text, nil
	}
	return "", ErrUnsupportedFileType
}

func (s *service) removeBlob(ctx context.Context, report *domain.MedicalReport) {
	if s.blobs == nil || report.StoragePath == nil {
		return
	}
	if err := s.blobs.Remove(ctx, *report.StoragePath); err != nil {
		s.logger.Warn("failed to remove report upload",
			zap.String("report_id", report.ID.String()), zap.Error(err))
	}
}
