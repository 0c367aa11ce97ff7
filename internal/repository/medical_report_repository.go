package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"symptra-health/internal/domain"
)

type MedicalReportRepository interface {
	Create(ctx context.Context, report *domain.MedicalReport) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MedicalReport, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.MedicalReport, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type medicalReportRepository struct {
	db *sqlx.DB
}

func NewMedicalReportRepository(db *sqlx.DB) MedicalReportRepository {
	return &medicalReportRepository{db: db}
}

func (r *medicalReportRepository) Create(ctx context.Context, report *domain.MedicalReport) error {
	query := `
		INSERT INTO medical_reports (id, user_id, report_text_snippet, ai_analysis, original_file_name, storage_path, analysis_timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	return executor(ctx, r.db).QueryRowxContext(ctx, query,
		report.ID, report.UserID, report.ReportTextSnippet, report.AIAnalysis,
		report.OriginalFileName, report.StoragePath, report.AnalysisTimestamp,
	).Scan(&report.CreatedAt, &report.UpdatedAt)
}

func (r *medicalReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.MedicalReport, error) {
	var report domain.MedicalReport
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &report, `SELECT * FROM medical_reports WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *medicalReportRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.MedicalReport, error) {
	reports := []domain.MedicalReport{}
	query := `SELECT * FROM medical_reports WHERE user_id = $1 ORDER BY analysis_timestamp DESC`
	err := sqlx.SelectContext(ctx, executor(ctx, r.db), &reports, query, userID)
	return reports, err
}

func (r *medicalReportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := executor(ctx, r.db).ExecContext(ctx, `DELETE FROM medical_reports WHERE id = $1`, id)
	return err
}
