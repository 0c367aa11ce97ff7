package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"symptra-health/internal/domain"
)

type RequestRepository interface {
	Create(ctx context.Context, req *domain.Request) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Request, error)
	List(ctx context.Context, filter domain.RequestFilter) ([]domain.Request, error)
	// Resolve moves a pending request to req.Status and records the review.
	// It reports false when the row no longer exists or is no longer pending.
	Resolve(ctx context.Context, req *domain.Request) (bool, error)
	ResolvePendingForArticle(ctx context.Context, articleID uuid.UUID, status domain.RequestStatus, reviewedBy uuid.UUID, notes *string) (int64, error)
}

type requestRepository struct {
	db *sqlx.DB
}

func NewRequestRepository(db *sqlx.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, req *domain.Request) error {
	if err := req.EncodeData(); err != nil {
		return fmt.Errorf("encode request data: %w", err)
	}

	query := `
		INSERT INTO requests (id, type, data, status, submitted_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	return executor(ctx, r.db).QueryRowxContext(ctx, query,
		req.ID, req.Type, req.RawData, req.Status, req.SubmittedByID,
	).Scan(&req.CreatedAt, &req.UpdatedAt)
}

func (r *requestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Request, error) {
	var req domain.Request
	query := `SELECT * FROM requests WHERE id = $1`

	err := sqlx.GetContext(ctx, executor(ctx, r.db), &req, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := req.DecodeData(); err != nil {
		return nil, fmt.Errorf("decode request %s: %w", id, err)
	}
	return &req, nil
}

func (r *requestRepository) List(ctx context.Context, filter domain.RequestFilter) ([]domain.Request, error) {
	var (
		conditions []string
		args       []interface{}
	)

	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.SubmittedBy != nil {
		args = append(args, *filter.SubmittedBy)
		conditions = append(conditions, fmt.Sprintf("submitted_by = $%d", len(args)))
	}

	query := `SELECT * FROM requests`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	requests := []domain.Request{}
	if err := sqlx.SelectContext(ctx, executor(ctx, r.db), &requests, query, args...); err != nil {
		return nil, err
	}

	for i := range requests {
		if err := requests[i].DecodeData(); err != nil {
			return nil, fmt.Errorf("decode request %s: %w", requests[i].ID, err)
		}
	}
	return requests, nil
}

func (r *requestRepository) Resolve(ctx context.Context, req *domain.Request) (bool, error) {
	query := `
		UPDATE requests
		SET status = $2, reviewed_by = $3, review_notes = $4, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING updated_at`

	err := executor(ctx, r.db).QueryRowxContext(ctx, query,
		req.ID, req.Status, req.ReviewedByID, req.ReviewNotes,
	).Scan(&req.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *requestRepository) ResolvePendingForArticle(ctx context.Context, articleID uuid.UUID, status domain.RequestStatus, reviewedBy uuid.UUID, notes *string) (int64, error) {
	query := `
		UPDATE requests
		SET status = $2, reviewed_by = $3, review_notes = COALESCE($4, ''), updated_at = NOW()
		WHERE type = 'article_approval' AND status = 'pending' AND data->>'articleId' = $1`

	result, err := executor(ctx, r.db).ExecContext(ctx, query, articleID.String(), status, reviewedBy, notes)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
