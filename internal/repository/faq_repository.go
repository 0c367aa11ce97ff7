package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"symptra-health/internal/domain"
)

type FAQRepository interface {
	Create(ctx context.Context, faq *domain.FAQ) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.FAQ, error)
	List(ctx context.Context) ([]domain.FAQ, error)
	Update(ctx context.Context, faq *domain.FAQ) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type faqRepository struct {
	db *sqlx.DB
}

func NewFAQRepository(db *sqlx.DB) FAQRepository {
	return &faqRepository{db: db}
}

func (r *faqRepository) Create(ctx context.Context, faq *domain.FAQ) error {
	query := `
		INSERT INTO faqs (id, question, answer, category)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	return executor(ctx, r.db).QueryRowxContext(ctx, query,
		faq.ID, faq.Question, faq.Answer, faq.Category,
	).Scan(&faq.CreatedAt, &faq.UpdatedAt)
}

func (r *faqRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.FAQ, error) {
	var faq domain.FAQ
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &faq, `SELECT * FROM faqs WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &faq, nil
}

func (r *faqRepository) List(ctx context.Context) ([]domain.FAQ, error) {
	faqs := []domain.FAQ{}
	query := `SELECT * FROM faqs ORDER BY category, created_at`
	err := sqlx.SelectContext(ctx, executor(ctx, r.db), &faqs, query)
	return faqs, err
}

func (r *faqRepository) Update(ctx context.Context, faq *domain.FAQ) (bool, error) {
	query := `
		UPDATE faqs
		SET question = $2, answer = $3, category = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`

	err := executor(ctx, r.db).QueryRowxContext(ctx, query,
		faq.ID, faq.Question, faq.Answer, faq.Category,
	).Scan(&faq.CreatedAt, &faq.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *faqRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := executor(ctx, r.db).ExecContext(ctx, `DELETE FROM faqs WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}
