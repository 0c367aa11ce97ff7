package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"symptra-health/internal/domain"
)

type ArticleRepository interface {
	Create(ctx context.Context, article *domain.Article) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Article, error)
	List(ctx context.Context, status *domain.ArticleStatus) ([]domain.Article, error)
	Update(ctx context.Context, article *domain.Article, expected domain.ArticleStatus) (bool, error)
	// TransitionStatus moves the article to `to` only while its status is one
	// of `from`, and reports whether it did.
	TransitionStatus(ctx context.Context, id uuid.UUID, from []domain.ArticleStatus, to domain.ArticleStatus) (bool, error)
	SetStatus(ctx context.Context, id uuid.UUID, status domain.ArticleStatus) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type articleRepository struct {
	db *sqlx.DB
}

func NewArticleRepository(db *sqlx.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(ctx context.Context, article *domain.Article) error {
	if article.Tags == nil {
		article.Tags = pq.StringArray{}
	}

	query := `
		INSERT INTO articles (id, title, content, category, tags, author_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	return executor(ctx, r.db).QueryRowxContext(ctx, query,
		article.ID, article.Title, article.Content, article.Category,
		article.Tags, article.AuthorID, article.Status,
	).Scan(&article.CreatedAt, &article.UpdatedAt)
}

func (r *articleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	var article domain.Article
	query := `SELECT * FROM articles WHERE id = $1`

	err := sqlx.GetContext(ctx, executor(ctx, r.db), &article, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) List(ctx context.Context, status *domain.ArticleStatus) ([]domain.Article, error) {
	articles := []domain.Article{}

	if status != nil {
		query := `SELECT * FROM articles WHERE status = $1 ORDER BY created_at DESC`
		err := sqlx.SelectContext(ctx, executor(ctx, r.db), &articles, query, *status)
		return articles, err
	}

	query := `SELECT * FROM articles ORDER BY created_at DESC`
	err := sqlx.SelectContext(ctx, executor(ctx, r.db), &articles, query)
	return articles, err
}

// Update writes the editable fields only while the stored status still equals
// expected. It reports false when the row is gone or its status moved.
func (r *articleRepository) Update(ctx context.Context, article *domain.Article, expected domain.ArticleStatus) (bool, error) {
	if article.Tags == nil {
		article.Tags = pq.StringArray{}
	}

	query := `
		UPDATE articles
		SET title = $2, content = $3, category = $4, tags = $5, status = $6, updated_at = NOW()
		WHERE id = $1 AND status = $7
		RETURNING updated_at`

	err := executor(ctx, r.db).QueryRowxContext(ctx, query,
		article.ID, article.Title, article.Content, article.Category, article.Tags, article.Status, expected,
	).Scan(&article.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *articleRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from []domain.ArticleStatus, to domain.ArticleStatus) (bool, error) {
	fromStrings := make([]string, len(from))
	for i, s := range from {
		fromStrings[i] = string(s)
	}

	query := `
		UPDATE articles
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = ANY($3)`

	result, err := executor(ctx, r.db).ExecContext(ctx, query, id, to, pq.Array(fromStrings))
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

func (r *articleRepository) SetStatus(ctx context.Context, id uuid.UUID, status domain.ArticleStatus) (bool, error) {
	query := `UPDATE articles SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := executor(ctx, r.db).ExecContext(ctx, query, id, status)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

func (r *articleRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := executor(ctx, r.db).ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}
