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

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context) ([]domain.User, error)
	GetSummaries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.UserSummary, error)
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	return executor(ctx, r.db).QueryRowxContext(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Role,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE id = $1`

	err := sqlx.GetContext(ctx, executor(ctx, r.db), &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE email = $1`

	err := sqlx.GetContext(ctx, executor(ctx, r.db), &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &exists, query, email)
	return exists, err
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET name = $2, phone = $3, address = $4, weight = $5,
			past_diseases = $6, parent_name = $7, parent_phone = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := executor(ctx, r.db).QueryRowxContext(ctx, query,
		user.ID, user.Name, user.Phone, user.Address, user.Weight,
		user.PastDiseases, user.ParentName, user.ParentPhone,
	).Scan(&user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrUserNotFound
	}
	return err
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := executor(ctx, r.db).ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	query := `SELECT * FROM users ORDER BY created_at DESC`

	err := sqlx.SelectContext(ctx, executor(ctx, r.db), &users, query)
	return users, err
}

func (r *userRepository) GetSummaries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.UserSummary, error) {
	summaries := make(map[uuid.UUID]*domain.UserSummary, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}

	idStrings := make([]string, len(ids))
	for i, id := range ids {
		idStrings[i] = id.String()
	}

	var rows []domain.UserSummary
	query := `SELECT id, name, email FROM users WHERE id = ANY($1::uuid[])`
	if err := sqlx.SelectContext(ctx, executor(ctx, r.db), &rows, query, pq.Array(idStrings)); err != nil {
		return nil, err
	}

	for i := range rows {
		summaries[rows[i].ID] = &rows[i]
	}
	return summaries, nil
}
