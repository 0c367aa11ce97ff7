package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"symptra-health/internal/domain"
	"symptra-health/internal/repository"
)

type Service interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, input domain.UpdateProfileInput) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	userRepo repository.UserRepository
}

func NewService(userRepo repository.UserRepository) Service {
	return &service{userRepo: userRepo}
}

func (s *service) GetProfile(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load user %s: %w", id, err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile overwrites only the fields present in input.
func (s *service) UpdateProfile(ctx context.Context, id uuid.UUID, input domain.UpdateProfileInput) (*domain.User, error) {
	user, err := s.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		user.Name = name
	}
	overwrite(&user.Phone, input.Phone)
	overwrite(&user.Address, input.Address)
	overwrite(&user.PastDiseases, input.PastDiseases)
	overwrite(&user.ParentName, input.ParentName)
	overwrite(&user.ParentPhone, input.ParentPhone)
	if input.Weight != nil {
		if *input.Weight < 0 {
			return nil, domain.NewValidationError("Weight cannot be negative")
		}
		user.Weight = input.Weight
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) List(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.List(ctx)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	found, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	if !found {
		return domain.ErrUserNotFound
	}
	return nil
}

func overwrite(field **string, value string) {
	if value = strings.TrimSpace(value); value != "" {
		*field = &value
	}
}
