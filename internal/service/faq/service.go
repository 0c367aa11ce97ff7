package faq

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"symptra-health/internal/domain"
	"symptra-health/internal/repository"
)

var ErrQuestionAnswerRequired = domain.NewValidationError("Question and answer are required")

type Service interface {
	List(ctx context.Context) ([]domain.FAQ, error)
	Create(ctx context.Context, input domain.FAQInput) (*domain.FAQ, error)
	Update(ctx context.Context, id uuid.UUID, input domain.FAQInput) (*domain.FAQ, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	faqRepo repository.FAQRepository
}

func NewService(faqRepo repository.FAQRepository) Service {
	return &service{faqRepo: faqRepo}
}

func (s *service) List(ctx context.Context) ([]domain.FAQ, error) {
	return s.faqRepo.List(ctx)
}

func (s *service) Create(ctx context.Context, input domain.FAQInput) (*domain.FAQ, error) {
	faq, err := build(uuid.New(), input)
	if err != nil {
		return nil, err
	}

	if err := s.faqRepo.Create(ctx, faq); err != nil {
		return nil, fmt.Errorf("create faq: %w", err)
	}
	return faq, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input domain.FAQInput) (*domain.FAQ, error) {
	faq, err := build(id, input)
	if err != nil {
		return nil, err
	}

	found, err := s.faqRepo.Update(ctx, faq)
	if err != nil {
		return nil, fmt.Errorf("update faq %s: %w", id, err)
	}
	if !found {
		return nil, domain.ErrFAQNotFound
	}
	return faq, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	found, err := s.faqRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete faq %s: %w", id, err)
	}
	if !found {
		return domain.ErrFAQNotFound
	}
	return nil
}

func build(id uuid.UUID, input domain.FAQInput) (*domain.FAQ, error) {
	question := strings.TrimSpace(input.Question)
	answer := strings.TrimSpace(input.Answer)
	if question == "" || answer == "" {
		return nil, ErrQuestionAnswerRequired
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = domain.DefaultFAQCategory
	}

	return &domain.FAQ{ID: id, Question: question, Answer: answer, Category: category}, nil
}
