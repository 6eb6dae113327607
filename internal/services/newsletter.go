package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"newsletterplatform/internal/domain"
)

type newsletterService struct {
	repo domain.NewsletterRepository
}

// NewNewsletterService creates a NewsletterService over the given repository.
func NewNewsletterService(repo domain.NewsletterRepository) domain.NewsletterService {
	return &newsletterService{repo: repo}
}

func (s *newsletterService) Create(ctx context.Context, title, content, author string, isActive *bool) (*domain.Newsletter, error) {
	n := &domain.Newsletter{
		Title:    strings.TrimSpace(title),
		Content:  content,
		Author:   strings.TrimSpace(author),
		IsActive: true,
	}
	if isActive != nil {
		n.IsActive = *isActive
	}
	if err := s.repo.Create(ctx, n); err != nil {
		if errors.Is(err, domain.ErrDuplicateTitle) {
			return nil, domain.ConflictError("Newsletter title already exists")
		}
		return nil, fmt.Errorf("failed to create newsletter: %w", err)
	}
	return n, nil
}

func (s *newsletterService) List(ctx context.Context, p domain.PaginationParams) ([]*domain.Newsletter, int, error) {
	newsletters, total, err := s.repo.ListActive(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list newsletters: %w", err)
	}
	return newsletters, total, nil
}

func (s *newsletterService) Get(ctx context.Context, id int64) (*domain.Newsletter, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNewsletterNotFound) {
			return nil, domain.NotFoundError("Newsletter not found")
		}
		return nil, fmt.Errorf("failed to get newsletter: %w", err)
	}
	return n, nil
}

// Update applies a partial update. Inactive newsletters cannot be mutated
// and surface as not found, same as a missing id.
func (s *newsletterService) Update(ctx context.Context, id int64, upd domain.NewsletterUpdate) (*domain.Newsletter, error) {
	if upd.IsEmpty() {
		return nil, domain.BadRequestError("No valid fields provided for update")
	}
	n, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNewsletterNotFound):
			return nil, domain.NotFoundError("Newsletter not found")
		case errors.Is(err, domain.ErrDuplicateTitle):
			return nil, domain.ConflictError("Newsletter title already exists")
		}
		return nil, fmt.Errorf("failed to update newsletter: %w", err)
	}
	return n, nil
}

// Delete soft-deletes: the row stays, IsActive flips to false. Deleting an
// already-inactive newsletter is not found.
func (s *newsletterService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNewsletterNotFound) {
			return domain.NotFoundError("Newsletter not found")
		}
		return fmt.Errorf("failed to delete newsletter: %w", err)
	}
	return nil
}
