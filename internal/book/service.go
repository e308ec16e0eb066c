package book

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"libraryapi/internal/apperr"
	"libraryapi/internal/platform/textnorm"
)

// Service provides catalog lookups and on-demand materialisation.
type Service struct {
	repo     Repository
	resolver Resolver
}

// NewService creates a new catalog service.
func NewService(repo Repository, resolver Resolver) *Service {
	return &Service{repo: repo, resolver: resolver}
}

// Get returns a stored book without consulting the metadata provider.
func (s *Service) Get(ctx context.Context, id string) (Book, error) {
	if strings.TrimSpace(id) == "" {
		return Book{}, fmt.Errorf("%w: book id is required", apperr.ErrInvalidArgument)
	}
	return s.repo.GetByID(ctx, id)
}

// Exists reports whether id is stored in the catalog.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	if strings.TrimSpace(id) == "" {
		return false, nil
	}
	_, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Ensure returns the stored book for id, resolving and storing it first
// when the catalog does not have it yet.
func (s *Service) Ensure(ctx context.Context, id string) (Book, error) {
	b, err := s.Get(ctx, id)
	if err == nil || !errors.Is(err, ErrNotFound) {
		return b, err
	}

	b, err = s.resolver.Resolve(ctx, id)
	if err != nil {
		return Book{}, err
	}
	b.ID = id
	b.NormalizedTitle = textnorm.Normalize(b.Title)

	if err := s.repo.Insert(ctx, &b); err != nil {
		return Book{}, fmt.Errorf("store resolved book: %w", err)
	}
	return b, nil
}
