package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"libraryapi/internal/apperr"
	"libraryapi/internal/library"
	"libraryapi/internal/listing"
	"libraryapi/internal/platform/textnorm"
)

type Service struct {
	repo  Repository
	books LibrarySource
}

func NewService(repo Repository, books LibrarySource) *Service {
	return &Service{repo: repo, books: books}
}

func (s *Service) profile(ctx context.Context, id string) (Profile, error) {
	if strings.TrimSpace(id) == "" {
		return Profile{}, fmt.Errorf("%w: user id is required", apperr.ErrInvalidArgument)
	}
	return s.repo.GetByID(ctx, id)
}

// Get returns the profile of id as seen by viewerID.
func (s *Service) Get(ctx context.Context, viewerID, id string) (View, error) {
	p, err := s.profile(ctx, id)
	if err != nil {
		return View{}, err
	}
	return p.viewBy(viewerID), nil
}

// GetFullName returns the full name of a user whatever their visibility.
func (s *Service) GetFullName(ctx context.Context, id string) (string, error) {
	p, err := s.profile(ctx, id)
	if err != nil {
		return "", err
	}
	return p.FullName, nil
}

func (s *Service) IsVisible(ctx context.Context, id string) (bool, error) {
	p, err := s.profile(ctx, id)
	if err != nil {
		return false, err
	}
	return p.Visible, nil
}

// Exists reports whether id names a known user. Blank ids do not.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	if strings.TrimSpace(id) == "" {
		return false, nil
	}
	_, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Search finds visible users by full name, ignoring case and diacritics.
// A nil term is rejected while a blank one matches everyone.
func (s *Service) Search(ctx context.Context, callerID string, term *string) ([]Profile, error) {
	if term == nil {
		return nil, fmt.Errorf("%w: search term is required", apperr.ErrInvalidArgument)
	}
	profiles, err := s.repo.Search(ctx, callerID, textnorm.Normalize(*term))
	if err != nil {
		return nil, err
	}
	if profiles == nil {
		profiles = []Profile{}
	}
	return profiles, nil
}

// ListBooks lists the library of ownerID on behalf of viewerID. Hidden
// libraries are reported as missing to everyone but their owner.
func (s *Service) ListBooks(ctx context.Context, viewerID, ownerID string, q listing.Query) (listing.Page[library.Item], error) {
	owner, err := s.profile(ctx, ownerID)
	if err != nil {
		return listing.Page[library.Item]{}, err
	}
	if !owner.Visible && owner.ID != viewerID {
		return listing.Page[library.Item]{}, ErrNotFound
	}
	return listing.Fetch[library.Item](ctx, s.books, owner.ID, q)
}

func (s *Service) SetVisibility(ctx context.Context, id string, visible bool) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: user id is required", apperr.ErrInvalidArgument)
	}
	return s.repo.SetVisibility(ctx, id, visible)
}
