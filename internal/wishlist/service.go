package wishlist

import (
	"context"
	"fmt"
	"strings"
	"time"

	"libraryapi/internal/apperr"
	"libraryapi/internal/listing"
)

// Service provides the wishlist queries and mutations of a single user.
type Service struct {
	repo    Repository
	catalog Catalog
	users   Users
	now     func() time.Time
}

// NewService creates a new wishlist service.
func NewService(repo Repository, catalog Catalog, users Users) *Service {
	return &Service{repo: repo, catalog: catalog, users: users, now: time.Now}
}

func invalidIDs() error {
	return fmt.Errorf("%w: user id and book id are required", apperr.ErrInvalidArgument)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// List returns one page of the user's wishlist. A blank or unknown user has
// an empty wishlist.
func (s *Service) List(ctx context.Context, userID string, q listing.Query) (listing.Page[Entry], error) {
	if blank(userID) {
		return listing.Empty[Entry](q), nil
	}
	return listing.Fetch[Entry](ctx, s.repo, userID, q)
}

// Add puts a book on the user's wishlist, materialising it in the catalog
// first when needed.
func (s *Service) Add(ctx context.Context, userID, bookID string) (Entry, error) {
	if blank(userID) || blank(bookID) {
		return Entry{}, invalidIDs()
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return Entry{}, err
	}

	exists, err := s.repo.Exists(ctx, userID, bookID)
	if err != nil {
		return Entry{}, err
	}
	if exists {
		return Entry{}, ErrAlreadyExists
	}

	b, err := s.catalog.Ensure(ctx, bookID)
	if err != nil {
		return Entry{}, err
	}

	e := NewEntry(userID, b, s.now().UTC())
	if err := s.repo.Add(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// Remove takes a book off the user's wishlist.
func (s *Service) Remove(ctx context.Context, userID, bookID string) error {
	if blank(userID) || blank(bookID) {
		return invalidIDs()
	}

	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}
	return s.repo.Remove(ctx, userID, bookID)
}

func (s *Service) requireUser(ctx context.Context, userID string) error {
	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUserNotFound
	}
	return nil
}

// Contains reports whether the book is on the user's wishlist.
func (s *Service) Contains(ctx context.Context, userID, bookID string) (bool, error) {
	if blank(userID) || blank(bookID) {
		return false, nil
	}
	return s.repo.Exists(ctx, userID, bookID)
}
