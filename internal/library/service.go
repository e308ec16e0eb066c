package library

import (
	"context"
	"fmt"
	"strings"
	"time"

	"libraryapi/internal/apperr"
	"libraryapi/internal/book"
	"libraryapi/internal/listing"
)

// Service provides the library queries and mutations of a single user.
type Service struct {
	repo     Repository
	catalog  Catalog
	wishlist Wishlist
	users    Users
	now      func() time.Time
}

// NewService creates a new library service.
func NewService(repo Repository, catalog Catalog, wishlist Wishlist, users Users) *Service {
	return &Service{repo: repo, catalog: catalog, wishlist: wishlist, users: users, now: time.Now}
}

func blank(ids ...string) bool {
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			return true
		}
	}
	return false
}

func invalidIDs() error {
	return fmt.Errorf("%w: user id and book id are required", apperr.ErrInvalidArgument)
}

// List returns one page of the user's library.
func (s *Service) List(ctx context.Context, userID string, q listing.Query) (listing.Page[Item], error) {
	if blank(userID) {
		return listing.Empty[Item](q), nil
	}
	return listing.Fetch[Item](ctx, s.repo, userID, q)
}

// Get returns the detail view of a book in the user's library.
func (s *Service) Get(ctx context.Context, userID, bookID string) (Item, error) {
	if blank(userID, bookID) {
		return Item{}, invalidIDs()
	}
	return s.repo.GetItem(ctx, userID, bookID)
}

// GetByISBN returns the detail view of the book with the given ISBN in the
// user's library.
func (s *Service) GetByISBN(ctx context.Context, userID, isbn string) (Item, error) {
	if blank(userID, isbn) {
		return Item{}, fmt.Errorf("%w: user id and isbn are required", apperr.ErrInvalidArgument)
	}
	return s.repo.GetItemByISBN(ctx, userID, isbn)
}

// GetCatalogBook returns a stored catalog book, whether or not the user
// holds it. The metadata provider is not consulted.
func (s *Service) GetCatalogBook(ctx context.Context, bookID string) (book.Book, error) {
	return s.catalog.Get(ctx, bookID)
}

// Edit validates cmd against the stored entry and persists the result in a
// single write.
func (s *Service) Edit(ctx context.Context, userID string, cmd EditCommand) (Item, error) {
	if blank(userID, cmd.BookID) {
		return Item{}, invalidIDs()
	}

	current, err := s.repo.Get(ctx, userID, cmd.BookID)
	if err != nil {
		return Item{}, err
	}

	updated, err := current.Apply(cmd, s.now())
	if err != nil {
		return Item{}, err
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		return Item{}, err
	}
	return s.repo.GetItem(ctx, userID, cmd.BookID)
}

// Add puts a book in the user's library, materialising it in the catalog
// first when needed. The book leaves the user's wishlist.
func (s *Service) Add(ctx context.Context, userID, bookID string) (Item, error) {
	if blank(userID, bookID) {
		return Item{}, invalidIDs()
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return Item{}, err
	}

	exists, err := s.repo.Exists(ctx, userID, bookID)
	if err != nil {
		return Item{}, err
	}
	if exists {
		return Item{}, ErrAlreadyExists
	}

	b, err := s.catalog.Ensure(ctx, bookID)
	if err != nil {
		return Item{}, err
	}

	entry := NewEntry(userID, b.ID)
	if err := s.repo.Add(ctx, entry); err != nil {
		return Item{}, err
	}
	return NewItem(entry, b), nil
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

// Remove takes a book out of the user's library.
func (s *Service) Remove(ctx context.Context, userID, bookID string) error {
	if blank(userID, bookID) {
		return invalidIDs()
	}
	return s.repo.Remove(ctx, userID, bookID)
}

// IsStoredInCatalog reports whether the book has been materialised.
func (s *Service) IsStoredInCatalog(ctx context.Context, bookID string) (bool, error) {
	return s.catalog.Exists(ctx, bookID)
}

// IsInLibrary reports whether the user holds the book.
func (s *Service) IsInLibrary(ctx context.Context, userID, bookID string) (bool, error) {
	if blank(userID, bookID) {
		return false, nil
	}
	return s.repo.Exists(ctx, userID, bookID)
}

// IsInWishlist reports whether the book is on the user's wishlist.
func (s *Service) IsInWishlist(ctx context.Context, userID, bookID string) (bool, error) {
	if blank(userID, bookID) {
		return false, nil
	}
	return s.wishlist.Contains(ctx, userID, bookID)
}

// Status is the membership summary of a book for one user.
type Status struct {
	BookID     string `json:"book_id"`
	InCatalog  bool   `json:"in_catalog"`
	InLibrary  bool   `json:"in_library"`
	InWishlist bool   `json:"in_wishlist"`
}

// Status collects the three membership predicates of a book.
func (s *Service) Status(ctx context.Context, userID, bookID string) (Status, error) {
	st := Status{BookID: bookID}
	var err error
	if st.InCatalog, err = s.IsStoredInCatalog(ctx, bookID); err != nil {
		return Status{}, err
	}
	if st.InLibrary, err = s.IsInLibrary(ctx, userID, bookID); err != nil {
		return Status{}, err
	}
	if st.InWishlist, err = s.IsInWishlist(ctx, userID, bookID); err != nil {
		return Status{}, err
	}
	return st, nil
}
