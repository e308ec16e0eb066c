package library

import (
	"context"

	"libraryapi/internal/book"
	"libraryapi/internal/listing"
)

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=library

// Repository defines the contract for library storage. It is also the
// listing source of a user's library.
type Repository interface {
	Count(ctx context.Context, userID, search string) (int, error)
	Find(ctx context.Context, userID string, q listing.Query) ([]Item, error)
	Get(ctx context.Context, userID, bookID string) (Entry, error)
	GetItem(ctx context.Context, userID, bookID string) (Item, error)
	GetItemByISBN(ctx context.Context, userID, isbn string) (Item, error)
	Exists(ctx context.Context, userID, bookID string) (bool, error)
	// Add stores e and deletes the user's wishlist entry for the same book
	// in one transaction. It returns ErrAlreadyExists for a duplicate.
	Add(ctx context.Context, e Entry) error
	Update(ctx context.Context, e Entry) error
	// Remove deletes the entry only; the catalog book is kept.
	Remove(ctx context.Context, userID, bookID string) error
}

// Catalog resolves catalog books.
type Catalog interface {
	Get(ctx context.Context, id string) (book.Book, error)
	Exists(ctx context.Context, id string) (bool, error)
	Ensure(ctx context.Context, id string) (book.Book, error)
}

// Users answers whether a user exists.
type Users interface {
	Exists(ctx context.Context, userID string) (bool, error)
}

// Wishlist answers wishlist membership.
type Wishlist interface {
	Contains(ctx context.Context, userID, bookID string) (bool, error)
}
