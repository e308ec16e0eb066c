package wishlist

import (
	"context"

	"libraryapi/internal/book"
	"libraryapi/internal/listing"
)

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=wishlist

// Repository defines the contract for wishlist storage.
type Repository interface {
	Count(ctx context.Context, userID, search string) (int, error)
	Find(ctx context.Context, userID string, q listing.Query) ([]Entry, error)
	Exists(ctx context.Context, userID, bookID string) (bool, error)
	// Add returns ErrAlreadyExists for a duplicate.
	Add(ctx context.Context, e Entry) error
	Remove(ctx context.Context, userID, bookID string) error
}

// Catalog materialises catalog books.
type Catalog interface {
	Ensure(ctx context.Context, id string) (book.Book, error)
}

// Users answers whether a user exists.
type Users interface {
	Exists(ctx context.Context, userID string) (bool, error)
}
