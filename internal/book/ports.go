package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=book

// Repository defines the contract for catalog storage. Books are never deleted.
type Repository interface {
	GetByID(ctx context.Context, id string) (Book, error)
	// Insert stores b unless a book with the same id already exists.
	Insert(ctx context.Context, b *Book) error
}

// Resolver fetches book metadata from an external provider.
type Resolver interface {
	Resolve(ctx context.Context, volumeID string) (Book, error)
}
