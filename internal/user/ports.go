package user

import (
	"context"

	"libraryapi/internal/library"
	"libraryapi/internal/listing"
)

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=user

type Repository interface {
	GetByID(ctx context.Context, id string) (Profile, error)
	// Search returns the visible profiles other than callerID whose
	// normalized full name contains term, ordered by full name.
	Search(ctx context.Context, callerID, term string) ([]Profile, error)
	SetVisibility(ctx context.Context, id string, visible bool) error
}

// LibrarySource is the listing source of any user's library.
type LibrarySource interface {
	Count(ctx context.Context, ownerID, search string) (int, error)
	Find(ctx context.Context, ownerID string, q listing.Query) ([]library.Item, error)
}
