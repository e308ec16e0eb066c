package wishlist

import (
	"fmt"
	"time"

	"libraryapi/internal/apperr"
	"libraryapi/internal/book"
	"libraryapi/internal/listing"
)

var (
	// ErrNotFound is returned when the book is not on the user's wishlist.
	ErrNotFound = fmt.Errorf("wishlist entry %w", apperr.ErrNotFound)
	// ErrAlreadyExists is returned when the book is already on the wishlist.
	ErrAlreadyExists = fmt.Errorf("wishlist entry %w", apperr.ErrAlreadyExists)
	// ErrUserNotFound is returned when the wishlist owner does not exist.
	ErrUserNotFound = fmt.Errorf("user %w", apperr.ErrNotFound)
)

// Entry is a wished book together with a snapshot of its catalog metadata.
type Entry struct {
	UserID          string    `json:"-"`
	BookID          string    `json:"book_id"`
	Title           string    `json:"title"`
	NormalizedTitle string    `json:"-"`
	Author          string    `json:"author,omitempty"`
	ISBN            string    `json:"isbn,omitempty"`
	ImagePath       string    `json:"image_path,omitempty"`
	AddedAt         time.Time `json:"added_at"`
}

// NewEntry snapshots b for userID.
func NewEntry(userID string, b book.Book, addedAt time.Time) Entry {
	return Entry{
		UserID:          userID,
		BookID:          b.ID,
		Title:           b.Title,
		NormalizedTitle: b.NormalizedTitle,
		Author:          b.Author,
		ISBN:            b.ISBN,
		ImagePath:       b.ImagePath,
		AddedAt:         addedAt,
	}
}

// Sortable columns of a wishlist listing.
const (
	OrderTitle  = "title"
	OrderAuthor = "author"
)

// DefaultOptions is the listing configuration of a wishlist.
func DefaultOptions(perPage, maxPerPage int) listing.Options {
	return listing.Options{
		PerPage:    perPage,
		MaxPerPage: maxPerPage,
		Default:    listing.Order{By: OrderTitle, Ascending: true},
		Allow:      []string{OrderTitle, OrderAuthor},
	}
}
