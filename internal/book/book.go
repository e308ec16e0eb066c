package book

import (
	"fmt"
	"time"

	"libraryapi/internal/apperr"
)

// ErrNotFound is returned when a book is not in the catalog.
var ErrNotFound = fmt.Errorf("book %w", apperr.ErrNotFound)

// Book is a catalog entry. ID is the volume id of the metadata provider.
type Book struct {
	ID              string    `json:"id"`
	ISBN            string    `json:"isbn"`
	Title           string    `json:"title"`
	NormalizedTitle string    `json:"-"`
	Author          string    `json:"author,omitempty"`
	Description     string    `json:"description,omitempty"`
	ImagePath       string    `json:"image_path,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
