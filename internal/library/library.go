package library

import (
	"fmt"
	"time"

	"libraryapi/internal/apperr"
	"libraryapi/internal/book"
	"libraryapi/internal/listing"
)

var (
	// ErrNotFound is returned when the user has no entry for the book.
	ErrNotFound = fmt.Errorf("library entry %w", apperr.ErrNotFound)
	// ErrAlreadyExists is returned when the book is already in the library.
	ErrAlreadyExists = fmt.Errorf("library entry %w", apperr.ErrAlreadyExists)
	// ErrUserNotFound is returned when the library owner does not exist.
	ErrUserNotFound = fmt.Errorf("user %w", apperr.ErrNotFound)
)

// Tag is the genre code a user assigns to a book in their library.
type Tag string

const (
	TagFiction        Tag = "0"
	TagNonFiction     Tag = "1"
	TagMystery        Tag = "2"
	TagScienceFiction Tag = "3"
)

var tagLabels = map[Tag]string{
	TagFiction:        "Fiction",
	TagNonFiction:     "Non-fiction",
	TagMystery:        "Mystery",
	TagScienceFiction: "Science fiction",
}

func (t Tag) Valid() bool {
	_, ok := tagLabels[t]
	return ok
}

func (t Tag) Label() string {
	return tagLabels[t]
}

// ReadingState is the reading progress code of a library entry.
type ReadingState string

const (
	StateNotRead   ReadingState = "0"
	StateReading   ReadingState = "1"
	StateAbandoned ReadingState = "2"
	StateRead      ReadingState = "3"
)

var stateLabels = map[ReadingState]string{
	StateNotRead:   "Not read",
	StateReading:   "Reading",
	StateAbandoned: "Abandoned",
	StateRead:      "Read",
}

func (s ReadingState) Valid() bool {
	_, ok := stateLabels[s]
	return ok
}

func (s ReadingState) Label() string {
	return stateLabels[s]
}

// Entry is a book held in a user's library. A zero date is unset.
type Entry struct {
	UserID       string
	BookID       string
	Rating       float64
	Tag          Tag
	ReadingState ReadingState
	InitialDate  time.Time
	FinalDate    time.Time
}

// NewEntry returns the entry created when a book is first added.
func NewEntry(userID, bookID string) Entry {
	return Entry{
		UserID:       userID,
		BookID:       bookID,
		Tag:          TagFiction,
		ReadingState: StateNotRead,
	}
}

// Item is the view of a library entry joined with its catalog book.
type Item struct {
	BookID            string       `json:"book_id"`
	ISBN              string       `json:"isbn"`
	Title             string       `json:"title"`
	NormalizedTitle   string       `json:"-"`
	Author            string       `json:"author,omitempty"`
	Description       string       `json:"description,omitempty"`
	ImagePath         string       `json:"image_path,omitempty"`
	Rating            float64      `json:"rating"`
	Tag               Tag          `json:"tag"`
	TagLabel          string       `json:"tag_label"`
	ReadingState      ReadingState `json:"reading_state"`
	ReadingStateLabel string       `json:"reading_state_label"`
	InitialDate       *time.Time   `json:"initial_date,omitempty"`
	FinalDate         *time.Time   `json:"final_date,omitempty"`
}

// NewItem joins e with b.
func NewItem(e Entry, b book.Book) Item {
	return Item{
		BookID:            e.BookID,
		ISBN:              b.ISBN,
		Title:             b.Title,
		NormalizedTitle:   b.NormalizedTitle,
		Author:            b.Author,
		Description:       b.Description,
		ImagePath:         b.ImagePath,
		Rating:            e.Rating,
		Tag:               e.Tag,
		TagLabel:          e.Tag.Label(),
		ReadingState:      e.ReadingState,
		ReadingStateLabel: e.ReadingState.Label(),
		InitialDate:       datePtr(e.InitialDate),
		FinalDate:         datePtr(e.FinalDate),
	}
}

func datePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// Sortable columns of a library listing.
const (
	OrderTitle        = "title"
	OrderRating       = "rating"
	OrderTag          = "tag"
	OrderReadingState = "reading_state"
)

// DefaultOptions is the listing configuration of a library.
func DefaultOptions(perPage, maxPerPage int) listing.Options {
	return listing.Options{
		PerPage:    perPage,
		MaxPerPage: maxPerPage,
		Default:    listing.Order{By: OrderTitle, Ascending: true},
		Allow:      []string{OrderTitle, OrderRating, OrderTag, OrderReadingState},
	}
}
