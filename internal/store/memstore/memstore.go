// Package memstore is an in-memory implementation of the catalog, library,
// wishlist and user repositories. It backs the demo server
// (STORE_DRIVER=memory) and the scenario tests.
package memstore

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"libraryapi/internal/book"
	"libraryapi/internal/library"
	"libraryapi/internal/listing"
	"libraryapi/internal/platform/textnorm"
	"libraryapi/internal/user"
	"libraryapi/internal/wishlist"
)

type key struct {
	userID string
	bookID string
}

// Store holds every table behind one lock so that multi-table mutations
// are atomic.
type Store struct {
	mu       sync.RWMutex
	books    map[string]book.Book
	users    map[string]user.Profile
	library  map[key]library.Entry
	wishlist map[key]wishlist.Entry
}

func New() *Store {
	return &Store{
		books:    map[string]book.Book{},
		users:    map[string]user.Profile{},
		library:  map[key]library.Entry{},
		wishlist: map[key]wishlist.Entry{},
	}
}

// NewWithDataset returns a store preloaded with ds.
func NewWithDataset(ds Dataset) *Store {
	s := New()
	for _, b := range ds.Books {
		s.books[b.ID] = b
	}
	for _, p := range ds.Users {
		s.users[p.ID] = p
	}
	for _, e := range ds.Library {
		s.library[key{e.UserID, e.BookID}] = e
	}
	for _, e := range ds.Wishlist {
		s.wishlist[key{e.UserID, e.BookID}] = e
	}
	return s
}

func (s *Store) Books() *BookRepo { return &BookRepo{s} }

func (s *Store) Library() *LibraryRepo { return &LibraryRepo{s} }

func (s *Store) Wishlist() *WishlistRepo { return &WishlistRepo{s} }

func (s *Store) Users() *UserRepo { return &UserRepo{s} }

func contains(normalized, search string) bool {
	return strings.Contains(normalized, search)
}

// direction applies the sort direction to a primary comparison.
func direction(c int, ascending bool) int {
	if ascending {
		return c
	}
	return -c
}

// BookRepo implements book.Repository.
type BookRepo struct{ s *Store }

func (r *BookRepo) GetByID(_ context.Context, id string) (book.Book, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.books[id]
	if !ok {
		return book.Book{}, book.ErrNotFound
	}
	return b, nil
}

func (r *BookRepo) Insert(_ context.Context, b *book.Book) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if existing, ok := r.s.books[b.ID]; ok {
		b.CreatedAt = existing.CreatedAt
		return nil
	}
	if b.NormalizedTitle == "" {
		b.NormalizedTitle = textnorm.Normalize(b.Title)
	}
	r.s.books[b.ID] = *b
	return nil
}

// Len returns the number of catalog books.
func (r *BookRepo) Len() int {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.books)
}

// LibraryRepo implements library.Repository.
type LibraryRepo struct{ s *Store }

// items returns the user's entries joined with their books and filtered by
// search. The caller holds the read lock.
func (r *LibraryRepo) items(userID, search string) []library.Item {
	out := []library.Item{}
	for k, e := range r.s.library {
		if k.userID != userID {
			continue
		}
		b := r.s.books[k.bookID]
		if !contains(b.NormalizedTitle, search) {
			continue
		}
		out = append(out, library.NewItem(e, b))
	}
	return out
}

func (r *LibraryRepo) Count(_ context.Context, userID, search string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.items(userID, search)), nil
}

func (r *LibraryRepo) Find(_ context.Context, userID string, q listing.Query) ([]library.Item, error) {
	r.s.mu.RLock()
	items := r.items(userID, q.Search)
	r.s.mu.RUnlock()

	slices.SortFunc(items, func(a, b library.Item) int {
		var c int
		switch q.OrderBy {
		case library.OrderRating:
			c = cmp.Compare(a.Rating, b.Rating)
		case library.OrderTag:
			c = cmp.Compare(a.Tag, b.Tag)
		case library.OrderReadingState:
			c = cmp.Compare(a.ReadingState, b.ReadingState)
		default:
			c = cmp.Compare(a.NormalizedTitle, b.NormalizedTitle)
		}
		if c = direction(c, q.Ascending); c != 0 {
			return c
		}
		return cmp.Compare(a.BookID, b.BookID)
	})
	return listing.Window(items, q), nil
}

func (r *LibraryRepo) Get(_ context.Context, userID, bookID string) (library.Entry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.library[key{userID, bookID}]
	if !ok {
		return library.Entry{}, library.ErrNotFound
	}
	return e, nil
}

func (r *LibraryRepo) GetItem(_ context.Context, userID, bookID string) (library.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.library[key{userID, bookID}]
	if !ok {
		return library.Item{}, library.ErrNotFound
	}
	return library.NewItem(e, r.s.books[bookID]), nil
}

func (r *LibraryRepo) GetItemByISBN(_ context.Context, userID, isbn string) (library.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var (
		found library.Item
		ok    bool
	)
	for k, e := range r.s.library {
		b := r.s.books[k.bookID]
		if k.userID != userID || b.ISBN != isbn {
			continue
		}
		if !ok || b.ID < found.BookID {
			found, ok = library.NewItem(e, b), true
		}
	}
	if !ok {
		return library.Item{}, library.ErrNotFound
	}
	return found, nil
}

func (r *LibraryRepo) Exists(_ context.Context, userID, bookID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.library[key{userID, bookID}]
	return ok, nil
}

func (r *LibraryRepo) Add(_ context.Context, e library.Entry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := key{e.UserID, e.BookID}
	if _, ok := r.s.library[k]; ok {
		return library.ErrAlreadyExists
	}
	r.s.library[k] = e
	delete(r.s.wishlist, k)
	return nil
}

func (r *LibraryRepo) Update(_ context.Context, e library.Entry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := key{e.UserID, e.BookID}
	if _, ok := r.s.library[k]; !ok {
		return library.ErrNotFound
	}
	r.s.library[k] = e
	return nil
}

func (r *LibraryRepo) Remove(_ context.Context, userID, bookID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := key{userID, bookID}
	if _, ok := r.s.library[k]; !ok {
		return library.ErrNotFound
	}
	delete(r.s.library, k)
	return nil
}

// WishlistRepo implements wishlist.Repository.
type WishlistRepo struct{ s *Store }

func (r *WishlistRepo) entries(userID, search string) []wishlist.Entry {
	out := []wishlist.Entry{}
	for k, e := range r.s.wishlist {
		if k.userID == userID && contains(e.NormalizedTitle, search) {
			out = append(out, e)
		}
	}
	return out
}

func (r *WishlistRepo) Count(_ context.Context, userID, search string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.entries(userID, search)), nil
}

func (r *WishlistRepo) Find(_ context.Context, userID string, q listing.Query) ([]wishlist.Entry, error) {
	r.s.mu.RLock()
	entries := r.entries(userID, q.Search)
	r.s.mu.RUnlock()

	slices.SortFunc(entries, func(a, b wishlist.Entry) int {
		var c int
		switch q.OrderBy {
		case wishlist.OrderAuthor:
			c = cmp.Compare(a.Author, b.Author)
		default:
			c = cmp.Compare(a.NormalizedTitle, b.NormalizedTitle)
		}
		if c = direction(c, q.Ascending); c != 0 {
			return c
		}
		return cmp.Compare(a.BookID, b.BookID)
	})
	return listing.Window(entries, q), nil
}

func (r *WishlistRepo) Exists(_ context.Context, userID, bookID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.wishlist[key{userID, bookID}]
	return ok, nil
}

func (r *WishlistRepo) Add(_ context.Context, e wishlist.Entry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := key{e.UserID, e.BookID}
	if _, ok := r.s.wishlist[k]; ok {
		return wishlist.ErrAlreadyExists
	}
	r.s.wishlist[k] = e
	return nil
}

func (r *WishlistRepo) Remove(_ context.Context, userID, bookID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := key{userID, bookID}
	if _, ok := r.s.wishlist[k]; !ok {
		return wishlist.ErrNotFound
	}
	delete(r.s.wishlist, k)
	return nil
}

// UserRepo implements user.Repository.
type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, p *user.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.NormalizedFullName = textnorm.Normalize(p.FullName)
	r.s.users[p.ID] = *p
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (user.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.users[id]
	if !ok {
		return user.Profile{}, user.ErrNotFound
	}
	return p, nil
}

func (r *UserRepo) Search(_ context.Context, callerID, term string) ([]user.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []user.Profile{}
	for _, p := range r.s.users {
		if p.Visible && p.ID != callerID && contains(p.NormalizedFullName, term) {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b user.Profile) int {
		return cmp.Or(
			cmp.Compare(a.NormalizedFullName, b.NormalizedFullName),
			cmp.Compare(a.ID, b.ID),
		)
	})
	return out, nil
}

func (r *UserRepo) SetVisibility(_ context.Context, id string, visible bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.users[id]
	if !ok {
		return user.ErrNotFound
	}
	p.Visible = visible
	r.s.users[id] = p
	return nil
}
