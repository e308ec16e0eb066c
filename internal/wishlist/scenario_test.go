package wishlist_test

import (
	"context"
	"testing"

	"libraryapi/internal/apperr"
	"libraryapi/internal/book"
	"libraryapi/internal/listing"
	"libraryapi/internal/store/memstore"
	"libraryapi/internal/user"
	"libraryapi/internal/wishlist"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noResolver struct{}

func (noResolver) Resolve(context.Context, string) (book.Book, error) {
	return book.Book{}, apperr.ErrUpstream
}

func newService() *wishlist.Service {
	store := memstore.NewWithDataset(memstore.DemoDataset())
	catalog := book.NewService(store.Books(), noResolver{})
	return wishlist.NewService(store.Wishlist(), catalog, user.NewService(store.Users(), store.Library()))
}

func TestScenario_ListWishlist(t *testing.T) {
	s := newService()
	opts := wishlist.DefaultOptions(10, 50)

	page, err := s.List(context.Background(), "userId1", listing.NewQuery("", 2, "", true, 0, opts))

	require.NoError(t, err)
	assert.Equal(t, 11, page.TotalCount)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "BookId22", page.Results[0].BookID)
}

func TestScenario_AddFromCatalogSnapshot(t *testing.T) {
	s := newService()
	ctx := context.Background()

	e, err := s.Add(ctx, "userId2", "BookId5")

	require.NoError(t, err)
	assert.Equal(t, "Libro 5", e.Title)
	assert.Equal(t, "9788800000005", e.ISBN)
	ok, _ := s.Contains(ctx, "userId2", "BookId5")
	assert.True(t, ok)
}

func TestScenario_RemoveFailures(t *testing.T) {
	s := newService()
	ctx := context.Background()

	assert.ErrorIs(t, s.Remove(ctx, "userId99", "BookId25"), apperr.ErrNotFound)
	assert.ErrorIs(t, s.Remove(ctx, "userId0", "NoSuchBook"), apperr.ErrNotFound)
	assert.ErrorIs(t, s.Remove(ctx, " ", "BookId25"), apperr.ErrInvalidArgument)
	require.NoError(t, s.Remove(ctx, "userId0", "BookId25"))
	assert.ErrorIs(t, s.Remove(ctx, "userId0", "BookId25"), apperr.ErrNotFound)
}
