package user_test

import (
	"context"
	"testing"

	"libraryapi/internal/apperr"
	"libraryapi/internal/library"
	"libraryapi/internal/listing"
	"libraryapi/internal/store/memstore"
	"libraryapi/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() *user.Service {
	store := memstore.NewWithDataset(memstore.DemoDataset())
	return user.NewService(store.Users(), store.Library())
}

func TestScenario_SearchIsAccentInsensitiveAndSkipsCaller(t *testing.T) {
	s := newService()
	ctx := context.Background()

	term := "CALLÀS"
	got, err := s.Search(ctx, "userId0", &term)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Maria Callas", got[0].FullName)

	term = "maria"
	got, err = s.Search(ctx, "userId1", &term)
	require.NoError(t, err)
	assert.Empty(t, got)

	term = "morricone"
	got, err = s.Search(ctx, "userId0", &term)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestScenario_HiddenUserAccessors(t *testing.T) {
	s := newService()
	ctx := context.Background()

	name, err := s.GetFullName(ctx, "userId3")
	require.NoError(t, err)
	assert.Equal(t, "Ennio Morricone", name)

	visible, err := s.IsVisible(ctx, "userId3")
	require.NoError(t, err)
	assert.False(t, visible)

	_, err = s.GetFullName(ctx, "userId99")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestScenario_ListBooksOfAnotherUser(t *testing.T) {
	s := newService()
	ctx := context.Background()
	q := listing.NewQuery("", 2, library.OrderTitle, true, 0, library.DefaultOptions(10, 50))

	page, err := s.ListBooks(ctx, "userId0", "userId1", q)
	require.NoError(t, err)
	assert.Equal(t, 12, page.TotalCount)
	assert.Len(t, page.Results, 2)

	require.NoError(t, s.SetVisibility(ctx, "userId1", false))
	_, err = s.ListBooks(ctx, "userId0", "userId1", q)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
