package user

import (
	"context"
	"testing"

	"libraryapi/internal/apperr"
	"libraryapi/internal/library"
	"libraryapi/internal/listing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	cosimo = Profile{ID: "userId0", FullName: "Cosimo de Medici", NormalizedFullName: "cosimo de medici", Visible: true}
	ennio  = Profile{ID: "userId3", FullName: "Ennio Morricone", NormalizedFullName: "ennio morricone", Visible: false}
)

func newService(t *testing.T) (*MockRepository, *MockLibrarySource, *Service) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepository(ctrl)
	books := NewMockLibrarySource(ctrl)
	return repo, books, NewService(repo, books)
}

func TestService_GetFullName(t *testing.T) {
	repo, _, service := newService(t)
	repo.EXPECT().GetByID(gomock.Any(), "userId3").Return(ennio, nil)
	repo.EXPECT().GetByID(gomock.Any(), "userId99").Return(Profile{}, ErrNotFound)

	name, err := service.GetFullName(context.Background(), "userId3")
	require.NoError(t, err)
	assert.Equal(t, "Ennio Morricone", name)

	_, err = service.GetFullName(context.Background(), "userId99")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = service.GetFullName(context.Background(), " ")
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

func TestService_IsVisible(t *testing.T) {
	repo, _, service := newService(t)
	repo.EXPECT().GetByID(gomock.Any(), "userId0").Return(cosimo, nil)
	repo.EXPECT().GetByID(gomock.Any(), "userId3").Return(ennio, nil)

	ok, err := service.IsVisible(context.Background(), "userId0")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = service.IsVisible(context.Background(), "userId3")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = service.IsVisible(context.Background(), "")
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

func TestService_Get(t *testing.T) {
	repo, _, service := newService(t)
	repo.EXPECT().GetByID(gomock.Any(), "userId3").Return(ennio, nil).Times(2)

	v, err := service.Get(context.Background(), "userId0", "userId3")
	require.NoError(t, err)
	assert.Equal(t, View{ID: "userId3"}, v)

	v, err = service.Get(context.Background(), "userId3", "userId3")
	require.NoError(t, err)
	assert.Equal(t, "Ennio Morricone", v.FullName)
}

func TestService_Exists(t *testing.T) {
	repo, _, service := newService(t)
	repo.EXPECT().GetByID(gomock.Any(), "userId0").Return(cosimo, nil)
	repo.EXPECT().GetByID(gomock.Any(), "userId99").Return(Profile{}, ErrNotFound)

	ok, err := service.Exists(context.Background(), "userId0")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = service.Exists(context.Background(), "userId99")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = service.Exists(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestService_Search(t *testing.T) {
	t.Run("normalizes the term", func(t *testing.T) {
		repo, _, service := newService(t)
		repo.EXPECT().Search(gomock.Any(), "userId1", "medici").Return([]Profile{cosimo}, nil)

		term := "  MÉDICI "
		got, err := service.Search(context.Background(), "userId1", &term)

		require.NoError(t, err)
		assert.Equal(t, []Profile{cosimo}, got)
	})

	t.Run("blank term matches all", func(t *testing.T) {
		repo, _, service := newService(t)
		repo.EXPECT().Search(gomock.Any(), "userId0", "").Return(nil, nil)

		term := ""
		got, err := service.Search(context.Background(), "userId0", &term)

		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("nil term", func(t *testing.T) {
		_, _, service := newService(t)

		_, err := service.Search(context.Background(), "userId0", nil)

		assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
	})
}

func TestService_ListBooks(t *testing.T) {
	q := listing.NewQuery("", 1, "", true, 0, library.DefaultOptions(10, 50))

	t.Run("visible owner", func(t *testing.T) {
		repo, books, service := newService(t)
		repo.EXPECT().GetByID(gomock.Any(), "userId0").Return(cosimo, nil)
		books.EXPECT().Count(gomock.Any(), "userId0", "").Return(25, nil)
		books.EXPECT().Find(gomock.Any(), "userId0", q).Return([]library.Item{{BookID: "BookId0"}}, nil)

		got, err := service.ListBooks(context.Background(), "userId1", "userId0", q)

		require.NoError(t, err)
		assert.Equal(t, 25, got.TotalCount)
		assert.Equal(t, []library.Item{{BookID: "BookId0"}}, got.Results)
	})

	t.Run("hidden owner", func(t *testing.T) {
		repo, _, service := newService(t)
		repo.EXPECT().GetByID(gomock.Any(), "userId3").Return(ennio, nil)

		_, err := service.ListBooks(context.Background(), "userId1", "userId3", q)

		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("hidden owner looking at themselves", func(t *testing.T) {
		repo, books, service := newService(t)
		repo.EXPECT().GetByID(gomock.Any(), "userId3").Return(ennio, nil)
		books.EXPECT().Count(gomock.Any(), "userId3", "").Return(0, nil)

		page, err := service.ListBooks(context.Background(), "userId3", "userId3", q)

		require.NoError(t, err)
		assert.Empty(t, page.Results)
	})

	t.Run("unknown owner", func(t *testing.T) {
		repo, _, service := newService(t)
		repo.EXPECT().GetByID(gomock.Any(), "userId99").Return(Profile{}, ErrNotFound)

		_, err := service.ListBooks(context.Background(), "userId1", "userId99", q)

		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestService_SetVisibility(t *testing.T) {
	repo, _, service := newService(t)
	repo.EXPECT().SetVisibility(gomock.Any(), "userId0", false).Return(nil)

	require.NoError(t, service.SetVisibility(context.Background(), "userId0", false))
	assert.ErrorIs(t, service.SetVisibility(context.Background(), "", true), apperr.ErrInvalidArgument)
}
