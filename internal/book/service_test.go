package book

import (
	"context"
	"errors"
	"testing"

	"libraryapi/internal/apperr"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	service := NewService(mockRepo, NewMockResolver(ctrl))

	t.Run("found", func(t *testing.T) {
		mockRepo.EXPECT().GetByID(gomock.Any(), "BookId0").Return(Book{ID: "BookId0", Title: "Libro 0"}, nil)

		b, err := service.Get(context.Background(), "BookId0")

		require.NoError(t, err)
		assert.Equal(t, "Libro 0", b.Title)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo.EXPECT().GetByID(gomock.Any(), "BookId99").Return(Book{}, ErrNotFound)

		_, err := service.Get(context.Background(), "BookId99")

		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("blank id", func(t *testing.T) {
		_, err := service.Get(context.Background(), "  ")

		assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
	})
}

func TestService_Exists(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	service := NewService(mockRepo, NewMockResolver(ctrl))

	mockRepo.EXPECT().GetByID(gomock.Any(), "BookId0").Return(Book{ID: "BookId0"}, nil)
	mockRepo.EXPECT().GetByID(gomock.Any(), "BookId99").Return(Book{}, ErrNotFound)
	mockRepo.EXPECT().GetByID(gomock.Any(), "broken").Return(Book{}, context.DeadlineExceeded)

	ok, err := service.Exists(context.Background(), "BookId0")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = service.Exists(context.Background(), "BookId99")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = service.Exists(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = service.Exists(context.Background(), "broken")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestService_Ensure(t *testing.T) {
	t.Run("stored book is returned without lookup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := NewMockRepository(ctrl)
		mockResolver := NewMockResolver(ctrl)
		service := NewService(mockRepo, mockResolver)

		mockRepo.EXPECT().GetByID(gomock.Any(), "BookId3").Return(Book{ID: "BookId3", Title: "Libro 3"}, nil)

		b, err := service.Ensure(context.Background(), "BookId3")

		require.NoError(t, err)
		assert.Equal(t, "BookId3", b.ID)
	})

	t.Run("missing book is resolved and stored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := NewMockRepository(ctrl)
		mockResolver := NewMockResolver(ctrl)
		service := NewService(mockRepo, mockResolver)

		gomock.InOrder(
			mockRepo.EXPECT().GetByID(gomock.Any(), "_5RCngEACAAJ").Return(Book{}, ErrNotFound),
			mockResolver.EXPECT().Resolve(gomock.Any(), "_5RCngEACAAJ").Return(Book{
				ISBN:  "9788804668237",
				Title: "Il Nome della Rosa",
			}, nil),
			mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, b *Book) error {
				assert.Equal(t, "_5RCngEACAAJ", b.ID)
				assert.Equal(t, "il nome della rosa", b.NormalizedTitle)
				return nil
			}),
		)

		b, err := service.Ensure(context.Background(), "_5RCngEACAAJ")

		require.NoError(t, err)
		assert.Equal(t, "_5RCngEACAAJ", b.ID)
		assert.Equal(t, "9788804668237", b.ISBN)
	})

	t.Run("lookup failure stores nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := NewMockRepository(ctrl)
		mockResolver := NewMockResolver(ctrl)
		service := NewService(mockRepo, mockResolver)
		upstream := errors.Join(apperr.ErrUpstream, errors.New("status 503"))

		mockRepo.EXPECT().GetByID(gomock.Any(), "Arw-jgEACAAJ").Return(Book{}, ErrNotFound)
		mockResolver.EXPECT().Resolve(gomock.Any(), "Arw-jgEACAAJ").Return(Book{}, upstream)

		_, err := service.Ensure(context.Background(), "Arw-jgEACAAJ")

		assert.ErrorIs(t, err, apperr.ErrUpstream)
	})

	t.Run("repository failure is not masked by a lookup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := NewMockRepository(ctrl)
		service := NewService(mockRepo, NewMockResolver(ctrl))

		mockRepo.EXPECT().GetByID(gomock.Any(), "BookId1").Return(Book{}, context.DeadlineExceeded)

		_, err := service.Ensure(context.Background(), "BookId1")

		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("blank id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := NewService(NewMockRepository(ctrl), NewMockResolver(ctrl))

		_, err := service.Ensure(context.Background(), "")

		assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
	})
}
