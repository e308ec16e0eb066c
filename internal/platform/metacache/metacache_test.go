package metacache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"libraryapi/internal/apperr"
	"libraryapi/internal/book"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Get(ctx context.Context, key string) *redis.StringCmd {
	args := m.Called(ctx, key)
	return args.Get(0).(*redis.StringCmd)
}

func (m *mockStore) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	args := m.Called(ctx, key, value, expiration)
	return args.Get(0).(*redis.StatusCmd)
}

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Resolve(ctx context.Context, volumeID string) (book.Book, error) {
	args := m.Called(ctx, volumeID)
	return args.Get(0).(book.Book), args.Error(1)
}

var rose = book.Book{ID: "_5RCngEACAAJ", ISBN: "9788804668237", Title: "Il Nome della Rosa", Author: "Umberto Eco"}

const roseJSON = `{"id":"_5RCngEACAAJ","isbn":"9788804668237","title":"Il Nome della Rosa","author":"Umberto Eco","created_at":"0001-01-01T00:00:00Z"}`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestResolver_Hit(t *testing.T) {
	store := new(mockStore)
	next := new(mockResolver)
	store.On("Get", mock.Anything, "metadata:volume:_5RCngEACAAJ").Return(redis.NewStringResult(roseJSON, nil))

	b, err := NewResolver(store, next, time.Hour, quietLogger()).Resolve(context.Background(), "_5RCngEACAAJ")

	require.NoError(t, err)
	assert.Equal(t, rose, b)
	next.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestResolver_MissStores(t *testing.T) {
	store := new(mockStore)
	next := new(mockResolver)
	store.On("Get", mock.Anything, "metadata:volume:_5RCngEACAAJ").Return(redis.NewStringResult("", redis.Nil))
	next.On("Resolve", mock.Anything, "_5RCngEACAAJ").Return(rose, nil)
	store.On("Set", mock.Anything, "metadata:volume:_5RCngEACAAJ", []byte(roseJSON), time.Hour).Return(redis.NewStatusResult("OK", nil))

	b, err := NewResolver(store, next, time.Hour, quietLogger()).Resolve(context.Background(), "_5RCngEACAAJ")

	require.NoError(t, err)
	assert.Equal(t, rose, b)
	store.AssertExpectations(t)
	next.AssertExpectations(t)
}

func TestResolver_CacheDownFallsThrough(t *testing.T) {
	store := new(mockStore)
	next := new(mockResolver)
	down := errors.New("connection refused")
	store.On("Get", mock.Anything, mock.Anything).Return(redis.NewStringResult("", down))
	next.On("Resolve", mock.Anything, "_5RCngEACAAJ").Return(rose, nil)
	store.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(redis.NewStatusResult("", down))

	b, err := NewResolver(store, next, time.Hour, quietLogger()).Resolve(context.Background(), "_5RCngEACAAJ")

	require.NoError(t, err)
	assert.Equal(t, "Il Nome della Rosa", b.Title)
}

func TestResolver_UpstreamFailureIsNotCached(t *testing.T) {
	store := new(mockStore)
	next := new(mockResolver)
	store.On("Get", mock.Anything, mock.Anything).Return(redis.NewStringResult("", redis.Nil))
	next.On("Resolve", mock.Anything, "missing").Return(book.Book{}, apperr.ErrUpstream)

	_, err := NewResolver(store, next, time.Hour, quietLogger()).Resolve(context.Background(), "missing")

	assert.ErrorIs(t, err, apperr.ErrUpstream)
	store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolver_CorruptEntryIsRefetched(t *testing.T) {
	store := new(mockStore)
	next := new(mockResolver)
	store.On("Get", mock.Anything, mock.Anything).Return(redis.NewStringResult("{not json", nil))
	next.On("Resolve", mock.Anything, "_5RCngEACAAJ").Return(rose, nil)
	store.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(redis.NewStatusResult("OK", nil))

	b, err := NewResolver(store, next, time.Hour, quietLogger()).Resolve(context.Background(), "_5RCngEACAAJ")

	require.NoError(t, err)
	assert.Equal(t, rose, b)
	next.AssertExpectations(t)
}
