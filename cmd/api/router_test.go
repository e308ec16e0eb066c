package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"libraryapi/internal/apperr"
	"libraryapi/internal/book"
	"libraryapi/internal/config"
	"libraryapi/internal/httpx"
	"libraryapi/internal/store/memstore"
	"libraryapi/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "router-test-secret"

type volumes map[string]book.Book

func (v volumes) Resolve(_ context.Context, id string) (book.Book, error) {
	b, ok := v[id]
	if !ok {
		return book.Book{}, apperr.ErrUpstream
	}
	return b, nil
}

func newTestServer(t *testing.T, ready readiness) *httptest.Server {
	t.Helper()
	cfg := config.Config{
		JWTSecret:          testSecret,
		LibraryPerPage:     10,
		LibraryMaxPerPage:  50,
		CORSAllowedOrigins: []string{"http://localhost:3000"},
		MaxBodyBytes:       1 << 20,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	resolver := volumes{"_5RCngEACAAJ": {Title: "Il Nome della Rosa", Author: "Umberto Eco", ISBN: "9788804668237"}}
	h := newHandlers(memoryRepositories(memstore.NewWithDataset(memstore.DemoDataset())), resolver, cfg)
	srv := httptest.NewServer(newRouter(h, cfg, logger, httpx.NewRateLimitMiddleware(ctx, 1000, 1000), ready))
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, srv *httptest.Server, method, path, userID, body string) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+testutil.Token(testSecret, userID))
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	rec := testutil.DecodeResponse(resp)
	return resp, rec.Body
}

func TestRouter_Probes(t *testing.T) {
	srv := newTestServer(t, alwaysReady)

	resp, _ := call(t, srv, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = call(t, srv, http.MethodGet, "/readyz", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	down := newTestServer(t, func(context.Context) error { return errors.New("down") })
	resp, _ = call(t, down, http.MethodGet, "/readyz", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestRouter_RequiresToken(t *testing.T) {
	srv := newTestServer(t, alwaysReady)

	resp, body := call(t, srv, http.MethodGet, "/v1/library", "", "")

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestRouter_UnknownRoute(t *testing.T) {
	srv := newTestServer(t, alwaysReady)

	resp, _ := call(t, srv, http.MethodGet, "/v2/library", "userId0", "")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_LibraryFlow(t *testing.T) {
	srv := newTestServer(t, alwaysReady)

	resp, body := call(t, srv, http.MethodGet, "/v1/library?page=3", "userId0", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"], 5)
	meta := body["meta"].(map[string]any)
	assert.Equal(t, float64(25), meta["total"])
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))

	resp, _ = call(t, srv, http.MethodGet, "/v1/library/books/BookId3", "userId0", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = call(t, srv, http.MethodGet, "/v1/library/isbn/9788800000003", "userId0", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "BookId3", body["data"].(map[string]any)["book_id"])

	resp, body = call(t, srv, http.MethodPatch, "/v1/library/books/BookId1", "userId0", `{"rating":4.5,"reading_state":"1","initial_date":"2024-03-01"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Reading", body["data"].(map[string]any)["reading_state_label"])

	resp, body = call(t, srv, http.MethodPatch, "/v1/library/books/BookId3", "userId0", `{"rating":7}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_ARGUMENT", body["error"].(map[string]any)["code"])

	resp, _ = call(t, srv, http.MethodDelete, "/v1/library/books/BookId3", "userId0", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = call(t, srv, http.MethodDelete, "/v1/library/books/BookId3", "userId0", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = call(t, srv, http.MethodGet, "/v1/catalog/books/BookId3", "userId0", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_AddMovesBookOutOfWishlist(t *testing.T) {
	srv := newTestServer(t, alwaysReady)

	resp, _ := call(t, srv, http.MethodPost, "/v1/wishlist/books/_5RCngEACAAJ", "userId2", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = call(t, srv, http.MethodPost, "/v1/library/books/_5RCngEACAAJ", "userId2", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := call(t, srv, http.MethodGet, "/v1/library/books/_5RCngEACAAJ/status", "userId2", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	status := body["data"].(map[string]any)
	assert.Equal(t, true, status["in_catalog"])
	assert.Equal(t, true, status["in_library"])
	assert.Equal(t, false, status["in_wishlist"])

	resp, _ = call(t, srv, http.MethodPost, "/v1/library/books/_5RCngEACAAJ", "userId2", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = call(t, srv, http.MethodPost, "/v1/library/books/unknown-volume", "userId2", "")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestRouter_Users(t *testing.T) {
	srv := newTestServer(t, alwaysReady)

	resp, body := call(t, srv, http.MethodGet, "/v1/users?q=", "userId0", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"], 2)

	resp, _ = call(t, srv, http.MethodGet, "/v1/users", "userId0", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = call(t, srv, http.MethodGet, "/v1/users/userId1/books", "userId0", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(12), body["meta"].(map[string]any)["total"])

	resp, _ = call(t, srv, http.MethodGet, "/v1/users/userId3/books", "userId0", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = call(t, srv, http.MethodPatch, "/v1/me/visibility", "userId1", `{"visible":false}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = call(t, srv, http.MethodGet, "/v1/users/userId1", "userId0", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, body["data"].(map[string]any)["full_name"])
}

func TestRouter_WishlistListing(t *testing.T) {
	srv := newTestServer(t, alwaysReady)

	resp, body := call(t, srv, http.MethodGet, "/v1/wishlist?order_by=author&ascending=false&limit=5", "userId0", "")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"], 5)
	meta := body["meta"].(map[string]any)
	assert.Equal(t, float64(15), meta["total"])
	assert.Equal(t, float64(3), meta["total_pages"])
}
