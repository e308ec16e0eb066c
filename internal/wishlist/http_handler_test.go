package wishlist

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"libraryapi/internal/book"
	"libraryapi/internal/httpx"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asUser(r *http.Request, userID string) *http.Request {
	return r.WithContext(httpx.ContextWithUser(r.Context(), userID))
}

func TestHTTPHandler_List(t *testing.T) {
	f := newFixture(t)
	handler := NewHTTPHandler(f.service, DefaultOptions(10, 50))
	f.repo.EXPECT().Count(gomock.Any(), "userId0", "").Return(15, nil)
	f.repo.EXPECT().Find(gomock.Any(), "userId0", gomock.Any()).Return(make([]Entry, 10), nil)

	w := httptest.NewRecorder()
	r := asUser(httptest.NewRequest(http.MethodGet, "/v1/wishlist?order_by=price", nil), "userId0")

	handler.List(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Success bool           `json:"success"`
		Data    []Entry        `json:"data"`
		Meta    map[string]any `json:"meta"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Len(t, body.Data, 10)
	assert.Equal(t, float64(2), body.Meta["total_pages"])
}

func TestHTTPHandler_Add(t *testing.T) {
	f := newFixture(t)
	handler := NewHTTPHandler(f.service, DefaultOptions(10, 50))
	f.users.EXPECT().Exists(gomock.Any(), "userId2").Return(true, nil)
	f.repo.EXPECT().Exists(gomock.Any(), "userId2", "BookId3").Return(false, nil)
	f.catalog.EXPECT().Ensure(gomock.Any(), "BookId3").Return(book.Book{ID: "BookId3", Title: "Libro 3"}, nil)
	f.repo.EXPECT().Add(gomock.Any(), gomock.Any()).Return(nil)

	w := httptest.NewRecorder()
	r := asUser(httptest.NewRequest(http.MethodPost, "/v1/wishlist/books/BookId3", nil), "userId2")
	r.SetPathValue("id", "BookId3")

	handler.Add(w, r)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Libro 3"`)
}

func TestHTTPHandler_Remove(t *testing.T) {
	f := newFixture(t)
	handler := NewHTTPHandler(f.service, DefaultOptions(10, 50))
	f.users.EXPECT().Exists(gomock.Any(), "userId0").Return(true, nil)
	f.repo.EXPECT().Remove(gomock.Any(), "userId0", "BookId99").Return(ErrNotFound)

	w := httptest.NewRecorder()
	r := asUser(httptest.NewRequest(http.MethodDelete, "/v1/wishlist/books/BookId99", nil), "userId0")
	r.SetPathValue("id", "BookId99")

	handler.Remove(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
