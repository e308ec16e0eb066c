package wishlist

import (
	"net/http"

	"libraryapi/internal/httpx"
	"libraryapi/internal/listing"
)

type HTTPHandler struct {
	service *Service
	opts    listing.Options
}

func NewHTTPHandler(service *Service, opts listing.Options) *HTTPHandler {
	return &HTTPHandler{service: service, opts: opts}
}

// List handles GET /v1/wishlist
// @Summary List own wishlist
// @Tags wishlist
// @Produce json
// @Security Bearer
// @Param search query string false "Title search"
// @Param page query int false "Page number"
// @Param order_by query string false "title or author"
// @Param ascending query bool false "Sort direction"
// @Param limit query int false "Page size"
// @Success 200 {object} httpx.SuccessResponse
// @Router /v1/wishlist [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.List(r.Context(), httpx.UserIDFrom(r), listing.FromRequest(r, h.opts))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, page.Results, page.Meta())
}

// Add handles POST /v1/wishlist/books/{id}
// @Summary Add a book to the wishlist
// @Tags wishlist
// @Produce json
// @Security Bearer
// @Param id path string true "Book ID"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Failure 502 {object} httpx.ErrorResponse
// @Router /v1/wishlist/books/{id} [post]
func (h *HTTPHandler) Add(w http.ResponseWriter, r *http.Request) {
	e, err := h.service.Add(r.Context(), httpx.UserIDFrom(r), r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccessCreated(w, r, e)
}

// Remove handles DELETE /v1/wishlist/books/{id}
func (h *HTTPHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Remove(r.Context(), httpx.UserIDFrom(r), r.PathValue("id")); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}
