package library

import (
	"encoding/json"
	"net/http"
	"time"

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

type editReq struct {
	Rating       *float64 `json:"rating" validate:"required"`
	Tag          *string  `json:"tag"`
	ReadingState *string  `json:"reading_state"`
	InitialDate  *string  `json:"initial_date" validate:"omitempty,datetime=2006-01-02"`
	FinalDate    *string  `json:"final_date" validate:"omitempty,datetime=2006-01-02"`
}

func (req editReq) command(bookID string) EditCommand {
	cmd := EditCommand{
		BookID:      bookID,
		Rating:      *req.Rating,
		InitialDate: parseDate(req.InitialDate),
		FinalDate:   parseDate(req.FinalDate),
	}
	if req.Tag != nil {
		tag := Tag(*req.Tag)
		cmd.Tag = &tag
	}
	if req.ReadingState != nil {
		state := ReadingState(*req.ReadingState)
		cmd.ReadingState = &state
	}
	return cmd
}

// parseDate maps an absent field to nil and an empty string to the zero
// time, which clears the stored date.
func parseDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	var t time.Time
	if *s != "" {
		t, _ = time.Parse(time.DateOnly, *s)
	}
	return &t
}

// List handles GET /v1/library
// @Summary List own library
// @Description Paginated, searchable list of the books in the caller's library
// @Tags library
// @Produce json
// @Security Bearer
// @Param search query string false "Title search"
// @Param page query int false "Page number"
// @Param order_by query string false "title, rating, tag or reading_state"
// @Param ascending query bool false "Sort direction"
// @Param limit query int false "Page size"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /v1/library [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.List(r.Context(), httpx.UserIDFrom(r), listing.FromRequest(r, h.opts))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, page.Results, page.Meta())
}

// Get handles GET /v1/library/books/{id}
// @Summary Get a library book
// @Tags library
// @Produce json
// @Security Bearer
// @Param id path string true "Book ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/library/books/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.Get(r.Context(), httpx.UserIDFrom(r), r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, item, nil)
}

// GetByISBN handles GET /v1/library/isbn/{isbn}
func (h *HTTPHandler) GetByISBN(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.GetByISBN(r.Context(), httpx.UserIDFrom(r), r.PathValue("isbn"))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, item, nil)
}

// GetCatalogBook handles GET /v1/catalog/books/{id}
// @Summary Get a catalog book
// @Description Returns a book already stored in the catalog without contacting the metadata provider
// @Tags catalog
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/catalog/books/{id} [get]
func (h *HTTPHandler) GetCatalogBook(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.GetCatalogBook(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// Status handles GET /v1/library/books/{id}/status
func (h *HTTPHandler) Status(w http.ResponseWriter, r *http.Request) {
	st, err := h.service.Status(r.Context(), httpx.UserIDFrom(r), r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, st, nil)
}

// Add handles POST /v1/library/books/{id}
// @Summary Add a book to the library
// @Description Materialises the book from the metadata provider when needed and removes it from the wishlist
// @Tags library
// @Produce json
// @Security Bearer
// @Param id path string true "Book ID"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Failure 502 {object} httpx.ErrorResponse
// @Router /v1/library/books/{id} [post]
func (h *HTTPHandler) Add(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.Add(r.Context(), httpx.UserIDFrom(r), r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccessCreated(w, r, item)
}

// Edit handles PATCH /v1/library/books/{id}
// @Summary Edit a library book
// @Tags library
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Book ID"
// @Param request body editReq true "Edit request"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/library/books/{id} [patch]
func (h *HTTPHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var req editReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if validationErrors := httpx.ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", validationErrors)
		return
	}

	item, err := h.service.Edit(r.Context(), httpx.UserIDFrom(r), req.command(r.PathValue("id")))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, item, nil)
}

// Remove handles DELETE /v1/library/books/{id}
func (h *HTTPHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Remove(r.Context(), httpx.UserIDFrom(r), r.PathValue("id")); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}
