package user

import (
	"encoding/json"
	"net/http"

	"libraryapi/internal/httpx"
	"libraryapi/internal/listing"
)

type HTTPHandler struct {
	service *Service
	opts    listing.Options
}

// NewHTTPHandler creates the users handler. opts configures the listing of
// another user's library.
func NewHTTPHandler(service *Service, opts listing.Options) *HTTPHandler {
	return &HTTPHandler{service: service, opts: opts}
}

type visibilityReq struct {
	Visible *bool `json:"visible" validate:"required"`
}

// Search handles GET /v1/users
// @Summary Search users
// @Description Case and accent insensitive search on the full name of visible users
// @Tags users
// @Produce json
// @Security Bearer
// @Param q query string true "Name search, may be empty"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /v1/users [get]
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	var term *string
	if query := r.URL.Query(); query.Has("q") {
		q := query.Get("q")
		term = &q
	}

	profiles, err := h.service.Search(r.Context(), httpx.UserIDFrom(r), term)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, profiles, map[string]any{"total": len(profiles)})
}

// Get handles GET /v1/users/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	v, err := h.service.Get(r.Context(), httpx.UserIDFrom(r), r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, v, nil)
}

// ListBooks handles GET /v1/users/{id}/books
// @Summary List another user's library
// @Tags users
// @Produce json
// @Security Bearer
// @Param id path string true "User ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/users/{id}/books [get]
func (h *HTTPHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.ListBooks(r.Context(), httpx.UserIDFrom(r), r.PathValue("id"), listing.FromRequest(r, h.opts))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, page.Results, page.Meta())
}

// SetVisibility handles PATCH /v1/me/visibility
// @Summary Show or hide own profile
// @Tags users
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body visibilityReq true "Visibility"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /v1/me/visibility [patch]
func (h *HTTPHandler) SetVisibility(w http.ResponseWriter, r *http.Request) {
	var req visibilityReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if validationErrors := httpx.ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", validationErrors)
		return
	}

	userID := httpx.UserIDFrom(r)
	if err := h.service.SetVisibility(r.Context(), userID, *req.Visible); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	v, err := h.service.Get(r.Context(), userID, userID)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, v, nil)
}
