package httpx

import (
	"log/slog"
	"net/http"

	"libraryapi/internal/apperr"
)

// WriteError maps err to a status code and writes the error envelope.
// Errors that wrap no known kind are logged and reported as 500.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	switch apperr.Kind(err) {
	case apperr.ErrNotFound:
		JSONError(w, r, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case apperr.ErrInvalidArgument:
		JSONError(w, r, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error(), nil)
	case apperr.ErrAlreadyExists:
		JSONError(w, r, http.StatusConflict, "ALREADY_EXISTS", err.Error(), nil)
	case apperr.ErrUpstream:
		slog.WarnContext(r.Context(), "metadata lookup failed",
			slog.String("request_id", RequestIDFrom(r)),
			slog.String("error", err.Error()),
		)
		JSONError(w, r, http.StatusBadGateway, "UPSTREAM_FAILURE", "Book metadata lookup failed", nil)
	default:
		slog.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", RequestIDFrom(r)),
			slog.String("error", err.Error()),
		)
		JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}
