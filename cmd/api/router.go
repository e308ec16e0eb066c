package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"libraryapi/internal/config"
	"libraryapi/internal/httpx"

	"github.com/go-chi/chi/v5"
)

func newRouter(h handlers, cfg config.Config, logger *slog.Logger, limiter *httpx.RateLimitMiddleware, ready readiness) http.Handler {
	r := chi.NewRouter()

	r.Use(httpx.RequestIDMiddleware)
	r.Use(httpx.RecoveryMiddleware(logger))
	r.Use(httpx.AccessLogMiddleware(logger))
	r.Use(httpx.SecurityHeadersMiddleware(cfg.IsProduction()))
	r.Use(httpx.CORSMiddleware(cfg.CORSAllowedOrigins))
	r.Use(limiter.Middleware)
	r.Use(httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := ready(ctx); err != nil {
			http.Error(w, "store not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	r.Route("/v1", func(r chi.Router) {
		r.Use(httpx.AuthMiddleware(cfg.JWTSecret))

		r.Route("/library", func(r chi.Router) {
			r.Get("/", h.library.List)
			r.Get("/isbn/{isbn}", h.library.GetByISBN)
			r.Get("/books/{id}", h.library.Get)
			r.Get("/books/{id}/status", h.library.Status)
			r.Post("/books/{id}", h.library.Add)
			r.Patch("/books/{id}", h.library.Edit)
			r.Delete("/books/{id}", h.library.Remove)
		})

		r.Get("/catalog/books/{id}", h.library.GetCatalogBook)

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", h.wishlist.List)
			r.Post("/books/{id}", h.wishlist.Add)
			r.Delete("/books/{id}", h.wishlist.Remove)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.users.Search)
			r.Get("/{id}", h.users.Get)
			r.Get("/{id}/books", h.users.ListBooks)
		})

		r.Patch("/me/visibility", h.users.SetVisibility)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	return r
}
