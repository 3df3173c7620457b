// Package httpapi exposes the classroom gateway HTTP/JSON API.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/and161185/classroom-gateway/internal/errs"
	"github.com/and161185/classroom-gateway/internal/service"
	"github.com/and161185/classroom-gateway/internal/token"
)

// Router wires services into HTTP handlers.
type Router struct {
	accounts service.AccountService
	files    service.FileService
	tokens   *token.Manager
	logger   *zap.Logger
}

// New constructs the HTTP handler tree with injected services.
func New(accounts service.AccountService, files service.FileService, tokens *token.Manager, logger *zap.Logger) http.Handler {
	rt := &Router{accounts: accounts, files: files, tokens: tokens, logger: logger}
	mux := chi.NewRouter()

	mux.Use(rt.recoverer)
	mux.Use(rt.logging)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	mux.Get("/health", rt.handleHealth)
	mux.Post("/auth/register", rt.handleRegister)
	mux.Post("/auth/login", rt.handleLogin)

	mux.Group(func(pr chi.Router) {
		pr.Use(rt.authMiddleware)
		pr.Post("/files/upload", rt.handleUpload)
		pr.Get("/files", rt.handleListFiles)
		pr.Delete("/files/*", rt.handleDeleteFile)
	})

	return mux
}

func (rt *Router) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError renders the uniform failure body. Internal detail stays in logs.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps sentinel errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrUnauthorized), errors.Is(err, errs.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
