// Package httpserver exposes the Sweet Shop REST API.
package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Maneesh0032/Sweets-Shop/internal/service"
)

// Server wires services into HTTP handlers.
type Server struct {
	auth   service.AuthService
	sweets service.SweetService
	logger *zap.Logger
}

// New constructs a Server with injected services.
func New(auth service.AuthService, sweets service.SweetService, logger *zap.Logger) *Server {
	return &Server{auth: auth, sweets: sweets, logger: logger}
}

// Router builds the chi route table. All API paths live under /api; catalog
// routes require a valid token and the admin-only ones sit behind RequireAdmin.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(Recover(s.logger))
	r.Use(Logging(s.logger))

	r.Get("/", s.handleWelcome)

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", s.handleHealth)

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/register", s.handleRegister)
			auth.Post("/login", s.handleLogin)
		})

		api.Route("/sweets", func(sw chi.Router) {
			sw.Use(s.RequireAuth)

			sw.Get("/", s.handleList)
			sw.Get("/search", s.handleSearch)
			sw.Get("/{id}", s.handleGet)
			sw.Post("/{id}/purchase", s.handlePurchase)

			sw.Group(func(admin chi.Router) {
				admin.Use(s.RequireAdmin)
				admin.Post("/", s.handleCreate)
				admin.Put("/{id}", s.handleUpdate)
				admin.Delete("/{id}", s.handleDelete)
				admin.Post("/{id}/restock", s.handleRestock)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Route not found")
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "OK",
		"message": "Sweet Shop API is running",
	})
}

func (s *Server) handleWelcome(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to Sweet Shop API",
		"docs":    "/api/health",
	})
}
