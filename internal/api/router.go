package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/huertohogar/huerto-api/internal/auth"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	// Index and health (no auth required)
	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		// Auth endpoints (no auth required)
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		// System metrics (no auth required for basic monitoring)
		r.Get("/metrics", s.handleMetrics)

		// User endpoints
		r.Route("/users", func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Get("/me", s.handleMe)

			r.Group(func(r chi.Router) {
				r.Use(s.requireRole(auth.RoleAdmin))
				r.Get("/", s.handleListUsers)
			})
		})

		// Product endpoints: reads are public, writes require authentication
		r.Route("/products", func(r chi.Router) {
			r.Get("/", s.handleListProducts)

			r.Group(func(r chi.Router) {
				r.Use(s.authMiddleware)
				r.Post("/", s.handleCreateProduct)
				r.Get("/my/products", s.handleMyProducts)
				r.Put("/{id}", s.handleUpdateProduct)
				r.Delete("/{id}", s.handleDeleteProduct)
			})

			r.Get("/{id}", s.handleGetProduct)
		})

		// Category endpoints (public, read-only)
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", s.handleListCategories)
			r.Get("/{categoryName}/products", s.handleProductsByCategory)
		})
	})

	// Unmatched routes get a JSON 404 instead of the default text response
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, messageResponse{
			Message: "Ruta no encontrada",
			Path:    r.URL.Path,
		})
	})

	return r
}

// handleIndex describes the API for anyone hitting the root.
func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "API de HuertoHogar",
		"version": s.version,
		"endpoints": map[string]string{
			"auth":       "/api/auth",
			"users":      "/api/users",
			"products":   "/api/products",
			"categories": "/api/categories",
		},
	})
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if s.db != nil {
		if err := s.db.HealthCheck(r.Context()); err != nil {
			s.logger.Warn("health check: database unreachable", "error", err)
			status = "degraded"
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":    status,
		"version":   s.version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
