package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/huertohogar/huerto-api/internal/catalog"
)

// handleListCategories returns all categories sorted by name. Public.
func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.categories.List(r.Context())
	if err != nil {
		s.logger.Error("category list failed", "error", err)
		writeInternalError(w, "Error al obtener las categorías")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"categories": categories,
		"total":      len(categories),
	})
}

// handleProductsByCategory returns the products in the named category. Public.
func (s *Server) handleProductsByCategory(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "categoryName")

	if _, err := s.categories.GetByName(r.Context(), name); err != nil {
		if errors.Is(err, catalog.ErrCategoryNotFound) {
			writeNotFound(w, "Categoría no encontrada")
			return
		}
		s.logger.Error("category lookup failed", "error", err, "category", name)
		writeInternalError(w, "Error al obtener la categoría")
		return
	}

	products, err := s.products.ListByCategory(r.Context(), name)
	if err != nil {
		s.logger.Error("product list failed", "error", err, "category", name)
		writeInternalError(w, "Error al obtener los productos")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"category": name,
		"products": products,
		"total":    len(products),
	})
}
