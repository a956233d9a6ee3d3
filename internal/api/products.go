package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/huertohogar/huerto-api/internal/auth"
	"github.com/huertohogar/huerto-api/internal/catalog"
)

// productRequest is the request body for creating or updating a product.
type productRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
}

// validate checks the product payload invariants shared by create and update.
func (p *productRequest) validate() string {
	if p.Name == "" {
		return "El nombre del producto es requerido"
	}
	if p.Price <= 0 {
		return "El precio debe ser mayor a 0"
	}
	if p.Stock < 0 {
		return "El stock no puede ser negativo"
	}
	return ""
}

// handleListProducts returns all products, newest first. Public.
func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.products.List(r.Context())
	if err != nil {
		s.logger.Error("product list failed", "error", err)
		writeInternalError(w, "Error al obtener los productos")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"products": products,
		"total":    len(products),
	})
}

// handleGetProduct returns a single product by ID. Public.
func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := s.products.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			writeNotFound(w, "Producto no encontrado")
			return
		}
		s.logger.Error("product lookup failed", "error", err, "product_id", id)
		writeInternalError(w, "Error al obtener el producto")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"product": product})
}

// handleCreateProduct creates a product owned by the authenticated user.
func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "Usuario no autenticado")
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Cuerpo de la petición inválido")
		return
	}
	if msg := req.validate(); msg != "" {
		writeBadRequest(w, msg)
		return
	}

	product := &catalog.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
		UserID:      claims.Subject,
	}

	if err := s.products.Create(r.Context(), product); err != nil {
		s.logger.Error("product creation failed", "error", err, "user_id", claims.Subject)
		writeInternalError(w, "Error al crear el producto")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Producto creado exitosamente",
		"product": product,
	})
}

// handleMyProducts returns the products owned by the authenticated user.
func (s *Server) handleMyProducts(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "Usuario no autenticado")
		return
	}

	products, err := s.products.ListByUser(r.Context(), claims.Subject)
	if err != nil {
		s.logger.Error("product list failed", "error", err, "user_id", claims.Subject)
		writeInternalError(w, "Error al obtener los productos")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"products": products,
		"total":    len(products),
	})
}

// handleUpdateProduct modifies a product. Only the owner or an admin may
// update it.
func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "Usuario no autenticado")
		return
	}

	id := chi.URLParam(r, "id")
	existing, err := s.products.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			writeNotFound(w, "Producto no encontrado")
			return
		}
		s.logger.Error("product lookup failed", "error", err, "product_id", id)
		writeInternalError(w, "Error al obtener el producto")
		return
	}

	if !s.canModify(claims, existing) {
		writeForbidden(w, "No tienes permisos para modificar este producto")
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Cuerpo de la petición inválido")
		return
	}
	if msg := req.validate(); msg != "" {
		writeBadRequest(w, msg)
		return
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.Price = req.Price
	existing.Stock = req.Stock
	existing.Category = req.Category

	if err := s.products.Update(r.Context(), existing); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			writeNotFound(w, "Producto no encontrado")
			return
		}
		s.logger.Error("product update failed", "error", err, "product_id", id)
		writeInternalError(w, "Error al actualizar el producto")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Producto actualizado exitosamente",
		"product": existing,
	})
}

// handleDeleteProduct removes a product. Only the owner or an admin may
// delete it.
func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "Usuario no autenticado")
		return
	}

	id := chi.URLParam(r, "id")
	existing, err := s.products.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			writeNotFound(w, "Producto no encontrado")
			return
		}
		s.logger.Error("product lookup failed", "error", err, "product_id", id)
		writeInternalError(w, "Error al obtener el producto")
		return
	}

	if !s.canModify(claims, existing) {
		writeForbidden(w, "No tienes permisos para eliminar este producto")
		return
	}

	if err := s.products.Delete(r.Context(), id); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			writeNotFound(w, "Producto no encontrado")
			return
		}
		s.logger.Error("product deletion failed", "error", err, "product_id", id)
		writeInternalError(w, "Error al eliminar el producto")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Producto eliminado exitosamente",
	})
}

// canModify reports whether the principal owns the product or is an admin.
func (s *Server) canModify(claims *auth.Claims, product *catalog.Product) bool {
	return product.UserID == claims.Subject || claims.HasRole(auth.RoleAdmin)
}
