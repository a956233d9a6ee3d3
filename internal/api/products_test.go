package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/huertohogar/huerto-api/internal/auth"
	"github.com/huertohogar/huerto-api/internal/catalog"
)

// addProduct seeds a product directly in the fake store.
func (e *testEnv) addProduct(t *testing.T, name, category, ownerID string) *catalog.Product {
	t.Helper()

	product := &catalog.Product{
		Name:     name,
		Price:    1000,
		Stock:    5,
		Category: category,
		UserID:   ownerID,
	}
	if err := e.products.Create(context.Background(), product); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return product
}

func TestHandleListProducts_Public(t *testing.T) {
	env := newTestEnv(t)
	user, _ := env.addUser(t, "granjero@huerto.cl", "secreto1", auth.RoleUser)
	env.addProduct(t, "Tomates", "Verduras", user.ID)
	env.addProduct(t, "Paltas", "Frutas", user.ID)

	rec := env.doJSON(t, http.MethodGet, "/api/products/", "", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := decodeBody(t, rec)
	if total, _ := body["total"].(float64); int(total) != 2 {
		t.Errorf("total = %v, want 2", body["total"])
	}
}

func TestHandleGetProduct_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodGet, "/api/products/no-existe", "", nil)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if body := decodeBody(t, rec); body["message"] != "Producto no encontrado" {
		t.Errorf("message = %q", body["message"])
	}
}

func TestHandleCreateProduct(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.addUser(t, "granjero@huerto.cl", "secreto1", auth.RoleUser)

	rec := env.doJSON(t, http.MethodPost, "/api/products/", token, map[string]any{
		"name":     "Miel de Ulmo",
		"price":    8990,
		"stock":    12,
		"category": "Despensa",
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	body := decodeBody(t, rec)
	product, ok := body["product"].(map[string]any)
	if !ok {
		t.Fatalf("product field missing: %v", body)
	}
	if product["user_id"] != user.ID {
		t.Errorf("product.user_id = %q, want token subject %q", product["user_id"], user.ID)
	}
}

func TestHandleCreateProduct_RequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodPost, "/api/products/", "", map[string]any{
		"name": "Miel", "price": 1000, "stock": 1,
	})

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestHandleCreateProduct_Validation(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.addUser(t, "granjero@huerto.cl", "secreto1", auth.RoleUser)

	tests := []struct {
		name    string
		payload map[string]any
		want    string
	}{
		{"missing name", map[string]any{"price": 1000, "stock": 1}, "El nombre del producto es requerido"},
		{"zero price", map[string]any{"name": "Miel", "price": 0, "stock": 1}, "El precio debe ser mayor a 0"},
		{"negative price", map[string]any{"name": "Miel", "price": -5, "stock": 1}, "El precio debe ser mayor a 0"},
		{"negative stock", map[string]any{"name": "Miel", "price": 1000, "stock": -1}, "El stock no puede ser negativo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.doJSON(t, http.MethodPost, "/api/products/", token, tt.payload)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
			if body := decodeBody(t, rec); body["message"] != tt.want {
				t.Errorf("message = %q, want %q", body["message"], tt.want)
			}
		})
	}
}

func TestHandleMyProducts(t *testing.T) {
	env := newTestEnv(t)
	owner, token := env.addUser(t, "granjero@huerto.cl", "secreto1", auth.RoleUser)
	other, _ := env.addUser(t, "otro@huerto.cl", "secreto1", auth.RoleUser)
	env.addProduct(t, "Tomates", "Verduras", owner.ID)
	env.addProduct(t, "Paltas", "Frutas", other.ID)

	rec := env.doJSON(t, http.MethodGet, "/api/products/my/products", token, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if total, _ := body["total"].(float64); int(total) != 1 {
		t.Errorf("total = %v, want 1 (only own products)", body["total"])
	}
}

func TestHandleUpdateProduct_Owner(t *testing.T) {
	env := newTestEnv(t)
	owner, token := env.addUser(t, "granjero@huerto.cl", "secreto1", auth.RoleUser)
	product := env.addProduct(t, "Tomates", "Verduras", owner.ID)

	rec := env.doJSON(t, http.MethodPut, "/api/products/"+product.ID, token, map[string]any{
		"name": "Tomates Cherry", "price": 2990, "stock": 40, "category": "Verduras",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	updated, err := env.products.GetByID(context.Background(), product.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if updated.Name != "Tomates Cherry" || updated.Price != 2990 {
		t.Errorf("product not updated: %+v", updated)
	}
}

func TestHandleUpdateProduct_NotOwner(t *testing.T) {
	env := newTestEnv(t)
	owner, _ := env.addUser(t, "granjero@huerto.cl", "secreto1", auth.RoleUser)
	_, otherToken := env.addUser(t, "otro@huerto.cl", "secreto1", auth.RoleUser)
	product := env.addProduct(t, "Tomates", "Verduras", owner.ID)

	rec := env.doJSON(t, http.MethodPut, "/api/products/"+product.ID, otherToken, map[string]any{
		"name": "Robados", "price": 1, "stock": 1,
	})

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	if body := decodeBody(t, rec); body["message"] != "No tienes permisos para modificar este producto" {
		t.Errorf("message = %q", body["message"])
	}
}

func TestHandleDeleteProduct_AdminOverride(t *testing.T) {
	env := newTestEnv(t)
	owner, _ := env.addUser(t, "granjero@huerto.cl", "secreto1", auth.RoleUser)
	_, adminToken := env.addUser(t, "admin@huerto.cl", "secreto1", auth.RoleAdmin)
	product := env.addProduct(t, "Tomates", "Verduras", owner.ID)

	rec := env.doJSON(t, http.MethodDelete, "/api/products/"+product.ID, adminToken, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	if _, err := env.products.GetByID(context.Background(), product.ID); err == nil {
		t.Error("product should be gone after admin delete")
	}
}

func TestHandleDeleteProduct_NotOwner(t *testing.T) {
	env := newTestEnv(t)
	owner, _ := env.addUser(t, "granjero@huerto.cl", "secreto1", auth.RoleUser)
	_, otherToken := env.addUser(t, "otro@huerto.cl", "secreto1", auth.RoleUser)
	product := env.addProduct(t, "Tomates", "Verduras", owner.ID)

	rec := env.doJSON(t, http.MethodDelete, "/api/products/"+product.ID, otherToken, nil)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestHandleProductsByCategory(t *testing.T) {
	env := newTestEnv(t)
	user, _ := env.addUser(t, "granjero@huerto.cl", "secreto1", auth.RoleUser)
	env.addProduct(t, "Paltas", "Frutas", user.ID)
	env.addProduct(t, "Tomates", "Verduras", user.ID)

	rec := env.doJSON(t, http.MethodGet, "/api/categories/Frutas/products", "", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["category"] != "Frutas" {
		t.Errorf("category = %q", body["category"])
	}
	if total, _ := body["total"].(float64); int(total) != 1 {
		t.Errorf("total = %v, want 1", body["total"])
	}
}

func TestHandleProductsByCategory_UnknownCategory(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodGet, "/api/categories/Inexistente/products", "", nil)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if body := decodeBody(t, rec); body["message"] != "Categoría no encontrada" {
		t.Errorf("message = %q", body["message"])
	}
}

func TestHandleListCategories(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodGet, "/api/categories/", "", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := decodeBody(t, rec)
	if total, _ := body["total"].(float64); int(total) != 2 {
		t.Errorf("total = %v, want 2", body["total"])
	}
}
