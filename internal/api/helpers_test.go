package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/huertohogar/huerto-api/internal/auth"
	"github.com/huertohogar/huerto-api/internal/catalog"
	"github.com/huertohogar/huerto-api/internal/infrastructure/config"
	"github.com/huertohogar/huerto-api/internal/infrastructure/logging"
)

const testSecret = "test-secret-key-for-jwt-signing-32b"

// fakeUsers is an in-memory auth.UserRepository for handler tests.
type fakeUsers struct {
	byEmail map[string]*auth.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: make(map[string]*auth.User)}
}

func (f *fakeUsers) Create(_ context.Context, user *auth.User) error {
	if _, exists := f.byEmail[user.Email]; exists {
		return auth.ErrEmailExists
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now().UTC()
	clone := *user
	f.byEmail[user.Email] = &clone
	return nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*auth.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*auth.User, error) {
	for _, user := range f.byEmail {
		if user.ID == id {
			clone := *user
			return &clone, nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (f *fakeUsers) List(_ context.Context) ([]auth.User, error) {
	users := make([]auth.User, 0, len(f.byEmail))
	for _, user := range f.byEmail {
		users = append(users, *user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })
	return users, nil
}

func (f *fakeUsers) Count(_ context.Context) (int, error) {
	return len(f.byEmail), nil
}

// fakeProducts is an in-memory catalog.ProductRepository for handler tests.
type fakeProducts struct {
	byID map[string]*catalog.Product
}

func newFakeProducts() *fakeProducts {
	return &fakeProducts{byID: make(map[string]*catalog.Product)}
}

func (f *fakeProducts) Create(_ context.Context, product *catalog.Product) error {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now
	clone := *product
	f.byID[product.ID] = &clone
	return nil
}

func (f *fakeProducts) GetByID(_ context.Context, id string) (*catalog.Product, error) {
	product, ok := f.byID[id]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	clone := *product
	return &clone, nil
}

func (f *fakeProducts) List(_ context.Context) ([]catalog.Product, error) {
	return f.filter(func(*catalog.Product) bool { return true }), nil
}

func (f *fakeProducts) ListByUser(_ context.Context, userID string) ([]catalog.Product, error) {
	return f.filter(func(p *catalog.Product) bool { return p.UserID == userID }), nil
}

func (f *fakeProducts) ListByCategory(_ context.Context, category string) ([]catalog.Product, error) {
	return f.filter(func(p *catalog.Product) bool { return p.Category == category }), nil
}

func (f *fakeProducts) Update(_ context.Context, product *catalog.Product) error {
	if _, ok := f.byID[product.ID]; !ok {
		return catalog.ErrProductNotFound
	}
	product.UpdatedAt = time.Now().UTC()
	clone := *product
	f.byID[product.ID] = &clone
	return nil
}

func (f *fakeProducts) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return catalog.ErrProductNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeProducts) filter(keep func(*catalog.Product) bool) []catalog.Product {
	products := []catalog.Product{}
	for _, p := range f.byID {
		if keep(p) {
			products = append(products, *p)
		}
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	return products
}

// fakeCategories is an in-memory catalog.CategoryRepository for handler tests.
type fakeCategories struct {
	byName map[string]*catalog.Category
}

func newFakeCategories(names ...string) *fakeCategories {
	f := &fakeCategories{byName: make(map[string]*catalog.Category)}
	for _, name := range names {
		f.byName[name] = &catalog.Category{
			ID:        uuid.NewString(),
			Name:      name,
			CreatedAt: time.Now().UTC(),
		}
	}
	return f
}

func (f *fakeCategories) List(_ context.Context) ([]catalog.Category, error) {
	categories := []catalog.Category{}
	for _, c := range f.byName {
		categories = append(categories, *c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func (f *fakeCategories) GetByName(_ context.Context, name string) (*catalog.Category, error) {
	category, ok := f.byName[name]
	if !ok {
		return nil, catalog.ErrCategoryNotFound
	}
	clone := *category
	return &clone, nil
}

// testEnv bundles a running router with its backing fakes.
type testEnv struct {
	router     http.Handler
	server     *Server
	users      *fakeUsers
	products   *fakeProducts
	categories *fakeCategories
	tokens     *auth.Authority
}

// newTestEnv builds a server over in-memory fakes and returns its router.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := logging.New(config.LoggingConfig{Level: "error", Format: "text", Output: "stdout"}, "test")
	tokens, err := auth.NewAuthority(testSecret, auth.DefaultTokenExpiry)
	if err != nil {
		t.Fatalf("NewAuthority() error = %v", err)
	}

	users := newFakeUsers()
	products := newFakeProducts()
	categories := newFakeCategories("Frutas", "Verduras")

	server, err := New(Deps{
		Config:     config.APIConfig{},
		Logger:     log,
		Auth:       auth.NewService(users, tokens),
		Tokens:     tokens,
		Users:      users,
		Products:   products,
		Categories: categories,
		Version:    "test",
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	return &testEnv{
		router:     server.buildRouter(),
		server:     server,
		users:      users,
		products:   products,
		categories: categories,
		tokens:     tokens,
	}
}

// addUser registers a user directly in the fake store and returns it with a token.
func (e *testEnv) addUser(t *testing.T, email, password string, role auth.Role) (*auth.User, string) {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	user := &auth.User{
		Email:        email,
		Username:     "user-" + email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := e.users.Create(context.Background(), user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	token, err := e.tokens.Issue(user)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	return user, token
}

// doJSON performs a request with an optional JSON body and bearer token.
func (e *testEnv) doJSON(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals a recorded JSON response into a generic map.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
	return out
}
