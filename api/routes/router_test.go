package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/apper-canvas/stylehub-port-matrix/internal/cart"
	"github.com/apper-canvas/stylehub-port-matrix/internal/catalog"
	"github.com/apper-canvas/stylehub-port-matrix/internal/store"
	"github.com/apper-canvas/stylehub-port-matrix/internal/wishlist"
	"github.com/apper-canvas/stylehub-port-matrix/pkg/config"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	st := store.NewMemory()
	repo, err := catalog.NewRepository(st, nil)
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	cartService, err := cart.NewService(cart.ServiceParams{Store: st})
	if err != nil {
		t.Fatalf("new cart service: %v", err)
	}
	wishlistService, err := wishlist.NewService(wishlist.ServiceParams{Store: st})
	if err != nil {
		t.Fatalf("new wishlist service: %v", err)
	}

	registry := prometheus.NewRegistry()
	cfg := &config.Config{}
	cfg.App.Env = "dev"
	cfg.Store.Backend = config.StoreBackendMemory

	return NewRouter(RouterParams{
		Config:     cfg,
		Store:      st,
		Catalog:    repo,
		Cart:       cartService,
		Wishlist:   wishlistService,
		Registerer: registry,
		Gatherer:   registry,
	})
}

func do(t *testing.T, handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	return resp
}

func TestHealthEndpoints(t *testing.T) {
	handler := newTestRouter(t)

	if resp := do(t, handler, http.MethodGet, "/health/live", ""); resp.Code != http.StatusOK {
		t.Fatalf("live: expected 200 got %d", resp.Code)
	}
	if resp := do(t, handler, http.MethodGet, "/health/ready", ""); resp.Code != http.StatusOK {
		t.Fatalf("ready: expected 200 got %d", resp.Code)
	}
	if resp := do(t, handler, http.MethodGet, "/metrics", ""); resp.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200 got %d", resp.Code)
	}
}

func TestRequestIDHeaderEchoed(t *testing.T) {
	handler := newTestRouter(t)
	resp := do(t, handler, http.MethodGet, "/health/live", "")
	if resp.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected a request id header")
	}
}

func TestStorefrontFlow(t *testing.T) {
	handler := newTestRouter(t)

	// Admin creates a product.
	create := `{"name": "Classic Tee", "brand": "Acme", "category": "Men", "price": 499, "sizes": ["M"], "images": [], "rating": 0, "reviewCount": 0}`
	resp := do(t, handler, http.MethodPost, "/api/admin/v1/products", create)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create product: expected 201 got %d: %s", resp.Code, resp.Body.String())
	}

	// The storefront sees it.
	resp = do(t, handler, http.MethodGet, "/api/v1/products?category=men", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("list products: expected 200 got %d", resp.Code)
	}
	var listEnvelope struct {
		Data []catalog.Product `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listEnvelope); err != nil {
		t.Fatalf("decode products: %v", err)
	}
	if len(listEnvelope.Data) != 1 {
		t.Fatalf("expected one product, got %d", len(listEnvelope.Data))
	}

	// Add it to the cart twice; the lines merge.
	add := `{"productId": 1, "size": "M", "quantity": 1, "price": 499}`
	for i := 0; i < 2; i++ {
		resp = do(t, handler, http.MethodPost, "/api/v1/cart/items", add)
		if resp.Code != http.StatusCreated {
			t.Fatalf("add to cart: expected 201 got %d: %s", resp.Code, resp.Body.String())
		}
	}

	resp = do(t, handler, http.MethodGet, "/api/v1/cart", "")
	var cartEnvelope struct {
		Data struct {
			Items  []cart.Line `json:"items"`
			Totals cart.Totals `json:"totals"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&cartEnvelope); err != nil {
		t.Fatalf("decode cart: %v", err)
	}
	if len(cartEnvelope.Data.Items) != 1 || cartEnvelope.Data.Items[0].Quantity != 2 {
		t.Fatalf("expected a merged line with quantity 2: %+v", cartEnvelope.Data.Items)
	}
	if cartEnvelope.Data.Totals.ItemCount != 2 {
		t.Fatalf("expected item count 2, got %d", cartEnvelope.Data.Totals.ItemCount)
	}

	// Toggle the wishlist on and off.
	resp = do(t, handler, http.MethodPost, "/api/v1/wishlist/toggle", `{"productId": 1}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("toggle: expected 200 got %d", resp.Code)
	}
	resp = do(t, handler, http.MethodGet, "/api/v1/wishlist", "")
	var wishEnvelope struct {
		Data []wishlist.Entry `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wishEnvelope); err != nil {
		t.Fatalf("decode wishlist: %v", err)
	}
	if len(wishEnvelope.Data) != 1 {
		t.Fatalf("expected one wishlist entry, got %d", len(wishEnvelope.Data))
	}

	// Clear the cart.
	if resp = do(t, handler, http.MethodDelete, "/api/v1/cart", ""); resp.Code != http.StatusOK {
		t.Fatalf("clear cart: expected 200 got %d", resp.Code)
	}
	resp = do(t, handler, http.MethodGet, "/api/v1/cart", "")
	cartEnvelope.Data.Items = nil
	if err := json.NewDecoder(resp.Body).Decode(&cartEnvelope); err != nil {
		t.Fatalf("decode cart: %v", err)
	}
	if len(cartEnvelope.Data.Items) != 0 {
		t.Fatalf("expected an empty cart, got %+v", cartEnvelope.Data.Items)
	}
}

func TestUnknownProductReturns404(t *testing.T) {
	handler := newTestRouter(t)
	resp := do(t, handler, http.MethodGet, "/api/v1/products/42", "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
