package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/apper-canvas/stylehub-port-matrix/internal/store"
	"github.com/apper-canvas/stylehub-port-matrix/internal/wishlist"
)

func newWishlistService(t *testing.T) wishlist.Service {
	t.Helper()
	svc, err := wishlist.NewService(wishlist.ServiceParams{Store: store.NewMemory()})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestWishlistAddAndList(t *testing.T) {
	svc := newWishlistService(t)

	add := WishlistAddItem(svc, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/wishlist/items", strings.NewReader(`{"productId": 7}`))
	resp := httptest.NewRecorder()
	add.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}

	list := WishlistList(svc, nil)
	resp = httptest.NewRecorder()
	list.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/wishlist", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data []wishlist.Entry `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].ProductID != 7 {
		t.Fatalf("unexpected wishlist: %+v", envelope.Data)
	}
}

func TestWishlistAddRejectsBadPayload(t *testing.T) {
	handler := WishlistAddItem(newWishlistService(t), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/wishlist/items", strings.NewReader(`{"productId": 0}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestWishlistRemoveIsIdempotent(t *testing.T) {
	svc := newWishlistService(t)
	handler := WishlistRemoveItem(svc, nil)

	req := withChiParam(httptest.NewRequest(http.MethodDelete, "/api/v1/wishlist/items/7", nil), "productId", "7")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestWishlistToggleFlipsSavedState(t *testing.T) {
	svc := newWishlistService(t)
	handler := WishlistToggle(svc, nil)

	toggle := func() map[string]any {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/wishlist/toggle", strings.NewReader(`{"productId": 7}`))
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
		}
		var envelope struct {
			Data map[string]any `json:"data"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		return envelope.Data
	}

	if data := toggle(); data["saved"] != true {
		t.Fatalf("first toggle must save: %+v", data)
	}
	if data := toggle(); data["saved"] != false {
		t.Fatalf("second toggle must remove: %+v", data)
	}
	if data := toggle(); data["saved"] != true {
		t.Fatalf("third toggle must save again: %+v", data)
	}
}
