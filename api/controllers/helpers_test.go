package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/apper-canvas/stylehub-port-matrix/internal/catalog"
	"github.com/apper-canvas/stylehub-port-matrix/internal/store"
)

func withChiParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func newCatalogRepository(t *testing.T) *catalog.Repository {
	t.Helper()
	repo, err := catalog.NewRepository(store.NewMemory(), nil)
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	return repo
}
