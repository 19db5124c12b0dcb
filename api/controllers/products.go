package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/apper-canvas/stylehub-port-matrix/api/responses"
	"github.com/apper-canvas/stylehub-port-matrix/api/validators"
	"github.com/apper-canvas/stylehub-port-matrix/internal/catalog"
	pkgerrors "github.com/apper-canvas/stylehub-port-matrix/pkg/errors"
	"github.com/apper-canvas/stylehub-port-matrix/pkg/logger"
)

// ProductsList returns the catalog narrowed by the query string filters and
// ordered by the requested sort key.
func ProductsList(repo *catalog.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if repo == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		query, err := productQueryFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		products := catalog.ApplyFilters(repo.ListProducts(ctx), query)
		responses.WriteSuccess(w, products)
	}
}

func productQueryFromRequest(r *http.Request) (catalog.Query, error) {
	minPrice, err := validators.ParseQueryDecimal(r, "min_price")
	if err != nil {
		return catalog.Query{}, err
	}
	maxPrice, err := validators.ParseQueryDecimal(r, "max_price")
	if err != nil {
		return catalog.Query{}, err
	}

	query := catalog.Query{
		Category: strings.TrimSpace(r.URL.Query().Get("category")),
		Search:   strings.TrimSpace(r.URL.Query().Get("q")),
		Filters: catalog.FilterState{
			PriceRange: catalog.PriceRange{Min: minPrice, Max: maxPrice},
			Categories: validators.ParseQueryCSV(r, "categories"),
			Brands:     validators.ParseQueryCSV(r, "brands"),
			Sizes:      validators.ParseQueryCSV(r, "sizes"),
			Colors:     validators.ParseQueryCSV(r, "colors"),
		},
		Sort: catalog.SortKey(strings.TrimSpace(r.URL.Query().Get("sort"))),
	}
	if err := query.Filters.Validate(); err != nil {
		return catalog.Query{}, err
	}
	return query, nil
}

// ProductGet returns one product by identity.
func ProductGet(repo *catalog.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if repo == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		id, err := validators.ParseQueryID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := repo.GetProduct(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// AdminCreateProduct stores a new catalog record.
func AdminCreateProduct(repo *catalog.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if repo == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		var payload catalog.Product
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := repo.CreateProduct(ctx, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// AdminUpdateProduct replaces a catalog record.
func AdminUpdateProduct(repo *catalog.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if repo == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		id, err := validators.ParseQueryID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload catalog.Product
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := repo.UpdateProduct(ctx, id, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// AdminDeleteProduct removes a catalog record.
func AdminDeleteProduct(repo *catalog.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if repo == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		id, err := validators.ParseQueryID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := repo.DeleteProduct(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
