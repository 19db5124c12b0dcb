package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/apper-canvas/stylehub-port-matrix/api/controllers"
	"github.com/apper-canvas/stylehub-port-matrix/api/middleware"
	"github.com/apper-canvas/stylehub-port-matrix/internal/cart"
	"github.com/apper-canvas/stylehub-port-matrix/internal/catalog"
	"github.com/apper-canvas/stylehub-port-matrix/internal/store"
	"github.com/apper-canvas/stylehub-port-matrix/internal/wishlist"
	"github.com/apper-canvas/stylehub-port-matrix/pkg/config"
	"github.com/apper-canvas/stylehub-port-matrix/pkg/logger"
	"github.com/apper-canvas/stylehub-port-matrix/pkg/metrics"
)

// RouterParams carries everything the HTTP surface depends on.
type RouterParams struct {
	Config     *config.Config
	Logger     *logger.Logger
	Store      store.Store
	Catalog    *catalog.Repository
	Cart       cart.Service
	Wishlist   wishlist.Service
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

func NewRouter(params RouterParams) http.Handler {
	cfg := params.Config
	logg := params.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	httpMetrics := metrics.NewHTTPMetrics(params.Registerer)
	r.Use(middleware.Metrics(httpMetrics))

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, params.Store, logg))
	})

	if params.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(params.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductsList(params.Catalog, logg))
			r.Get("/{productId}", controllers.ProductGet(params.Catalog, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.CategoriesList(params.Catalog, logg))
			r.Get("/{categoryId}", controllers.CategoryGet(params.Catalog, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(params.Cart, logg))
			r.Delete("/", controllers.CartClear(params.Cart, logg))
			r.Post("/items", controllers.CartAddItem(params.Cart, logg))
			r.Patch("/items/{lineId}", controllers.CartUpdateItem(params.Cart, logg))
			r.Delete("/items/{lineId}", controllers.CartRemoveItem(params.Cart, logg))
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", controllers.WishlistList(params.Wishlist, logg))
			r.Post("/items", controllers.WishlistAddItem(params.Wishlist, logg))
			r.Delete("/items/{productId}", controllers.WishlistRemoveItem(params.Wishlist, logg))
			r.Post("/toggle", controllers.WishlistToggle(params.Wishlist, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.AdminCreateProduct(params.Catalog, logg))
			r.Put("/{productId}", controllers.AdminUpdateProduct(params.Catalog, logg))
			r.Delete("/{productId}", controllers.AdminDeleteProduct(params.Catalog, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Post("/", controllers.AdminCreateCategory(params.Catalog, logg))
			r.Put("/{categoryId}", controllers.AdminUpdateCategory(params.Catalog, logg))
			r.Delete("/{categoryId}", controllers.AdminDeleteCategory(params.Catalog, logg))
		})
	})

	return r
}
