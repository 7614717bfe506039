package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stockroomhq/catalog-api/api/controllers"
	"github.com/stockroomhq/catalog-api/api/middleware"
	"github.com/stockroomhq/catalog-api/internal/inventory"
	productsvc "github.com/stockroomhq/catalog-api/internal/products"
	variantsvc "github.com/stockroomhq/catalog-api/internal/variants"
	"github.com/stockroomhq/catalog-api/pkg/config"
	"github.com/stockroomhq/catalog-api/pkg/db"
	"github.com/stockroomhq/catalog-api/pkg/db/models"
	"github.com/stockroomhq/catalog-api/pkg/logger"
	"github.com/stockroomhq/catalog-api/pkg/metrics"
	pkgredis "github.com/stockroomhq/catalog-api/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP pkgredis.Pinger,
	idempotencyStore pkgredis.IdempotencyStore,
	httpMetrics *metrics.HTTPMetrics,
	productService productsvc.Service,
	variantService variantsvc.Service,
	productInventory *inventory.Service[models.Product],
	variantInventory *inventory.Service[models.ProductVariant],
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		httpMetrics.Middleware(),
		middleware.Idempotency(idempotencyStore, logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	r.Method(http.MethodGet, "/metrics", httpMetrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(productService, logg))
			r.Post("/", controllers.CreateProduct(productService, logg))
			r.Get("/{id}", controllers.GetProduct(productService, logg))
			r.Put("/{id}", controllers.UpdateProduct(productService, logg))
			r.Patch("/{id}", controllers.UpdateProduct(productService, logg))
			r.Delete("/{id}", controllers.DeleteProduct(productService, logg))
			r.Get("/{productId}/variants", controllers.ListProductVariants(variantService, logg))
			r.Patch("/{id}/inventory", controllers.AdjustProductInventory(productInventory, logg))
		})

		r.Route("/variants", func(r chi.Router) {
			r.Get("/", controllers.ListVariants(variantService, logg))
			r.Post("/", controllers.CreateVariant(variantService, logg))
			// Registered before the {id} routes so chi does not treat
			// "positions" as an id.
			r.Patch("/positions", controllers.UpdateVariantPositions(variantService, logg))
			r.Get("/{id}", controllers.GetVariant(variantService, logg))
			r.Put("/{id}", controllers.UpdateVariant(variantService, logg))
			r.Patch("/{id}", controllers.UpdateVariant(variantService, logg))
			r.Delete("/{id}", controllers.DeleteVariant(variantService, logg))
			r.Patch("/{id}/inventory", controllers.AdjustVariantInventory(variantInventory, logg))
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Patch("/products/bulk", controllers.BulkAdjustProductInventory(productInventory, logg))
			r.Patch("/variants/bulk", controllers.BulkAdjustVariantInventory(variantInventory, logg))
		})
	})

	return r
}
