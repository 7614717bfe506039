package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/stockroomhq/catalog-api/api/routes"
	"github.com/stockroomhq/catalog-api/internal/inventory"
	productsvc "github.com/stockroomhq/catalog-api/internal/products"
	variantsvc "github.com/stockroomhq/catalog-api/internal/variants"
	"github.com/stockroomhq/catalog-api/pkg/config"
	"github.com/stockroomhq/catalog-api/pkg/db"
	"github.com/stockroomhq/catalog-api/pkg/db/models"
	"github.com/stockroomhq/catalog-api/pkg/logger"
	"github.com/stockroomhq/catalog-api/pkg/metrics"
	"github.com/stockroomhq/catalog-api/pkg/migrate"
	"github.com/stockroomhq/catalog-api/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisPinger redis.Pinger
	var idempotencyStore redis.IdempotencyStore
	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		redisPinger = redisClient
		idempotencyStore = redisClient
	} else {
		logg.Warn(context.Background(), "redis not configured, idempotency middleware disabled")
	}

	productRepo := productsvc.NewRepository(dbClient.DB())
	variantRepo := variantsvc.NewRepository(dbClient.DB())

	productService, err := productsvc.NewService(productRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	variantService, err := variantsvc.NewService(variantRepo, productRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create variant service", err)
		os.Exit(1)
	}

	productInventory, err := inventory.NewService[models.Product](productRepo, "product", productsvc.NotFoundMessage, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create product inventory service", err)
		os.Exit(1)
	}

	variantInventory, err := inventory.NewService[models.ProductVariant](variantRepo, "variant", variantsvc.NotFoundMessage, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create variant inventory service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisPinger,
			idempotencyStore,
			httpMetrics,
			productService,
			variantService,
			productInventory,
			variantInventory,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
