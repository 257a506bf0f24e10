package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ikkim/vibecommerce-backend/config"
	"github.com/ikkim/vibecommerce-backend/internal/app/controller"
	"github.com/ikkim/vibecommerce-backend/internal/app/repository"
	"github.com/ikkim/vibecommerce-backend/internal/app/service"
	"github.com/ikkim/vibecommerce-backend/internal/cache"
	"github.com/ikkim/vibecommerce-backend/internal/db"
	"github.com/ikkim/vibecommerce-backend/internal/middleware"
	"github.com/ikkim/vibecommerce-backend/internal/router"
	"github.com/ikkim/vibecommerce-backend/internal/scheduler"
	"github.com/ikkim/vibecommerce-backend/pkg/fakestore"
	"github.com/ikkim/vibecommerce-backend/pkg/logger"
	"github.com/ikkim/vibecommerce-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	logFormat := "json"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
		logFormat = "console"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      logFormat,
		EnableColor: true,
	})

	logger.Info("Starting Vibe Commerce Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"db_driver":   cfg.Database.Driver,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Product cache (optional)
	var productCache cache.ProductCache = cache.NoopCache{}
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Redis unavailable, continuing without product cache", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			productCache = cache.NewRedisProductCache(redis.GetClient(), cfg.Catalog.CacheTTL)
			defer func() {
				if err := redis.Close(); err != nil {
					logger.Error("Failed to close Redis connection", err)
				}
			}()
		}
	}

	// Remote catalog (optional)
	var remote service.RemoteCatalog
	if cfg.Catalog.RemoteEnabled {
		client, err := fakestore.NewClient(fakestore.Config{
			BaseURL: cfg.Catalog.BaseURL,
			Timeout: cfg.Catalog.Timeout,
		})
		if err != nil {
			logger.Fatal("Failed to create remote catalog client", err)
		}
		remote = client
	}

	// Initialize repositories
	cartRepo := repository.NewCartRepository(db.GetDB())
	productRepo := repository.NewProductRepository()

	// Initialize services
	catalogService := service.NewCatalogService(remote, productRepo, productCache, cfg.Catalog.Timeout)
	productService := service.NewProductService(productRepo, catalogService)
	cartService := service.NewCartService(cartRepo, catalogService)
	checkoutService := service.NewCheckoutService()

	// Initialize controllers
	productController := controller.NewProductController(productService)
	cartController := controller.NewCartController(cartService)
	checkoutController := controller.NewCheckoutController(checkoutService)

	// Initialize middleware
	shopperMiddleware := middleware.NewShopperMiddleware(cfg.Cart.UserID)

	// Setup router
	r := router.NewRouter(
		productController,
		cartController,
		checkoutController,
		shopperMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Catalog cache warming only pays off with a remote source and a real cache
	if remote != nil && cfg.Redis.Enabled && redis.GetClient() != nil && cfg.Catalog.WarmSchedule != "" {
		warmScheduler := scheduler.NewCatalogWarmScheduler(catalogService, cfg.Catalog.WarmSchedule, cfg.Catalog.Timeout*10)
		if err := warmScheduler.Start(); err != nil {
			logger.Error("Failed to start catalog warm scheduler", err)
		} else {
			go warmScheduler.RunOnce()
			defer warmScheduler.Stop()
		}
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: engine,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...", map[string]interface{}{
		"timeout": cfg.Server.ShutdownTimeout.String(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err)
		return
	}

	logger.Info("Server stopped successfully")
}
