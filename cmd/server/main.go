package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"suumosync/internal/airtable"
	"suumosync/internal/config"
	apierrors "suumosync/internal/errors"
	"suumosync/internal/handlers"
	"suumosync/internal/logger"
	"suumosync/internal/middleware"
	"suumosync/internal/resolver"
	"suumosync/internal/scrape"
	"suumosync/internal/services"
	"suumosync/internal/translate"
	"suumosync/internal/web"
)

const (
	shutdownTimeout = 30 * time.Second
)

func main() {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.Server.Env, cfg.Server.LogLevel)
	log.Info("Starting suumosync API", map[string]interface{}{
		"version":     "0.1.0",
		"environment": cfg.Server.Env,
		"port":        cfg.Server.Port,
	})

	// Build the clients. The record store is not probed here; a bad
	// credential surfaces on the readiness endpoint and on first use.
	store := airtable.NewClient(cfg.Airtable, log)
	translator := translate.NewClient(cfg.Translate, log)
	fetcher := scrape.NewFetcher(cfg.Scraper, log)

	aliases, err := resolver.LoadAliases(cfg.Scraper.AliasesFile)
	if err != nil {
		log.Fatal("Failed to load alias overrides", err, map[string]interface{}{
			"file": cfg.Scraper.AliasesFile,
		})
	}

	// Setup Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware in order: RequestID -> Logger -> Recovery -> CORS
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.CORS.Origins))

	// Register health check routes
	healthHandler := handlers.NewHealthHandler(store, cfg.Airtable.Tables.Listings, cfg.Server.Env)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/api/v1/info", healthHandler.Info)

	// Serve the embedded UI
	router.GET("/", web.Index)

	// Initialize resolver and service layers
	refResolver := resolver.New(store, translator, cfg.Airtable.Tables, aliases)
	listingService := services.NewListingService(fetcher, translator, refResolver, store, cfg.Airtable.Tables, log)

	// Initialize handlers
	listingHandler := handlers.NewListingHandler(listingService)

	// Register API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/listings", listingHandler.Scrape)
	}

	// Unknown routes answer with the standard error envelope
	router.NoRoute(func(c *gin.Context) {
		apierrors.NotFound(c, "Route not found")
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server listening", map[string]interface{}{
			"port": cfg.Server.Port,
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", err, nil)
		}
	}()

	// Wait for interrupt signal (SIGINT or SIGTERM)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	log.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, map[string]interface{}{
			"timeout": shutdownTimeout.String(),
		})
	}

	log.Info("Server exited", nil)
}
