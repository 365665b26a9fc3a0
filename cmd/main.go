// @title Tripfolio Backend API
// @version 1.0
// @description Tripfolio backend API for trip planning and place catalogs
// @termsOfService http://swagger.io/terms/

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/cors"

	_ "tripfolio/docs" // This is required for swagger
	"tripfolio/internal/config"
	"tripfolio/internal/handlers"
	"tripfolio/internal/metrics"
	"tripfolio/internal/remote"
	"tripfolio/internal/routes"
	"tripfolio/internal/routing"
	"tripfolio/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	collector := metrics.NewCollector()

	// Open the local trip store; this is the system of record for
	// everything not yet (or never) published.
	repo, err := store.Open(cfg.Storage.Path, cfg.Storage.Key, collector)
	if err != nil {
		log.Fatalf("open trip store: %v", err)
	}
	defer repo.Close()
	log.Printf("Trip store ready at %s (%d trips)", cfg.Storage.Path, repo.Count())

	// Remote authority is optional; without it public trips stay local.
	var publisher *remote.Publisher
	if cfg.Sync.BaseURL != "" {
		publisher = remote.NewPublisher(cfg.Sync.BaseURL, cfg.Sync.Timeout, collector)
	}

	router := routing.NewService(cfg.Routing.BaseURL, cfg.Routing.Timeout, collector)

	// --- HTTP Handlers ---
	tripsHandler := handlers.NewTripsHandler(repo, publisher, router, cfg)
	routeHandler := handlers.NewRouteHandler(router)
	healthHandler := handlers.NewHealthHandler(repo)

	// Setup all routes
	routes.SetupRoutes(tripsHandler, routeHandler, healthHandler, collector)

	// Setup CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           c.Handler(http.DefaultServeMux),
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("HTTP server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped.")
}
