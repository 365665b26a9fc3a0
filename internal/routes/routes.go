package routes

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"tripfolio/internal/handlers"
	"tripfolio/internal/metrics"
	"tripfolio/internal/middleware"
)

// SetupRoutes configures all application routes
func SetupRoutes(tripsHandler *handlers.TripsHandler, routeHandler *handlers.RouteHandler, healthHandler *handlers.HealthHandler, collector *metrics.Collector) {
	// Health check routes
	http.HandleFunc("/healthz", healthHandler.HealthCheck)
	http.HandleFunc("/livez", healthHandler.LivenessCheck)
	http.HandleFunc("/readyz", healthHandler.ReadinessCheck)

	// Prometheus metrics
	http.Handle("/metrics", collector.Handler())

	// Trip routes (owner identity comes from the gateway header)
	http.HandleFunc("/api/trips", middleware.Owner(tripsHandler.Trips))
	http.HandleFunc("/api/trips/", middleware.Owner(tripsHandler.Trips))

	// Ad hoc routing preview
	http.HandleFunc("/api/route", middleware.Owner(routeHandler.Compute))

	// Swagger UI
	http.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Root route
	http.HandleFunc("/", rootHandler)
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Tripfolio backend is running."))
}
