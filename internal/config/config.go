package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Server ServerConfig

	// Local trip storage configuration
	Storage StorageConfig

	// Remote trip authority configuration
	Sync SyncConfig

	// Routing provider configuration
	Routing RoutingConfig

	// Trip planner defaults
	Planner PlannerConfig

	// CORS configuration
	CORS CORSConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// StorageConfig holds the local sqlite store configuration. The whole
// trip collection lives under a single key.
type StorageConfig struct {
	Path string
	Key  string
}

// SyncConfig holds the remote trip authority configuration
type SyncConfig struct {
	BaseURL string
	Timeout time.Duration
}

// RoutingConfig holds the routing provider configuration
type RoutingConfig struct {
	BaseURL string
	Timeout time.Duration
}

// PlannerConfig holds the fixed default start location that trips with a
// "default" start point selector get prepended to their itinerary.
type PlannerConfig struct {
	StartLat     float64
	StartLng     float64
	StartEnabled bool
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file
	if err := godotenv.Load("../.env"); err != nil {
		// Try loading from current directory if not found in parent
		if err := godotenv.Load(".env"); err != nil {
			log.Printf("Warning: .env file not found: %v", err)
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 5*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:     getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 5*time.Second),
		},
		Storage: StorageConfig{
			Path: getEnv("STORAGE_PATH", "tripfolio.db"),
			Key:  getEnv("STORAGE_KEY", "trips"),
		},
		Sync: SyncConfig{
			BaseURL: getEnv("SYNC_BASE_URL", ""),
			Timeout: getDurationEnv("SYNC_TIMEOUT", 10*time.Second),
		},
		Routing: RoutingConfig{
			BaseURL: getEnv("ROUTING_BASE_URL", "https://router.project-osrm.org"),
			Timeout: getDurationEnv("ROUTING_TIMEOUT", 15*time.Second),
		},
		Planner: PlannerConfig{
			StartLat:     getFloatEnv("PLANNER_START_LAT", 0),
			StartLng:     getFloatEnv("PLANNER_START_LNG", 0),
			StartEnabled: getBoolEnv("PLANNER_START_ENABLED", false),
		},
		CORS: CORSConfig{
			AllowedOrigins:   getStringSliceEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods:   getStringSliceEnv("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
			AllowedHeaders:   getStringSliceEnv("CORS_ALLOWED_HEADERS", []string{"*"}),
			AllowCredentials: getBoolEnv("CORS_ALLOW_CREDENTIALS", true),
		},
	}

	config.Validate()
	return config, nil
}

// Validate warns about configuration that disables optional behavior.
// Nothing here is fatal: the engine degrades instead of refusing to boot.
func (c *Config) Validate() {
	if c.Sync.BaseURL == "" {
		log.Println("Warning: SYNC_BASE_URL not configured. Public trips will stay local only.")
	}
	if !c.Planner.StartEnabled {
		log.Println("Warning: PLANNER_START_ENABLED is off. Trips with a default start point get no synthetic first leg.")
	}
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getStringSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := []string{}
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				parts = append(parts, part)
			}
		}
		if len(parts) > 0 {
			return parts
		}
	}
	return defaultValue
}
