package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	Env            string
	Server         ServerConfig
	Database       DatabaseConfig
	Redis          RedisConfig
	Geolocation    GeolocationConfig
	Recommendation RecommendationConfig
	OTEL           OTELConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port int
	// AllowedOrigins lists CORS origins; "*" allows any
	AllowedOrigins []string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// GeolocationConfig holds the places provider used for region seeding
type GeolocationConfig struct {
	Provider       string
	APIKey         string
	BaseURL        string
	SeedCategories []string
	SeedRadiusKm   float64
	SeedLimit      int
}

// RecommendationConfig holds defaults applied when a caller omits them
type RecommendationConfig struct {
	DefaultLimit           int
	DefaultRadiusKm        float64
	CatalogCacheTTLSeconds int
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Env: getEnv("ENV", "production"),
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "tripwise"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Geolocation: GeolocationConfig{
			Provider:       getEnv("GEOLOCATION_PROVIDER", "mock"),
			APIKey:         getEnv("GEOLOCATION_API_KEY", ""),
			BaseURL:        getEnv("GEOLOCATION_BASE_URL", "https://api.geoapify.com/v2/places"),
			SeedCategories: getEnvAsList("SEED_CATEGORIES", []string{"tourism", "entertainment", "leisure.park", "heritage"}),
			SeedRadiusKm:   getEnvAsFloat("SEED_RADIUS_KM", 5),
			SeedLimit:      getEnvAsInt("SEED_LIMIT", 50),
		},
		Recommendation: RecommendationConfig{
			DefaultLimit:           getEnvAsInt("RECOMMEND_DEFAULT_LIMIT", 5),
			DefaultRadiusKm:        getEnvAsFloat("RECOMMEND_DEFAULT_RADIUS_KM", 5),
			CatalogCacheTTLSeconds: getEnvAsInt("PLACE_CATALOG_CACHE_TTL", 60),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "tripwise"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}

	if cfg.Recommendation.DefaultLimit <= 0 {
		return nil, fmt.Errorf("RECOMMEND_DEFAULT_LIMIT must be positive, got %d", cfg.Recommendation.DefaultLimit)
	}
	if cfg.Recommendation.DefaultRadiusKm <= 0 {
		return nil, fmt.Errorf("RECOMMEND_DEFAULT_RADIUS_KM must be positive, got %g", cfg.Recommendation.DefaultRadiusKm)
	}

	return cfg, nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
