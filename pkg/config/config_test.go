package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Recommendation.DefaultLimit)
	assert.Equal(t, 5.0, cfg.Recommendation.DefaultRadiusKm)
	assert.Equal(t, "mock", cfg.Geolocation.Provider)
	assert.Equal(t, []string{"tourism", "entertainment", "leisure.park", "heritage"}, cfg.Geolocation.SeedCategories)
	assert.Equal(t, "localhost:6379", cfg.Redis.RedisAddr())
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
}

func TestLoad_AllowedOrigins(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://app.tripwise.dev, https://admin.tripwise.dev")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"https://app.tripwise.dev", "https://admin.tripwise.dev"}, cfg.Server.AllowedOrigins)
}

func TestLoad_GeolocationOverrides(t *testing.T) {
	t.Setenv("GEOLOCATION_PROVIDER", "geoapify")
	t.Setenv("GEOLOCATION_API_KEY", "test-key")
	t.Setenv("SEED_CATEGORIES", " tourism.sights , ,religion ")
	t.Setenv("SEED_RADIUS_KM", "7.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "geoapify", cfg.Geolocation.Provider)
	assert.Equal(t, "test-key", cfg.Geolocation.APIKey)
	assert.Equal(t, []string{"tourism.sights", "religion"}, cfg.Geolocation.SeedCategories)
	assert.Equal(t, 7.5, cfg.Geolocation.SeedRadiusKm)
}

func TestLoad_InvalidNumbersFallBackToDefaults(t *testing.T) {
	t.Setenv("RECOMMEND_DEFAULT_LIMIT", "many")
	t.Setenv("RECOMMEND_DEFAULT_RADIUS_KM", "far")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Recommendation.DefaultLimit)
	assert.Equal(t, 5.0, cfg.Recommendation.DefaultRadiusKm)
}

func TestLoad_RejectsNonPositiveDefaults(t *testing.T) {
	t.Setenv("RECOMMEND_DEFAULT_LIMIT", "0")

	_, err := Load()
	assert.Error(t, err)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{Host: "db", Port: 5433, User: "u", Password: "p", Database: "tripwise", SSLMode: "require"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=tripwise sslmode=require", cfg.DatabaseDSN())
}
