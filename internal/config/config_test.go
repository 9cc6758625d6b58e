package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutEnvFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.GetServerAddr())
	assert.Equal(t, StoreBackendRedis, cfg.Store.Backend)
	assert.Equal(t, "https://overpass-api.de/api/interpreter", cfg.Overpass.InterpreterURL)
	assert.Equal(t, time.Duration(0), cfg.Overpass.RequestTimeout)
	assert.Equal(t, 0.5, cfg.Overpass.Margin)
	assert.Equal(t, "https://www.openstreetmap.org", cfg.OSM.BaseURL)
	assert.InDelta(t, 52.520008, cfg.Location.DefaultLat, 1e-9)
	assert.InDelta(t, 13.404954, cfg.Location.DefaultLng, 1e-9)
	assert.False(t, cfg.Positioning.Enabled)
	assert.True(t, cfg.Places.SequenceGuard)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("API_PORT", "9090")
	t.Setenv("STORE_BACKEND", "Postgres")
	t.Setenv("OVERPASS_MARGIN", "0.25")
	t.Setenv("OSM_API_URL", "http://osm.local/")
	t.Setenv("POSITION_STREAM_ENABLED", "true")
	t.Setenv("PLACES_SEQUENCE_GUARD", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, StoreBackendPostgres, cfg.Store.Backend)
	assert.Equal(t, 0.25, cfg.Overpass.Margin)
	assert.Equal(t, "http://osm.local", cfg.OSM.BaseURL)
	assert.True(t, cfg.Positioning.Enabled)
	assert.False(t, cfg.Places.SequenceGuard)
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	content := "API_HOST=127.0.0.1\nLOG_LEVEL=debug\nLOCATION_DEFAULT_LAT=48.8566\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.InDelta(t, 48.8566, cfg.Location.DefaultLat, 1e-9)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	t.Run("unknown store backend", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("STORE_BACKEND", "etcd")

		_, err := Load()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "STORE_BACKEND")
	})

	t.Run("non-positive margin", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("OVERPASS_MARGIN", "0")

		_, err := Load()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "OVERPASS_MARGIN")
	})
}

func TestConfig_Addresses(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 8080},
		Redis:  RedisConfig{Host: "redis", Port: 6379},
		Database: DatabaseConfig{
			Host:     "db",
			Port:     5432,
			User:     "places",
			Password: "secret",
			DBName:   "places",
			SSLMode:  "disable",
		},
	}

	assert.Equal(t, "0.0.0.0:8080", cfg.GetServerAddr())
	assert.Equal(t, "redis:6379", cfg.GetRedisAddr())
	assert.Equal(t, "host=db port=5432 user=places password=secret dbname=places sslmode=disable", cfg.GetDatabaseDSN())
}
