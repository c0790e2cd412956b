package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("HISTORY_CACHE_TTL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.Equal(t, "auth-token", cfg.SessionCookieName)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "es-PE", cfg.DisplayLocale)
	assert.Equal(t, time.Minute, cfg.HistoryCacheTTL)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("BACKEND_BASE_URL", "http://backend:8080/api/v1/")
	t.Setenv("BACKEND_TIMEOUT", "3s")
	t.Setenv("HISTORY_ENDPOINT_ENABLED", "true")
	t.Setenv("HISTORY_CACHE_TTL", "30s")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, StoreSQLite, cfg.StoreDriver)
	assert.Equal(t, "http://backend:8080/api/v1", cfg.BackendBaseURL)
	assert.Equal(t, 3*time.Second, cfg.BackendTimeout)
	assert.True(t, cfg.HistoryEndpointEnabled)
	assert.Equal(t, 30*time.Second, cfg.HistoryCacheTTL)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"unknown driver":        {"STORE_DRIVER": "redis"},
		"postgres without url":  {"STORE_DRIVER": "postgres", "PGSQL_URL": ""},
		"bad duration":          {"SESSION_TTL": "one day"},
		"non positive duration": {"BACKEND_TIMEOUT": "-1s"},
		"zero cache ttl":        {"HISTORY_CACHE_TTL": "0s"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
