package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/electricbuddy/charger-service/internal/config"
)

func TestMustLoad(t *testing.T) {
	t.Run("defaults when nothing is set", func(t *testing.T) {
		unsetEnv(t, "CHARGER_PORT", "CHARGER_ENV", "CHARGER_ROUTE_PROVIDER",
			"CHARGER_ROUTE_API_KEY", "CHARGER_SEARCH_URL", "DB_PORT")

		cfg := config.MustLoad()

		assert.Equal(t, "production", cfg.Env)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "google", cfg.RouteProvider)
		assert.Empty(t, cfg.APIKey)
		assert.Equal(t, "https://emobility.flo.ca/v3.0/map/markers/search", cfg.SearchURL)
		assert.Equal(t, "5432", cfg.Database.Port)
	})

	t.Run("explicit values override defaults", func(t *testing.T) {
		t.Setenv("CHARGER_ENV", "local")
		t.Setenv("CHARGER_PORT", "9090")
		t.Setenv("CHARGER_ROUTE_PROVIDER", "osrm")
		t.Setenv("CHARGER_ROUTE_API_KEY", "secret")
		t.Setenv("CHARGER_SEARCH_URL", "http://localhost:1234/search")
		t.Setenv("DB_HOST", "db.internal")
		t.Setenv("DB_PORT", "5433")
		t.Setenv("DB_USERNAME", "charger")
		t.Setenv("DB_PASSWORD", "hunter2")
		t.Setenv("DB_NAME", "chargers")

		cfg := config.MustLoad()

		assert.Equal(t, "local", cfg.Env)
		assert.Equal(t, 9090, cfg.Port)
		assert.Equal(t, "osrm", cfg.RouteProvider)
		assert.Equal(t, "secret", cfg.APIKey)
		assert.Equal(t, "http://localhost:1234/search", cfg.SearchURL)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, "5433", cfg.Database.Port)
		assert.Equal(t, "charger", cfg.Database.User)
		assert.Equal(t, "hunter2", cfg.Database.Password)
		assert.Equal(t, "chargers", cfg.Database.Name)
	})

	t.Run("unparsable port panics", func(t *testing.T) {
		t.Setenv("CHARGER_PORT", "not-a-port")

		require.PanicsWithValue(t,
			"failed to parse port for API server from configuration",
			func() { config.MustLoad() })
	})
}

// unsetEnv removes variables for the subtest. t.Setenv records the original
// value for restoration but cannot unset, so the removal happens afterwards.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("failed to unset %s: %v", key, err)
		}
	}
}
