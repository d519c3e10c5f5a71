package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("DB_USER", "testuser")
		t.Setenv("DB_PASSWORD", "testpass")
		t.Setenv("DB_NAME", "testdb")
		t.Setenv("DB_PORT", "5432")
		t.Setenv("APP_PORT", "8080")
		t.Setenv("APP_ENV", "test")
		t.Setenv("GATEWAY_BASE_URL", "https://gateway.test")
		t.Setenv("GATEWAY_USER", "apiuser")
		t.Setenv("GATEWAY_PASSWORD", "apipass")
		t.Setenv("CHECKOUT_BASE_URL", "https://futstore.test")

		cfg := LoadConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "testuser", cfg.DBUser)
		assert.Equal(t, "testpass", cfg.DBPassword)
		assert.Equal(t, "testdb", cfg.DBName)
		assert.Equal(t, "5432", cfg.DBPort)
		assert.Equal(t, "8080", cfg.AppPort)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, "https://gateway.test", cfg.GatewayBaseURL)
		assert.Equal(t, "apiuser", cfg.GatewayUser)
		assert.Equal(t, "apipass", cfg.GatewayPassword)
		assert.Equal(t, "https://futstore.test", cfg.CheckoutBaseURL)
	})
}
