package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/brewtable_test")
	t.Setenv("PORT", "9090")
	t.Setenv("AUTH0_DOMAIN", "test.auth0.com")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "postgres://localhost/brewtable_test", cfg.DatabaseURL)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "test.auth0.com", cfg.Auth0Domain)
	assert.True(t, cfg.IsTest())

	// Defaults
	assert.Equal(t, "us-east-1", cfg.AWSRegion)
	assert.Equal(t, "http://localhost:3000/order", cfg.OrderBaseURL)

	// Load registers the instance for GetConfig
	assert.Same(t, cfg, GetConfig())
}

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{DatabaseURL: "postgres://localhost/db"}
	assert.NoError(t, cfg.Validate())

	cfg.DatabaseURL = ""
	assert.Error(t, cfg.Validate())
}

func TestEnvironmentChecks(t *testing.T) {
	assert.True(t, (&Config{GoEnv: "production"}).IsProduction())
	assert.True(t, (&Config{GoEnv: "development"}).IsDevelopment())
	assert.True(t, (&Config{GoEnv: "test"}).IsTest())
	assert.False(t, (&Config{GoEnv: "test"}).IsProduction())
}
