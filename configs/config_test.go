package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_LayersBaseEnvAndVariables(t *testing.T) {
	t.Setenv("DELIVERY_MONGO__DATABASE", "delivery_it")
	t.Setenv("DELIVERY_ORDERS__ENFORCE_TRANSITIONS", "true")

	cfg, err := Load(".", "test")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.App.HTTPAddr)
	assert.Equal(t, "test", cfg.App.Env)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, "test-secret", cfg.Security.JWTSecret)
	assert.Equal(t, 4, cfg.Security.BcryptCost)
	assert.Equal(t, 360*time.Hour, cfg.Security.SessionTTL)
	assert.Equal(t, "delivery_it", cfg.Mongo.Database)
	assert.True(t, cfg.Orders.EnforceTransitions)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.HTTP.CORSOrigins)
}

func TestLoad_MissingBase(t *testing.T) {
	_, err := Load(t.TempDir(), "")
	assert.ErrorContains(t, err, "load base")
}

func TestValidate(t *testing.T) {
	var cfg Config
	cfg.App.HTTPAddr = ":8080"
	cfg.Security.JWTSecret = "s"
	cfg.Storage.Driver = "memory"
	require.NoError(t, cfg.Validate())

	cfg.Events.Driver = "kafka"
	assert.ErrorContains(t, cfg.Validate(), "kafka.brokers")

	cfg.Events.Driver = "sqs"
	assert.ErrorContains(t, cfg.Validate(), "events.driver")

	cfg.Events.Driver = ""
	cfg.Storage.Driver = "mongo"
	assert.ErrorContains(t, cfg.Validate(), "mongo.uri")

	cfg.Storage.Driver = "memory"
	cfg.Security.JWTSecret = ""
	assert.ErrorContains(t, cfg.Validate(), "jwt_secret")
}
