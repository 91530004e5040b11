package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Checkout.AllowNegativeStock)
	assert.Equal(t, 5*time.Second, cfg.Checkout.LockTimeout)
	assert.Equal(t, "divisor", cfg.Loyalty.Policy)
	assert.Equal(t, 10.0, cfg.Loyalty.Divisor)
	assert.Equal(t, 5, cfg.Inventory.LowStockThreshold)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("CHECKOUT_ALLOW_NEGATIVE_STOCK", "true")
	t.Setenv("CHECKOUT_LOCK_TIMEOUT_MS", "250")
	t.Setenv("LOYALTY_POLICY", "rate")
	t.Setenv("LOYALTY_RATE", "0.25")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("DASHBOARD_CACHE_TTL_SECONDS", "5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Checkout.AllowNegativeStock)
	assert.Equal(t, 250*time.Millisecond, cfg.Checkout.LockTimeout)
	assert.Equal(t, "rate", cfg.Loyalty.Policy)
	assert.Equal(t, 0.25, cfg.Loyalty.Rate)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 5*time.Second, cfg.Redis.DashboardTTL)
}

func TestLoad_InvalidDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")
	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapesPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "pos", Password: "p@ss/1", DBName: "tienda", SSLMode: "disable"}
	assert.Equal(t, "postgres://pos:p%40ss%2F1@db:5432/tienda?sslmode=disable", c.DSN())
}
