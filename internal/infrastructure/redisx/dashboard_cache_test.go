package redisx_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-POS/internal/application/dto"
	"github.com/jhoicas/Tienda-POS/internal/infrastructure/redisx"
)

// memRedis implementa solo GET y SET sobre un mapa.
type memRedis struct {
	redis.Cmdable
	data map[string]string
	ttls map[string]time.Duration
	err  error
}

func newMemRedis() *memRedis {
	return &memRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if m.err != nil {
		return redis.NewStringResult("", m.err)
	}
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *memRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if m.err != nil {
		return redis.NewStatusResult("", m.err)
	}
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	case string:
		m.data[key] = v
	}
	m.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func TestDashboardCache_MissReturnsNotFound(t *testing.T) {
	cache := redisx.NewDashboardCache(newMemRedis(), time.Minute)

	stats, ok, err := cache.Get(context.Background(), "2026-02-15")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, stats)
}

func TestDashboardCache_SetThenGet(t *testing.T) {
	rdb := newMemRedis()
	cache := redisx.NewDashboardCache(rdb, time.Minute)
	in := &dto.DashboardStatsResponse{
		TodaySalesCount: 3,
		TodaySales:      decimal.RequireFromString("150.50"),
		TopProducts:     []dto.TopProductDTO{{ProductID: "A", UnitsSold: 2, Revenue: decimal.NewFromInt(100)}},
		PaymentMethods:  []dto.PaymentMethodDTO{{PaymentMethod: "cash", Transactions: 3, Balance: decimal.RequireFromString("150.50")}},
		DateLabel:       "Febrero 2026",
	}

	require.NoError(t, cache.Set(context.Background(), "2026-02-15", in))
	assert.Contains(t, rdb.data, "dashboard:stats:2026-02-15")
	assert.Equal(t, time.Minute, rdb.ttls["dashboard:stats:2026-02-15"])

	out, ok, err := cache.Get(context.Background(), "2026-02-15")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3, out.TodaySalesCount)
	assert.True(t, in.TodaySales.Equal(out.TodaySales))
	require.Len(t, out.TopProducts, 1)
	assert.Equal(t, "A", out.TopProducts[0].ProductID)
	require.Len(t, out.PaymentMethods, 1)
	assert.True(t, in.PaymentMethods[0].Balance.Equal(out.PaymentMethods[0].Balance))
	assert.Equal(t, "Febrero 2026", out.DateLabel)

	_, ok, err = cache.Get(context.Background(), "2026-02-16")
	require.NoError(t, err)
	assert.False(t, ok, "otro día es otra clave")
}

func TestDashboardCache_DefaultTTL(t *testing.T) {
	rdb := newMemRedis()
	cache := redisx.NewDashboardCache(rdb, 0)

	require.NoError(t, cache.Set(context.Background(), "2026-02-15", &dto.DashboardStatsResponse{}))
	assert.Equal(t, redisx.TTLDashboardStats, rdb.ttls["dashboard:stats:2026-02-15"])
}

func TestDashboardCache_CorruptValue(t *testing.T) {
	rdb := newMemRedis()
	rdb.data["dashboard:stats:2026-02-15"] = "{no es json"
	cache := redisx.NewDashboardCache(rdb, time.Minute)

	stats, ok, err := cache.Get(context.Background(), "2026-02-15")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis decode dashboard")
	assert.False(t, ok)
	assert.Nil(t, stats)
}

func TestDashboardCache_ConnectionError(t *testing.T) {
	rdb := newMemRedis()
	rdb.err = errors.New("connection refused")
	cache := redisx.NewDashboardCache(rdb, time.Minute)

	_, _, err := cache.Get(context.Background(), "2026-02-15")
	require.Error(t, err)
	assert.ErrorIs(t, err, rdb.err)

	err = cache.Set(context.Background(), "2026-02-15", &dto.DashboardStatsResponse{})
	assert.ErrorIs(t, err, rdb.err)
}
