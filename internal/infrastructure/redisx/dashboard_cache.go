package redisx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Tienda-POS/internal/application/dto"
)

// DashboardCache guarda el resumen del tablero como JSON con TTL corto.
type DashboardCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewDashboardCache(rdb redis.Cmdable, ttl time.Duration) *DashboardCache {
	if ttl <= 0 {
		ttl = TTLDashboardStats
	}
	return &DashboardCache{rdb: rdb, ttl: ttl}
}

// Get devuelve (nil, false, nil) si la clave no existe.
func (c *DashboardCache) Get(ctx context.Context, day string) (*dto.DashboardStatsResponse, bool, error) {
	raw, err := c.rdb.Get(ctx, fmt.Sprintf(KeyDashboardStats, day)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get dashboard: %w", err)
	}
	var stats dto.DashboardStatsResponse
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, false, fmt.Errorf("redis decode dashboard: %w", err)
	}
	return &stats, true, nil
}

func (c *DashboardCache) Set(ctx context.Context, day string, stats *dto.DashboardStatsResponse) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("redis encode dashboard: %w", err)
	}
	if err := c.rdb.Set(ctx, fmt.Sprintf(KeyDashboardStats, day), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set dashboard: %w", err)
	}
	return nil
}
