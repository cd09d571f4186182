package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/MesaLibreServices/mesa-scheduler/internal/config"
	"github.com/MesaLibreServices/mesa-scheduler/internal/models"
)

// Availability caches the free-table listing per restaurant and start
// instant. Every reservation or table write bumps the restaurant's version
// counter, which orphans all cached entries for it; the short TTL sweeps
// the orphans out. Everything here is best effort: a nil cache (no Redis
// configured, or Redis unreachable at startup) degrades to always-miss.
type Availability struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAvailability connects to Redis when an address is configured. Returns
// nil when caching is disabled or the server does not answer the ping.
func NewAvailability(cfg *config.Config) *Availability {
	if cfg.RedisAddr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}

	return &Availability{
		client: client,
		ttl:    cfg.CacheTTL,
	}
}

func (c *Availability) Get(
	ctx context.Context,
	restaurantID uint,
	start time.Time,
) ([]models.Table, bool) {

	if c == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, c.key(ctx, restaurantID, start)).Result()
	if err != nil {
		return nil, false
	}

	var tables []models.Table
	if err := json.Unmarshal([]byte(raw), &tables); err != nil {
		return nil, false
	}
	return tables, true
}

func (c *Availability) Set(
	ctx context.Context,
	restaurantID uint,
	start time.Time,
	tables []models.Table,
) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(tables)
	if err != nil {
		return
	}

	c.client.Set(ctx, c.key(ctx, restaurantID, start), raw, c.ttl)
}

// Invalidate drops every cached listing of a restaurant by bumping its
// version counter.
func (c *Availability) Invalidate(ctx context.Context, restaurantID uint) {
	if c == nil {
		return
	}

	c.client.Incr(ctx, fmt.Sprintf("avail_ver:%d", restaurantID))
}

func (c *Availability) key(
	ctx context.Context,
	restaurantID uint,
	start time.Time,
) string {
	ver, _ := c.client.Get(ctx, fmt.Sprintf("avail_ver:%d", restaurantID)).Int64()
	return fmt.Sprintf("avail:%d:%d:%d", restaurantID, ver, start.Unix())
}
