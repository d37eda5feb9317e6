package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/fieldserve/jobs-system/internal/core/ports"
)

const (
	overviewKey = "stats:overview"
	overviewTTL = 30 * time.Second
)

// StatsCache keeps the admin stats overview in Redis for a short window.
// Failures are swallowed: the cache is an optimization, never a dependency.
type StatsCache struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewStatsCache(client *redis.Client, log zerolog.Logger) *StatsCache {
	return &StatsCache{client: client, log: log}
}

func (c *StatsCache) GetOverview(ctx context.Context) (*ports.Overview, bool) {
	raw, err := c.client.Get(ctx, overviewKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Msg("stats cache read failed")
		}
		return nil, false
	}

	var overview ports.Overview
	if err := json.Unmarshal(raw, &overview); err != nil {
		c.log.Warn().Err(err).Msg("stats cache entry corrupt, ignoring")
		return nil, false
	}
	return &overview, true
}

func (c *StatsCache) SetOverview(ctx context.Context, o *ports.Overview) {
	raw, err := json.Marshal(o)
	if err != nil {
		c.log.Warn().Err(err).Msg("stats cache encode failed")
		return
	}
	if err := c.client.Set(ctx, overviewKey, raw, overviewTTL).Err(); err != nil {
		c.log.Warn().Err(err).Msg("stats cache write failed")
	}
}
