// Package redis opens the shared Redis connection used for webhook
// message-id deduplication.
package redis

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"feder/internal/platform/config"
)

type Client struct {
	*redis.Client
}

// New dials Redis and pings it once. A nil client and nil error mean Redis is
// not configured and callers fall back to in-process state.
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	applyPool(opts, cfg)

	c := &Client{Client: redis.NewClient(opts)}
	if err := c.Health(ctx); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return c, nil
}

// applyPool overrides URL options only for the settings configured.
func applyPool(opts *redis.Options, cfg config.RedisConfig) {
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if cfg.MinIdleConns > 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
}

func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

// RegisterPoolMetrics exposes connection pool gauges read at scrape time.
func (c *Client) RegisterPoolMetrics(reg prometheus.Registerer) error {
	gauges := map[string]func() float64{
		"total": func() float64 { return float64(c.PoolStats().TotalConns) },
		"idle":  func() float64 { return float64(c.PoolStats().IdleConns) },
		"stale": func() float64 { return float64(c.PoolStats().StaleConns) },
	}
	for state, read := range gauges {
		g := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name:        "feder_redis_pool_connections",
			Help:        "Redis pool connections by state",
			ConstLabels: prometheus.Labels{"state": state},
		}, read)
		if err := reg.Register(g); err != nil {
			return fmt.Errorf("register redis pool metrics: %w", err)
		}
	}
	return nil
}
