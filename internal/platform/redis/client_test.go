package redis

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feder/internal/platform/config"
)

func TestNewWithoutURL(t *testing.T) {
	c, err := New(context.Background(), config.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestNewRejectsBadURL(t *testing.T) {
	_, err := New(context.Background(), config.RedisConfig{URL: "http://not-redis"})
	assert.Error(t, err)
}

func TestApplyPoolKeepsURLDefaults(t *testing.T) {
	opts := &goredis.Options{PoolSize: 7, DialTimeout: time.Second}
	applyPool(opts, config.RedisConfig{MinIdleConns: 3})
	assert.Equal(t, 7, opts.PoolSize)
	assert.Equal(t, 3, opts.MinIdleConns)
	assert.Equal(t, time.Second, opts.DialTimeout)
}

func TestRegisterPoolMetrics(t *testing.T) {
	c := &Client{Client: goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:0"})}
	t.Cleanup(func() { _ = c.Close() })

	reg := prometheus.NewRegistry()
	require.NoError(t, c.RegisterPoolMetrics(reg))
	n, err := testutil.GatherAndCount(reg, "feder_redis_pool_connections")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Error(t, c.RegisterPoolMetrics(reg), "second registration collides")
}
