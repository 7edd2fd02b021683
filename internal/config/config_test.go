package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadRateLimitConfig_Clamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	c := LoadRateLimitConfig()
	assert.Equal(t, 1, c.Capacity)
	assert.Equal(t, 2*time.Second, c.RefillInterval)
	assert.Equal(t, 10*time.Second, c.TTL)

	auth := c.WithCapacity(5, "auth")
	assert.Equal(t, 5, auth.Capacity)
	assert.Equal(t, "studio:rl:auth", auth.Prefix)
	assert.Equal(t, 1, c.Capacity)
}

func TestLoadCacheConfig_Defaults(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head")
	c := LoadCacheConfig()
	assert.True(t, c.Enabled)
	assert.True(t, c.Methods["GET"])
	assert.True(t, c.Methods["HEAD"])
	assert.Equal(t, time.Minute, c.TTL)
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("X_BOOL", "off")
	t.Setenv("X_INT", "nope")
	assert.False(t, envBool("X_BOOL", true))
	assert.Equal(t, 7, envInt("X_INT", 7))
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b "))
}

func TestLoadQueueConfig_FallsBackToAMQPURL(t *testing.T) {
	t.Setenv("RABBITMQ_URL", "")
	t.Setenv("AMQP_URL", "amqp://u:p@mq:5672/")
	c := LoadQueueConfig()
	assert.Equal(t, "amqp://u:p@mq:5672/", c.URL)
	assert.Equal(t, "booking.lead", c.LeadQueue)
}

func TestLoadRedisConfig(t *testing.T) {
	t.Setenv("REDIS_ADDR", "cache:6380")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("REDIS_TLS", "true")
	c := LoadRedisConfig()
	assert.Equal(t, "cache:6380", c.Addr)
	assert.Equal(t, 2, c.DB)
	assert.NotNil(t, c.options().TLSConfig)

	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("REDIS_PORT", "6379")
	assert.Equal(t, "redis:6379", LoadRedisConfig().Addr)
}
