package config

import "time"

// RateLimitConfig drives the Redis token bucket.  Login and lead capture
// use the stricter AuthCapacity bucket.
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	AuthCapacity   int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	Prefix         string
}

// LoadRateLimitConfig reads RATE_LIMIT_* variables and clamps them to sane
// minimums.
func LoadRateLimitConfig() RateLimitConfig {
	c := RateLimitConfig{
		Enabled:        envBool("RATE_LIMIT_ENABLED", true),
		Capacity:       envInt("RATE_LIMIT_CAPACITY", 60),
		AuthCapacity:   envInt("RATE_LIMIT_AUTH_CAPACITY", 10),
		RefillTokens:   envInt("RATE_LIMIT_REFILL_TOKENS", 1),
		RefillInterval: envDur("RATE_LIMIT_REFILL_INTERVAL", time.Second),
		TTL:            envDur("RATE_LIMIT_TTL", 10*time.Minute),
		Prefix:         getenv("RATE_LIMIT_PREFIX", "studio:rl"),
	}
	if c.Capacity < 1 {
		c.Capacity = 1
	}
	if c.AuthCapacity < 1 {
		c.AuthCapacity = 1
	}
	if c.RefillTokens < 1 {
		c.RefillTokens = 1
	}
	if c.RefillInterval <= 0 {
		c.RefillInterval = time.Second
	}
	if minTTL := 5 * c.RefillInterval; c.TTL < minTTL {
		c.TTL = minTTL
	}
	return c
}

// WithCapacity returns a copy using a different bucket size and key prefix.
func (c RateLimitConfig) WithCapacity(capacity int, prefix string) RateLimitConfig {
	c.Capacity = capacity
	c.Prefix = c.Prefix + ":" + prefix
	return c
}
