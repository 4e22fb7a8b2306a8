package config

import (
    "strings"
    "time"
)

// Key strategies understood by the rate limiter.
const (
    KeyByIP      = "ip"
    KeyByRoute   = "route"
    KeyByIPRoute = "ip_route"
)

// RateLimitConfig drives the Redis token bucket in front of /users.  A
// bucket holds Capacity tokens and regains RefillTokens every
// RefillInterval; a bucket left idle for TTL is dropped.
type RateLimitConfig struct {
    Enabled        bool
    Capacity       int
    RefillTokens   int
    RefillInterval time.Duration
    TTL            time.Duration
    KeyStrategy    string
    Prefix         string
    Debug          bool // echo the bucket key in X-RateLimit-Key
}

// LoadRateLimitConfig reads the RATE_LIMIT_* variables.  Out-of-range
// values are clamped, never rejected.
func LoadRateLimitConfig() RateLimitConfig {
    cfg := RateLimitConfig{
        Enabled:        envBool("RATE_LIMIT_ENABLED", true),
        Capacity:       envInt("RATE_LIMIT_CAPACITY", 60),
        RefillTokens:   envInt("RATE_LIMIT_REFILL_TOKENS", 1),
        RefillInterval: envDur("RATE_LIMIT_REFILL_INTERVAL", time.Second),
        TTL:            envDur("RATE_LIMIT_TTL", 10*time.Minute),
        KeyStrategy:    getenv("RATE_LIMIT_KEY_STRATEGY", KeyByIPRoute),
        Prefix:         getenv("RATE_LIMIT_PREFIX", "rl:users"),
        Debug:          envBool("RATE_LIMIT_DEBUG", false),
    }
    return cfg.normalize()
}

func (c RateLimitConfig) normalize() RateLimitConfig {
    c.Capacity = max(c.Capacity, 1)
    c.RefillTokens = max(c.RefillTokens, 1)
    if c.RefillInterval <= 0 {
        c.RefillInterval = time.Second
    }
    // an idle bucket must outlive several refills
    c.TTL = max(c.TTL, 5*c.RefillInterval)

    c.KeyStrategy = strings.ToLower(strings.TrimSpace(c.KeyStrategy))
    switch c.KeyStrategy {
    case KeyByIP, KeyByRoute, KeyByIPRoute:
    default:
        c.KeyStrategy = KeyByIPRoute
    }
    return c
}
