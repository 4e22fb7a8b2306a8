package config

import (
    "context"
    "crypto/tls"
    "net"
    "os"
    "time"

    "github.com/redis/go-redis/v9"
)

const redisPingTimeout = 2 * time.Second

// RedisOptions describes the rate limiter's Redis server:
//   REDIS_ADDR      host:port, default localhost:6379
//   REDIS_HOST      with REDIS_PORT, overrides REDIS_ADDR
//   REDIS_PASSWORD  optional
//   REDIS_DB        database index; unparsable values select 0
//   REDIS_TLS       on/off switch, TLS 1.2 minimum
func RedisOptions() *redis.Options {
    opts := &redis.Options{
        Addr:     getenv("REDIS_ADDR", "localhost:6379"),
        Password: os.Getenv("REDIS_PASSWORD"),
        DB:       envInt("REDIS_DB", 0),
    }
    if host, port := os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT"); host != "" && port != "" {
        opts.Addr = net.JoinHostPort(host, port)
    }
    if envBool("REDIS_TLS", false) {
        opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
    }
    return opts
}

// NewRedisClient returns a client for RedisOptions, or nil when the server
// does not answer PING in time.  Callers treat nil as "no rate limiting".
func NewRedisClient(ctx context.Context) *redis.Client {
    client := redis.NewClient(RedisOptions())

    ctx, cancel := context.WithTimeout(ctx, redisPingTimeout)
    defer cancel()
    if err := client.Ping(ctx).Err(); err != nil {
        _ = client.Close()
        return nil
    }
    return client
}
