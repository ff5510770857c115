package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"apartment-backend/internal/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// AuthTTL is how long a verified username/secret pair skips secret verification
const AuthTTL = 15 * time.Minute

var client *redis.Client

// Init connects to Redis. Without an address, or when the server cannot be
// reached, the cache stays disabled and every lookup misses.
func Init(cfg *config.Config) error {
	if cfg.Redis.Addr == "" {
		zap.L().Info("[Cache] Redis not configured, credential cache disabled")
		return nil
	}

	c := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		c.Close()
		return err
	}
	client = c
	zap.L().Info("[Cache] Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	return nil
}

// Close releases the connection, if any
func Close() {
	if client != nil {
		client.Close()
		client = nil
	}
}

// hashCredentials creates a hash of username+password for cache key
func hashCredentials(username, password string) string {
	h := sha256.New()
	h.Write([]byte(username + ":" + password))
	return "auth:" + hex.EncodeToString(h.Sum(nil))[:32]
}

// GetCachedAuth checks if credentials were verified recently
func GetCachedAuth(ctx context.Context, username, password string) bool {
	if client == nil {
		return false
	}
	cached, err := client.Get(ctx, hashCredentials(username, password)).Result()
	return err == nil && cached == username
}

// CacheAuth remembers a successful verification for AuthTTL
func CacheAuth(ctx context.Context, username, password string) {
	if client == nil {
		return
	}
	client.Set(ctx, hashCredentials(username, password), username, AuthTTL)
}

// InvalidateAuth removes cached auth for a user (on password change)
func InvalidateAuth(ctx context.Context, username, password string) {
	if client == nil {
		return
	}
	client.Del(ctx, hashCredentials(username, password))
}

// IsHealthy returns true if Redis connection is working
func IsHealthy(ctx context.Context) bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}

// Enabled reports whether a Redis connection was established
func Enabled() bool {
	return client != nil
}
