package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	RedisClient *redis.Client
	redisCtx    = context.Background()
)

// InitRedis connects the shared redis client used for caches,
// reset tokens and the rate limiter store
func InitRedis() error {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if err := RedisClient.Ping(redisCtx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}

	log.Println("✅ Redis connected:", addr)
	return nil
}

// SetToken stores a short-lived token value (password reset etc.)
func SetToken(key, value string, ttl time.Duration) error {
	return RedisClient.Set(redisCtx, key, value, ttl).Err()
}

// GetToken reads a token value, erroring when missing or expired
func GetToken(key string) (string, error) {
	return RedisClient.Get(redisCtx, key).Result()
}

// DeleteToken removes a consumed token
func DeleteToken(key string) error {
	return RedisClient.Del(redisCtx, key).Err()
}

// CacheGet reads a cached JSON payload; ok is false on miss
func CacheGet(key string) (string, bool) {
	if RedisClient == nil {
		return "", false
	}
	val, err := RedisClient.Get(redisCtx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// CacheSet stores a JSON payload with a TTL
func CacheSet(key, value string, ttl time.Duration) {
	if RedisClient == nil {
		return
	}
	if err := RedisClient.Set(redisCtx, key, value, ttl).Err(); err != nil {
		log.Printf("⚠️ cache set failed for %s: %v", key, err)
	}
}

// CacheInvalidate drops cached payloads by exact key
func CacheInvalidate(keys ...string) {
	if RedisClient == nil || len(keys) == 0 {
		return
	}
	if err := RedisClient.Del(redisCtx, keys...).Err(); err != nil {
		log.Printf("⚠️ cache invalidate failed: %v", err)
	}
}

// CacheInvalidatePrefix drops every cached payload whose key starts
// with the prefix
func CacheInvalidatePrefix(prefix string) {
	if RedisClient == nil {
		return
	}
	iter := RedisClient.Scan(redisCtx, 0, prefix+"*", 100).Iterator()
	for iter.Next(redisCtx) {
		if err := RedisClient.Del(redisCtx, iter.Val()).Err(); err != nil {
			log.Printf("⚠️ cache invalidate failed for %s: %v", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		log.Printf("⚠️ cache scan failed for %s*: %v", prefix, err)
	}
}
