package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	ginlimiter "github.com/ulule/limiter/v3/drivers/middleware/gin"
	memory "github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/hawrami/events-iraq-backend/utils"
)

// RateLimiter limits requests per client IP. When Redis is available the
// counters are shared across instances; otherwise an in-memory store is used.
func RateLimiter() gin.HandlerFunc {
	rate := limiter.Rate{
		Period: 1 * time.Minute,
		Limit:  100,
	}

	var store limiter.Store
	if utils.RedisClient != nil {
		s, err := redisstore.NewStoreWithOptions(utils.RedisClient, limiter.StoreOptions{
			Prefix: "ratelimit",
		})
		if err != nil {
			log.Printf("⚠️ Redis rate limit store unavailable, falling back to memory: %v", err)
			store = memory.NewStore()
		} else {
			store = s
		}
	} else {
		store = memory.NewStore()
	}

	instance := limiter.New(store, rate)

	return ginlimiter.NewMiddleware(instance)
}
