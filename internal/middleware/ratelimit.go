package middleware

import (
	"log"
	"net/http"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// AIRateLimiter throttles the AI proxy endpoints per client IP. When a Redis
// address is configured the counters are shared across instances, otherwise
// an in-memory store is used.
func AIRateLimiter(redisAddr string, limit uint, window time.Duration) gin.HandlerFunc {
	var store ratelimit.Store
	if redisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
		store = ratelimit.RedisStore(&ratelimit.RedisOptions{
			RedisClient: rdb,
			Rate:        window,
			Limit:       limit,
		})
		log.Printf("rate limiter using redis store addr=%s", redisAddr)
	} else {
		store = ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
			Rate:  window,
			Limit: limit,
		})
	}

	return ratelimit.RateLimiter(store, &ratelimit.Options{
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
		ErrorHandler: func(c *gin.Context, info ratelimit.Info) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":    "too many requests",
				"retry_in": time.Until(info.ResetTime).String(),
			})
		},
	})
}
