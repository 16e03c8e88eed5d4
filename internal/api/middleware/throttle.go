package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const throttleKeyPrefix = "reviewhub:auth:throttle"

// AuthThrottle is a fixed-window per-IP counter backed by redis, meant for
// the anonymous auth endpoints where code guessing lives. It fails open: a
// redis outage must not lock registration out.
func AuthThrottle(client *redis.Client, log *slog.Logger, window time.Duration, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
		if err != nil {
			ip = c.Request.RemoteAddr
		}
		key := fmt.Sprintf("%s:%s", throttleKeyPrefix, ip)

		ctx := c.Request.Context()
		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			log.Error("auth throttle unavailable", "error", err.Error())
			c.Next()
			return
		}
		if count == 1 {
			if err := client.Expire(ctx, key, window).Err(); err != nil {
				log.Error("auth throttle expire failed", "error", err.Error())
			}
		}

		if count > int64(limit) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, try again later"})
			c.Abort()
			return
		}
		c.Next()
	}
}
