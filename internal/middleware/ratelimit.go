package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pixelforge-studio/studio-api/internal/config"
	"github.com/pixelforge-studio/studio-api/internal/modules/serializer"
)

// LoginRateLimit caps login attempts per client IP over a fixed window.
// Access codes are short; without a cap the login endpoint is a guessing
// oracle. Redis being down never locks clients out.
func LoginRateLimit(cfg *config.Config, rdb *redis.Client, log *zap.Logger) gin.HandlerFunc {
	limit := cfg.Portal.LoginRateLimit
	window := time.Duration(cfg.Portal.LoginRateWindow) * time.Second
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = time.Minute
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := fmt.Sprintf("ratelimit:login:%s:%d", c.ClientIP(), time.Now().Unix()/int64(window.Seconds()))

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			log.Warn("login rate limit check failed", zap.Error(err))
			c.Next()
			return
		}
		if count == 1 {
			if err := rdb.Expire(ctx, key, window).Err(); err != nil {
				log.Warn("login rate limit expire failed", zap.Error(err))
			}
		}

		if count > int64(limit) {
			c.Header("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				serializer.Response{Code: http.StatusTooManyRequests, Msg: "too many login attempts"})
			return
		}
		c.Next()
	}
}
