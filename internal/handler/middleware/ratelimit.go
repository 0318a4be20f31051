package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"therapy-booking/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

var errRateLimited = errors.New("rate limit exceeded")

type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	FailOpen() bool
	Window() time.Duration
}

// RateLimit keys by route and client IP. A nil limiter lets every request through.
func RateLimit(limiter RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		ok, err := limiter.Allow(c.Request.Context(), c.FullPath()+":"+c.ClientIP())
		if err != nil {
			slog.Warn("rate limiter unavailable", "error", err.Error(), "path", c.FullPath())
			if limiter.FailOpen() {
				c.Next()
				return
			}
			httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Rate limiter unavailable", nil)
			return
		}
		if !ok {
			c.Header("Retry-After", strconv.Itoa(int(limiter.Window().Seconds())))
			httperr.AbortWithError(c, http.StatusTooManyRequests, errRateLimited, "Too many requests", nil)
			return
		}
		c.Next()
	}
}
