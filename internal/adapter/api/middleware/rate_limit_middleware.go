package middleware

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"luxuryline/internal/infrastructure/ratelimit"
	"luxuryline/pkg/errors"
	"luxuryline/pkg/logger"
	"luxuryline/pkg/response"
)

// RateLimit refuses requests once the caller's IP runs out of tokens.
func RateLimit(limiter *ratelimit.RateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			allowed, wait := limiter.Allow(ip)
			if !allowed {
				retryAfter := int(math.Ceil(wait.Seconds()))
				if retryAfter < 1 {
					retryAfter = 1
				}
				logger.WithFields(logger.Fields{
					"ip":          ip,
					"path":        c.Path(),
					"retry_after": retryAfter,
				}).Warn("Rate limit exceeded")

				c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
				return response.Error(c, errors.TooManyRequests("Rate limit exceeded", retryAfter))
			}

			return next(c)
		}
	}
}

// StartRateLimitCleanup forgets idle visitors every interval until ctx is done.
func StartRateLimitCleanup(ctx context.Context, limiter *ratelimit.RateLimiter, interval, idle time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if removed := limiter.Cleanup(idle); removed > 0 {
					logger.Debug("Rate limiter forgot %d idle visitors", removed)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}
