package middleware

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/mpfops/roster/internal/config"
)

// LoginRateLimit applies a fixed-window counter per client IP to login
// submissions. Only POSTs are counted; rendering the form stays free. When
// Redis is unavailable or the limiter is disabled, requests pass through
// unchanged — availability of the app wins over brute-force protection.
func LoginRateLimit(cfg config.LoginRateConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodPost {
				return next(c)
			}
			ip := c.RealIP()
			if ip == "" {
				ip = "unknown"
			}
			key := cfg.Prefix + ":ip:" + ip
			ctx := c.Request().Context()

			n, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				c.Logger().Warnf("login limiter: redis error for key=%s: %v", key, err)
				return next(c)
			}
			if n == 1 {
				// First hit of the window owns the expiry.
				if err := rdb.Expire(ctx, key, cfg.Window).Err(); err != nil {
					c.Logger().Warnf("login limiter: expire failed for key=%s: %v", key, err)
				}
			}
			if n > int64(cfg.MaxAttempts) {
				ttl, err := rdb.TTL(ctx, key).Result()
				retry := int(cfg.Window.Seconds())
				if err == nil && ttl > 0 {
					retry = int(ttl.Seconds())
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(retry))
				return c.String(http.StatusTooManyRequests,
					"Too many login attempts. Try again shortly.")
			}
			return next(c)
		}
	}
}
