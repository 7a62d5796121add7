package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const (
	rateLimitPeriod = 1 * time.Minute
	rateLimitCount  = 10 // 1分あたりの許容回数
)

// IPごとの単純な固定ウィンドウのレート制限。
// clientがnil（Redis未設定）なら素通しする。
func RateLimiter(client *redis.Client) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if client == nil {
				return next(c)
			}

			key := "rate_limit:" + c.RealIP()

			count, err := client.Incr(c.Request().Context(), key).Result()
			if err != nil {
				//Redisが落ちていても認証系を止めない
				return next(c)
			}

			//ウィンドウ先頭でだけ期限を付ける
			if count == 1 {
				client.Expire(c.Request().Context(), key, rateLimitPeriod)
			}

			if count > rateLimitCount {
				return c.JSON(http.StatusTooManyRequests, errorJSON("too many requests"))
			}

			return next(c)
		}
	}
}
