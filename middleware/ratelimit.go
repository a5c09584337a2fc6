package middleware

import (
	"net/http"
	"os"

	"hotelx-backend/logger"
	"hotelx-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RateLimiter throttles by client IP. The rate comes from RATE_LIMIT
// (limiter format, e.g. "100-M") and defaults to 100 requests per minute.
func RateLimiter() gin.HandlerFunc {
	rateStr := os.Getenv("RATE_LIMIT")
	if rateStr == "" {
		rateStr = "100-M"
	}
	rate, err := limiter.NewRateFromFormatted(rateStr)
	if err != nil {
		logger.ErrorLogger.Errorf("invalid RATE_LIMIT %q, falling back to 100-M: %v", rateStr, err)
		rate, _ = limiter.NewRateFromFormatted("100-M")
	}

	instance := limiter.New(memory.NewStore(), rate)

	return func(c *gin.Context) {
		context, err := instance.Get(c.Request.Context(), c.ClientIP())
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "rate limiter failure")
			c.Abort()
			return
		}
		if context.Reached {
			utils.JSONError(c, http.StatusTooManyRequests, "rate limit exceeded")
			c.Abort()
			return
		}
		c.Next()
	}
}
