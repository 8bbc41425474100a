package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"civicport/internal/infrastructure/ratelimit"
	"civicport/pkg/errors"
	"civicport/pkg/response"
)

// SubmitRateLimit guards the wizard submit endpoint with the per-user
// daily cap.
func SubmitRateLimit(limiter *ratelimit.SubmissionLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, ok := c.Get("uid").(string)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}

			allowed, retryAfter, err := limiter.Allow(c.Request().Context(), uid)
			if err != nil {
				return response.Error(c, errors.Internal("Rate limiter unavailable", err))
			}
			if !allowed {
				c.Response().Header().Set("Retry-After", fmt.Sprintf("%d", int(retryAfter.Seconds())))
				return response.Error(c, errors.TooManyRequests("Daily submission limit reached"))
			}
			return next(c)
		}
	}
}
