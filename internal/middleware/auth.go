package middleware

import (
	"github.com/labstack/echo/v4"

	"cakestory-client/internal/client"
)

// AuthMiddleware seeds the customer identity from the configured
// access token into each request context. The token comes from the
// CakeStory backend at login; this side only reads the claim, the
// backend re-verifies the signature on every API call.
func AuthMiddleware(accessToken string) echo.MiddlewareFunc {
	customerID, err := client.CustomerIDFromToken(accessToken)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err == nil {
				c.Set("customer_id", customerID)
			}
			return next(c)
		}
	}
}
