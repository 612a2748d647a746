package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// userID renders the authenticated user's id for cache and rate-limit
// keys. Requests outside the JWT chain share the "guest" identity.
func userID(c echo.Context) string {
	switch v := c.Get("user_id").(type) {
	case nil:
		return "guest"
	case string:
		if v == "" {
			return "guest"
		}
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	case uint64:
		return fmt.Sprintf("%d", v)
	case int64:
		return fmt.Sprintf("%d", v)
	default:
		return "guest"
	}
}
