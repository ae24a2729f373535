package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/socialite-app/backend/internal/models"
)

// getUserIDFromContext returns the authenticated user's ID from the JWT
// claims stored by the auth middleware, or 0 when unauthenticated.
func getUserIDFromContext(c echo.Context) uint {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return 0
	}
	return claims.UserID
}
