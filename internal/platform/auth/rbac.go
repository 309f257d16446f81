package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Roles recognised across the clinic API.
const (
	RoleAdmin        = "admin"
	RolePsychologist = "psychologist"
	RoleReceptionist = "receptionist"
)

// RequireRole gates a route group to the listed roles. Admin always passes.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := RoleFromContext(c.Request().Context())
			if role == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "no role on request")
			}
			if role == RoleAdmin {
				return next(c)
			}
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
			}
			return next(c)
		}
	}
}
