package auth

import (
	"github.com/labstack/echo/v4"
)

// publicPaths lists URL paths that bypass authentication. These are
// infrastructure endpoints (liveness and database health probes) that must
// answer without credentials.
var publicPaths = map[string]bool{
	"/health":    true,
	"/health/db": true,
}

// AuthSkipper returns true for requests whose path should skip
// authentication. JWTMiddleware consults it before demanding a bearer token
// so health probes stay reachable in production.
func AuthSkipper(c echo.Context) bool {
	return publicPaths[c.Path()]
}

// IsPublicPath reports whether the given path is a public infrastructure
// endpoint that bypasses auth.
func IsPublicPath(path string) bool {
	return publicPaths[path]
}
