package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRoles enforces role-based access: the principal's authority must
// match one of the given role names. Runs after RequireAuth.
func RequireRoles(roleNames ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roleNames))
	for _, name := range roleNames {
		allowed[authorityPrefix+name] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := PrincipalFrom(c)
			if p == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}
			if _, ok := allowed[p.Authority]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
