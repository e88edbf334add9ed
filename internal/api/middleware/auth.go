package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fintrust/auth-service/internal/api/metrics"
	"github.com/fintrust/auth-service/internal/core/domain"
	"github.com/fintrust/auth-service/internal/core/ports"
)

const (
	principalKey = "principal"
	authErrorKey = "auth_error"

	bearerScheme    = "bearer"
	authorityPrefix = "ROLE_"
)

// Authenticate is the authorization gate. It runs on every request:
//   - no bearer credential (or wrong scheme) → the request stays anonymous;
//   - verification failure → the reason lands on the context and the request
//     stays anonymous, so public and protected routes share one gate;
//   - success → the role is re-resolved from the store (never trusted from
//     the token, so revocation takes effect without token revocation) and a
//     Principal is attached to the context.
//
// Rejecting anonymous requests is RequireAuth's job, not this one's.
func Authenticate(tokens ports.TokenProvider, roles ports.RoleRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return next(c)
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], bearerScheme) {
				return next(c)
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				c.Set(authErrorKey, err.Error())
				if errors.Is(err, domain.ErrTokenExpired) {
					metrics.TokenVerificationsTotal.WithLabelValues("expired").Inc()
				} else {
					metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				}
				return next(c)
			}

			role, err := roles.FindByID(c.Request().Context(), claims.RoleID)
			if err != nil {
				c.Set(authErrorKey, "role not found")
				metrics.TokenVerificationsTotal.WithLabelValues("role_not_found").Inc()
				return next(c)
			}

			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()
			c.Set(principalKey, &domain.Principal{
				UserID:     claims.UserID,
				Email:      claims.Email,
				IDDocument: claims.IDDocument,
				RoleID:     claims.RoleID,
				Authority:  authorityPrefix + role.Name,
			})
			return next(c)
		}
	}
}

// RequireAuth rejects requests that did not resolve a principal. The real
// rejection reason stays in server-side logs; the client always sees the
// same unauthorized signal.
func RequireAuth(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if PrincipalFrom(c) == nil {
				if reason, ok := c.Get(authErrorKey).(string); ok && reason != "" {
					log.Debug().
						Str("path", c.Path()).
						Str("reason", reason).
						Msg("request rejected: invalid credential")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}
			return next(c)
		}
	}
}

// PrincipalFrom returns the authenticated principal, or nil for anonymous
// requests.
func PrincipalFrom(c echo.Context) *domain.Principal {
	p, _ := c.Get(principalKey).(*domain.Principal)
	return p
}
