package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/customer-desk/internal/core/domain"
)

// SessionState is the read side of the auth session consulted per request.
type SessionState interface {
	IsAuthenticated() bool
	Token() string
}

// RouteGuard decides whether a route may be shown to the caller.
type RouteGuard interface {
	Allows(name domain.RouteName, authenticated bool) bool
}

// SessionOption tunes RequireSession.
type SessionOption func(*sessionOptions)

type sessionOptions struct {
	bearerRequired bool
}

// WithBearerRequired rejects requests that do not present the session token.
func WithBearerRequired() SessionOption {
	return func(o *sessionOptions) { o.bearerRequired = true }
}

// RequireSession lets a request through only when the guard allows route for
// the current session. When an Authorization header is sent it must carry the
// session token as a bearer credential.
func RequireSession(session SessionState, guard RouteGuard, route domain.RouteName, opts ...SessionOption) echo.MiddlewareFunc {
	var o sessionOptions
	for _, opt := range opts {
		opt(&o)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !guard.Allows(route, session.IsAuthenticated()) {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				if o.bearerRequired && session.IsAuthenticated() {
					return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
				}
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(session.Token())) != 1 {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			return next(c)
		}
	}
}
