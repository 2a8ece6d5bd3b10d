package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// TokenVerifier checks a UI token and returns the master id it was issued
// for.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// MasterIdentity reports the master id of the current session, empty when
// anonymous.
type MasterIdentity interface {
	MasterID() string
}

// Auth validates the UI token and checks that it belongs to the current
// master session. The master id is injected into the context as "master_id".
func Auth(tokens TokenVerifier, session MasterIdentity) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			masterID, err := tokens.Verify(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if masterID != session.MasterID() {
				return echo.NewHTTPError(http.StatusUnauthorized, "master session changed")
			}

			c.Set("master_id", masterID)

			return next(c)
		}
	}
}
