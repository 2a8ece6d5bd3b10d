package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// MasterGate reports whether master mode is active.
type MasterGate interface {
	RequireMaster() error
}

// MasterOnly rejects requests while master mode is inactive.
func MasterOnly(gate MasterGate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := gate.RequireMaster(); err != nil {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "Available in master mode only."})
			}
			return next(c)
		}
	}
}
