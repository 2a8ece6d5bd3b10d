package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kzkiosk/kiosk-control/internal/core/domain"
	"github.com/kzkiosk/kiosk-control/internal/core/service"
)

// ErrorResponse is the canonical error envelope for all API errors. Error
// carries the hint shown inline on the kiosk.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusFor maps core errors to HTTP status codes. Unknown errors map to 500.
func StatusFor(err error) int {
	var rej *domain.ServerRejection
	if errors.As(err, &rej) {
		if errors.Is(err, domain.ErrSkuNotFound) {
			return http.StatusNotFound
		}
		if errors.Is(err, domain.ErrUploadUnavailable) {
			return http.StatusNotImplemented
		}
		if rej.Status >= 400 && rej.Status < 500 {
			return rej.Status
		}
		return http.StatusBadGateway
	}
	var imp *domain.ImportRejectedError
	if errors.As(err, &imp) {
		return http.StatusUnprocessableEntity
	}

	switch {
	case errors.Is(err, domain.ErrEmptyToken),
		errors.Is(err, domain.ErrTimeoutRange),
		errors.Is(err, domain.ErrMissingDate),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrDateRange),
		errors.Is(err, domain.ErrInvalidReportType),
		errors.Is(err, domain.ErrInvalidFormat),
		errors.Is(err, domain.ErrMalformedSku),
		errors.Is(err, domain.ErrInvalidSku):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrDuplicateSku):
		return http.StatusConflict
	case errors.Is(err, domain.ErrSkuNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrStaleToken):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrUploadUnavailable):
		return http.StatusNotImplemented
	case errors.Is(err, domain.ErrNetwork):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// writeError renders err with its status and user hint.
func writeError(c echo.Context, err error) error {
	return c.JSON(StatusFor(err), ErrorResponse{Error: service.UserHint(err)})
}
