package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors are raised before any network call.
var (
	ErrEmptyToken        = errors.New("master token is empty")
	ErrTimeoutRange      = errors.New("master session timeout must be within 1..240 minutes")
	ErrMissingDate       = errors.New("report date is required")
	ErrInvalidDate       = errors.New("report date must be YYYY-MM-DD")
	ErrDateRange         = errors.New("report start date is after end date")
	ErrInvalidReportType = errors.New("unknown report type")
	ErrInvalidFormat     = errors.New("unknown export format")
	ErrMalformedSku      = errors.New("sku code does not match the canonical format")
	ErrInvalidSku        = errors.New("invalid sku fields")
	ErrDuplicateSku      = errors.New("sku already exists")
)

var ErrSkuNotFound = errors.New("sku not found")
var ErrPermissionDenied = errors.New("master mode required")
var ErrStaleToken = errors.New("master token does not belong to the current session")

// ErrNetwork wraps every transport failure talking to the kiosk server.
var ErrNetwork = errors.New("kiosk server unreachable")

// ErrServerRejection matches any *ServerRejection via errors.Is.
var ErrServerRejection = errors.New("rejected by kiosk server")

// ErrLoginRejected marks a master login the server refused. It wraps the
// underlying *ServerRejection.
var ErrLoginRejected = errors.New("master login rejected")

// ErrUploadUnavailable is returned when the server answers 501 to a
// shift-plan upload.
var ErrUploadUnavailable = errors.New("shift plan upload is not available on the server")

// ServerRejection is a non-2xx answer from the kiosk server. Detail carries
// the server-supplied message, if any; Errors the row-level messages some
// endpoints return instead.
type ServerRejection struct {
	Status int
	Detail string
	Errors []string
}

func (e *ServerRejection) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("kiosk server returned %d", e.Status)
	}
	return fmt.Sprintf("kiosk server returned %d: %s", e.Status, e.Detail)
}

func (e *ServerRejection) Is(target error) bool {
	return target == ErrServerRejection
}

// ImportRejectedError lists the row errors reported for a shift-plan upload.
type ImportRejectedError struct {
	Errors []string
}

func (e *ImportRejectedError) Error() string {
	return "shift plan rejected: " + strings.Join(e.Errors, "; ")
}
