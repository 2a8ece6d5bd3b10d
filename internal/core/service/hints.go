package service

import (
	"errors"

	"github.com/kzkiosk/kiosk-control/internal/core/domain"
)

const (
	hintNetwork       = "Network error: please try again."
	hintLoginRejected = "Could not enter master mode."
	hintGeneric       = "Something went wrong. Please try again."
)

// UserHint converts any error returned by the core into the inline message
// shown on the kiosk. A server-supplied detail is shown verbatim; a bare
// rejection falls back to a message for the operation that failed.
func UserHint(err error) string {
	if err == nil {
		return ""
	}

	var rej *domain.ServerRejection
	if errors.As(err, &rej) {
		if rej.Detail != "" {
			return rej.Detail
		}
		if errors.Is(err, domain.ErrLoginRejected) {
			return hintLoginRejected
		}
		return hintGeneric
	}
	var imp *domain.ImportRejectedError
	if errors.As(err, &imp) {
		return imp.Error()
	}

	switch {
	case errors.Is(err, domain.ErrEmptyToken):
		return "Enter or scan the master QR code."
	case errors.Is(err, domain.ErrTimeoutRange):
		return "Master timeout must be between 1 and 240 minutes."
	case errors.Is(err, domain.ErrMissingDate):
		return "Select a date."
	case errors.Is(err, domain.ErrInvalidDate):
		return "Dates must use the YYYY-MM-DD format."
	case errors.Is(err, domain.ErrDateRange):
		return "The start date must not be after the end date."
	case errors.Is(err, domain.ErrInvalidReportType):
		return "Unknown report type."
	case errors.Is(err, domain.ErrInvalidFormat):
		return "Unknown export format."
	case errors.Is(err, domain.ErrMalformedSku):
		return "The SKU fields do not form a valid code."
	case errors.Is(err, domain.ErrInvalidSku):
		return "Fill in every SKU field."
	case errors.Is(err, domain.ErrDuplicateSku):
		return "This SKU already exists."
	case errors.Is(err, domain.ErrSkuNotFound):
		return "SKU not found."
	case errors.Is(err, domain.ErrPermissionDenied):
		return "Available in master mode only."
	case errors.Is(err, domain.ErrStaleToken):
		return "Master session changed. Sign in again."
	case errors.Is(err, domain.ErrUploadUnavailable):
		return "Shift plan upload is not available on this kiosk."
	case errors.Is(err, domain.ErrNetwork):
		return hintNetwork
	}
	return hintGeneric
}
