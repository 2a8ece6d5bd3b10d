package ports

import (
	"context"
	"io"

	"github.com/kzkiosk/kiosk-control/internal/core/domain"
)

// Transport ports for the kiosk server. Implementations return errors that
// wrap domain.ErrNetwork on transport failure and *domain.ServerRejection on
// non-2xx answers.

// MasterAPI covers master/login, master/logout and the master fields of the
// settings envelope.
type MasterAPI interface {
	MasterLogin(ctx context.Context, qrText string) (string, error)
	MasterLogout(ctx context.Context, reason domain.LogoutReason) error
	// CurrentMaster returns the server-side master id, empty when none.
	CurrentMaster(ctx context.Context) (string, error)
}

// SettingsAPI reads and writes the kiosk settings.
type SettingsAPI interface {
	GetSettings(ctx context.Context) (*domain.SettingsState, error)
	SaveSettings(ctx context.Context, s domain.Settings) (*domain.SettingsState, error)
}

// CatalogAPI manages SKU records.
type CatalogAPI interface {
	ListSku(ctx context.Context, query string, includeInactive bool) ([]domain.SkuRecord, error)
	CreateSku(ctx context.Context, rec domain.SkuRecord) (*domain.SkuRecord, error)
	UpdateSku(ctx context.Context, id, name string, isActive bool) (*domain.SkuRecord, error)
	// SkuCatalog is the unauthenticated operator-facing catalog.
	SkuCatalog(ctx context.Context) ([]domain.SkuRecord, error)
}

// ReportFile is a streamed report body. Callers must close Body.
type ReportFile struct {
	Filename    string
	ContentType string
	Body        io.ReadCloser
}

// ReportAPI requests report previews and exports.
type ReportAPI interface {
	Preview(ctx context.Context, q domain.ReportQuery) (domain.ReportRows, error)
	Export(ctx context.Context, q domain.ReportQuery, format domain.ExportFormat) (*ReportFile, error)
	SaveToUSB(ctx context.Context, q domain.ReportQuery, format domain.ExportFormat) (string, error)
	ShiftCSV(ctx context.Context, q domain.SingleDateQuery) (*ReportFile, error)
	WorkersCSV(ctx context.Context, q domain.SingleDateQuery) (*ReportFile, error)
}

// ShiftPlanAPI uploads shift plans. A 501 answer maps to
// domain.ErrUploadUnavailable.
type ShiftPlanAPI interface {
	ImportShiftPlan(ctx context.Context, filename string, r io.Reader) (*domain.ShiftPlanImportResult, error)
}
