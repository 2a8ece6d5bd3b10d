package ports

import (
	"context"
	"io"
	"time"

	"github.com/kzkiosk/kiosk-control/internal/core/domain"
)

// SessionService is the master-session use case consumed by the local API.
type SessionService interface {
	Login(ctx context.Context, token string) (string, error)
	Logout(ctx context.Context, reason domain.LogoutReason)
	Active(ctx context.Context, freshness domain.Freshness) (bool, error)
	Session() domain.MasterSession
	MasterID() string
	ExpiresAt() time.Time
}

// PermissionService exposes the permission gate.
type PermissionService interface {
	Load(ctx context.Context) error
	Save(ctx context.Context, s domain.Settings) error
	CurrentSnapshot() domain.PermissionSnapshot
	Mutable() bool
	Mask(controls domain.ControlSet) map[domain.Capability]bool
	Settings() (domain.Settings, bool)
	RequireMaster() error
}

// CatalogService exposes the SKU catalog.
type CatalogService interface {
	Refresh(ctx context.Context) error
	Create(ctx context.Context, draft domain.SkuDraft) (*domain.SkuRecord, error)
	Update(ctx context.Context, id, name string, isActive bool) (*domain.SkuRecord, error)
	Search(query string, includeInactive bool) []domain.SkuRecord
	Groups() []domain.CatalogGroup
}

// ReportService issues master-only report requests.
type ReportService interface {
	Preview(ctx context.Context, q domain.ReportQuery) (domain.ReportRows, error)
	Export(ctx context.Context, q domain.ReportQuery, format domain.ExportFormat) (*ReportFile, error)
	SaveToUSB(ctx context.Context, q domain.ReportQuery, format domain.ExportFormat) (string, error)
	ShiftCSV(ctx context.Context, q domain.SingleDateQuery) (*ReportFile, error)
	WorkersCSV(ctx context.Context, q domain.SingleDateQuery) (*ReportFile, error)
}

// ShiftPlanService uploads shift plans.
type ShiftPlanService interface {
	Import(ctx context.Context, filename string, r io.Reader) (*domain.ShiftPlanImportResult, error)
}
