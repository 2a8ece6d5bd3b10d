package ports

import (
	"context"

	"github.com/kzkiosk/kiosk-control/internal/core/domain"
)

// SessionJournal receives master-session transitions. Record must not block
// the caller.
type SessionJournal interface {
	Record(event domain.SessionEvent)
}

// JournalRepository persists audit events.
type JournalRepository interface {
	InsertEvent(ctx context.Context, event *domain.SessionEvent) error
}

// CatalogCache keeps the last catalog successfully read from the server.
type CatalogCache interface {
	SaveCatalog(ctx context.Context, records []domain.SkuRecord) error
	// LoadCatalog returns (nil, nil) when nothing is cached.
	LoadCatalog(ctx context.Context) ([]domain.SkuRecord, error)
}
