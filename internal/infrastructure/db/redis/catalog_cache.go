package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kzkiosk/kiosk-control/internal/core/domain"
	"github.com/kzkiosk/kiosk-control/internal/core/ports"
)

const (
	catalogKey = "kiosk:catalog"
	catalogTTL = 7 * 24 * time.Hour
)

// CatalogCache keeps the last catalog read from the kiosk server so the
// kiosk can start while the server is unreachable.
type CatalogCache struct {
	client *redis.Client
}

var _ ports.CatalogCache = (*CatalogCache)(nil)

// NewCatalogCache creates a CatalogCache wrapping the given Redis client.
func NewCatalogCache(client *redis.Client) *CatalogCache {
	return &CatalogCache{client: client}
}

// SaveCatalog replaces the cached catalog.
func (c *CatalogCache) SaveCatalog(ctx context.Context, records []domain.SkuRecord) error {
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("catalog cache encode: %w", err)
	}
	if err := c.client.Set(ctx, catalogKey, payload, catalogTTL).Err(); err != nil {
		return fmt.Errorf("catalog cache write: %w", err)
	}
	return nil
}

// LoadCatalog returns the cached catalog, or nil when nothing is cached.
func (c *CatalogCache) LoadCatalog(ctx context.Context) ([]domain.SkuRecord, error) {
	payload, err := c.client.Get(ctx, catalogKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("catalog cache read: %w", err)
	}

	var records []domain.SkuRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("catalog cache decode: %w", err)
	}
	return records, nil
}
