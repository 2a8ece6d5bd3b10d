package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/kzkiosk/kiosk-control/internal/core/domain"
	"github.com/kzkiosk/kiosk-control/internal/core/ports"
	"github.com/kzkiosk/kiosk-control/internal/core/skucodec"
	"github.com/kzkiosk/kiosk-control/internal/pkg/metrics"
)

// MasterGate is the part of PermissionGate the gated services depend on.
type MasterGate interface {
	RequireMaster() error
	IsMaster() bool
}

// CatalogService keeps the CatalogIndex in sync with the kiosk server and
// performs master-only catalog edits.
type CatalogService struct {
	api      ports.CatalogAPI
	index    *CatalogIndex
	codec    *skucodec.Codec
	gate     MasterGate
	cache    ports.CatalogCache
	validate *validator.Validate
	log      zerolog.Logger
}

// NewCatalogService wires the catalog. cache may be nil.
func NewCatalogService(api ports.CatalogAPI, index *CatalogIndex, codec *skucodec.Codec, gate MasterGate, cache ports.CatalogCache, log zerolog.Logger) *CatalogService {
	return &CatalogService{
		api:      api,
		index:    index,
		codec:    codec,
		gate:     gate,
		cache:    cache,
		validate: validator.New(),
		log:      log,
	}
}

// Refresh reloads the index: the full catalog (inactive records included) in
// master mode, the operator catalog otherwise. Only the operator catalog is
// cached. On failure the index is left unchanged.
func (s *CatalogService) Refresh(ctx context.Context) error {
	if s.gate.IsMaster() {
		records, err := s.api.ListSku(ctx, "", true)
		if err != nil {
			return fmt.Errorf("refresh catalog: %w", err)
		}
		s.load(records)
		return nil
	}

	records, err := s.api.SkuCatalog(ctx)
	if err != nil {
		return fmt.Errorf("refresh catalog: %w", err)
	}
	s.load(records)
	s.store(ctx, records)
	return nil
}

// Seed loads the operator catalog, falling back to the cached copy when the
// server cannot be reached.
func (s *CatalogService) Seed(ctx context.Context) error {
	records, err := s.api.SkuCatalog(ctx)
	if err == nil {
		s.load(records)
		s.store(ctx, records)
		return nil
	}
	if s.cache == nil || !errors.Is(err, domain.ErrNetwork) {
		return fmt.Errorf("seed catalog: %w", err)
	}

	cached, cacheErr := s.cache.LoadCatalog(ctx)
	if cacheErr != nil || cached == nil {
		if cacheErr != nil {
			s.log.Warn().Err(cacheErr).Msg("catalog cache unavailable")
		}
		return fmt.Errorf("seed catalog: %w", err)
	}
	s.log.Warn().Err(err).Int("records", len(cached)).Msg("kiosk server unreachable, using cached catalog")
	s.load(cached)
	return nil
}

// Create registers a new SKU built from draft. The canonical code is derived
// here; a draft that does not encode to a valid code is rejected locally.
func (s *CatalogService) Create(ctx context.Context, draft domain.SkuDraft) (*domain.SkuRecord, error) {
	if err := s.gate.RequireMaster(); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(draft); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidSku, describeValidation(err))
	}

	code, ok := s.codec.Encode(draft.ModelCode, draft.WidthCm, draft.FabricCode, draft.ColorCode)
	if !ok || !s.codec.Validate(code) {
		return nil, fmt.Errorf("%w: %q", domain.ErrMalformedSku, code)
	}
	if _, exists := s.index.FindExact(code); exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateSku, code)
	}

	parts, _ := s.codec.Parse(code)
	created, err := s.api.CreateSku(ctx, domain.SkuRecord{
		SkuCode:    code,
		ModelCode:  parts.Group,
		WidthCm:    draft.WidthCm,
		FabricCode: parts.Model,
		ColorCode:  fmt.Sprintf("%02d", parts.ColorNumber),
		Name:       strings.TrimSpace(draft.Name),
		IsActive:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("create sku: %w", err)
	}
	s.log.Info().Str("sku", code).Msg("sku created")

	if err := s.Refresh(ctx); err != nil {
		s.log.Warn().Err(err).Msg("catalog refresh after create failed")
	}
	return created, nil
}

// Update changes the name and active flag of an existing SKU. The code
// itself is immutable.
func (s *CatalogService) Update(ctx context.Context, id, name string, isActive bool) (*domain.SkuRecord, error) {
	if err := s.gate.RequireMaster(); err != nil {
		return nil, err
	}
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)
	if id == "" || name == "" {
		return nil, fmt.Errorf("%w: id and name are required", domain.ErrInvalidSku)
	}

	updated, err := s.api.UpdateSku(ctx, id, name, isActive)
	if err != nil {
		return nil, fmt.Errorf("update sku: %w", err)
	}
	s.log.Info().Str("sku_id", id).Bool("is_active", isActive).Msg("sku updated")

	if err := s.Refresh(ctx); err != nil {
		s.log.Warn().Err(err).Msg("catalog refresh after update failed")
	}
	return updated, nil
}

func (s *CatalogService) Search(query string, includeInactive bool) []domain.SkuRecord {
	return s.index.Search(query, includeInactive)
}

func (s *CatalogService) FindExact(code string) (domain.SkuRecord, bool) {
	return s.index.FindExact(code)
}

func (s *CatalogService) Groups() []domain.CatalogGroup {
	return s.index.GroupForDisplay()
}

func (s *CatalogService) load(records []domain.SkuRecord) {
	s.index.Load(records)
	unparsable := s.index.Unparsable()
	metrics.CatalogRecords.WithLabelValues("total").Set(float64(len(records)))
	metrics.CatalogRecords.WithLabelValues("unparsable").Set(float64(unparsable))
	if unparsable > 0 {
		s.log.Debug().Int("unparsable", unparsable).Msg("catalog contains legacy sku codes")
	}
}

func (s *CatalogService) store(ctx context.Context, records []domain.SkuRecord) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SaveCatalog(ctx, records); err != nil {
		s.log.Warn().Err(err).Msg("catalog cache write failed")
	}
}

func describeValidation(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error()
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, strings.ToLower(fe.Field())+" "+fe.Tag())
	}
	return strings.Join(msgs, ", ")
}
