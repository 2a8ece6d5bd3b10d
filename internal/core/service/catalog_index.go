package service

import (
	"cmp"
	"slices"
	"strings"
	"sync"

	"github.com/kzkiosk/kiosk-control/internal/core/domain"
	"github.com/kzkiosk/kiosk-control/internal/core/skucodec"
)

// CatalogIndex is the in-memory catalog with its grouped display view.
// Load replaces everything; there is no incremental merge.
type CatalogIndex struct {
	codec *skucodec.Codec

	mu         sync.RWMutex
	records    []domain.SkuRecord
	byCode     map[string]int
	groups     []domain.CatalogGroup
	unparsable int
}

func NewCatalogIndex(codec *skucodec.Codec) *CatalogIndex {
	return &CatalogIndex{codec: codec, byCode: map[string]int{}}
}

// Load replaces the cache with records and rebuilds the grouped view.
func (ix *CatalogIndex) Load(records []domain.SkuRecord) {
	recs := slices.Clone(records)
	byCode := make(map[string]int, len(recs))
	for i, r := range recs {
		if _, dup := byCode[r.SkuCode]; !dup {
			byCode[r.SkuCode] = i
		}
	}
	groups, unparsable := buildGroups(ix.codec, recs)

	ix.mu.Lock()
	ix.records = recs
	ix.byCode = byCode
	ix.groups = groups
	ix.unparsable = unparsable
	ix.mu.Unlock()
}

// FindExact returns the record whose code equals code.
func (ix *CatalogIndex) FindExact(code string) (domain.SkuRecord, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	i, ok := ix.byCode[code]
	if !ok {
		return domain.SkuRecord{}, false
	}
	return ix.records[i], true
}

// Search returns records whose code or name contains query, ignoring case.
// Inactive records are skipped unless includeInactive is set. An empty query
// matches everything.
func (ix *CatalogIndex) Search(query string, includeInactive bool) []domain.SkuRecord {
	q := strings.ToLower(strings.TrimSpace(query))

	ix.mu.RLock()
	defer ix.mu.RUnlock()
	out := make([]domain.SkuRecord, 0)
	for _, r := range ix.records {
		if !r.IsActive && !includeInactive {
			continue
		}
		if q == "" ||
			strings.Contains(strings.ToLower(r.SkuCode), q) ||
			strings.Contains(strings.ToLower(r.Name), q) {
			out = append(out, r)
		}
	}
	return out
}

// GroupForDisplay returns the grouped view built at the last Load.
func (ix *CatalogIndex) GroupForDisplay() []domain.CatalogGroup {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	out := make([]domain.CatalogGroup, len(ix.groups))
	for i, g := range ix.groups {
		out[i] = domain.CatalogGroup{GroupKey: g.GroupKey, Entries: slices.Clone(g.Entries)}
	}
	return out
}

// Records returns a copy of the cached records in load order.
func (ix *CatalogIndex) Records() []domain.SkuRecord {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return slices.Clone(ix.records)
}

func (ix *CatalogIndex) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.records)
}

// Unparsable counts records filed under domain.FallbackGroupKey.
func (ix *CatalogIndex) Unparsable() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.unparsable
}

type parsedRecord struct {
	rec   domain.SkuRecord
	parts domain.SkuParts
	ok    bool
}

// buildGroups partitions records by model group, sorted by key. Entries are
// ordered by (size, model, color); records that fail to parse all land in
// the fallback group and keep their relative order.
func buildGroups(codec *skucodec.Codec, records []domain.SkuRecord) ([]domain.CatalogGroup, int) {
	byKey := map[string][]parsedRecord{}
	unparsable := 0
	for _, r := range records {
		parts, ok := codec.Parse(r.SkuCode)
		key := parts.Group
		if !ok {
			key = domain.FallbackGroupKey
			unparsable++
		}
		byKey[key] = append(byKey[key], parsedRecord{rec: r, parts: parts, ok: ok})
	}

	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	groups := make([]domain.CatalogGroup, 0, len(keys))
	for _, k := range keys {
		entries := byKey[k]
		slices.SortStableFunc(entries, compareParsed)

		recs := make([]domain.SkuRecord, len(entries))
		for i, e := range entries {
			recs[i] = e.rec
		}
		groups = append(groups, domain.CatalogGroup{GroupKey: k, Entries: recs})
	}
	return groups, unparsable
}

func compareParsed(a, b parsedRecord) int {
	if !a.ok || !b.ok {
		return 0
	}
	return cmp.Or(
		cmp.Compare(a.parts.SizeNumber, b.parts.SizeNumber),
		strings.Compare(a.parts.Model, b.parts.Model),
		cmp.Compare(a.parts.ColorNumber, b.parts.ColorNumber),
	)
}
