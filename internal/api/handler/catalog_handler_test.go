package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/kzkiosk/kiosk-control/internal/core/domain"
)

type stubCatalogService struct {
	refreshErr error
	createFn   func(ctx context.Context, draft domain.SkuDraft) (*domain.SkuRecord, error)
	updateFn   func(ctx context.Context, id, name string, isActive bool) (*domain.SkuRecord, error)
	records    []domain.SkuRecord
	groups     []domain.CatalogGroup

	lastQuery           string
	lastIncludeInactive bool
}

func (s *stubCatalogService) Refresh(context.Context) error { return s.refreshErr }

func (s *stubCatalogService) Create(ctx context.Context, draft domain.SkuDraft) (*domain.SkuRecord, error) {
	return s.createFn(ctx, draft)
}

func (s *stubCatalogService) Update(ctx context.Context, id, name string, isActive bool) (*domain.SkuRecord, error) {
	return s.updateFn(ctx, id, name, isActive)
}

func (s *stubCatalogService) Search(query string, includeInactive bool) []domain.SkuRecord {
	s.lastQuery, s.lastIncludeInactive = query, includeInactive
	return s.records
}

func (s *stubCatalogService) Groups() []domain.CatalogGroup { return s.groups }

func TestCatalogHandler_List(t *testing.T) {
	e := echo.New()
	catalog := &stubCatalogService{records: []domain.SkuRecord{
		{ID: "1", SkuCode: "PREFIX.001-16.A.02", Name: "Duvet", IsActive: true},
	}}
	h := NewCatalogHandler(catalog)

	req := httptest.NewRequest(http.MethodGet, "/v1/catalog?q=duv&include_inactive=true", nil)
	rec := httptest.NewRecorder()
	if err := h.List(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp skuListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Count != 1 || resp.Items[0].SkuCode != "PREFIX.001-16.A.02" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if catalog.lastQuery != "duv" || !catalog.lastIncludeInactive {
		t.Fatalf("unexpected search args %q/%v", catalog.lastQuery, catalog.lastIncludeInactive)
	}
}

func TestCatalogHandler_Groups(t *testing.T) {
	e := echo.New()
	h := NewCatalogHandler(&stubCatalogService{groups: []domain.CatalogGroup{
		{GroupKey: "PREFIX.001", Entries: []domain.SkuRecord{{SkuCode: "PREFIX.001-16.A.02"}}},
		{GroupKey: domain.FallbackGroupKey, Entries: []domain.SkuRecord{{SkuCode: "OLD-1"}}},
	}})

	rec := httptest.NewRecorder()
	if err := h.Groups(e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/catalog/groups", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp skuGroupsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Groups) != 2 || resp.Groups[1].GroupKey != "unknown" {
		t.Fatalf("unexpected groups: %+v", resp.Groups)
	}
}

func TestCatalogHandler_Refresh(t *testing.T) {
	e := echo.New()

	rec := httptest.NewRecorder()
	h := NewCatalogHandler(&stubCatalogService{})
	if err := h.Refresh(e.NewContext(httptest.NewRequest(http.MethodPost, "/v1/catalog/refresh", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h = NewCatalogHandler(&stubCatalogService{refreshErr: fmt.Errorf("%w: dial tcp", domain.ErrNetwork)})
	if err := h.Refresh(e.NewContext(httptest.NewRequest(http.MethodPost, "/v1/catalog/refresh", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestCatalogHandler_Create(t *testing.T) {
	e := echo.New()
	catalog := &stubCatalogService{
		createFn: func(_ context.Context, draft domain.SkuDraft) (*domain.SkuRecord, error) {
			if draft.ModelCode != "1" || draft.WidthCm != 160 || draft.FabricCode != "A" || draft.ColorCode != "2" {
				t.Fatalf("unexpected draft: %+v", draft)
			}
			return &domain.SkuRecord{ID: "7", SkuCode: "PREFIX.001-16.A.02", Name: draft.Name, IsActive: true}, nil
		},
	}
	h := NewCatalogHandler(catalog)

	body := `{"model_code":"1","width_cm":160,"fabric_code":"A","color_code":"2","name":"Duvet"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/catalog", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Create(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp domain.SkuRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.SkuCode != "PREFIX.001-16.A.02" {
		t.Fatalf("unexpected record: %+v", resp)
	}
}

func TestCatalogHandler_Create_Errors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"invalid fields", fmt.Errorf("%w: name is required", domain.ErrInvalidSku), http.StatusBadRequest},
		{"malformed", domain.ErrMalformedSku, http.StatusBadRequest},
		{"duplicate", domain.ErrDuplicateSku, http.StatusConflict},
		{"not master", domain.ErrPermissionDenied, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			h := NewCatalogHandler(&stubCatalogService{
				createFn: func(context.Context, domain.SkuDraft) (*domain.SkuRecord, error) { return nil, tt.err },
			})

			req := httptest.NewRequest(http.MethodPost, "/v1/catalog", strings.NewReader(`{"model_code":"1"}`))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()

			if err := h.Create(e.NewContext(req, rec)); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
		})
	}
}

func TestCatalogHandler_Update(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	h := NewCatalogHandler(&stubCatalogService{
		updateFn: func(_ context.Context, id, name string, isActive bool) (*domain.SkuRecord, error) {
			if id != "7" || name != "Quilt" || isActive {
				t.Fatalf("unexpected args %s %s %v", id, name, isActive)
			}
			return &domain.SkuRecord{ID: id, Name: name}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPut, "/v1/catalog/7", strings.NewReader(`{"name":"Quilt","is_active":false}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCatalogHandler_Update_MissingName(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	h := NewCatalogHandler(&stubCatalogService{
		updateFn: func(context.Context, string, string, bool) (*domain.SkuRecord, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPut, "/v1/catalog/7", strings.NewReader(`{"is_active":true}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCatalogHandler_Update_NotFound(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	h := NewCatalogHandler(&stubCatalogService{
		updateFn: func(context.Context, string, string, bool) (*domain.SkuRecord, error) {
			return nil, fmt.Errorf("%w: %w", domain.ErrSkuNotFound, &domain.ServerRejection{Status: 404, Detail: "SKU not found"})
		},
	})

	req := httptest.NewRequest(http.MethodPut, "/v1/catalog/9", strings.NewReader(`{"name":"Quilt"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("9")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
