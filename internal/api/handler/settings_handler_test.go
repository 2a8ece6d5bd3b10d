package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/kzkiosk/kiosk-control/internal/core/domain"
)

type stubPermissionService struct {
	settings domain.Settings
	loaded   bool
	master   bool
	saveFn   func(ctx context.Context, s domain.Settings) error
	masked   domain.ControlSet
}

func (s *stubPermissionService) Load(context.Context) error { return nil }

func (s *stubPermissionService) Save(ctx context.Context, settings domain.Settings) error {
	if s.saveFn != nil {
		if err := s.saveFn(ctx, settings); err != nil {
			return err
		}
	}
	s.settings, s.loaded = settings, true
	return nil
}

func (s *stubPermissionService) CurrentSnapshot() domain.PermissionSnapshot {
	return domain.SnapshotFrom(s.settings, s.master)
}

func (s *stubPermissionService) Mutable() bool { return s.master }

func (s *stubPermissionService) Mask(controls domain.ControlSet) map[domain.Capability]bool {
	s.masked = controls
	out := make(map[domain.Capability]bool, len(controls))
	for c := range controls {
		out[c] = s.master
	}
	return out
}

func (s *stubPermissionService) Settings() (domain.Settings, bool) { return s.settings, s.loaded }

func (s *stubPermissionService) RequireMaster() error {
	if !s.master {
		return domain.ErrPermissionDenied
	}
	return nil
}

func TestSettingsHandler_Permissions(t *testing.T) {
	e := echo.New()
	perms := &stubPermissionService{
		settings: domain.Settings{Reorder: true, SkipSku: true, TimeoutMinutes: 15},
		loaded:   true,
		master:   true,
	}
	h := NewSettingsHandler(perms)

	req := httptest.NewRequest(http.MethodGet, "/v1/permissions?controls=reorder,%20skipSku", nil)
	rec := httptest.NewRecorder()
	if err := h.Permissions(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp permissionsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Snapshot.Reorder || !resp.Snapshot.SkipSku || resp.Snapshot.EditQty {
		t.Fatalf("unexpected snapshot: %+v", resp.Snapshot)
	}
	if !resp.Mutable {
		t.Fatalf("expected mutable")
	}
	if len(perms.masked) != 2 || !perms.masked[domain.CapReorder] || !perms.masked[domain.CapSkipSku] {
		t.Fatalf("unexpected controls: %v", perms.masked)
	}
	if len(resp.Mask) != 2 || !resp.Mask[domain.CapReorder] {
		t.Fatalf("unexpected mask: %v", resp.Mask)
	}
}

func TestSettingsHandler_Permissions_Anonymous(t *testing.T) {
	e := echo.New()
	h := NewSettingsHandler(&stubPermissionService{settings: domain.Settings{Reorder: true}, loaded: true})

	rec := httptest.NewRecorder()
	if err := h.Permissions(e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/permissions", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp permissionsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Snapshot.Any() || resp.Mutable || resp.Mask != nil {
		t.Fatalf("expected an empty anonymous view, got %+v", resp)
	}
}

func TestSettingsHandler_Permissions_UnknownControl(t *testing.T) {
	e := echo.New()
	h := NewSettingsHandler(&stubPermissionService{})

	req := httptest.NewRequest(http.MethodGet, "/v1/permissions?controls=reorder,teleport", nil)
	rec := httptest.NewRecorder()
	if err := h.Permissions(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSettingsHandler_Put(t *testing.T) {
	e := echo.New()
	perms := &stubPermissionService{master: true}
	h := NewSettingsHandler(perms)

	body := `{"operator_can_reorder":true,"operator_can_manual_mode":true,"master_session_timeout_min":30}`
	req := httptest.NewRequest(http.MethodPut, "/v1/settings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Put(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp settingsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Loaded || !resp.Settings.Reorder || !resp.Settings.ManualMode || resp.Settings.TimeoutMinutes != 30 {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestSettingsHandler_Put_Errors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"timeout out of range", domain.ErrTimeoutRange, http.StatusBadRequest},
		{"not master", domain.ErrPermissionDenied, http.StatusForbidden},
		{"network", domain.ErrNetwork, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			perms := &stubPermissionService{
				saveFn: func(context.Context, domain.Settings) error { return tt.err },
			}
			h := NewSettingsHandler(perms)

			req := httptest.NewRequest(http.MethodPut, "/v1/settings", strings.NewReader(`{"master_session_timeout_min":300}`))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()

			if err := h.Put(e.NewContext(req, rec)); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			if perms.loaded {
				t.Fatalf("settings must not change on failure")
			}
		})
	}
}
