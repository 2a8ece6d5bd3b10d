package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kzkiosk/kiosk-control/internal/core/domain"
	"github.com/kzkiosk/kiosk-control/internal/core/ports"
)

type stubReportService struct {
	rows     domain.ReportRows
	err      error
	lastQ    domain.ReportQuery
	lastDay  domain.SingleDateQuery
	lastFmt  domain.ExportFormat
	usbPath  string
	fileBody string
}

func (s *stubReportService) file(name string) *ports.ReportFile {
	return &ports.ReportFile{
		Filename:    name,
		ContentType: "text/csv",
		Body:        io.NopCloser(strings.NewReader(s.fileBody)),
	}
}

func (s *stubReportService) Preview(_ context.Context, q domain.ReportQuery) (domain.ReportRows, error) {
	s.lastQ = q
	return s.rows, s.err
}

func (s *stubReportService) Export(_ context.Context, q domain.ReportQuery, f domain.ExportFormat) (*ports.ReportFile, error) {
	s.lastQ, s.lastFmt = q, f
	if s.err != nil {
		return nil, s.err
	}
	return s.file("report_sku." + string(f)), nil
}

func (s *stubReportService) SaveToUSB(_ context.Context, q domain.ReportQuery, f domain.ExportFormat) (string, error) {
	s.lastQ, s.lastFmt = q, f
	return s.usbPath, s.err
}

func (s *stubReportService) ShiftCSV(_ context.Context, q domain.SingleDateQuery) (*ports.ReportFile, error) {
	s.lastDay = q
	if s.err != nil {
		return nil, s.err
	}
	return s.file("shift.csv"), nil
}

func (s *stubReportService) WorkersCSV(_ context.Context, q domain.SingleDateQuery) (*ports.ReportFile, error) {
	s.lastDay = q
	if s.err != nil {
		return nil, s.err
	}
	return s.file("workers.csv"), nil
}

type stubShiftPlanService struct {
	filename string
	content  string
	result   *domain.ShiftPlanImportResult
	err      error
}

func (s *stubShiftPlanService) Import(_ context.Context, filename string, r io.Reader) (*domain.ShiftPlanImportResult, error) {
	b, _ := io.ReadAll(r)
	s.filename, s.content = filename, string(b)
	return s.result, s.err
}

func day(s string) time.Time {
	t, _ := time.Parse(domain.DateLayout, s)
	return t
}

func TestReportHandler_Preview(t *testing.T) {
	e := echo.New()
	reports := &stubReportService{rows: domain.ReportRows{{"employee": "A", "qty": float64(3)}}}
	h := NewReportHandler(reports, &stubShiftPlanService{})

	req := httptest.NewRequest(http.MethodGet, "/v1/reports/preview?type=employees&date_from=2026-03-01&date_to=2026-03-02", nil)
	rec := httptest.NewRecorder()
	if err := h.Preview(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp previewResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Count != 1 || resp.Rows[0]["employee"] != "A" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if reports.lastQ.Type != domain.ReportEmployees || !reports.lastQ.DateFrom.Equal(day("2026-03-01")) || !reports.lastQ.DateTo.Equal(day("2026-03-02")) {
		t.Fatalf("unexpected query: %+v", reports.lastQ)
	}
}

func TestReportHandler_Preview_InvalidQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"missing date", "type=sku&date_from=2026-03-01"},
		{"reversed range", "type=sku&date_from=2026-03-05&date_to=2026-03-01"},
		{"bad type", "type=payroll&date_from=2026-03-01&date_to=2026-03-02"},
		{"bad date", "type=sku&date_from=01/03/2026&date_to=2026-03-02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			reports := &stubReportService{}
			h := NewReportHandler(reports, &stubShiftPlanService{})

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/v1/reports/preview?"+tt.query, nil)
			if err := h.Preview(e.NewContext(req, rec)); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if reports.lastQ.Type != "" {
				t.Fatalf("service must not be called")
			}
		})
	}
}

func TestReportHandler_Export(t *testing.T) {
	e := echo.New()
	reports := &stubReportService{fileBody: "sku,qty\nA,1\n"}
	h := NewReportHandler(reports, &stubShiftPlanService{})

	req := httptest.NewRequest(http.MethodGet, "/v1/reports/export?type=sku&date_from=2026-03-01&date_to=2026-03-01&format=xlsx", nil)
	rec := httptest.NewRecorder()
	if err := h.Export(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if reports.lastFmt != domain.FormatXLSX {
		t.Fatalf("expected xlsx, got %q", reports.lastFmt)
	}
	if got := rec.Header().Get(echo.HeaderContentDisposition); got != "attachment; filename=report_sku.xlsx" {
		t.Fatalf("unexpected disposition %q", got)
	}
	if rec.Body.String() != "sku,qty\nA,1\n" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestReportHandler_Export_InvalidFormat(t *testing.T) {
	e := echo.New()
	h := NewReportHandler(&stubReportService{}, &stubShiftPlanService{})

	req := httptest.NewRequest(http.MethodGet, "/v1/reports/export?type=sku&date_from=2026-03-01&date_to=2026-03-01&format=pdf", nil)
	rec := httptest.NewRecorder()
	if err := h.Export(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestReportHandler_SaveToUSB(t *testing.T) {
	e := echo.New()
	reports := &stubReportService{usbPath: "/media/usb0/report_shifts.csv"}
	h := NewReportHandler(reports, &stubShiftPlanService{})

	body := `{"report_type":"shifts","date_from":"2026-03-01","date_to":"2026-03-07"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/reports/save_to_usb", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.SaveToUSB(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp saveToUSBResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Path != "/media/usb0/report_shifts.csv" {
		t.Fatalf("unexpected path %q", resp.Path)
	}
	if reports.lastFmt != domain.FormatCSV || reports.lastQ.Type != domain.ReportShifts {
		t.Fatalf("unexpected request %+v %q", reports.lastQ, reports.lastFmt)
	}
}

func TestReportHandler_ShiftCSV(t *testing.T) {
	e := echo.New()
	reports := &stubReportService{fileBody: "shift\n"}
	h := NewReportHandler(reports, &stubShiftPlanService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/reports/shift.csv?date=2026-03-02", nil)
	if err := h.ShiftCSV(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || !reports.lastDay.Date.Equal(day("2026-03-02")) {
		t.Fatalf("unexpected result %d %+v", rec.Code, reports.lastDay)
	}
	if rec.Header().Get(echo.HeaderContentType) != "text/csv" {
		t.Fatalf("unexpected content type %q", rec.Header().Get(echo.HeaderContentType))
	}
}

func TestReportHandler_WorkersCSV_MissingDate(t *testing.T) {
	e := echo.New()
	h := NewReportHandler(&stubReportService{}, &stubShiftPlanService{})

	rec := httptest.NewRecorder()
	if err := h.WorkersCSV(e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/reports/workers.csv", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestReportHandler_NotMaster(t *testing.T) {
	e := echo.New()
	h := NewReportHandler(&stubReportService{err: domain.ErrPermissionDenied}, &stubShiftPlanService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/reports/workers.csv?date=2026-03-02", nil)
	if err := h.WorkersCSV(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func multipartRequest(t *testing.T, field, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if field != "" {
		part, err := w.CreateFormFile(field, filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write([]byte(content)); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/shift-plan/import", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func TestReportHandler_ImportShiftPlan(t *testing.T) {
	e := echo.New()
	plan := &stubShiftPlanService{result: &domain.ShiftPlanImportResult{TotalItems: 12}}
	h := NewReportHandler(&stubReportService{}, plan)

	rec := httptest.NewRecorder()
	if err := h.ImportShiftPlan(e.NewContext(multipartRequest(t, "file", "plan.xlsx", "rows"), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp importResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.TotalItems != 12 || plan.filename != "plan.xlsx" || plan.content != "rows" {
		t.Fatalf("unexpected import %+v %q %q", resp, plan.filename, plan.content)
	}
}

func TestReportHandler_ImportShiftPlan_Errors(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		err      error
		wantCode int
	}{
		{"missing file", "", nil, http.StatusBadRequest},
		{"rows rejected", "file", &domain.ImportRejectedError{Errors: []string{"row 3: unknown sku"}}, http.StatusUnprocessableEntity},
		{"upload unavailable", "file", domain.ErrUploadUnavailable, http.StatusNotImplemented},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			h := NewReportHandler(&stubReportService{}, &stubShiftPlanService{err: tt.err})

			rec := httptest.NewRecorder()
			if err := h.ImportShiftPlan(e.NewContext(multipartRequest(t, tt.field, "plan.xlsx", "rows"), rec)); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
		})
	}
}
