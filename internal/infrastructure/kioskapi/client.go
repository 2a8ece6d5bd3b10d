// Package kioskapi is the HTTP client for the kiosk server REST API.
package kioskapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/kzkiosk/kiosk-control/internal/core/domain"
	"github.com/kzkiosk/kiosk-control/internal/core/ports"
	"github.com/kzkiosk/kiosk-control/internal/pkg/metrics"
)

const defaultTimeout = 10 * time.Second

// maxErrorBody caps how much of a rejected response is read for its detail.
const maxErrorBody = 64 << 10

// Client implements every kiosk transport port. Transport failures wrap
// domain.ErrNetwork; non-2xx answers become *domain.ServerRejection.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

var (
	_ ports.MasterAPI    = (*Client)(nil)
	_ ports.SettingsAPI  = (*Client)(nil)
	_ ports.CatalogAPI   = (*Client)(nil)
	_ ports.ReportAPI    = (*Client)(nil)
	_ ports.ShiftPlanAPI = (*Client)(nil)
)

// NewClient returns a client for the API rooted at baseURL, for example
// http://localhost:8000/api/kiosk. A non-positive timeout uses defaultTimeout.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// ── Master ───────────────────────────────────────────────────────────────────

func (c *Client) MasterLogin(ctx context.Context, qrText string) (string, error) {
	var resp struct {
		MasterID string `json:"master_id"`
	}
	err := c.doJSON(ctx, "master_login", http.MethodPost, "master/login", nil,
		map[string]string{"qr_text": qrText}, &resp)
	if err != nil {
		return "", err
	}
	return resp.MasterID, nil
}

func (c *Client) MasterLogout(ctx context.Context, reason domain.LogoutReason) error {
	return c.doJSON(ctx, "master_logout", http.MethodPost, "master/logout", nil,
		map[string]string{"reason": string(reason)}, nil)
}

// CurrentMaster reads the master fields of the settings envelope.
func (c *Client) CurrentMaster(ctx context.Context) (string, error) {
	state, err := c.GetSettings(ctx)
	if err != nil {
		return "", err
	}
	if !state.MasterMode {
		return "", nil
	}
	return state.MasterID, nil
}

// ── Settings ─────────────────────────────────────────────────────────────────

func (c *Client) GetSettings(ctx context.Context) (*domain.SettingsState, error) {
	var state domain.SettingsState
	if err := c.doJSON(ctx, "settings_get", http.MethodGet, "settings", nil, nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (c *Client) SaveSettings(ctx context.Context, s domain.Settings) (*domain.SettingsState, error) {
	var state domain.SettingsState
	if err := c.doJSON(ctx, "settings_save", http.MethodPost, "settings", nil, s, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// ── Catalog ──────────────────────────────────────────────────────────────────

type itemsResponse struct {
	Items []domain.SkuRecord `json:"items"`
}

func (c *Client) ListSku(ctx context.Context, query string, includeInactive bool) ([]domain.SkuRecord, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("include_inactive", strconv.FormatBool(includeInactive))

	var resp itemsResponse
	if err := c.doJSON(ctx, "sku_list", http.MethodGet, "sku", q, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (c *Client) CreateSku(ctx context.Context, rec domain.SkuRecord) (*domain.SkuRecord, error) {
	var created domain.SkuRecord
	if err := c.doJSON(ctx, "sku_create", http.MethodPost, "sku", nil, rec, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateSku(ctx context.Context, id, name string, isActive bool) (*domain.SkuRecord, error) {
	body := struct {
		Name     string `json:"name"`
		IsActive bool   `json:"is_active"`
	}{Name: name, IsActive: isActive}

	var updated domain.SkuRecord
	err := c.doJSON(ctx, "sku_update", http.MethodPut, "sku/"+url.PathEscape(id), nil, body, &updated)
	var rej *domain.ServerRejection
	if errors.As(err, &rej) && rej.Status == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %w", domain.ErrSkuNotFound, err)
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) SkuCatalog(ctx context.Context) ([]domain.SkuRecord, error) {
	var resp itemsResponse
	if err := c.doJSON(ctx, "sku_catalog", http.MethodGet, "sku_catalog", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// ── Reports ──────────────────────────────────────────────────────────────────

func rangeValues(q domain.ReportQuery) url.Values {
	v := url.Values{}
	v.Set("type", string(q.Type))
	v.Set("date_from", q.DateFrom.Format(domain.DateLayout))
	v.Set("date_to", q.DateTo.Format(domain.DateLayout))
	return v
}

func (c *Client) Preview(ctx context.Context, q domain.ReportQuery) (domain.ReportRows, error) {
	var resp struct {
		Rows domain.ReportRows `json:"rows"`
	}
	if err := c.doJSON(ctx, "report_preview", http.MethodGet, "reports/preview", rangeValues(q), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Rows, nil
}

func (c *Client) Export(ctx context.Context, q domain.ReportQuery, format domain.ExportFormat) (*ports.ReportFile, error) {
	v := rangeValues(q)
	v.Set("format", string(format))
	fallback := fmt.Sprintf("%s_%s_%s.%s", q.Type,
		q.DateFrom.Format(domain.DateLayout), q.DateTo.Format(domain.DateLayout), format)
	return c.stream(ctx, "report_export", "reports/export", v, fallback)
}

func (c *Client) SaveToUSB(ctx context.Context, q domain.ReportQuery, format domain.ExportFormat) (string, error) {
	body := map[string]string{
		"report_type": string(q.Type),
		"date_from":   q.DateFrom.Format(domain.DateLayout),
		"date_to":     q.DateTo.Format(domain.DateLayout),
		"format":      string(format),
	}
	var resp struct {
		Path string `json:"path"`
	}
	if err := c.doJSON(ctx, "report_usb", http.MethodPost, "reports/save_to_usb", nil, body, &resp); err != nil {
		return "", err
	}
	return resp.Path, nil
}

func (c *Client) ShiftCSV(ctx context.Context, q domain.SingleDateQuery) (*ports.ReportFile, error) {
	day := q.Date.Format(domain.DateLayout)
	return c.stream(ctx, "report_shift_csv", "reports/shift.csv", url.Values{"date": {day}}, "shift_"+day+".csv")
}

func (c *Client) WorkersCSV(ctx context.Context, q domain.SingleDateQuery) (*ports.ReportFile, error) {
	day := q.Date.Format(domain.DateLayout)
	return c.stream(ctx, "report_workers_csv", "reports/workers.csv", url.Values{"date": {day}}, "workers_"+day+".csv")
}

// ── Shift plan ───────────────────────────────────────────────────────────────

func (c *Client) ImportShiftPlan(ctx context.Context, filename string, r io.Reader) (*domain.ShiftPlanImportResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}

	resp, err := c.do(ctx, "shift_plan_import", http.MethodPost, "shift_plan/import", nil, &buf, mw.FormDataContentType())
	var rej *domain.ServerRejection
	if errors.As(err, &rej) {
		switch {
		case rej.Status == http.StatusNotImplemented:
			return nil, fmt.Errorf("%w: %w", domain.ErrUploadUnavailable, err)
		case len(rej.Errors) > 0:
			return nil, &domain.ImportRejectedError{Errors: rej.Errors}
		}
	}
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var res domain.ShiftPlanImportResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("%w: decode shift_plan/import: %v", domain.ErrNetwork, err)
	}
	return &res, nil
}

// ── Plumbing ─────────────────────────────────────────────────────────────────

// doJSON sends in as JSON (when non-nil) and decodes the answer into out
// (when non-nil).
func (c *Client) doJSON(ctx context.Context, endpoint, method, path string, query url.Values, in, out any) error {
	var (
		body        io.Reader
		contentType string
	)
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
		body = bytes.NewReader(payload)
		contentType = "application/json"
	}

	resp, err := c.do(ctx, endpoint, method, path, query, body, contentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", domain.ErrNetwork, path, err)
	}
	return nil
}

// stream returns the response body of a file download unread.
func (c *Client) stream(ctx context.Context, endpoint, path string, query url.Values, fallbackName string) (*ports.ReportFile, error) {
	resp, err := c.do(ctx, endpoint, http.MethodGet, path, query, nil, "")
	if err != nil {
		return nil, err
	}
	name := fallbackName
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		name = params["filename"]
	}
	return &ports.ReportFile{
		Filename:    name,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        resp.Body,
	}, nil
}

// do performs a request and classifies the outcome. On success the caller
// owns resp.Body.
func (c *Client) do(ctx context.Context, endpoint, method, path string, query url.Values, body io.Reader, contentType string) (*http.Response, error) {
	target := c.baseURL + "/" + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "network").Inc()
		c.log.Debug().Err(err).Str("endpoint", endpoint).Msg("kiosk server unreachable")
		return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrNetwork, method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "rejected").Inc()
		rej := readRejection(resp.StatusCode, resp.Body)
		c.log.Debug().Int("status", rej.Status).Str("endpoint", endpoint).Str("detail", rej.Detail).Msg("kiosk server rejected request")
		return nil, rej
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "ok").Inc()
	return resp, nil
}

// readRejection extracts the "detail" message and the "errors" list of an
// error body. Validation errors whose detail is not a string yield an empty
// detail.
func readRejection(status int, r io.Reader) *domain.ServerRejection {
	rej := &domain.ServerRejection{Status: status}
	var body struct {
		Detail json.RawMessage `json:"detail"`
		Errors []string        `json:"errors"`
	}
	if err := json.NewDecoder(io.LimitReader(r, maxErrorBody)).Decode(&body); err != nil {
		return rej
	}
	rej.Errors = body.Errors
	var detail string
	if len(body.Detail) > 0 && json.Unmarshal(body.Detail, &detail) == nil {
		rej.Detail = strings.TrimSpace(detail)
	}
	return rej
}
