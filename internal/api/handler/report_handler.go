package handler

import (
	"mime"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kzkiosk/kiosk-control/internal/core/domain"
	"github.com/kzkiosk/kiosk-control/internal/core/ports"
	"github.com/kzkiosk/kiosk-control/internal/core/service"
)

// ReportHandler handles report previews and exports. Every route is master
// only; the service enforces it as well.
type ReportHandler struct {
	reports   ports.ReportService
	shiftPlan ports.ShiftPlanService
}

func NewReportHandler(reports ports.ReportService, shiftPlan ports.ShiftPlanService) *ReportHandler {
	return &ReportHandler{reports: reports, shiftPlan: shiftPlan}
}

type previewResponse struct {
	Rows  domain.ReportRows `json:"rows"`
	Count int               `json:"count"`
}

type saveToUSBRequest struct {
	ReportType string `json:"report_type"`
	DateFrom   string `json:"date_from"`
	DateTo     string `json:"date_to"`
	Format     string `json:"format"`
}

type saveToUSBResponse struct {
	Path string `json:"path"`
}

type importResponse struct {
	TotalItems int `json:"total_items"`
}

// Preview returns the report rows for a date range.
//
// @Summary      Report preview
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        type       query     string  true  "employees, sku or shifts"
// @Param        date_from  query     string  true  "YYYY-MM-DD"
// @Param        date_to    query     string  true  "YYYY-MM-DD"
// @Success      200        {object}  previewResponse
// @Failure      400        {object}  ErrorResponse
// @Failure      403        {object}  ErrorResponse
// @Router       /v1/reports/preview [get]
func (h *ReportHandler) Preview(c echo.Context) error {
	q, err := service.BuildRangeQuery(c.QueryParam("type"), c.QueryParam("date_from"), c.QueryParam("date_to"))
	if err != nil {
		return writeError(c, err)
	}

	rows, err := h.reports.Preview(c.Request().Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, previewResponse{Rows: rows, Count: len(rows)})
}

// Export streams the report file produced by the kiosk server.
//
// @Summary      Report export
// @Tags         reports
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        type       query  string  true   "employees, sku or shifts"
// @Param        date_from  query  string  true   "YYYY-MM-DD"
// @Param        date_to    query  string  true   "YYYY-MM-DD"
// @Param        format     query  string  false  "csv (default) or xlsx"
// @Success      200
// @Failure      400  {object}  ErrorResponse
// @Router       /v1/reports/export [get]
func (h *ReportHandler) Export(c echo.Context) error {
	q, err := service.BuildRangeQuery(c.QueryParam("type"), c.QueryParam("date_from"), c.QueryParam("date_to"))
	if err != nil {
		return writeError(c, err)
	}
	format, err := service.ParseExportFormat(c.QueryParam("format"))
	if err != nil {
		return writeError(c, err)
	}

	f, err := h.reports.Export(c.Request().Context(), q, format)
	if err != nil {
		return writeError(c, err)
	}
	return streamFile(c, f)
}

// SaveToUSB asks the kiosk server to write the report to removable media.
//
// @Summary      Save report to USB
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      saveToUSBRequest  true  "Report parameters"
// @Success      200   {object}  saveToUSBResponse
// @Failure      400   {object}  ErrorResponse
// @Router       /v1/reports/save_to_usb [post]
func (h *ReportHandler) SaveToUSB(c echo.Context) error {
	var req saveToUSBRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid payload"})
	}

	q, err := service.BuildRangeQuery(req.ReportType, req.DateFrom, req.DateTo)
	if err != nil {
		return writeError(c, err)
	}
	format, err := service.ParseExportFormat(req.Format)
	if err != nil {
		return writeError(c, err)
	}

	path, err := h.reports.SaveToUSB(c.Request().Context(), q, format)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, saveToUSBResponse{Path: path})
}

// ShiftCSV streams the shift summary of one day.
//
// @Summary      Shift CSV
// @Tags         reports
// @Produce      text/csv
// @Security     BearerAuth
// @Param        date  query  string  true  "YYYY-MM-DD"
// @Success      200
// @Router       /v1/reports/shift.csv [get]
func (h *ReportHandler) ShiftCSV(c echo.Context) error {
	q, err := service.BuildSingleDateQuery(c.QueryParam("date"))
	if err != nil {
		return writeError(c, err)
	}
	f, err := h.reports.ShiftCSV(c.Request().Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	return streamFile(c, f)
}

// WorkersCSV streams the worker summary of one day.
//
// @Summary      Workers CSV
// @Tags         reports
// @Produce      text/csv
// @Security     BearerAuth
// @Param        date  query  string  true  "YYYY-MM-DD"
// @Success      200
// @Router       /v1/reports/workers.csv [get]
func (h *ReportHandler) WorkersCSV(c echo.Context) error {
	q, err := service.BuildSingleDateQuery(c.QueryParam("date"))
	if err != nil {
		return writeError(c, err)
	}
	f, err := h.reports.WorkersCSV(c.Request().Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	return streamFile(c, f)
}

// ImportShiftPlan forwards an uploaded shift plan to the kiosk server.
//
// @Summary      Import shift plan
// @Tags         reports
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Shift plan file"
// @Success      200   {object}  importResponse
// @Failure      422   {object}  ErrorResponse
// @Failure      501   {object}  ErrorResponse
// @Router       /v1/shift-plan/import [post]
func (h *ReportHandler) ImportShiftPlan(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file is required"})
	}
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	res, err := h.shiftPlan.Import(c.Request().Context(), fh.Filename, src)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, importResponse{TotalItems: res.TotalItems})
}

func streamFile(c echo.Context, f *ports.ReportFile) error {
	defer f.Body.Close()

	contentType := f.ContentType
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		mime.FormatMediaType("attachment", map[string]string{"filename": f.Filename}))
	return c.Stream(http.StatusOK, contentType, f.Body)
}
