package domain

import "time"

// DateLayout is the wire format of report dates.
const DateLayout = "2006-01-02"

// ReportType selects the report aggregation on the server.
type ReportType string

const (
	ReportEmployees ReportType = "employees"
	ReportSku       ReportType = "sku"
	ReportShifts    ReportType = "shifts"
)

// Valid reports whether t is a known report type.
func (t ReportType) Valid() bool {
	switch t {
	case ReportEmployees, ReportSku, ReportShifts:
		return true
	}
	return false
}

// ExportFormat is the file format requested for report exports.
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
)

// Valid reports whether f is a supported export format.
func (f ExportFormat) Valid() bool {
	return f == FormatCSV || f == FormatXLSX
}

// ReportQuery is a validated date-range report request.
type ReportQuery struct {
	Type     ReportType `json:"type"`
	DateFrom time.Time  `json:"date_from"`
	DateTo   time.Time  `json:"date_to"`
}

// SingleDateQuery is a validated single-day request for the quick CSV exports.
type SingleDateQuery struct {
	Date time.Time `json:"date"`
}

// ReportRows is the tabular preview returned by the server.
type ReportRows []map[string]any

// ShiftPlanImportResult is the server's answer to a shift-plan upload.
type ShiftPlanImportResult struct {
	TotalItems int      `json:"total_items"`
	Errors     []string `json:"errors,omitempty"`
}
