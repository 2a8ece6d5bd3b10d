package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/kzkiosk/kiosk-control/internal/core/domain"
)

// BuildRangeQuery validates report parameters. Dates use domain.DateLayout.
// A start date after the end date is rejected here rather than left to the
// server.
func BuildRangeQuery(reportType, dateFrom, dateTo string) (domain.ReportQuery, error) {
	from, err := parseReportDate(dateFrom)
	if err != nil {
		return domain.ReportQuery{}, err
	}
	to, err := parseReportDate(dateTo)
	if err != nil {
		return domain.ReportQuery{}, err
	}

	t := domain.ReportType(strings.TrimSpace(reportType))
	if !t.Valid() {
		return domain.ReportQuery{}, fmt.Errorf("%w: %q", domain.ErrInvalidReportType, reportType)
	}
	if from.After(to) {
		return domain.ReportQuery{}, domain.ErrDateRange
	}
	return domain.ReportQuery{Type: t, DateFrom: from, DateTo: to}, nil
}

// BuildSingleDateQuery validates the date of the single-day CSV exports.
func BuildSingleDateQuery(date string) (domain.SingleDateQuery, error) {
	d, err := parseReportDate(date)
	if err != nil {
		return domain.SingleDateQuery{}, err
	}
	return domain.SingleDateQuery{Date: d}, nil
}

// ParseExportFormat accepts "csv" or "xlsx", defaulting to csv when empty.
func ParseExportFormat(format string) (domain.ExportFormat, error) {
	f := domain.ExportFormat(strings.ToLower(strings.TrimSpace(format)))
	if f == "" {
		return domain.FormatCSV, nil
	}
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidFormat, format)
	}
	return f, nil
}

func parseReportDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, domain.ErrMissingDate
	}
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDate, s)
	}
	return t, nil
}
