package service

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/kzkiosk/kiosk-control/internal/core/domain"
	"github.com/kzkiosk/kiosk-control/internal/core/ports"
)

// ReportService issues master-only report requests built by BuildRangeQuery
// and BuildSingleDateQuery.
type ReportService struct {
	api  ports.ReportAPI
	gate MasterGate
	log  zerolog.Logger
}

func NewReportService(api ports.ReportAPI, gate MasterGate, log zerolog.Logger) *ReportService {
	return &ReportService{api: api, gate: gate, log: log}
}

func (s *ReportService) Preview(ctx context.Context, q domain.ReportQuery) (domain.ReportRows, error) {
	if err := s.gate.RequireMaster(); err != nil {
		return nil, err
	}
	rows, err := s.api.Preview(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("report preview: %w", err)
	}
	return rows, nil
}

func (s *ReportService) Export(ctx context.Context, q domain.ReportQuery, format domain.ExportFormat) (*ports.ReportFile, error) {
	if err := s.gate.RequireMaster(); err != nil {
		return nil, err
	}
	f, err := s.api.Export(ctx, q, format)
	if err != nil {
		return nil, fmt.Errorf("report export: %w", err)
	}
	return f, nil
}

// SaveToUSB asks the server to write the export to removable media and
// returns the path it reports.
func (s *ReportService) SaveToUSB(ctx context.Context, q domain.ReportQuery, format domain.ExportFormat) (string, error) {
	if err := s.gate.RequireMaster(); err != nil {
		return "", err
	}
	path, err := s.api.SaveToUSB(ctx, q, format)
	if err != nil {
		return "", fmt.Errorf("report save to usb: %w", err)
	}
	s.log.Info().Str("type", string(q.Type)).Str("path", path).Msg("report saved to usb")
	return path, nil
}

func (s *ReportService) ShiftCSV(ctx context.Context, q domain.SingleDateQuery) (*ports.ReportFile, error) {
	if err := s.gate.RequireMaster(); err != nil {
		return nil, err
	}
	f, err := s.api.ShiftCSV(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("shift csv: %w", err)
	}
	return f, nil
}

func (s *ReportService) WorkersCSV(ctx context.Context, q domain.SingleDateQuery) (*ports.ReportFile, error) {
	if err := s.gate.RequireMaster(); err != nil {
		return nil, err
	}
	f, err := s.api.WorkersCSV(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("workers csv: %w", err)
	}
	return f, nil
}

// ShiftPlanService forwards shift-plan uploads to the server.
type ShiftPlanService struct {
	api  ports.ShiftPlanAPI
	gate MasterGate
	log  zerolog.Logger
}

func NewShiftPlanService(api ports.ShiftPlanAPI, gate MasterGate, log zerolog.Logger) *ShiftPlanService {
	return &ShiftPlanService{api: api, gate: gate, log: log}
}

// Import uploads a shift plan file. Row errors reported by the server are
// returned as *domain.ImportRejectedError.
func (s *ShiftPlanService) Import(ctx context.Context, filename string, r io.Reader) (*domain.ShiftPlanImportResult, error) {
	if err := s.gate.RequireMaster(); err != nil {
		return nil, err
	}
	res, err := s.api.ImportShiftPlan(ctx, filename, r)
	if err != nil {
		return nil, fmt.Errorf("import shift plan: %w", err)
	}
	if len(res.Errors) > 0 {
		return nil, &domain.ImportRejectedError{Errors: res.Errors}
	}
	s.log.Info().Str("file", filename).Int("items", res.TotalItems).Msg("shift plan imported")
	return res, nil
}
