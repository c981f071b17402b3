package reports

import (
	"context"
	"fmt"

	"github.com/hawrami/events-iraq-backend/internal/auditlog"
)

type Service interface {
	GenerateReport(ctx context.Context, reportType, format string, filters ReportFilters, adminID uint, ip string) ([]byte, string, string, error)
}

type service struct {
	repo     Repository
	exporter ReportExporter
	auditSvc auditlog.Service
}

func NewService(repo Repository, auditSvc auditlog.Service) Service {
	return &service{
		repo:     repo,
		exporter: NewReportExporter(),
		auditSvc: auditSvc,
	}
}

// GenerateReport loads the rows for the requested report and renders
// them in the requested format
func (s *service) GenerateReport(ctx context.Context, reportType, format string, filters ReportFilters, adminID uint, ip string) ([]byte, string, string, error) {
	var data ReportData
	var rowCount int
	var err error

	switch reportType {
	case ReportTypeEvents:
		data.Events, err = s.repo.GetEventRows(ctx, filters)
		rowCount = len(data.Events)
	case ReportTypeAttendance:
		data.Attendance, err = s.repo.GetAttendanceRows(ctx, filters)
		rowCount = len(data.Attendance)
	case ReportTypeHosts:
		data.Hosts, err = s.repo.GetHostRows(ctx, filters)
		rowCount = len(data.Hosts)
	default:
		return nil, "", "", fmt.Errorf("unsupported report type: %s", reportType)
	}
	if err != nil {
		return nil, "", "", err
	}

	fileBytes, filename, contentType, err := s.exporter.Export(reportType, format, data)
	if err != nil {
		return nil, "", "", err
	}

	s.auditSvc.LogAction(ctx, &adminID, auditlog.ActionReportGenerated, map[string]interface{}{
		"report_type": reportType,
		"format":      format,
		"rows":        rowCount,
	}, ip, "success")

	return fileBytes, filename, contentType, nil
}
