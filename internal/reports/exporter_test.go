package reports_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hawrami/events-iraq-backend/internal/reports"
)

func sampleEventRows() []reports.EventReportRow {
	return []reports.EventReportRow{
		{
			ID:            1,
			Title:         "Erbil Book Fair",
			Date:          time.Date(2026, 10, 12, 18, 0, 0, 0, time.UTC),
			City:          "Erbil",
			Category:      "Culture",
			CreatorName:   "Dana",
			CreatorEmail:  "dana@example.com",
			AttendeeCount: 42,
			IsPromoted:    true,
			IsApproved:    true,
			CreatedAt:     time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
		},
	}
}

func TestExportEventsCSV(t *testing.T) {
	exporter := reports.NewReportExporter()

	data, filename, contentType, err := exporter.Export(
		reports.ReportTypeEvents, reports.FormatCSV,
		reports.ReportData{Events: sampleEventRows()},
	)
	require.NoError(t, err)
	require.Equal(t, "text/csv", contentType)
	require.True(t, strings.HasPrefix(filename, "events_report_"))
	require.True(t, strings.HasSuffix(filename, ".csv"))

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2, "header plus one data row")
	require.Equal(t, "Title", records[0][1])
	require.Equal(t, "Erbil Book Fair", records[1][1])
	require.Equal(t, "42", records[1][7])
	require.Equal(t, "true", records[1][8])
}

func TestExportEventsExcel(t *testing.T) {
	exporter := reports.NewReportExporter()

	data, filename, contentType, err := exporter.Export(
		reports.ReportTypeEvents, reports.FormatExcel,
		reports.ReportData{Events: sampleEventRows()},
	)
	require.NoError(t, err)
	require.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", contentType)
	require.True(t, strings.HasSuffix(filename, ".xlsx"))
	// xlsx files are zip archives
	require.True(t, bytes.HasPrefix(data, []byte("PK")))
}

func TestExportEventsPDF(t *testing.T) {
	exporter := reports.NewReportExporter()

	data, filename, contentType, err := exporter.Export(
		reports.ReportTypeEvents, reports.FormatPDF,
		reports.ReportData{Events: sampleEventRows()},
	)
	require.NoError(t, err)
	require.Equal(t, "application/pdf", contentType)
	require.True(t, strings.HasSuffix(filename, ".pdf"))
	require.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestExportUnknownType(t *testing.T) {
	exporter := reports.NewReportExporter()

	_, _, _, err := exporter.Export("revenue", reports.FormatCSV, reports.ReportData{})
	require.Error(t, err)
}

func TestExportAttendanceCSV(t *testing.T) {
	exporter := reports.NewReportExporter()

	rows := []reports.AttendanceReportRow{
		{
			EventID:       1,
			EventTitle:    "Erbil Book Fair",
			EventDate:     time.Date(2026, 10, 12, 18, 0, 0, 0, time.UTC),
			City:          "Erbil",
			AttendeeName:  "Rawa",
			AttendeeEmail: "rawa@example.com",
			JoinedAt:      time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
		},
	}

	data, _, _, err := exporter.Export(
		reports.ReportTypeAttendance, reports.FormatCSV,
		reports.ReportData{Attendance: rows},
	)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "Rawa", records[1][4])
}
