package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// ReportExporter renders one report type in one format
type ReportExporter interface {
	Export(reportType, format string, data ReportData) ([]byte, string, string, error)
}

type reportExporter struct{}

func NewReportExporter() ReportExporter {
	return &reportExporter{}
}

// Export returns the file bytes, filename and content type
func (e *reportExporter) Export(reportType, format string, data ReportData) ([]byte, string, string, error) {
	timestamp := time.Now().Format("20060102_150405")

	switch reportType {
	case ReportTypeEvents:
		return e.exportEvents(format, timestamp, data.Events)
	case ReportTypeAttendance:
		return e.exportAttendance(format, timestamp, data.Attendance)
	case ReportTypeHosts:
		return e.exportHosts(format, timestamp, data.Hosts)
	default:
		return nil, "", "", fmt.Errorf("unsupported report type: %s", reportType)
	}
}

func contentTypeFor(format string) string {
	switch format {
	case FormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/csv"
	}
}

func extensionFor(format string) string {
	switch format {
	case FormatExcel:
		return "xlsx"
	case FormatPDF:
		return "pdf"
	default:
		return "csv"
	}
}

//// ============================
/// EVENTS REPORT
//// ============================

var eventHeaders = []string{"ID", "Title", "Date", "City", "Category", "Creator", "Creator Email", "Attendees", "Promoted", "Approved", "Created At"}

func eventValues(row EventReportRow) []string {
	return []string{
		strconv.FormatUint(uint64(row.ID), 10),
		row.Title,
		row.Date.Format("2006-01-02 15:04"),
		row.City,
		row.Category,
		row.CreatorName,
		row.CreatorEmail,
		strconv.FormatInt(row.AttendeeCount, 10),
		strconv.FormatBool(row.IsPromoted),
		strconv.FormatBool(row.IsApproved),
		row.CreatedAt.Format("2006-01-02 15:04"),
	}
}

func (e *reportExporter) exportEvents(format, timestamp string, rows []EventReportRow) ([]byte, string, string, error) {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, eventValues(row))
	}

	widths := []float64{12, 55, 28, 22, 28, 30, 45, 18, 18, 18, 28}
	data, err := e.render(format, "Events Report", "Events", eventHeaders, widths, records)
	if err != nil {
		return nil, "", "", err
	}

	filename := fmt.Sprintf("events_report_%s.%s", timestamp, extensionFor(format))
	return data, filename, contentTypeFor(format), nil
}

//// ============================
/// ATTENDANCE REPORT
//// ============================

var attendanceHeaders = []string{"Event ID", "Event", "Event Date", "City", "Attendee", "Attendee Email", "Joined At"}

func attendanceValues(row AttendanceReportRow) []string {
	return []string{
		strconv.FormatUint(uint64(row.EventID), 10),
		row.EventTitle,
		row.EventDate.Format("2006-01-02 15:04"),
		row.City,
		row.AttendeeName,
		row.AttendeeEmail,
		row.JoinedAt.Format("2006-01-02 15:04"),
	}
}

func (e *reportExporter) exportAttendance(format, timestamp string, rows []AttendanceReportRow) ([]byte, string, string, error) {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, attendanceValues(row))
	}

	widths := []float64{20, 65, 30, 25, 40, 60, 30}
	data, err := e.render(format, "Attendance Report", "Attendance", attendanceHeaders, widths, records)
	if err != nil {
		return nil, "", "", err
	}

	filename := fmt.Sprintf("attendance_report_%s.%s", timestamp, extensionFor(format))
	return data, filename, contentTypeFor(format), nil
}

//// ============================
/// HOSTS REPORT
//// ============================

var hostHeaders = []string{"User ID", "Name", "Email", "Business", "Organizer Type", "Status", "Events", "Registered At"}

func hostValues(row HostReportRow) []string {
	return []string{
		strconv.FormatUint(uint64(row.UserID), 10),
		row.Name,
		row.Email,
		row.BusinessName,
		row.OrganizerType,
		row.VerificationStatus,
		strconv.FormatInt(row.EventCount, 10),
		row.RegisteredAt.Format("2006-01-02"),
	}
}

func (e *reportExporter) exportHosts(format, timestamp string, rows []HostReportRow) ([]byte, string, string, error) {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, hostValues(row))
	}

	widths := []float64{20, 40, 60, 45, 35, 25, 18, 28}
	data, err := e.render(format, "Hosts Report", "Hosts", hostHeaders, widths, records)
	if err != nil {
		return nil, "", "", err
	}

	filename := fmt.Sprintf("hosts_report_%s.%s", timestamp, extensionFor(format))
	return data, filename, contentTypeFor(format), nil
}

//// ============================
/// RENDERERS
//// ============================

func (e *reportExporter) render(format, title, sheet string, headers []string, pdfWidths []float64, records [][]string) ([]byte, error) {
	switch format {
	case FormatExcel:
		return e.renderExcel(sheet, headers, records)
	case FormatPDF:
		return e.renderPDF(title, headers, pdfWidths, records)
	case FormatCSV, "":
		return e.renderCSV(headers, records)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func (e *reportExporter) renderCSV(headers []string, records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(headers); err != nil {
		return nil, err
	}
	for _, record := range records {
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *reportExporter) renderExcel(sheetName string, headers []string, records [][]string) ([]byte, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheetName)

	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, record := range records {
		row := i + 2
		for j, value := range record {
			cell := fmt.Sprintf("%c%d", 'A'+j, row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *reportExporter) renderPDF(title string, headers []string, widths []float64, records [][]string) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, title)
	pdf.Ln(20)

	pdf.SetFont("Arial", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, record := range records {
		for i, value := range record {
			pdf.CellFormat(widths[i], 6, value, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
