package reports

import (
	"time"
)

// Report types served by the admin export endpoint
const (
	ReportTypeEvents     = "events"
	ReportTypeAttendance = "attendance"
	ReportTypeHosts      = "hosts"
)

// Export formats
const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

// ReportFilters narrows report rows by date window and city
type ReportFilters struct {
	FromDate *time.Time
	ToDate   *time.Time
	CityID   *uint
}

// EventReportRow is one event in the events report
type EventReportRow struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Date          time.Time `json:"date"`
	City          string    `json:"city"`
	Category      string    `json:"category"`
	CreatorName   string    `json:"creator_name"`
	CreatorEmail  string    `json:"creator_email"`
	AttendeeCount int64     `json:"attendee_count"`
	IsPromoted    bool      `json:"is_promoted"`
	IsApproved    bool      `json:"is_approved"`
	CreatedAt     time.Time `json:"created_at"`
}

// AttendanceReportRow is one attendance record in the attendance report
type AttendanceReportRow struct {
	EventID       uint      `json:"event_id"`
	EventTitle    string    `json:"event_title"`
	EventDate     time.Time `json:"event_date"`
	City          string    `json:"city"`
	AttendeeName  string    `json:"attendee_name"`
	AttendeeEmail string    `json:"attendee_email"`
	JoinedAt      time.Time `json:"joined_at"`
}

// HostReportRow is one host in the hosts report
type HostReportRow struct {
	UserID             uint      `json:"user_id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	BusinessName       string    `json:"business_name"`
	OrganizerType      string    `json:"organizer_type"`
	VerificationStatus string    `json:"verification_status"`
	EventCount         int64     `json:"event_count"`
	RegisteredAt       time.Time `json:"registered_at"`
}

// ReportData bundles the rows for one export run
type ReportData struct {
	Events     []EventReportRow
	Attendance []AttendanceReportRow
	Hosts      []HostReportRow
}
