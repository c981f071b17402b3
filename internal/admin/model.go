package admin

import (
	"time"
)

// RejectHostRequest is the payload for rejecting a host profile
type RejectHostRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// RejectEventRequest is the payload for rejecting a submitted event
type RejectEventRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// HostReviewItem is one row in the verification queue
type HostReviewItem struct {
	UserID             uint      `json:"user_id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	VerificationStatus string    `json:"verification_status"`
	BusinessName       string    `json:"business_name"`
	Phone              string    `json:"phone"`
	Website            string    `json:"website"`
	BusinessAddress    string    `json:"business_address"`
	OrganizerType      string    `json:"organizer_type"`
	SubmittedAt        time.Time `json:"submitted_at"`
}

// UserListItem is one row in the admin user listing
type UserListItem struct {
	ID                 uint      `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Role               string    `json:"role"`
	Language           string    `json:"language"`
	VerificationStatus string    `json:"verification_status"`
	CreatedAt          time.Time `json:"created_at"`
}

// UserListResult is the paginated user listing
type UserListResult struct {
	Users      []UserListItem `json:"users"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

// PlatformStats is the admin dashboard summary
type PlatformStats struct {
	TotalUsers      int64 `json:"total_users"`
	TotalAttendees  int64 `json:"total_attendees"`
	TotalHosts      int64 `json:"total_hosts"`
	PendingHosts    int64 `json:"pending_hosts"`
	TotalEvents     int64 `json:"total_events"`
	ApprovedEvents  int64 `json:"approved_events"`
	PendingEvents   int64 `json:"pending_events"`
	PromotedEvents  int64 `json:"promoted_events"`
	TotalAttendance int64 `json:"total_attendance"`
	TotalMessages   int64 `json:"total_messages"`
}
