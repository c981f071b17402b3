package auth

import (
	"time"

	"gorm.io/gorm"
)

// Role names seeded at boot
const (
	RoleAttendee = "attendee"
	RoleHost     = "host"
	RoleAdmin    = "admin"
)

// Host verification states
const (
	VerificationUnsubmitted = "unsubmitted"
	VerificationPending     = "pending"
	VerificationApproved    = "approved"
	VerificationRejected    = "rejected"
)

type User struct {
	ID                 uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name               string         `gorm:"size:100;not null" json:"name"`
	Email              string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash       string         `gorm:"size:255;not null" json:"-"`
	ProfilePictureURL  string         `gorm:"size:500" json:"profile_picture_url"`
	Language           string         `gorm:"size:5;default:en" json:"language"` // en, ar, ku
	RoleID             uint           `gorm:"not null" json:"role_id"`
	Role               UserRole       `gorm:"foreignKey:RoleID;references:ID" json:"role"`
	VerificationStatus string         `gorm:"size:20;default:unsubmitted" json:"verification_status"`
	HostProfile        *HostProfile   `gorm:"foreignKey:UserID" json:"host_profile,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// IsVerifiedHost reports whether the user may publish events
func (u *User) IsVerifiedHost() bool {
	return u.Role.RoleName == RoleHost && u.VerificationStatus == VerificationApproved
}

type UserRole struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	RoleName    string `gorm:"size:30;uniqueIndex;not null" json:"role_name"`
	Description string `gorm:"size:255" json:"description"`
}

func (UserRole) TableName() string {
	return "user_roles"
}

// HostProfile holds the business details a host submits for verification
type HostProfile struct {
	UserID          uint      `gorm:"primaryKey" json:"user_id"`
	BusinessName    string    `gorm:"size:150;not null" json:"business_name"`
	Phone           string    `gorm:"size:20;not null" json:"phone"`
	Website         string    `gorm:"size:255" json:"website,omitempty"`
	BusinessAddress string    `gorm:"size:500;not null" json:"business_address"`
	OrganizerType   string    `gorm:"size:50;not null" json:"organizer_type"` // Venue, Promoter, Community, Individual
	UpdatedAt       time.Time `json:"updated_at"`
}

func (HostProfile) TableName() string {
	return "host_profiles"
}
