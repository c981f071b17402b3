package event

import (
	"time"

	"github.com/hawrami/events-iraq-backend/internal/auth"
	"github.com/hawrami/events-iraq-backend/internal/refdata"
	"gorm.io/gorm"
)

// Event is a listing with per-language title and description columns.
// English is mandatory, Arabic and Kurdish fall back to English on create.
type Event struct {
	ID            uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	TitleEn       string  `gorm:"size:255;not null" json:"title_en"`
	TitleAr       string  `gorm:"size:255;not null" json:"title_ar"`
	TitleKu       string  `gorm:"size:255;not null" json:"title_ku"`
	DescriptionEn string  `gorm:"type:text;not null" json:"description_en"`
	DescriptionAr string  `gorm:"type:text;not null" json:"description_ar"`
	DescriptionKu string  `gorm:"type:text;not null" json:"description_ku"`

	Date            time.Time `gorm:"not null;index" json:"date"`
	LocationAddress string    `gorm:"size:500;not null" json:"location_address"`
	LocationLat     *float64  `json:"location_lat,omitempty"`
	LocationLng     *float64  `json:"location_lng,omitempty"`
	ImageURL        string    `gorm:"size:500" json:"image_url"`

	CreatorID  uint             `gorm:"not null;index" json:"creator_id"`
	Creator    auth.User        `gorm:"foreignKey:CreatorID" json:"-"`
	CategoryID uint             `gorm:"not null;index" json:"category_id"`
	Category   refdata.Category `gorm:"foreignKey:CategoryID" json:"-"`
	CityID     uint             `gorm:"not null;index" json:"city_id"`
	City       refdata.City     `gorm:"foreignKey:CityID" json:"-"`

	IsPromoted bool `gorm:"default:false;index" json:"is_promoted"`
	IsApproved bool `gorm:"default:false;index" json:"is_approved"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Event) TableName() string {
	return "events"
}

// Attendance is the event<->user join row. The (event_id, user_id) pair
// is unique so the toggle stays idempotent.
type Attendance struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	EventID   uint      `gorm:"not null;uniqueIndex:idx_event_user" json:"event_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_event_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Attendance) TableName() string {
	return "event_attendees"
}

// ============================
// Requests

type LocalizedText struct {
	En string `json:"en"`
	Ar string `json:"ar"`
	Ku string `json:"ku"`
}

type CreateEventRequest struct {
	Title           LocalizedText `json:"title" binding:"required"`
	Description     LocalizedText `json:"description" binding:"required"`
	Date            string        `json:"date" binding:"required"` // RFC 3339
	LocationAddress string        `json:"location_address" binding:"required"`
	LocationLat     *float64      `json:"location_lat,omitempty"`
	LocationLng     *float64      `json:"location_lng,omitempty"`
	ImageURL        string        `json:"image_url,omitempty"`
	CategoryID      uint          `json:"category_id" binding:"required"`
	CityID          uint          `json:"city_id" binding:"required"`
}

type UpdateEventRequest struct {
	Title           LocalizedText `json:"title" binding:"required"`
	Description     LocalizedText `json:"description" binding:"required"`
	Date            string        `json:"date" binding:"required"`
	LocationAddress string        `json:"location_address" binding:"required"`
	LocationLat     *float64      `json:"location_lat,omitempty"`
	LocationLng     *float64      `json:"location_lng,omitempty"`
	ImageURL        string        `json:"image_url,omitempty"`
	CategoryID      uint          `json:"category_id" binding:"required"`
	CityID          uint          `json:"city_id" binding:"required"`
}

// ListFilters is the conjunctive filter set for the public listing
type ListFilters struct {
	CityID     *uint
	CategoryID *uint
	Search     string
	Page       int
	Limit      int
}

// ============================
// Read models

// UserSummary is the sanitized slice of a user embedded in responses
type UserSummary struct {
	ID                uint   `json:"id"`
	Name              string `json:"name"`
	ProfilePictureURL string `json:"profile_picture_url,omitempty"`
}

// EventResponse is the typed view-model the UI consumes: localized
// fields grouped, creator/category/city joined in, never the raw rows
type EventResponse struct {
	ID              uint              `json:"id"`
	Title           LocalizedText     `json:"title"`
	Description     LocalizedText     `json:"description"`
	Date            time.Time         `json:"date"`
	LocationAddress string            `json:"location_address"`
	LocationLat     *float64          `json:"location_lat,omitempty"`
	LocationLng     *float64          `json:"location_lng,omitempty"`
	ImageURL        string            `json:"image_url"`
	IsPromoted      bool              `json:"is_promoted"`
	IsApproved      bool              `json:"is_approved"`
	Creator         UserSummary       `json:"creator"`
	Category        refdata.Category  `json:"category"`
	City            refdata.City      `json:"city"`
	AttendeeCount   int               `json:"attendee_count"`
	Attendees       []UserSummary     `json:"attendees,omitempty"`
}

// ListResult carries one page plus pagination metadata
type ListResult struct {
	Events     []EventResponse `json:"events"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

func newUserSummary(u *auth.User) UserSummary {
	return UserSummary{
		ID:                u.ID,
		Name:              u.Name,
		ProfilePictureURL: u.ProfilePictureURL,
	}
}

func (e *Event) toResponse() EventResponse {
	return EventResponse{
		ID: e.ID,
		Title: LocalizedText{
			En: e.TitleEn,
			Ar: e.TitleAr,
			Ku: e.TitleKu,
		},
		Description: LocalizedText{
			En: e.DescriptionEn,
			Ar: e.DescriptionAr,
			Ku: e.DescriptionKu,
		},
		Date:            e.Date,
		LocationAddress: e.LocationAddress,
		LocationLat:     e.LocationLat,
		LocationLng:     e.LocationLng,
		ImageURL:        e.ImageURL,
		IsPromoted:      e.IsPromoted,
		IsApproved:      e.IsApproved,
		Creator:         newUserSummary(&e.Creator),
		Category:        e.Category,
		City:            e.City,
	}
}
