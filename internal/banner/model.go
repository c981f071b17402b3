package banner

import (
	"time"

	"github.com/hawrami/events-iraq-backend/internal/refdata"
	"gorm.io/gorm"
)

// Placement values a banner slot can target
const (
	PlacementHome        = "home"
	PlacementEventList   = "event_list"
	PlacementEventDetail = "event_detail"
)

// Banner represents the banners table. A nil CityID means the banner is
// citywide and serves as the fallback for cities without their own.
type Banner struct {
	ID        uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	ImageURL  string           `gorm:"size:500;not null" json:"image_url"`
	TargetURL string           `gorm:"size:500" json:"target_url"`
	Placement string           `gorm:"size:30;not null;default:home;index" json:"placement"`
	CityID    *uint            `gorm:"index" json:"city_id"`
	City      *refdata.City    `gorm:"foreignKey:CityID" json:"city,omitempty"`
	SponsorID *uint            `json:"sponsor_id"`
	Sponsor   *refdata.Sponsor `gorm:"foreignKey:SponsorID" json:"sponsor,omitempty"`
	IsActive  bool             `gorm:"default:true;index" json:"is_active"`
	Clicks    int64            `gorm:"not null;default:0" json:"clicks"`
	Views     int64            `gorm:"not null;default:0" json:"views"`
	StartsAt  *time.Time       `json:"starts_at"`
	EndsAt    *time.Time       `json:"ends_at"`
	CreatedAt time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt   `gorm:"index" json:"-"`
}

func (Banner) TableName() string {
	return "banners"
}

// CreateBannerRequest is the admin payload for creating a banner
type CreateBannerRequest struct {
	ImageURL  string     `json:"image_url" binding:"required"`
	TargetURL string     `json:"target_url"`
	Placement string     `json:"placement"`
	CityID    *uint      `json:"city_id"`
	SponsorID *uint      `json:"sponsor_id"`
	StartsAt  *time.Time `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at"`
}

// UpdateBannerRequest is the admin payload for updating a banner
type UpdateBannerRequest struct {
	ImageURL  string     `json:"image_url" binding:"required"`
	TargetURL string     `json:"target_url"`
	Placement string     `json:"placement"`
	CityID    *uint      `json:"city_id"`
	SponsorID *uint      `json:"sponsor_id"`
	IsActive  *bool      `json:"is_active"`
	StartsAt  *time.Time `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at"`
}
