package notification

import (
	"time"
)

// Notification categories mirrored from the bus payloads
const (
	CategoryEvent        = "event"
	CategoryMessage      = "message"
	CategoryVerification = "verification"
	CategorySystem       = "system"
)

// Channel is a push delivery mechanism (FCM today)
type Channel interface {
	Send(recipients []string, subject, body string) error
}

// InAppNotification represents the in_app_notifications table
type InAppNotification struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	Category  string    `gorm:"size:30;not null;default:system;index" json:"category"`
	IsRead    bool      `gorm:"default:false;index" json:"is_read"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (InAppNotification) TableName() string {
	return "in_app_notifications"
}

// FCMDeviceToken represents the fcm_device_tokens table
type FCMDeviceToken struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	DeviceToken string    `gorm:"size:500;not null;uniqueIndex" json:"device_token"`
	Platform    string    `gorm:"size:20" json:"platform"` // android/ios/web
	IsActive    bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (FCMDeviceToken) TableName() string {
	return "fcm_device_tokens"
}

// RegisterTokenRequest is the payload for registering a device token
type RegisterTokenRequest struct {
	DeviceToken string `json:"device_token" binding:"required"`
	Platform    string `json:"platform"`
}

// BroadcastRequest is the admin payload for a topic-wide announcement
type BroadcastRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}
