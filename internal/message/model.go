package message

import (
	"time"

	"github.com/hawrami/events-iraq-backend/internal/auth"
	"gorm.io/gorm"
)

// Message represents the messages table
type Message struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	SenderID    uint           `gorm:"not null;index" json:"sender_id"`
	Sender      auth.User      `gorm:"foreignKey:SenderID" json:"-"`
	RecipientID uint           `gorm:"not null;index" json:"recipient_id"`
	Recipient   auth.User      `gorm:"foreignKey:RecipientID" json:"-"`
	Body        string         `gorm:"type:text;not null" json:"body"`
	IsRead      bool           `gorm:"default:false" json:"is_read"`
	CreatedAt   time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Message) TableName() string {
	return "messages"
}

// SendMessageRequest is the payload for POST /messages
type SendMessageRequest struct {
	RecipientID uint   `json:"recipient_id" binding:"required"`
	Body        string `json:"body" binding:"required"`
}

// MessageResponse is the API shape of a single message
type MessageResponse struct {
	ID          uint      `json:"id"`
	SenderID    uint      `json:"sender_id"`
	RecipientID uint      `json:"recipient_id"`
	Body        string    `json:"body"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}

// Conversation summarises the latest exchange with one partner
type Conversation struct {
	Partner     PartnerSummary  `json:"partner"`
	LastMessage MessageResponse `json:"last_message"`
	UnreadCount int             `json:"unread_count"`
}

// PartnerSummary is the minimal partner identity shown in conversation lists
type PartnerSummary struct {
	ID                uint   `json:"id"`
	Name              string `json:"name"`
	ProfilePictureURL string `json:"profile_picture_url,omitempty"`
}

func (m *Message) toResponse() MessageResponse {
	return MessageResponse{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Body:        m.Body,
		IsRead:      m.IsRead,
		CreatedAt:   m.CreatedAt,
	}
}
