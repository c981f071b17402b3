package message

import (
	"gorm.io/gorm"
)

type Repository interface {
	Create(msg *Message) error
	FindConversation(userID, partnerID uint) ([]Message, error)
	MarkConversationRead(userID, partnerID uint) error
	ListConversationPartners(userID uint) ([]Message, error)
	CountUnreadFrom(userID, partnerID uint) (int64, error)
	CountUnread(userID uint) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(msg *Message) error {
	return r.db.Create(msg).Error
}

// FindConversation returns every message exchanged between the two
// users, oldest first
func (r *repository) FindConversation(userID, partnerID uint) ([]Message, error) {
	var msgs []Message
	err := r.db.
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userID, partnerID, partnerID, userID).
		Order("created_at ASC").
		Find(&msgs).Error
	return msgs, err
}

// MarkConversationRead flags every message the partner sent to the user
// as read
func (r *repository) MarkConversationRead(userID, partnerID uint) error {
	return r.db.Model(&Message{}).
		Where("recipient_id = ? AND sender_id = ? AND is_read = false", userID, partnerID).
		Update("is_read", true).Error
}

// ListConversationPartners returns the newest message per partner the
// user has exchanged messages with, newest conversations first
func (r *repository) ListConversationPartners(userID uint) ([]Message, error) {
	var msgs []Message
	err := r.db.Raw(`
		SELECT m.* FROM messages m
		INNER JOIN (
			SELECT MAX(id) AS id FROM messages
			WHERE deleted_at IS NULL AND (sender_id = ? OR recipient_id = ?)
			GROUP BY CASE WHEN sender_id = ? THEN recipient_id ELSE sender_id END
		) latest ON latest.id = m.id
		ORDER BY m.created_at DESC
	`, userID, userID, userID).Scan(&msgs).Error
	if err != nil {
		return nil, err
	}

	// Raw scan skips preloads, fetch partners separately
	for i := range msgs {
		if err := r.db.Preload("Sender").Preload("Recipient").First(&msgs[i], msgs[i].ID).Error; err != nil {
			return nil, err
		}
	}
	return msgs, nil
}

func (r *repository) CountUnreadFrom(userID, partnerID uint) (int64, error) {
	var count int64
	err := r.db.Model(&Message{}).
		Where("recipient_id = ? AND sender_id = ? AND is_read = false", userID, partnerID).
		Count(&count).Error
	return count, err
}

func (r *repository) CountUnread(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&Message{}).
		Where("recipient_id = ? AND is_read = false", userID).
		Count(&count).Error
	return count, err
}
