package message

import (
	"errors"
	"fmt"

	"github.com/hawrami/events-iraq-backend/internal/auth"
	"github.com/hawrami/events-iraq-backend/utils"
	"gorm.io/gorm"
)

var (
	ErrRecipientNotFound = errors.New("recipient not found")
	ErrSelfMessage       = errors.New("cannot message yourself")
	ErrEmptyBody         = errors.New("message body cannot be empty")
)

type Service struct {
	repo     Repository
	userRepo auth.Repository
}

func NewService(repo Repository, userRepo auth.Repository) *Service {
	return &Service{repo: repo, userRepo: userRepo}
}

// Send stores the message and notifies the recipient over the bus
func (s *Service) Send(sender *auth.User, req *SendMessageRequest) (*MessageResponse, error) {
	if req.Body == "" {
		return nil, ErrEmptyBody
	}
	if req.RecipientID == sender.ID {
		return nil, ErrSelfMessage
	}

	if _, err := s.userRepo.FindByID(req.RecipientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, err
	}

	msg := &Message{
		SenderID:    sender.ID,
		RecipientID: req.RecipientID,
		Body:        req.Body,
	}
	if err := s.repo.Create(msg); err != nil {
		return nil, err
	}

	utils.PublishNotification(utils.NotificationEvent{
		UserID:   req.RecipientID,
		Title:    "New message",
		Message:  fmt.Sprintf("%s sent you a message", sender.Name),
		Category: "message",
	})

	resp := msg.toResponse()
	return &resp, nil
}

// GetConversation returns the full two-way thread with the partner,
// oldest first, and marks the partner's messages as read
func (s *Service) GetConversation(userID, partnerID uint) ([]MessageResponse, error) {
	if _, err := s.userRepo.FindByID(partnerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, err
	}

	// mark before fetching so the payload reflects the new read state
	if err := s.repo.MarkConversationRead(userID, partnerID); err != nil {
		return nil, err
	}

	msgs, err := s.repo.FindConversation(userID, partnerID)
	if err != nil {
		return nil, err
	}

	responses := make([]MessageResponse, 0, len(msgs))
	for i := range msgs {
		responses = append(responses, msgs[i].toResponse())
	}
	return responses, nil
}

// ListConversations returns one entry per partner with the latest
// message and the unread count, newest first
func (s *Service) ListConversations(userID uint) ([]Conversation, error) {
	latest, err := s.repo.ListConversationPartners(userID)
	if err != nil {
		return nil, err
	}

	conversations := make([]Conversation, 0, len(latest))
	for i := range latest {
		msg := &latest[i]

		partner := msg.Sender
		if msg.SenderID == userID {
			partner = msg.Recipient
		}

		unread, err := s.repo.CountUnreadFrom(userID, partner.ID)
		if err != nil {
			return nil, err
		}

		conversations = append(conversations, Conversation{
			Partner: PartnerSummary{
				ID:                partner.ID,
				Name:              partner.Name,
				ProfilePictureURL: partner.ProfilePictureURL,
			},
			LastMessage: msg.toResponse(),
			UnreadCount: int(unread),
		})
	}
	return conversations, nil
}

// UnreadCount returns the total unread messages for the badge counter
func (s *Service) UnreadCount(userID uint) (int64, error) {
	return s.repo.CountUnread(userID)
}
