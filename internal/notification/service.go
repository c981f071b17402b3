package notification

import (
	"context"
	"log"
)

type Service interface {
	Notify(ctx context.Context, userID uint, title, body, category string) error
	ListMine(ctx context.Context, userID uint, limit int) ([]InAppNotification, error)
	MarkRead(ctx context.Context, id uint, userID uint) error
	MarkAllRead(ctx context.Context, userID uint) error
	UnreadCount(ctx context.Context, userID uint) (int64, error)
	RegisterDevice(ctx context.Context, userID uint, req *RegisterTokenRequest) error
	UnregisterDevice(ctx context.Context, userID uint, deviceToken string) error
	Broadcast(title, body string) error
}

type service struct {
	repo Repository
	fcm  *FCMChannel
}

func NewService(repo Repository, fcm *FCMChannel) Service {
	return &service{repo: repo, fcm: fcm}
}

// Notify stores the in-app notification and pushes it to the user's
// registered devices. Push failures are logged, never returned: the
// in-app record is the durable copy.
func (s *service) Notify(ctx context.Context, userID uint, title, body, category string) error {
	if category == "" {
		category = CategorySystem
	}

	n := &InAppNotification{
		UserID:   userID,
		Title:    title,
		Body:     body,
		Category: category,
	}
	if err := s.repo.CreateInApp(ctx, n); err != nil {
		return err
	}

	tokens, err := s.repo.GetUserDeviceTokens(ctx, userID)
	if err != nil {
		log.Printf("⚠️ failed to load device tokens for user %d: %v", userID, err)
		return nil
	}
	if len(tokens) == 0 {
		return nil
	}

	if err := s.fcm.Send(tokens, title, body); err != nil {
		log.Printf("⚠️ push delivery failed for user %d: %v", userID, err)
	}
	return nil
}

func (s *service) ListMine(ctx context.Context, userID uint, limit int) ([]InAppNotification, error) {
	return s.repo.ListInAppByUser(ctx, userID, limit)
}

func (s *service) MarkRead(ctx context.Context, id uint, userID uint) error {
	return s.repo.MarkInAppAsRead(ctx, id, userID)
}

func (s *service) MarkAllRead(ctx context.Context, userID uint) error {
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *service) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

// RegisterDevice stores the token and joins the broadcast topic
func (s *service) RegisterDevice(ctx context.Context, userID uint, req *RegisterTokenRequest) error {
	token := &FCMDeviceToken{
		UserID:      userID,
		DeviceToken: req.DeviceToken,
		Platform:    req.Platform,
		IsActive:    true,
	}
	if err := s.repo.SaveDeviceToken(ctx, token); err != nil {
		return err
	}

	if err := s.fcm.SubscribeToTopic([]string{req.DeviceToken}, BroadcastTopic); err != nil {
		log.Printf("⚠️ topic subscribe failed: %v", err)
	}
	return nil
}

// UnregisterDevice deactivates the token and leaves the broadcast topic
func (s *service) UnregisterDevice(ctx context.Context, userID uint, deviceToken string) error {
	if err := s.repo.RemoveDeviceToken(ctx, userID, deviceToken); err != nil {
		return err
	}

	if err := s.fcm.UnsubscribeFromTopic([]string{deviceToken}, BroadcastTopic); err != nil {
		log.Printf("⚠️ topic unsubscribe failed: %v", err)
	}
	return nil
}

// Broadcast pushes an announcement to every subscribed device
func (s *service) Broadcast(title, body string) error {
	return s.fcm.SendToTopic(BroadcastTopic, title, body)
}
