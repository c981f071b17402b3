package notification

import (
	"context"
	"fmt"
	"log"

	"firebase.google.com/go/v4/messaging"
	"github.com/hawrami/events-iraq-backend/utils"
)

// BroadcastTopic is the FCM topic every registered device joins so that
// admins can push announcements to the whole install base
const BroadcastTopic = "announcements"

// FCMChannel implements the Channel interface for Firebase Cloud Messaging
type FCMChannel struct {
	client *messaging.Client
	ctx    context.Context
}

// NewFCMChannel wraps the shared FCM client. A nil client disables push
// instead of failing.
func NewFCMChannel() *FCMChannel {
	return &FCMChannel{
		client: utils.GetFCMClient(),
		ctx:    context.Background(),
	}
}

// Send delivers the notification to the given device tokens
func (f *FCMChannel) Send(recipients []string, subject, body string) error {
	if f.client == nil {
		return fmt.Errorf("FCM client not initialized")
	}

	if len(recipients) == 0 {
		return fmt.Errorf("no FCM tokens provided")
	}

	if len(recipients) == 1 {
		return f.sendSingle(recipients[0], subject, body)
	}

	return f.sendMulticast(recipients, subject, body)
}

func (f *FCMChannel) sendSingle(token, title, body string) error {
	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound:        "default",
				ChannelID:    "event_notifications",
				Priority:     messaging.PriorityHigh,
				DefaultSound: true,
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
					Badge: intPtr(1),
				},
			},
		},
		Webpush: &messaging.WebpushConfig{
			Notification: &messaging.WebpushNotification{
				Title: title,
				Body:  body,
				Icon:  "/icon-192x192.png",
			},
		},
	}

	response, err := f.client.Send(f.ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send FCM message: %v", err)
	}

	log.Printf("✅ FCM message sent successfully: %s\n", response)
	return nil
}

func (f *FCMChannel) sendMulticast(tokens []string, title, body string) error {
	// FCM allows max 500 tokens per multicast
	batchSize := 500
	var failedTokens []string
	successCount := 0

	for i := 0; i < len(tokens); i += batchSize {
		end := i + batchSize
		if end > len(tokens) {
			end = len(tokens)
		}

		batch := tokens[i:end]
		message := &messaging.MulticastMessage{
			Tokens: batch,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
			Android: &messaging.AndroidConfig{
				Priority: "high",
				Notification: &messaging.AndroidNotification{
					Sound:        "default",
					ChannelID:    "event_notifications",
					Priority:     messaging.PriorityHigh,
					DefaultSound: true,
				},
			},
			APNS: &messaging.APNSConfig{
				Payload: &messaging.APNSPayload{
					Aps: &messaging.Aps{
						Sound: "default",
						Badge: intPtr(1),
					},
				},
			},
			Webpush: &messaging.WebpushConfig{
				Notification: &messaging.WebpushNotification{
					Title: title,
					Body:  body,
					Icon:  "/icon-192x192.png",
				},
			},
		}

		response, err := f.client.SendEachForMulticast(f.ctx, message)
		if err != nil {
			log.Printf("❌ Error sending FCM multicast batch: %v\n", err)
			failedTokens = append(failedTokens, batch...)
			continue
		}

		successCount += response.SuccessCount

		if response.FailureCount > 0 {
			for idx, resp := range response.Responses {
				if !resp.Success {
					failedTokens = append(failedTokens, batch[idx])
				}
			}
		}
	}

	if len(failedTokens) > 0 {
		return fmt.Errorf("failed to send to %d/%d tokens", len(failedTokens), len(tokens))
	}

	log.Printf("✅ All FCM messages sent: %d tokens\n", successCount)
	return nil
}

func intPtr(i int) *int {
	return &i
}

// SendToTopic pushes an announcement to every device on a topic
func (f *FCMChannel) SendToTopic(topic, title, body string) error {
	if f.client == nil {
		return fmt.Errorf("FCM client not initialized")
	}

	message := &messaging.Message{
		Topic: topic,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
	}

	response, err := f.client.Send(f.ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send topic message: %v", err)
	}

	log.Printf("✅ FCM topic message sent: %s\n", response)
	return nil
}

// SubscribeToTopic subscribes tokens to a topic
func (f *FCMChannel) SubscribeToTopic(tokens []string, topic string) error {
	if f.client == nil {
		return fmt.Errorf("FCM client not initialized")
	}

	response, err := f.client.SubscribeToTopic(f.ctx, tokens, topic)
	if err != nil {
		return fmt.Errorf("failed to subscribe to topic: %v", err)
	}

	log.Printf("✅ Subscribed %d tokens to topic '%s' (failures: %d)\n",
		response.SuccessCount, topic, response.FailureCount)
	return nil
}

// UnsubscribeFromTopic unsubscribes tokens from a topic
func (f *FCMChannel) UnsubscribeFromTopic(tokens []string, topic string) error {
	if f.client == nil {
		return fmt.Errorf("FCM client not initialized")
	}

	response, err := f.client.UnsubscribeFromTopic(f.ctx, tokens, topic)
	if err != nil {
		return fmt.Errorf("failed to unsubscribe from topic: %v", err)
	}

	log.Printf("✅ Unsubscribed %d tokens from topic '%s' (failures: %d)\n",
		response.SuccessCount, topic, response.FailureCount)
	return nil
}
