package notification

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"

	"github.com/hawrami/events-iraq-backend/utils"
)

// StartKafkaConsumer drains the notification topic and fans each event
// out to the in-app store and push devices. Runs until ctx is
// cancelled; without brokers configured it returns immediately.
func StartKafkaConsumer(ctx context.Context, svc Service) {
	reader := utils.NewNotificationReader()
	if reader == nil {
		log.Println("⚠️ Kafka consumer disabled (no brokers configured)")
		return
	}
	defer reader.Close()

	log.Println("✅ Kafka notification consumer started")

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				log.Println("Kafka notification consumer stopped")
				return
			}
			log.Printf("⚠️ kafka read failed: %v", err)
			continue
		}

		var ev utils.NotificationEvent
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			log.Printf("⚠️ dropping malformed notification event: %v", err)
			continue
		}

		if err := svc.Notify(ctx, ev.UserID, ev.Title, ev.Message, ev.Category); err != nil {
			log.Printf("⚠️ failed to deliver notification to user %d: %v", ev.UserID, err)
		}
	}
}
