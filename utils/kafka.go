package utils

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// NotificationEvent is the payload published to the notification topic.
// Producers live in the event, message and admin services; the single
// consumer is the notification service.
type NotificationEvent struct {
	UserID   uint   `json:"user_id"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Category string `json:"category"` // event, message, verification, system
}

var (
	kafkaWriter *kafka.Writer
	kafkaTopic  string
)

// InitializeKafka sets up the shared writer. Without KAFKA_BROKERS the
// bus is disabled and publishes become no-ops.
func InitializeKafka() {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		log.Println("ℹ️ KAFKA_BROKERS not set, notification bus disabled")
		return
	}

	kafkaTopic = os.Getenv("KAFKA_NOTIFICATION_TOPIC")
	if kafkaTopic == "" {
		kafkaTopic = "notifications"
	}

	kafkaWriter = &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(brokers, ",")...),
		Topic:        kafkaTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}

	log.Println("✅ Kafka writer ready, topic:", kafkaTopic)
}

// PublishNotification writes one event to the bus. Failures are logged,
// not returned: a lost notification must never fail the request.
func PublishNotification(ev NotificationEvent) {
	if kafkaWriter == nil {
		return
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("⚠️ kafka marshal failed: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := kafkaWriter.WriteMessages(ctx, kafka.Message{Value: payload}); err != nil {
		log.Printf("⚠️ kafka publish failed: %v", err)
	}
}

// NewNotificationReader builds the consumer reader for the topic
func NewNotificationReader() *kafka.Reader {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		return nil
	}

	topic := os.Getenv("KAFKA_NOTIFICATION_TOPIC")
	if topic == "" {
		topic = "notifications"
	}

	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  strings.Split(brokers, ","),
		GroupID:  "events-backend-notifications",
		Topic:    topic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}
