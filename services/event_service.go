package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/dishiq/dishiq-api/models"
	"github.com/segmentio/kafka-go"
)

// EventService receives the domain events the core emits and forwards them to
// the host's logging or messaging infrastructure. It satisfies
// models.EventSink.
type EventService interface {
	Publish(event models.Event)
}

var eventServiceInstance EventService

// InitEventService installs the given service as the global instance and
// subscribes it to the core's event hook.
func InitEventService(service EventService) EventService {
	eventServiceInstance = service
	models.SetEventSink(service)
	return eventServiceInstance
}

// GetEventService returns the initialized event service instance
func GetEventService() EventService {
	return eventServiceInstance
}

// SetEventService sets the event service instance (primarily for testing)
func SetEventService(service EventService) {
	eventServiceInstance = service
	models.SetEventSink(service)
}

// LogEventService writes domain events to the standard logger. It is the
// fallback subscriber when no Kafka brokers are configured.
type LogEventService struct{}

// NewLogEventService creates a log-backed event service
func NewLogEventService() *LogEventService {
	return &LogEventService{}
}

// Publish logs the event with its detail payload
func (s *LogEventService) Publish(event models.Event) {
	detail, _ := json.Marshal(event.Detail)
	log.Printf("event %s entity=%s detail=%s", event.Operation, event.EntityID, detail)
}

// KafkaEventService publishes domain events to a Kafka topic, keyed by the
// entity id so events for one entity stay ordered within a partition.
type KafkaEventService struct {
	writer  *kafka.Writer
	timeout time.Duration
}

// NewKafkaEventService creates a Kafka-backed event service for the given
// brokers and topic.
func NewKafkaEventService(brokers []string, topic string) *KafkaEventService {
	return &KafkaEventService{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.Hash{},
		},
		timeout: 5 * time.Second,
	}
}

// Publish sends the event to Kafka. Delivery failures are logged and
// swallowed; the core never blocks on the event hook.
func (s *KafkaEventService) Publish(event models.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal event %s: %v", event.Operation, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	err = s.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.EntityID),
		Value: payload,
	})
	if err != nil {
		log.Printf("Failed to publish event %s: %v", event.Operation, err)
	}
}

// Close shuts down the underlying Kafka writer
func (s *KafkaEventService) Close() error {
	return s.writer.Close()
}
