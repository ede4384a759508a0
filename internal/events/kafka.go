package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// DefaultTopic is the topic activity events are produced to.
const DefaultTopic = "hobby.activity.events"

// KafkaPublisher writes activity events to a Kafka topic, keyed by activity
// ID so changes to one listing stay ordered within a partition.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher builds a publisher for the given brokers and topic.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
		},
	}
}

func (p *KafkaPublisher) PublishActivity(ctx context.Context, ev ActivityEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.ActivityID),
		Value: payload,
		Time:  ev.OccurredAt,
	})
}

// Close flushes and releases the underlying writer.
func (p *KafkaPublisher) Close() error { return p.writer.Close() }
