package publish

import (
	"context"
	"fmt"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"minkafka/pkg/logging"
)

// kafkaSession publishes through a confluent-kafka-go producer.
type kafkaSession struct {
	producer *kafka.Producer
}

// NewKafkaSession opens a producer against bootstrapServer. It is the
// default SessionFactory.
func NewKafkaSession(bootstrapServer string) (Session, error) {
	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": bootstrapServer,
		"client.id":         "minkafka",
		"acks":              "all",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create producer: %w", err)
	}
	return &kafkaSession{producer: producer}, nil
}

func (s *kafkaSession) Publish(ctx context.Context, topic string, value []byte) (Status, error) {
	// Buffered so a late delivery report never blocks the producer.
	delivery := make(chan kafka.Event, 1)
	message := &kafka.Message{
		TopicPartition: kafka.TopicPartition{
			Topic:     &topic,
			Partition: kafka.PartitionAny,
		},
		Value: value,
	}

	if err := s.producer.Produce(message, delivery); err != nil {
		return StatusNotPersisted, fmt.Errorf("failed to produce message: %w", err)
	}

	select {
	case e := <-delivery:
		m, ok := e.(*kafka.Message)
		if !ok {
			return StatusNotPersisted, fmt.Errorf("unexpected delivery event: %v", e)
		}
		if m.TopicPartition.Error != nil {
			return StatusNotPersisted, m.TopicPartition.Error
		}
		logging.Debug("Publish", "Delivered to %s [%d] at offset %v", topic, m.TopicPartition.Partition, m.TopicPartition.Offset)
		return StatusPersisted, nil
	case <-ctx.Done():
		return StatusNotPersisted, ctx.Err()
	}
}

func (s *kafkaSession) Close() error {
	// Drop anything still queued so Close does not wait on an unreachable broker.
	if err := s.producer.Purge(kafka.PurgeQueue | kafka.PurgeInFlight | kafka.PurgeNonBlocking); err != nil {
		logging.Debug("Publish", "Purge before close: %v", err)
	}
	s.producer.Close()
	return nil
}
