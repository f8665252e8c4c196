package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hance08/walletsync/internal/model"
	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink publishes each batch as one JSON message keyed by currency.
type KafkaSink struct {
	writer messageWriter
	topic  string
}

func NewKafkaSink(brokers []string, topic string) *KafkaSink {
	return &KafkaSink{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			BatchTimeout: 50 * time.Millisecond,
		},
		topic: topic,
	}
}

func (k *KafkaSink) Name() string { return "kafka" }

func (k *KafkaSink) Send(ctx context.Context, batch model.DepositBatch) error {
	msg, err := buildMessage(batch)
	if err != nil {
		return err
	}
	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write to %s: %w", k.topic, err)
	}
	return nil
}

func (k *KafkaSink) Close() error {
	return k.writer.Close()
}

func buildMessage(batch model.DepositBatch) (kafka.Message, error) {
	value, err := json.Marshal(batch)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode batch: %w", err)
	}
	return kafka.Message{
		Key:   []byte(batch.Currency),
		Value: value,
		Headers: []kafka.Header{
			{Key: "batch-id", Value: []byte(uuid.NewString())},
		},
		Time: time.Now(),
	}, nil
}
