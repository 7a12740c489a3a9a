// Package streaming forwards committed progression events to Kafka
package streaming

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/IBM/sarama"

	"github.com/osse101/Bossforge_Go/internal/event"
	"github.com/osse101/Bossforge_Go/internal/logger"
)

// NewProducer creates a sync producer that waits for the leader's ack
func NewProducer(brokers []string) (sarama.SyncProducer, error) {
	producer, err := sarama.NewSyncProducer(brokers, ProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("creating kafka producer: %w", err)
	}
	return producer, nil
}

// ProducerConfig is the sarama configuration used by NewProducer
func ProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForLocal
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Retry.Max = 3
	config.Producer.Return.Successes = true
	config.Producer.Return.Errors = true
	return config
}

// Sink publishes every event it receives to one topic, keyed by player id
type Sink struct {
	producer sarama.SyncProducer
	topic    string
}

// NewSink creates a sink on producer
func NewSink(producer sarama.SyncProducer, topic string) *Sink {
	return &Sink{producer: producer, topic: topic}
}

// Register subscribes the sink to every event type on bus
func (s *Sink) Register(bus event.Bus) {
	event.SubscribeAll(bus, event.AllTypes, s.Handle)
	logger.FromContext(context.Background()).Info(LogMsgProducerReady, "topic", s.topic)
}

// Handle sends one event as a JSON message
func (s *Sink) Handle(ctx context.Context, evt event.Event) error {
	value, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encoding event %s: %w", evt.ID, err)
	}

	msg := &sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(messageKey(evt)),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte(HeaderEventType), Value: []byte(evt.Type)},
			{Key: []byte(HeaderEventVersion), Value: []byte(evt.Version)},
			{Key: []byte(HeaderEventID), Value: []byte(evt.ID)},
		},
		Timestamp: evt.OccurredAt,
	}

	partition, offset, err := s.producer.SendMessage(msg)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgSendFailed, "event_id", evt.ID, "type", evt.Type, "error", err)
		return fmt.Errorf("sending event %s: %w", evt.ID, err)
	}
	logger.FromContext(ctx).Debug(LogMsgEventSent, "event_id", evt.ID, "type", evt.Type,
		"partition", partition, "offset", offset)
	return nil
}

// Close closes the producer
func (s *Sink) Close() error {
	return s.producer.Close()
}

// messageKey keeps one player's events on one partition. Events without a
// player fall back to the event id.
func messageKey(evt event.Event) string {
	ref, err := event.DecodePayload[struct {
		PlayerID int64 `json:"player_id"`
	}](evt.Payload)
	if err != nil || ref.PlayerID == 0 {
		return evt.ID
	}
	return strconv.FormatInt(ref.PlayerID, 10)
}
