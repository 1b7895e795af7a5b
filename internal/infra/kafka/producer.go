package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vidshare-go/internal/config"
	"vidshare-go/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// TranscodeTask is the message handed to the external media pipeline after a
// raw upload lands in object storage. The pipeline reports back through the
// processing webhook, not through Kafka.
type TranscodeTask struct {
	VideoID   int64  `json:"video_id"`
	ObjectKey string `json:"object_key"`
	Bucket    string `json:"bucket"`
	Thumbnail string `json:"thumbnail_key"`
}

// Producer publishes media-pipeline task messages.
type Producer struct {
	writer *kafka.Writer
	topics map[string]string
}

// NewProducer builds a Kafka writer for the configured brokers.
func NewProducer(cfg *config.KafkaConfig) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	logger.Info("Kafka producer initialized", zap.Strings("brokers", cfg.Brokers))

	return &Producer{writer: writer, topics: cfg.Topics}
}

// SendTranscodeTask publishes a transcode task keyed by video id.
func (p *Producer) SendTranscodeTask(ctx context.Context, task *TranscodeTask) error {
	topic, ok := p.topics["video_transcode"]
	if !ok {
		return fmt.Errorf("kafka topic video_transcode is not configured")
	}

	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal transcode task: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(fmt.Sprintf("video-%d", task.VideoID)),
		Value: payload,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send transcode task: %w", err)
	}

	logger.Info("Transcode task sent",
		zap.Int64("video_id", task.VideoID),
		zap.String("topic", topic),
		zap.String("object", task.ObjectKey),
	)

	return nil
}

// Close flushes and closes the writer.
func (p *Producer) Close() error {
	if p.writer == nil {
		return nil
	}
	logger.Info("Kafka producer closed")
	return p.writer.Close()
}
