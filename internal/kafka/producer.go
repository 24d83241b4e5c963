package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rgupta87/portfolio-analyzer/internal/models"
	"github.com/segmentio/kafka-go"
)

// Producer handles publishing portfolio events to Kafka
type Producer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer creates a new Kafka producer
func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}

	return &Producer{
		writer: writer,
		topic:  topic,
	}
}

// PublishPortfolioSynced publishes an event after a holdings sync
func (p *Producer) PublishPortfolioSynced(ctx context.Context, email string, holdingsCount int, totalValue float64) error {
	event := models.PortfolioEvent{
		EventType:     models.EventPortfolioSynced,
		UserEmail:     email,
		HoldingsCount: holdingsCount,
		TotalValue:    totalValue,
		Timestamp:     time.Now(),
	}
	return p.publish(ctx, email, event)
}

// PublishAnalysisGenerated publishes an event after an analysis run
func (p *Producer) PublishAnalysisGenerated(ctx context.Context, email string, holdingsCount int) error {
	event := models.PortfolioEvent{
		EventType:     models.EventAnalysisGenerated,
		UserEmail:     email,
		HoldingsCount: holdingsCount,
		Timestamp:     time.Now(),
	}
	return p.publish(ctx, email, event)
}

func (p *Producer) publish(ctx context.Context, key string, event models.PortfolioEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	return nil
}

// Close closes the Kafka producer
func (p *Producer) Close() error {
	return p.writer.Close()
}
