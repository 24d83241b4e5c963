package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rgupta87/portfolio-analyzer/internal/analytics"
	"github.com/rgupta87/portfolio-analyzer/internal/models"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// HoldingsStore defines the database operations the consumer needs
type HoldingsStore interface {
	GetUserByEmail(email string) (*models.User, error)
	ReplaceAllHoldings(userID int, holdings []*models.Holding) error
}

// messageReader abstracts the Kafka reader for testing
type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
	Config() kafka.ReaderConfig
}

// HoldingsConsumer applies holdings snapshot events from an external feed.
// Each snapshot fully replaces the user's persisted holdings, the same
// replace semantics the HTTP sync endpoint uses.
type HoldingsConsumer struct {
	reader messageReader
	store  HoldingsStore
	logger zerolog.Logger
}

// NewHoldingsConsumer creates a new Kafka consumer for holdings snapshots
func NewHoldingsConsumer(brokers []string, topic, groupID string, store HoldingsStore, logger zerolog.Logger) *HoldingsConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		MaxWait:        1 * time.Second,
		StartOffset:    kafka.FirstOffset,
		CommitInterval: time.Second,
	})

	return &HoldingsConsumer{
		reader: reader,
		store:  store,
		logger: logger,
	}
}

// Start begins consuming messages from Kafka
func (c *HoldingsConsumer) Start(ctx context.Context) error {
	c.logger.Info().Str("topic", c.reader.Config().Topic).Msg("starting holdings consumer")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info().Msg("holdings consumer shutting down")
			return c.reader.Close()
		default:
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil // Context cancelled, normal shutdown
				}
				c.logger.Error().Err(err).Msg("error reading message")
				continue
			}

			if err := c.processMessage(msg); err != nil {
				c.logger.Error().Err(err).Msg("error processing message")
				// Continue processing other messages
			}
		}
	}
}

// processMessage handles a single snapshot message
func (c *HoldingsConsumer) processMessage(msg kafka.Message) error {
	var event models.HoldingsSnapshotEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal snapshot event: %w", err)
	}

	if event.EventType != models.EventHoldingsSnapshot {
		c.logger.Debug().Str("event_type", event.EventType).Msg("ignoring event type")
		return nil
	}

	user, err := c.store.GetUserByEmail(event.UserEmail)
	if err != nil {
		return fmt.Errorf("unknown snapshot user %s: %w", event.UserEmail, err)
	}

	holdings := make([]*models.Holding, 0, len(event.Holdings))
	for _, raw := range event.Holdings {
		h, err := analytics.NormalizeHolding(raw)
		if err != nil {
			c.logger.Warn().Err(err).Msg("skipping snapshot record")
			continue
		}
		holdings = append(holdings, &h)
	}

	if err := c.store.ReplaceAllHoldings(user.ID, holdings); err != nil {
		return fmt.Errorf("failed to replace holdings: %w", err)
	}

	c.logger.Info().
		Str("user", event.UserEmail).
		Int("holdings", len(holdings)).
		Msg("applied holdings snapshot")
	return nil
}

// Close closes the Kafka consumer
func (c *HoldingsConsumer) Close() error {
	return c.reader.Close()
}
