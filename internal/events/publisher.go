package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// Event subjects published for audit logging
const (
	SubjectProductUpserted = "commerce.product.upserted"
	SubjectProductDeleted  = "commerce.product.deleted"
	SubjectReviewSubmitted = "commerce.review.submitted"
	SubjectReviewDeleted   = "commerce.review.deleted"
	SubjectOrderPlaced     = "commerce.order.placed"
)

const streamName = "COMMERCE_EVENTS"

// Event is the envelope for every published audit event
type Event struct {
	Subject   string                 `json:"subject"`
	Timestamp time.Time              `json:"timestamp"`
	ActorID   string                 `json:"actorId,omitempty"`
	Payload   map[string]interface{} `json:"payload"`
}

// Publisher publishes commerce audit events to NATS JetStream. A nil
// Publisher is safe to call; every publish becomes a no-op.
type Publisher struct {
	conn   *nats.Conn
	js     nats.JetStreamContext
	logger *logrus.Entry
}

// NewPublisher connects to NATS and ensures the events stream exists
func NewPublisher(natsURL string, logger *logrus.Logger) (*Publisher, error) {
	if natsURL == "" {
		natsURL = nats.DefaultURL
	}

	conn, err := nats.Connect(natsURL,
		nats.Name("commerce-service"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to get JetStream context: %w", err)
	}

	if _, err := js.StreamInfo(streamName); err != nil {
		_, err = js.AddStream(&nats.StreamConfig{
			Name:     streamName,
			Subjects: []string{"commerce.>"},
			MaxAge:   30 * 24 * time.Hour,
		})
		if err != nil {
			logger.WithError(err).Warn("Failed to ensure COMMERCE_EVENTS stream")
		}
	}

	return &Publisher{
		conn:   conn,
		js:     js,
		logger: logger.WithField("component", "events.publisher"),
	}, nil
}

// Close drains the NATS connection
func (p *Publisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
	}
}

func (p *Publisher) publish(ctx context.Context, subject, actorID string, payload map[string]interface{}) {
	if p == nil || p.js == nil {
		return
	}

	event := Event{
		Subject:   subject,
		Timestamp: time.Now().UTC(),
		ActorID:   actorID,
		Payload:   payload,
	}

	data, err := json.Marshal(event)
	if err != nil {
		p.logger.WithError(err).WithField("subject", subject).Warn("Failed to marshal event")
		return
	}

	if _, err := p.js.Publish(subject, data, nats.Context(ctx)); err != nil {
		p.logger.WithError(err).WithField("subject", subject).Warn("Failed to publish event")
	}
}

// PublishProductUpserted records a catalog create or update
func (p *Publisher) PublishProductUpserted(ctx context.Context, productID, name string, created bool) {
	p.publish(ctx, SubjectProductUpserted, "", map[string]interface{}{
		"productId": productID,
		"name":      name,
		"created":   created,
	})
}

// PublishProductDeleted records a catalog deletion
func (p *Publisher) PublishProductDeleted(ctx context.Context, productID string) {
	p.publish(ctx, SubjectProductDeleted, "", map[string]interface{}{
		"productId": productID,
	})
}

// PublishReviewSubmitted records a review create or overwrite
func (p *Publisher) PublishReviewSubmitted(ctx context.Context, userID, reviewID, productID string, rating int) {
	p.publish(ctx, SubjectReviewSubmitted, userID, map[string]interface{}{
		"reviewId":  reviewID,
		"productId": productID,
		"rating":    rating,
	})
}

// PublishReviewDeleted records a review deletion, admin or owner
func (p *Publisher) PublishReviewDeleted(ctx context.Context, actorID, reviewID string, admin bool) {
	p.publish(ctx, SubjectReviewDeleted, actorID, map[string]interface{}{
		"reviewId": reviewID,
		"admin":    admin,
	})
}

// PublishOrderPlaced records a finalized checkout
func (p *Publisher) PublishOrderPlaced(ctx context.Context, userID, orderID string, total float64) {
	p.publish(ctx, SubjectOrderPlaced, userID, map[string]interface{}{
		"orderId": orderID,
		"total":   total,
	})
}
