// Package events publishes synthesized insights to an external broker so
// downstream consumers (alerting, dashboards) can react without polling the
// API. Publishing is fire-and-forget from the analysis path's perspective.
package events

import "context"

// Publisher publishes insight events to a subject/topic.
type Publisher interface {
	// Publish publishes a single event payload.
	Publish(ctx context.Context, subject string, data []byte) error

	// PublishBatch publishes multiple events and returns how many succeeded.
	PublishBatch(ctx context.Context, messages []BatchMessage) (int, error)

	// Close closes the connection.
	Close() error
}

// BatchMessage is one event in a batch publish.
type BatchMessage struct {
	Subject string
	Data    []byte
}
