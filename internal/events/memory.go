package events

import (
	"context"
	"sync"
)

// MemoryPublisher records events in memory. It is the default backend and the
// one used in tests; published payloads can be inspected per subject.
type MemoryPublisher struct {
	messages map[string][][]byte
	mu       sync.RWMutex
}

// NewMemoryPublisher creates an in-memory publisher instance.
func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{
		messages: make(map[string][][]byte),
	}
}

// Publish records an event under its subject.
func (p *MemoryPublisher) Publish(ctx context.Context, subject string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Copy so callers can reuse their buffer.
	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages[subject] = append(p.messages[subject], dataCopy)
	return nil
}

// PublishBatch records multiple events.
func (p *MemoryPublisher) PublishBatch(ctx context.Context, messages []BatchMessage) (int, error) {
	successCount := 0
	for _, msg := range messages {
		if err := p.Publish(ctx, msg.Subject, msg.Data); err != nil {
			continue
		}
		successCount++
	}
	return successCount, nil
}

// Close drops all recorded events.
func (p *MemoryPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = make(map[string][][]byte)
	return nil
}

// Messages returns the payloads recorded for a subject (for testing).
func (p *MemoryPublisher) Messages(subject string) [][]byte {
	p.mu.RLock()
	defer p.mu.RUnlock()

	recorded := p.messages[subject]
	out := make([][]byte, len(recorded))
	copy(out, recorded)
	return out
}
