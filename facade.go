package xedi

import (
	"context"
	"sync"
)

var (
	defaultPublisher   *Publisher
	defaultPublisherMu sync.Mutex
)

// Default returns the process-wide Publisher installed by SetDefault or an
// adapter's Use.
func Default() (*Publisher, error) {
	defaultPublisherMu.Lock()
	defer defaultPublisherMu.Unlock()
	if defaultPublisher == nil {
		return nil, ErrDefaultPublisherNotInitialized
	}
	return defaultPublisher, nil
}

// SetDefault replaces the process-wide default Publisher.
func SetDefault(p *Publisher) {
	if p == nil {
		panic("xedi: SetDefault called with nil Publisher")
	}
	defaultPublisherMu.Lock()
	defaultPublisher = p
	defaultPublisherMu.Unlock()
}

// Publish is the Facade using the default publisher.
func Publish(ctx context.Context, topic string, c *Composed, meta map[string]string) error {
	p, err := Default()
	if err != nil {
		return err
	}
	return p.Publish(ctx, topic, c, meta)
}

// PublishReport is the Facade using the default publisher.
func PublishReport(ctx context.Context, topic string, m MessageComposer, meta map[string]string) error {
	p, err := Default()
	if err != nil {
		return err
	}
	return p.PublishReport(ctx, topic, m, meta)
}
