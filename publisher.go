package xedi

import (
	"context"
	"sync"
	"sync/atomic"
)

// MessageComposer is any message builder that composes into a framed
// message. *Report satisfies it.
type MessageComposer interface {
	Compose(ids ...DocumentID) (*Composed, error)
}

var _ MessageComposer = (*Report)(nil)

// Publisher is the Facade that encodes composed messages with a Codec and
// hands them to a Sink.
type Publisher struct {
	sink  Sink
	codec Codec
	clock Clock

	observersMu sync.RWMutex
	observers   []Observer

	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// Codec returns the configured codec (Strategy).
func (p *Publisher) Codec() Codec { return p.codec }

// Publish encodes a composed message and sends it to topic.
func (p *Publisher) Publish(ctx context.Context, topic string, c *Composed, meta map[string]string) error {
	if p.closed.Load() {
		return ErrPublisherClosed
	}
	if topic == "" {
		return ErrInvalidTopic
	}
	if c == nil {
		return ErrNilMessage
	}

	data, err := p.codec.Marshal(c)
	if err != nil {
		return err
	}
	rec := &Record{
		Reference:   c.Reference,
		MessageType: c.Identifier.Type,
		Codec:       p.codec.Name(),
		Payload:     data,
		Metadata:    meta,
		ProducedAt:  p.clock.Now(),
	}

	start := p.clock.Now()
	p.notify(Event{Type: PublishStart, Topic: topic, Reference: rec.Reference, MessageType: rec.MessageType})
	err = p.sink.Publish(ctx, topic, rec)
	p.notify(Event{
		Type:        PublishDone,
		Topic:       topic,
		Reference:   rec.Reference,
		MessageType: rec.MessageType,
		Duration:    p.clock.Now().Sub(start),
		Err:         err,
	})
	return err
}

// PublishReport composes m and publishes the result. Compose errors are
// returned unchanged and reported to observers as ComposeFailed.
func (p *Publisher) PublishReport(ctx context.Context, topic string, m MessageComposer, meta map[string]string) error {
	if m == nil {
		return ErrNilMessage
	}
	c, err := m.Compose()
	if err != nil {
		p.notify(Event{Type: ComposeFailed, Topic: topic, Err: err})
		return err
	}
	return p.Publish(ctx, topic, c, meta)
}

// Close releases the underlying sink. Subsequent publishes fail with
// ErrPublisherClosed.
func (p *Publisher) Close(ctx context.Context) error {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		p.closeErr = p.sink.Close(ctx)
	})
	return p.closeErr
}

// AddObserver registers an observer for publisher events.
func (p *Publisher) AddObserver(obs Observer) {
	if obs == nil {
		return
	}
	p.observersMu.Lock()
	p.observers = append(p.observers, obs)
	p.observersMu.Unlock()
}

func (p *Publisher) notify(e Event) {
	p.observersMu.RLock()
	obs := make([]Observer, len(p.observers))
	copy(obs, p.observers)
	p.observersMu.RUnlock()
	for _, o := range obs {
		o.OnEvent(e)
	}
}
