package xedi

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Record is an encoded message as handed to a Sink.
type Record struct {
	ID          string            // Sink may assign if empty
	Reference   string            // UNH message reference number
	MessageType string            // UNH message type, e.g. REPORT
	Codec       string            // Codec name that produced Payload
	Payload     []byte            // Encoded message
	Metadata    map[string]string // Caller headers/tenancy/etc
	ProducedAt  time.Time         // From the publisher clock
}

// Sink is the Strategy interface for delivering encoded messages.
type Sink interface {
	// Publish delivers records to a topic, in order.
	Publish(ctx context.Context, topic string, recs ...*Record) error
	// Close releases resources.
	Close(ctx context.Context) error
}

// SinkFactory constructs sinks from a config blob.
type SinkFactory func(cfg map[string]any) (Sink, error)

var (
	sinkRegistryMu sync.RWMutex
	sinkRegistry   = map[string]SinkFactory{}
)

// RegisterSink registers a sink adapter by name.
func RegisterSink(name string, factory SinkFactory) error {
	if name == "" {
		return errors.New("sink name must not be empty")
	}
	if factory == nil {
		return errors.New("sink factory must not be nil")
	}
	sinkRegistryMu.Lock()
	sinkRegistry[name] = factory
	sinkRegistryMu.Unlock()
	return nil
}

// NewSink constructs a sink by name with config.
func NewSink(name string, cfg map[string]any) (Sink, error) {
	sinkRegistryMu.RLock()
	f, ok := sinkRegistry[name]
	sinkRegistryMu.RUnlock()
	if !ok {
		return nil, ErrUnknownSink{name: name}
	}
	return f(cfg)
}
