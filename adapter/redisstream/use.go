package redisstream

import (
	"fmt"

	"github.com/trickstertwo/xedi"
	"github.com/trickstertwo/xlog"
)

// Option configures the xedi.Publisher construction when calling Use.
type Option func(*xedi.PublisherBuilder)

// WithLogger injects a custom xlog logger.
func WithLogger(l *xlog.Logger) Option {
	return func(b *xedi.PublisherBuilder) { b.WithLogger(l) }
}

// WithClock injects a clock for record timestamps.
func WithClock(c xedi.Clock) Option {
	return func(b *xedi.PublisherBuilder) { b.WithClock(c) }
}

// WithCodec selects a codec by name (default: edifact).
func WithCodec(name string) Option {
	return func(b *xedi.PublisherBuilder) { b.WithCodec(name) }
}

// WithObserver attaches observers for lifecycle events.
func WithObserver(obs ...xedi.Observer) Option {
	return func(b *xedi.PublisherBuilder) { b.WithObserver(obs...) }
}

// Use builds a Publisher on Redis Streams and sets it as the default
// Publisher, then returns it. It panics when Redis is unreachable.
func Use(cfg Config, opts ...Option) *xedi.Publisher {
	pb := xedi.NewPublisherBuilder().
		WithSink(SinkName, cfg.toMap())

	for _, o := range opts {
		if o != nil {
			o(pb)
		}
	}
	pub, err := pb.Build()
	if err != nil {
		panic(fmt.Errorf("redisstream.Use: %w", err))
	}

	xedi.SetDefault(pub)
	return pub
}
