package memory

import (
	"fmt"

	"github.com/trickstertwo/xedi"
	"github.com/trickstertwo/xlog"
)

// Use builds a Publisher with the in-memory sink and sets it as the default.
//
// Example:
//
//	pub := memory.Use(memory.Config{AssignIDs: true},
//	    memory.WithLogger(logger),
//	    memory.WithCodec("edifact"),
//	)
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
		panic(fmt.Errorf("memory.Use: %w", err))
	}

	xedi.SetDefault(pub)
	return pub
}

// Option configures the xedi.Publisher when calling Use.
type Option func(*xedi.PublisherBuilder)

// WithLogger injects a custom xlog logger.
func WithLogger(l *xlog.Logger) Option {
	return func(b *xedi.PublisherBuilder) { b.WithLogger(l) }
}

// WithClock injects a clock for record timestamps.
func WithClock(c xedi.Clock) Option {
	return func(b *xedi.PublisherBuilder) { b.WithClock(c) }
}

// WithCodec selects a codec by name (default: "edifact").
func WithCodec(name string) Option {
	return func(b *xedi.PublisherBuilder) { b.WithCodec(name) }
}

// WithObserver attaches observers for lifecycle events.
func WithObserver(obs ...xedi.Observer) Option {
	return func(b *xedi.PublisherBuilder) { b.WithObserver(obs...) }
}
