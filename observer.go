package xedi

import (
	"time"

	"github.com/trickstertwo/xlog"
)

// EventType enumerates publisher lifecycle events for the Observer pattern.
type EventType string

const (
	ComposeFailed EventType = "compose_failed"
	PublishStart  EventType = "publish_start"
	PublishDone   EventType = "publish_done"
)

// Event carries telemetry for observers.
type Event struct {
	Type        EventType
	Topic       string
	Reference   string
	MessageType string
	Duration    time.Duration
	Err         error
}

// Observer receives publisher lifecycle events. Implementations should be
// non-blocking.
type Observer interface {
	OnEvent(e Event)
}

// ObserverFunc is an Adapter that lets a plain function satisfy Observer.
type ObserverFunc func(e Event)

func (f ObserverFunc) OnEvent(e Event) { f(e) }

// LoggingObserver is an Adapter that emits publisher events via xlog.
type LoggingObserver struct {
	Logger *xlog.Logger
}

func (o LoggingObserver) OnEvent(e Event) {
	if o.Logger == nil {
		return
	}
	ev := o.Logger.With(
		xlog.Str("type", string(e.Type)),
		xlog.Str("topic", e.Topic),
		xlog.Str("reference", e.Reference),
		xlog.Str("message_type", e.MessageType),
	)
	switch {
	case e.Err != nil:
		ev.Warn().Err(e.Err).Msg("xedi event")
	default:
		if e.Duration > 0 {
			ev = ev.With(xlog.Dur("duration", e.Duration))
		}
		ev.Debug().Msg("xedi event")
	}
}
