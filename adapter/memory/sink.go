package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/trickstertwo/xedi"
)

const SinkName = "memory"

func init() {
	if err := xedi.RegisterSink(SinkName, func(cfg map[string]any) (xedi.Sink, error) {
		return NewSink(ConfigFromMap(cfg)), nil
	}); err != nil {
		panic(fmt.Errorf("xedi/memory: failed to register sink: %w", err))
	}
}

var ErrSinkClosed = errors.New("memory sink is closed")

// Config controls memory sink behavior.
type Config struct {
	// MaxRecords caps the records kept per topic; oldest are dropped first
	// (default: 0 = unbounded).
	MaxRecords int
	// AssignIDs instructs the sink to assign IDs for records with empty ID (default: true).
	AssignIDs bool
}

func ConfigFromMap(cfg map[string]any) Config {
	getInt := func(k string, d int) int {
		switch v := cfg[k].(type) {
		case int:
			return v
		case int64:
			return int(v)
		case float64:
			return int(v)
		default:
			return d
		}
	}
	getBool := func(k string, d bool) bool {
		if v, ok := cfg[k].(bool); ok {
			return v
		}
		return d
	}

	return Config{
		MaxRecords: max(0, getInt("max_records", 0)),
		AssignIDs:  getBool("assign_ids", true),
	}
}

// toMap converts Config to the generic map expected by the sink factory.
func (c Config) toMap() map[string]any {
	return map[string]any{
		"max_records": c.MaxRecords,
		"assign_ids":  c.AssignIDs,
	}
}

// Sink keeps published records in memory per topic (dev/testing).
type Sink struct {
	cfg Config

	mu     sync.RWMutex
	topics map[string][]xedi.Record

	closed atomic.Bool

	published atomic.Uint64
	dropped   atomic.Uint64
}

var _ xedi.Sink = (*Sink)(nil)

func NewSink(cfg Config) *Sink {
	return &Sink{
		cfg:    cfg,
		topics: make(map[string][]xedi.Record),
	}
}

// Publish stores copies of recs under topic.
func (s *Sink) Publish(ctx context.Context, topic string, recs ...*xedi.Record) error {
	if s.closed.Load() {
		return ErrSinkClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range recs {
		if r == nil {
			continue
		}
		if s.cfg.AssignIDs && r.ID == "" {
			r.ID = nextID()
		}
		s.topics[topic] = append(s.topics[topic], copyRecord(r))
		s.published.Add(1)
	}
	if n := s.cfg.MaxRecords; n > 0 && len(s.topics[topic]) > n {
		over := len(s.topics[topic]) - n
		s.topics[topic] = append([]xedi.Record(nil), s.topics[topic][over:]...)
		s.dropped.Add(uint64(over))
	}
	return nil
}

// Records returns the records stored for topic, oldest first.
func (s *Sink) Records(topic string) []xedi.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]xedi.Record, len(s.topics[topic]))
	copy(out, s.topics[topic])
	return out
}

func (s *Sink) Close(_ context.Context) error {
	if s.closed.Swap(true) {
		return nil
	}
	s.mu.Lock()
	s.topics = make(map[string][]xedi.Record)
	s.mu.Unlock()
	return nil
}

// Stats returns sink telemetry.
type Stats struct {
	Published uint64
	Dropped   uint64
}

func (s *Sink) Stats() Stats {
	return Stats{
		Published: s.published.Load(),
		Dropped:   s.dropped.Load(),
	}
}

func copyRecord(r *xedi.Record) xedi.Record {
	out := *r
	out.Payload = append([]byte(nil), r.Payload...)
	if r.Metadata != nil {
		out.Metadata = make(map[string]string, len(r.Metadata))
		for k, v := range r.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

// Simple monotonic ID generator (not distributed; dev/testing only).
var idSeq atomic.Uint64

func nextID() string {
	return fmt.Sprintf("mem-%d", idSeq.Add(1))
}
