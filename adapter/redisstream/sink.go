package redisstream

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/trickstertwo/xedi"
)

const SinkName = "redis-streams"

func init() {
	if err := xedi.RegisterSink(SinkName, func(cfg map[string]any) (xedi.Sink, error) {
		return NewSink(ConfigFromMap(cfg))
	}); err != nil {
		panic(fmt.Errorf("xedi: failed to register sink %q: %w", SinkName, err))
	}
}

type sink struct {
	cfg    Config
	client *redis.Client

	closed atomic.Bool

	published     atomic.Uint64
	publishErrors atomic.Uint64
}

// NewSink connects to Redis and returns a sink writing one stream per topic.
func NewSink(cfg Config) (xedi.Sink, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	client := redis.NewClient(clientOptions(cfg))
	if err := ping(client, cfg.DialTimeout); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &sink{cfg: cfg, client: client}, nil
}

func clientOptions(cfg Config) *redis.Options {
	opts := &redis.Options{
		Addr:        cfg.Addr,
		Username:    cfg.Username,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
		MaxRetries:  3,
	}
	if cfg.TLS {
		opts.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
			ServerName: cfg.TLSServerName,
		}
	}
	return opts
}

// Publish writes records to the topic stream with XADD, pipelined.
func (s *sink) Publish(ctx context.Context, topic string, recs ...*xedi.Record) error {
	if s.closed.Load() {
		return errors.New("redis-streams sink is closed")
	}
	if len(recs) == 0 {
		return nil
	}

	pipe := s.client.Pipeline()
	n := 0
	for _, r := range recs {
		if r == nil {
			continue
		}
		pipe.XAdd(ctx, xaddArgs(topic, r, s.cfg.MaxLenApprox))
		n++
	}
	if n == 0 {
		return nil
	}

	if _, err := pipe.Exec(ctx); err != nil {
		s.publishErrors.Add(uint64(n))
		return fmt.Errorf("redis-streams: xadd %s: %w", topic, err)
	}
	s.published.Add(uint64(n))
	return nil
}

func xaddArgs(topic string, r *xedi.Record, maxLen int64) *redis.XAddArgs {
	vals := make(map[string]any, 6+len(r.Metadata))
	if r.ID != "" {
		vals[fieldID] = r.ID
	}
	vals[fieldReference] = r.Reference
	vals[fieldType] = r.MessageType
	vals[fieldCodec] = r.Codec
	vals[fieldPayload] = r.Payload
	vals[fieldProducedAt] = r.ProducedAt.UnixNano()
	for k, v := range r.Metadata {
		vals[fieldMetaPrefix+k] = v
	}

	args := &redis.XAddArgs{
		Stream: topic,
		ID:     "*",
		Values: vals,
	}
	if maxLen > 0 {
		args.MaxLen = maxLen
		args.Approx = true
	}
	return args
}

func (s *sink) Close(_ context.Context) error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.client.Close()
}

func ping(c *redis.Client, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	res, err := c.Ping(ctx).Result()
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return fmt.Errorf("redis ping timeout: %w", err)
		}
		return err
	}
	if strings.ToUpper(res) != "PONG" {
		return fmt.Errorf("unexpected redis ping result: %s", res)
	}
	return nil
}
