package xedi_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trickstertwo/xedi"
	"github.com/trickstertwo/xedi/adapter/memory"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testTime = time.Date(2024, time.March, 5, 14, 7, 0, 0, time.UTC)

type recorder struct {
	mu     sync.Mutex
	events []xedi.Event
}

func (r *recorder) OnEvent(e xedi.Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *recorder) types() []xedi.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]xedi.EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

func newPublisher(t *testing.T, opts ...func(*xedi.PublisherBuilder)) (*xedi.Publisher, *memory.Sink, *recorder) {
	t.Helper()
	sink := memory.NewSink(memory.Config{AssignIDs: true})
	rec := &recorder{}
	pb := xedi.NewPublisherBuilder().
		WithSinkInstance(sink).
		WithClock(fixedClock{testTime}).
		WithObserver(rec)
	for _, o := range opts {
		o(pb)
	}
	pub, err := pb.Build()
	require.NoError(t, err)
	t.Cleanup(func() { _ = pub.Close(context.Background()) })
	return pub, sink, rec
}

func newReport() *xedi.Report {
	return xedi.NewReport(
		xedi.WithMessageReference("MSG1"),
		xedi.WithClock(fixedClock{testTime}),
	)
}

func TestPublisher_PublishReport(t *testing.T) {
	pub, sink, rec := newPublisher(t)
	r := newReport().SetReference("REF1").SetReason("S", "J")

	err := pub.PublishReport(context.Background(), "reports", r, map[string]string{"tenant": "t1"})
	require.NoError(t, err)

	recs := sink.Records("reports")
	require.Len(t, recs, 1)
	got := recs[0]
	assert.Regexp(t, `^mem-\d+$`, got.ID)
	assert.Equal(t, "MSG1", got.Reference)
	assert.Equal(t, "REPORT", got.MessageType)
	assert.Equal(t, "edifact", got.Codec)
	assert.Equal(t, "t1", got.Metadata["tenant"])
	assert.Equal(t, testTime, got.ProducedAt)
	assert.Equal(t,
		"UNH+MSG1+REPORT:3:1:GT:GTF'BGM++MSG1'UNS+D'RFF+UNC+REF1'RSJ+MS+S+J'DTM+DSJ+240305+1407'UNS+S'UNT+8+MSG1'",
		string(got.Payload))

	assert.Equal(t, []xedi.EventType{xedi.PublishStart, xedi.PublishDone}, rec.types())
}

func TestPublisher_ComposeFailure(t *testing.T) {
	pub, sink, rec := newPublisher(t)

	err := pub.PublishReport(context.Background(), "reports", newReport().SetReference("REF1"), nil)

	var mErr *xedi.MissingMandatoryFieldError
	require.ErrorAs(t, err, &mErr)
	assert.Equal(t, "reason", mErr.Field)
	assert.Empty(t, sink.Records("reports"))
	require.Equal(t, []xedi.EventType{xedi.ComposeFailed}, rec.types())
	assert.Same(t, mErr, rec.events[0].Err)
}

func TestPublisher_JSONCodec(t *testing.T) {
	pub, sink, _ := newPublisher(t, func(pb *xedi.PublisherBuilder) { pb.WithCodec("json") })
	c, err := newReport().SetReference("REF1").SetReason("S", "J").Compose()
	require.NoError(t, err)

	require.NoError(t, pub.Publish(context.Background(), "reports", c, nil))

	recs := sink.Records("reports")
	require.Len(t, recs, 1)
	assert.Equal(t, "json", recs[0].Codec)
	assert.Contains(t, string(recs[0].Payload), `"reference":"MSG1"`)
}

func TestPublisher_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid input", func(t *testing.T) {
		pub, _, _ := newPublisher(t)
		c, err := newReport().SetReference("REF1").SetReason("S", "J").Compose()
		require.NoError(t, err)

		assert.ErrorIs(t, pub.Publish(ctx, "", c, nil), xedi.ErrInvalidTopic)
		assert.ErrorIs(t, pub.Publish(ctx, "reports", nil, nil), xedi.ErrNilMessage)
		assert.ErrorIs(t, pub.PublishReport(ctx, "reports", nil, nil), xedi.ErrNilMessage)
	})

	t.Run("closed", func(t *testing.T) {
		pub, _, _ := newPublisher(t)
		require.NoError(t, pub.Close(ctx))
		require.NoError(t, pub.Close(ctx))

		err := pub.PublishReport(ctx, "reports", newReport().SetReference("R").SetReason("S", "J"), nil)
		assert.ErrorIs(t, err, xedi.ErrPublisherClosed)
	})

	t.Run("sink failure is observed", func(t *testing.T) {
		pub, _, rec := newPublisher(t)
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		err := pub.PublishReport(cctx, "reports", newReport().SetReference("R").SetReason("S", "J"), nil)
		require.ErrorIs(t, err, context.Canceled)
		rec.mu.Lock()
		defer rec.mu.Unlock()
		require.Len(t, rec.events, 2)
		assert.ErrorIs(t, rec.events[1].Err, context.Canceled)
	})
}

func TestPublisherBuilder(t *testing.T) {
	t.Run("no sink", func(t *testing.T) {
		_, err := xedi.NewPublisherBuilder().Build()
		assert.ErrorIs(t, err, xedi.ErrNoSinkConfigured)
	})

	t.Run("unknown sink", func(t *testing.T) {
		_, err := xedi.NewPublisherBuilder().WithSink("kafka", nil).Build()
		var uErr xedi.ErrUnknownSink
		assert.True(t, errors.As(err, &uErr))
	})

	t.Run("unknown codec", func(t *testing.T) {
		_, err := xedi.NewPublisherBuilder().WithSink(memory.SinkName, nil).WithCodec("xml").Build()
		var uErr xedi.ErrUnknownCodec
		assert.True(t, errors.As(err, &uErr))
	})

	t.Run("registered sink by name", func(t *testing.T) {
		pub, err := xedi.NewPublisherBuilder().
			WithSink(memory.SinkName, map[string]any{"assign_ids": false}).
			WithCodecInstance(xedi.JSONCodec{}).
			Build()
		require.NoError(t, err)
		assert.Equal(t, "json", pub.Codec().Name())
	})
}

func TestObserverFunc(t *testing.T) {
	var got xedi.Event
	obs := xedi.ObserverFunc(func(e xedi.Event) { got = e })

	obs.OnEvent(xedi.Event{Type: xedi.PublishDone, Topic: "reports"})
	assert.Equal(t, "reports", got.Topic)
}
