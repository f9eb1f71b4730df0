package xedi

import (
	"github.com/trickstertwo/xlog"
)

// PublisherBuilder constructs Publisher instances (Builder pattern).
type PublisherBuilder struct {
	sinkName string
	sinkCfg  map[string]any
	sinkInst Sink

	codecName string
	codecInst Codec

	observers []Observer
	logger    *xlog.Logger
	clock     Clock
}

// NewPublisherBuilder returns a builder that encodes EDIFACT text by default.
func NewPublisherBuilder() *PublisherBuilder {
	return &PublisherBuilder{codecName: "edifact"}
}

// WithSink selects a registered sink adapter by name.
func (pb *PublisherBuilder) WithSink(name string, cfg map[string]any) *PublisherBuilder {
	pb.sinkName = name
	pb.sinkCfg = cfg
	return pb
}

// WithSinkInstance accepts a ready Sink instance.
func (pb *PublisherBuilder) WithSinkInstance(s Sink) *PublisherBuilder {
	pb.sinkInst = s
	return pb
}

func (pb *PublisherBuilder) WithCodec(name string) *PublisherBuilder {
	pb.codecName = name
	return pb
}

// WithCodecInstance accepts a ready Codec instance.
func (pb *PublisherBuilder) WithCodecInstance(c Codec) *PublisherBuilder {
	pb.codecInst = c
	return pb
}

func (pb *PublisherBuilder) WithObserver(obs ...Observer) *PublisherBuilder {
	for _, o := range obs {
		if o != nil {
			pb.observers = append(pb.observers, o)
		}
	}
	return pb
}

func (pb *PublisherBuilder) WithLogger(l *xlog.Logger) *PublisherBuilder {
	pb.logger = l
	return pb
}

func (pb *PublisherBuilder) WithClock(c Clock) *PublisherBuilder {
	pb.clock = c
	return pb
}

func (pb *PublisherBuilder) Build() (*Publisher, error) {
	var sk Sink
	var err error

	switch {
	case pb.sinkInst != nil:
		sk = pb.sinkInst
	case pb.sinkName != "":
		sk, err = NewSink(pb.sinkName, pb.sinkCfg)
		if err != nil {
			return nil, err
		}
	default:
		return nil, ErrNoSinkConfigured
	}

	var cd Codec
	if pb.codecInst != nil {
		cd = pb.codecInst
	} else {
		cd, err = NewCodec(pb.codecName)
		if err != nil {
			return nil, err
		}
	}

	clk := pb.clock
	if clk == nil {
		clk = defaultClock()
	}
	lg := pb.logger
	if lg == nil {
		lg = xlog.Default()
	}

	p := &Publisher{
		sink:  sk,
		codec: cd,
		clock: clk,
	}

	hasLoggingObserver := false
	for _, o := range pb.observers {
		if _, ok := o.(LoggingObserver); ok {
			hasLoggingObserver = true
			break
		}
	}
	if !hasLoggingObserver {
		p.AddObserver(LoggingObserver{Logger: lg})
	}
	for _, o := range pb.observers {
		p.AddObserver(o)
	}

	return p, nil
}
