package xedi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Codec is the Strategy for serializing composed messages.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Name() string
}

// Delimiters are the EDIFACT service characters announced by UNA.
type Delimiters struct {
	Component byte
	Element   byte
	Decimal   byte
	Release   byte
	Segment   byte
}

// DefaultDelimiters returns the UNA defaults :+.? '
func DefaultDelimiters() Delimiters {
	return Delimiters{Component: ':', Element: '+', Decimal: '.', Release: '?', Segment: '\''}
}

// serviceAdvice renders the UNA segment.
func (d Delimiters) serviceAdvice() string {
	return string([]byte{'U', 'N', 'A', d.Component, d.Element, d.Decimal, d.Release, ' ', d.Segment})
}

// EdifactCodec writes EDIFACT text. The zero value uses the default
// delimiters, omits UNA and writes no line breaks between segments.
type EdifactCodec struct {
	Delimiters    *Delimiters
	ServiceAdvice bool // prefix output with UNA
	Newline       bool // write "\n" after every segment terminator
}

func (EdifactCodec) Name() string { return "edifact" }

// Marshal accepts *Interchange, *Composed, Segment and []Segment.
func (c EdifactCodec) Marshal(v any) ([]byte, error) {
	var segs []Segment
	switch t := v.(type) {
	case *Interchange:
		if t == nil {
			return nil, ErrNilMessage
		}
		if err := t.Validate(); err != nil {
			return nil, err
		}
		segs = t.Segments()
	case *Composed:
		if t == nil {
			return nil, ErrNilMessage
		}
		segs = t.Segments()
	case Segment:
		segs = []Segment{t}
	case []Segment:
		segs = t
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}

	d := DefaultDelimiters()
	if c.Delimiters != nil {
		d = *c.Delimiters
	}
	var buf bytes.Buffer
	if c.ServiceAdvice {
		buf.WriteString(d.serviceAdvice())
		if c.Newline {
			buf.WriteByte('\n')
		}
	}
	for _, s := range segs {
		if err := writeSegment(&buf, d, s); err != nil {
			return nil, err
		}
		if c.Newline {
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes(), nil
}

var errEmptySegment = errors.New("xedi: segment has no tag")

func writeSegment(buf *bytes.Buffer, d Delimiters, s Segment) error {
	s = trimTrailing(s)
	if s.Tag() == "" {
		return errEmptySegment
	}
	buf.WriteString(s[0])
	for _, field := range s[1:] {
		buf.WriteByte(d.Element)
		parts := strings.Split(field, componentMark)
		n := len(parts)
		for n > 1 && parts[n-1] == "" {
			n--
		}
		for i, p := range parts[:n] {
			if i > 0 {
				buf.WriteByte(d.Component)
			}
			writeEscaped(buf, d, p)
		}
	}
	buf.WriteByte(d.Segment)
	return nil
}

func writeEscaped(buf *bytes.Buffer, d Delimiters, v string) {
	for i := 0; i < len(v); i++ {
		ch := v[i]
		switch ch {
		case d.Component, d.Element, d.Release, d.Segment:
			buf.WriteByte(d.Release)
		}
		buf.WriteByte(ch)
	}
}

// JSONCodec renders composed messages through their JSON views.
type JSONCodec struct{}

func (JSONCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }
func (JSONCodec) Name() string                  { return "json" }

// CodecFactory constructs codecs via Factory pattern.
type CodecFactory func() Codec

var (
	codecRegistryMu sync.RWMutex
	codecRegistry   = map[string]CodecFactory{
		"edifact": func() Codec { return EdifactCodec{} },
		"json":    func() Codec { return JSONCodec{} },
	}
)

// RegisterCodec registers a codec factory by name.
func RegisterCodec(name string, factory CodecFactory) error {
	if name == "" {
		return errors.New("codec name must not be empty")
	}
	if factory == nil {
		return errors.New("codec factory must not be nil")
	}
	codecRegistryMu.Lock()
	codecRegistry[name] = factory
	codecRegistryMu.Unlock()
	return nil
}

// NewCodec constructs a codec by name or returns an error.
func NewCodec(name string) (Codec, error) {
	codecRegistryMu.RLock()
	f, ok := codecRegistry[name]
	codecRegistryMu.RUnlock()
	if !ok {
		return nil, ErrUnknownCodec{name: name}
	}
	return f(), nil
}
