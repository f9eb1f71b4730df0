package xedi

import (
	"encoding/json"
	"strconv"
	"time"
)

// Interchange groups composed messages between one sender and one recipient
// and frames them with UNB/UNZ.
type Interchange struct {
	sender           string
	recipient        string
	controlReference string // 0020
	syntaxID         string // 0001
	syntaxVersion    string // 0002
	preparedAt       time.Time

	messages []*Composed
}

type interchangeConfig struct {
	controlReference string
	syntaxID         string
	syntaxVersion    string
	clock            Clock
}

// InterchangeOption configures NewInterchange.
type InterchangeOption func(*interchangeConfig)

// WithControlReference sets the interchange control reference (0020). When
// unset one is generated.
func WithControlReference(ref string) InterchangeOption {
	return func(c *interchangeConfig) { c.controlReference = ref }
}

// WithSyntax sets the syntax identifier and version, UNOC:3 by default.
func WithSyntax(id, version string) InterchangeOption {
	return func(c *interchangeConfig) {
		c.syntaxID = id
		c.syntaxVersion = version
	}
}

// WithInterchangeClock sets the clock used for the preparation date/time.
func WithInterchangeClock(clk Clock) InterchangeOption {
	return func(c *interchangeConfig) {
		if clk != nil {
			c.clock = clk
		}
	}
}

func NewInterchange(sender, recipient string, opts ...InterchangeOption) *Interchange {
	cfg := interchangeConfig{
		syntaxID:      "UNOC",
		syntaxVersion: "3",
		clock:         defaultClock(),
	}
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	if cfg.controlReference == "" {
		cfg.controlReference = newReference("I")
	}
	return &Interchange{
		sender:           sender,
		recipient:        recipient,
		controlReference: cfg.controlReference,
		syntaxID:         cfg.syntaxID,
		syntaxVersion:    cfg.syntaxVersion,
		preparedAt:       cfg.clock.Now(),
	}
}

// AddMessage appends a composed message. Nil messages are ignored.
func (i *Interchange) AddMessage(c *Composed) *Interchange {
	if c != nil {
		i.messages = append(i.messages, c)
	}
	return i
}

func (i *Interchange) Messages() []*Composed {
	out := make([]*Composed, len(i.messages))
	copy(out, i.messages)
	return out
}

func (i *Interchange) ControlReference() string { return i.controlReference }

// Validate reports a missing sender, recipient or control reference.
func (i *Interchange) Validate() error {
	switch {
	case i.sender == "":
		return NewMissingMandatoryFieldError("interchange sender")
	case i.recipient == "":
		return NewMissingMandatoryFieldError("interchange recipient")
	case i.controlReference == "":
		return NewMissingMandatoryFieldError("interchange control reference")
	}
	return nil
}

// Header returns the UNB segment.
func (i *Interchange) Header() Segment {
	return Segment{
		TagUNB,
		composite(i.syntaxID, i.syntaxVersion),
		i.sender,
		i.recipient,
		composite(i.preparedAt.Format(dateLayout), i.preparedAt.Format(timeLayout)),
		i.controlReference,
	}
}

// Trailer returns the UNZ segment.
func (i *Interchange) Trailer() Segment {
	return Segment{TagUNZ, strconv.Itoa(len(i.messages)), i.controlReference}
}

// Segments returns UNB, every message with its UNH/UNT frame, and UNZ.
func (i *Interchange) Segments() []Segment {
	out := []Segment{i.Header()}
	for _, m := range i.messages {
		out = append(out, m.Segments()...)
	}
	return append(out, i.Trailer())
}

type interchangeJSON struct {
	ControlReference string      `json:"control_reference"`
	Sender           string      `json:"sender"`
	Recipient        string      `json:"recipient"`
	PreparedAt       time.Time   `json:"prepared_at"`
	Messages         []*Composed `json:"messages"`
}

func (i *Interchange) MarshalJSON() ([]byte, error) {
	return json.Marshal(interchangeJSON{
		ControlReference: i.controlReference,
		Sender:           i.sender,
		Recipient:        i.recipient,
		PreparedAt:       i.preparedAt,
		Messages:         i.Messages(),
	})
}
