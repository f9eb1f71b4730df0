package xedi

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// MessageIdentifier is the composite S009 carried in the UNH header.
type MessageIdentifier struct {
	Type              string `json:"type"`                       // 0065
	Version           string `json:"version"`                    // 0052
	Release           string `json:"release"`                    // 0054
	ControllingAgency string `json:"controlling_agency"`         // 0051
	AssociationCode   string `json:"association_code,omitempty"` // 0057
}

// Components returns the identifier as UNH composite components, without
// trailing empty ones.
func (id MessageIdentifier) Components() []string {
	c := []string{id.Type, id.Version, id.Release, id.ControllingAgency, id.AssociationCode}
	n := len(c)
	for n > 0 && c[n-1] == "" {
		n--
	}
	return c[:n]
}

// Message is the envelope shared by every message builder. Builders assemble
// the body and hand it to Compose, which adds nothing but the UNH/UNT frame.
type Message struct {
	identifier MessageIdentifier
	reference  string // 0062
}

// NewMessage creates an envelope. An empty reference is replaced by a
// generated one that fits the an..14 limit of data element 0062.
func NewMessage(id MessageIdentifier, reference string) *Message {
	if reference == "" {
		reference = newReference("M")
	}
	return &Message{identifier: id, reference: reference}
}

// Identifier returns the UNH message identifier.
func (m *Message) Identifier() MessageIdentifier { return m.identifier }

// Reference returns the message reference number (0062).
func (m *Message) Reference() string { return m.reference }

// Compose frames body into a composed message. The body is copied, so later
// changes by the caller do not leak into the result.
func (m *Message) Compose(body []Segment) (*Composed, error) {
	switch {
	case m.reference == "":
		return nil, NewMissingMandatoryFieldError("message reference number")
	case m.identifier.Type == "":
		return nil, NewMissingMandatoryFieldError("message type")
	case m.identifier.Version == "":
		return nil, NewMissingMandatoryFieldError("message version number")
	case m.identifier.Release == "":
		return nil, NewMissingMandatoryFieldError("message release number")
	case m.identifier.ControllingAgency == "":
		return nil, NewMissingMandatoryFieldError("controlling agency")
	}
	return &Composed{
		Reference:  m.reference,
		Identifier: m.identifier,
		Body:       cloneSegments(body),
	}, nil
}

// Composed is a framed message ready for a Codec.
type Composed struct {
	Reference  string
	Identifier MessageIdentifier
	Body       []Segment
}

// Header returns the UNH segment; the identifier is a single composite field.
func (c *Composed) Header() Segment {
	return Segment{TagUNH, c.Reference, composite(c.Identifier.Components()...)}
}

// SegmentCount is the UNT 0074 value: body plus UNH and UNT.
func (c *Composed) SegmentCount() int { return len(c.Body) + 2 }

// Trailer returns the UNT segment.
func (c *Composed) Trailer() Segment {
	return Segment{TagUNT, strconv.Itoa(c.SegmentCount()), c.Reference}
}

// Segments returns header, body and trailer in order.
func (c *Composed) Segments() []Segment {
	out := make([]Segment, 0, c.SegmentCount())
	out = append(out, c.Header())
	out = append(out, cloneSegments(c.Body)...)
	return append(out, c.Trailer())
}

type composedJSON struct {
	Reference  string            `json:"reference"`
	Identifier MessageIdentifier `json:"identifier"`
	Segments   [][]any           `json:"segments"`
}

func (c *Composed) MarshalJSON() ([]byte, error) {
	return json.Marshal(composedJSON{
		Reference:  c.Reference,
		Identifier: c.Identifier,
		Segments:   jsonSegments(c.Segments()),
	})
}

// jsonSegments renders composite fields as string arrays and plain fields as
// strings.
func jsonSegments(segs []Segment) [][]any {
	out := make([][]any, len(segs))
	for i, s := range segs {
		row := make([]any, len(s))
		for j, f := range s {
			if strings.Contains(f, componentMark) {
				row[j] = strings.Split(f, componentMark)
			} else {
				row[j] = f
			}
		}
		out[i] = row
	}
	return out
}

// newReference returns prefix followed by upper-case hex digits from a random
// UUID, 14 characters in total.
func newReference(prefix string) string {
	h := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + strings.ToUpper(h[:14-len(prefix)])
}
