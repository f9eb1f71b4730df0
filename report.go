package xedi

import "time"

// Default REPORT message identifier.
const (
	ReportMessageType       = "REPORT"
	ReportVersion           = "3"
	ReportRelease           = "1"
	ReportControllingAgency = "GT"
	ReportAssociationCode   = "GTF"
)

// DefaultReportIdentifier returns the REPORT:3:1:GT:GTF identifier.
func DefaultReportIdentifier() MessageIdentifier {
	return MessageIdentifier{
		Type:              ReportMessageType,
		Version:           ReportVersion,
		Release:           ReportRelease,
		ControllingAgency: ReportControllingAgency,
		AssociationCode:   ReportAssociationCode,
	}
}

// DocumentID carries the BGM document identification codes (1225, 1001,
// 1004). Report.Compose accepts it but does not project it yet.
type DocumentID struct {
	MessageFunctionCode string
	DocumentNameCode    string
	DocumentIdentifier  string
}

// Report builds a delivery REPORT message.
//
// Setters only store normalized segments and never fail. Reference and
// reason are mandatory and checked by Compose. A Report is not safe for
// concurrent use.
type Report struct {
	msg *Message

	nad     []Composable
	ref     Segment
	reason  Segment
	dtm     []Segment
	comment Segment
	pod     []Segment
	receipt Segment

	// Accepted by SetReason, not part of the RSJ segment.
	reasonLocation string
	reasonUnit     *int
}

type reportConfig struct {
	reference  string
	identifier MessageIdentifier
	clock      Clock
}

// ReportOption configures NewReport.
type ReportOption func(*reportConfig)

// WithMessageReference sets the message reference number (0062). When unset
// a reference is generated.
func WithMessageReference(ref string) ReportOption {
	return func(c *reportConfig) { c.reference = ref }
}

// WithMessageIdentifier overrides the REPORT:3:1:GT:GTF identifier.
func WithMessageIdentifier(id MessageIdentifier) ReportOption {
	return func(c *reportConfig) { c.identifier = id }
}

// WithClock sets the clock used for the document-created timestamp.
func WithClock(clk Clock) ReportOption {
	return func(c *reportConfig) {
		if clk != nil {
			c.clock = clk
		}
	}
}

// NewReport creates a Report stamped with a DTM+DSJ document-created
// timestamp taken from the configured clock.
func NewReport(opts ...ReportOption) *Report {
	cfg := reportConfig{
		identifier: DefaultReportIdentifier(),
		clock:      defaultClock(),
	}
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	r := &Report{msg: NewMessage(cfg.identifier, cfg.reference)}
	r.SetDTM(cfg.clock.Now(), QualifierDocumentCreated)
	return r
}

// MessageReference returns the message reference number used in UNH and BGM.
func (r *Report) MessageReference() string { return r.msg.Reference() }

// SetReference sets the unique consignment reference. An empty ref clears it.
func (r *Report) SetReference(ref string) *Report {
	if ref == "" {
		r.ref = nil
		return r
	}
	r.ref = Segment{TagRFF, QualifierConsignmentReference, ref}
	return r
}

// ReasonOption supplies optional reason details.
type ReasonOption func(*Report)

func WithReasonLocation(location string) ReasonOption {
	return func(r *Report) { r.reasonLocation = location }
}

func WithReasonUnit(unit int) ReasonOption {
	return func(r *Report) { r.reasonUnit = &unit }
}

// SetReason sets the situation and justification codes.
func (r *Report) SetReason(situation, justification string, opts ...ReasonOption) *Report {
	r.reason = Segment{TagRSJ, QualifierReason, situation, justification}
	r.reasonLocation, r.reasonUnit = "", nil
	// TODO: project location and unit into RSJ once the GTF composite
	// layout for them is confirmed.
	for _, o := range opts {
		if o != nil {
			o(r)
		}
	}
	return r
}

// SetDTM appends a date/time segment. An empty qualifier means
// QualifierDeliveryDate.
func (r *Report) SetDTM(t time.Time, qualifier string) *Report {
	if qualifier == "" {
		qualifier = QualifierDeliveryDate
	}
	r.dtm = append(r.dtm, dtmSegment(qualifier, t))
	return r
}

// SetComment sets the delivery free text. An empty text clears it.
func (r *Report) SetComment(text string) *Report {
	if text == "" {
		r.comment = nil
		return r
	}
	r.comment = Segment{TagTXT, QualifierDeliveryText, text}
	return r
}

// AddPOD appends a proof-of-delivery link.
func (r *Report) AddPOD(url string) *Report {
	r.pod = append(r.pod, podSegment(url))
	return r
}

// SetPOD replaces all proof-of-delivery links.
func (r *Report) SetPOD(urls []string) *Report {
	r.pod = make([]Segment, 0, len(urls))
	for _, u := range urls {
		r.pod = append(r.pod, podSegment(u))
	}
	return r
}

// SetReceipt sets the waybill receipt. An empty value clears it.
func (r *Report) SetReceipt(value string) *Report {
	if value == "" {
		r.receipt = nil
		return r
	}
	r.receipt = Segment{TagDOC, QualifierWaybill, value}
	return r
}

// AddNAD appends an address entry. The entry is kept by reference and
// composed when the report is.
func (r *Report) AddNAD(entry Composable) *Report {
	if entry != nil {
		r.nad = append(r.nad, entry)
	}
	return r
}

// Compose assembles the REPORT body and frames it with the message envelope.
// It fails with a *MissingMandatoryFieldError when the reference or reason is
// unset; errors from address entries are returned as is. A failed Compose
// leaves the Report untouched.
func (r *Report) Compose(_ ...DocumentID) (*Composed, error) {
	body := []Segment{
		{TagBGM, "", r.msg.Reference(), ""},
	}

	for _, nad := range r.nad {
		if err := nad.Compose(); err != nil {
			return nil, err
		}
		body = append(body, nad.Composed()...)
	}

	body = append(body, Segment{TagUNS, SectionDetail})

	if r.ref == nil {
		return nil, NewMissingMandatoryFieldError("reference")
	}
	body = append(body, r.ref)

	if r.reason == nil {
		return nil, NewMissingMandatoryFieldError("reason")
	}
	body = append(body, r.reason)

	body = append(body, r.dtm...)

	if r.comment != nil {
		body = append(body, r.comment)
	}

	body = append(body, r.pod...)

	if r.receipt != nil {
		body = append(body, r.receipt)
	}

	body = append(body, Segment{TagUNS, SectionSummary})

	return r.msg.Compose(body)
}

func podSegment(url string) Segment {
	return Segment{TagCOM, url, QualifierFileTransfer}
}
