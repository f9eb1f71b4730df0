package xedi

import "time"

// Segment is one tagged EDIFACT segment. The first field is the segment tag,
// the remaining fields are data elements in grammar order.
type Segment []string

// Segment tags used by the REPORT grammar and its envelope.
const (
	TagBGM = "BGM" // beginning of message
	TagNAD = "NAD" // name and address
	TagUNS = "UNS" // section control
	TagRFF = "RFF" // reference
	TagRSJ = "RSJ" // reason / justification
	TagDTM = "DTM" // date/time/period
	TagTXT = "TXT" // free text
	TagCOM = "COM" // communication contact
	TagDOC = "DOC" // document details
	TagUNH = "UNH" // message header
	TagUNT = "UNT" // message trailer
	TagUNB = "UNB" // interchange header
	TagUNZ = "UNZ" // interchange trailer
)

// Qualifiers and fixed codes.
const (
	QualifierConsignmentReference = "UNC"
	QualifierReason               = "MS"
	QualifierDeliveryDate         = "DDI"
	QualifierDocumentCreated      = "DSJ"
	QualifierDeliveryText         = "DEL"
	QualifierFileTransfer         = "FT"
	QualifierWaybill              = "WBL"

	SectionDetail  = "D"
	SectionSummary = "S"
)

const (
	dateLayout = "060102"
	timeLayout = "1504"
)

// Tag returns the segment tag, or "" for an empty segment.
func (s Segment) Tag() string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

// Clone returns a copy that shares no backing array with s.
func (s Segment) Clone() Segment {
	if s == nil {
		return nil
	}
	out := make(Segment, len(s))
	copy(out, s)
	return out
}

func cloneSegments(in []Segment) []Segment {
	out := make([]Segment, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}

// trimTrailing drops empty trailing data elements, keeping the tag.
func trimTrailing(s Segment) Segment {
	n := len(s)
	for n > 1 && s[n-1] == "" {
		n--
	}
	return s[:n]
}

func dtmSegment(qualifier string, t time.Time) Segment {
	return Segment{TagDTM, qualifier, t.Format(dateLayout), t.Format(timeLayout)}
}
