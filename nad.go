package xedi

import "strings"

// Party function code qualifiers (3035) commonly used in REPORT messages.
const (
	PartyConsignor = "CZ"
	PartyConsignee = "CN"
	PartyCarrier   = "CA"
	PartyDelivery  = "DP"
)

// NameAndAddress builds a single NAD segment.
//
// Multi-line elements (name and address, party name, street) are stored as
// composites, see Composite.
type NameAndAddress struct {
	qualifier       string
	partyID         []string
	nameAndAddress  []string
	partyName       []string
	street          []string
	city            string
	countrySubEntry string
	postalCode      string
	country         string

	composed []Segment
}

// NewNameAndAddress starts a NAD block for the given party function code
// qualifier (3035).
func NewNameAndAddress(qualifier string) *NameAndAddress {
	return &NameAndAddress{qualifier: qualifier}
}

// SetPartyID sets C082: party identifier, code list qualifier and agency.
func (n *NameAndAddress) SetPartyID(id, codeList, agency string) *NameAndAddress {
	n.partyID = []string{id, codeList, agency}
	return n
}

func (n *NameAndAddress) SetNameAndAddress(lines ...string) *NameAndAddress {
	n.nameAndAddress = lines
	return n
}

func (n *NameAndAddress) SetPartyName(lines ...string) *NameAndAddress {
	n.partyName = lines
	return n
}

func (n *NameAndAddress) SetStreet(lines ...string) *NameAndAddress {
	n.street = lines
	return n
}

func (n *NameAndAddress) SetCity(city string) *NameAndAddress {
	n.city = city
	return n
}

func (n *NameAndAddress) SetCountrySubEntity(code string) *NameAndAddress {
	n.countrySubEntry = code
	return n
}

func (n *NameAndAddress) SetPostalCode(code string) *NameAndAddress {
	n.postalCode = code
	return n
}

// SetCountry sets the ISO 3166 alpha-2 country code (3207).
func (n *NameAndAddress) SetCountry(code string) *NameAndAddress {
	n.country = code
	return n
}

// Compose builds the NAD segment. The party function code qualifier is the
// only mandatory element.
func (n *NameAndAddress) Compose() error {
	if n.qualifier == "" {
		return NewMissingMandatoryFieldError("party function code qualifier")
	}
	seg := Segment{
		TagNAD,
		n.qualifier,
		composite(n.partyID...),
		composite(n.nameAndAddress...),
		composite(n.partyName...),
		composite(n.street...),
		n.city,
		n.countrySubEntry,
		n.postalCode,
		n.country,
	}
	n.composed = []Segment{trimTrailing(seg)}
	return nil
}

func (n *NameAndAddress) Composed() []Segment { return cloneSegments(n.composed) }

// componentMark separates composite components inside a Segment field. It is
// a control character that never appears in UNOA-UNOC text, so codecs can
// split on it before escaping.
const componentMark = "\x1f"

func composite(parts ...string) string {
	n := len(parts)
	for n > 0 && parts[n-1] == "" {
		n--
	}
	return strings.Join(parts[:n], componentMark)
}

// Composite joins components into a single Segment field that codecs render
// as a composite data element.
func Composite(parts ...string) string { return composite(parts...) }
