package xedi

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testTime = time.Date(2024, time.March, 5, 14, 7, 31, 0, time.UTC)

func newTestReport(opts ...ReportOption) *Report {
	base := []ReportOption{WithMessageReference("MSG1"), WithClock(fixedClock{testTime})}
	return NewReport(append(base, opts...)...)
}

// stubEntry is a Composable with a fixed result.
type stubEntry struct {
	segs  []Segment
	err   error
	calls int
}

func (s *stubEntry) Compose() error      { s.calls++; return s.err }
func (s *stubEntry) Composed() []Segment { return s.segs }

func TestReport_ComposeMinimal(t *testing.T) {
	r := newTestReport().
		SetReference("REF1").
		SetReason("S", "J")

	c, err := r.Compose()
	require.NoError(t, err)

	assert.Equal(t, []Segment{
		{"BGM", "", "MSG1", ""},
		{"UNS", "D"},
		{"RFF", "UNC", "REF1"},
		{"RSJ", "MS", "S", "J"},
		{"DTM", "DSJ", "240305", "1407"},
		{"UNS", "S"},
	}, c.Body)
	assert.Equal(t, "MSG1", c.Reference)
	assert.Equal(t, DefaultReportIdentifier(), c.Identifier)
}

func TestReport_ComposeFullOrder(t *testing.T) {
	x := &stubEntry{segs: []Segment{{"NAD", "CZ"}}}
	y := &stubEntry{segs: []Segment{{"NAD", "CN"}, {"NAD", "DP"}}}
	delivered := time.Date(2024, time.March, 6, 9, 30, 0, 0, time.UTC)

	r := newTestReport().
		SetReceipt("WB1").
		AddPOD("https://pod/1").
		SetComment("left at door").
		SetDTM(delivered, "").
		SetReason("DLV", "OK").
		SetReference("REF1").
		AddNAD(x).
		AddNAD(y)

	c, err := r.Compose(DocumentID{MessageFunctionCode: "9"})
	require.NoError(t, err)

	assert.Equal(t, []Segment{
		{"BGM", "", "MSG1", ""},
		{"NAD", "CZ"},
		{"NAD", "CN"},
		{"NAD", "DP"},
		{"UNS", "D"},
		{"RFF", "UNC", "REF1"},
		{"RSJ", "MS", "DLV", "OK"},
		{"DTM", "DSJ", "240305", "1407"},
		{"DTM", "DDI", "240306", "0930"},
		{"TXT", "DEL", "left at door"},
		{"COM", "https://pod/1", "FT"},
		{"DOC", "WBL", "WB1"},
		{"UNS", "S"},
	}, c.Body)
	assert.Equal(t, 1, x.calls)
	assert.Equal(t, 1, y.calls)
}

func TestReport_MandatoryFields(t *testing.T) {
	t.Run("reference and reason unset", func(t *testing.T) {
		_, err := newTestReport().Compose()

		var mErr *MissingMandatoryFieldError
		require.ErrorAs(t, err, &mErr)
		assert.Equal(t, "reference", mErr.Field)
		assert.ErrorIs(t, err, ErrMissingMandatoryField)
		assert.Equal(t, "missing mandatory field: reference", err.Error())
	})

	t.Run("reason unset", func(t *testing.T) {
		_, err := newTestReport().SetReference("REF1").Compose()

		var mErr *MissingMandatoryFieldError
		require.ErrorAs(t, err, &mErr)
		assert.Equal(t, "reason", mErr.Field)
	})

	t.Run("reference cleared", func(t *testing.T) {
		_, err := newTestReport().SetReference("REF1").SetReference("").SetReason("S", "J").Compose()
		assert.ErrorIs(t, err, ErrMissingMandatoryField)
	})

	t.Run("fails every time and recovers once fixed", func(t *testing.T) {
		r := newTestReport()
		_, err1 := r.Compose()
		_, err2 := r.Compose()
		assert.Equal(t, err1, err2)

		c, err := r.SetReference("REF1").SetReason("S", "J").Compose()
		require.NoError(t, err)
		assert.Len(t, c.Body, 6)
	})
}

func TestReport_NestedErrorPropagatesUnchanged(t *testing.T) {
	boom := errors.New("boom")
	r := newTestReport().SetReference("REF1").SetReason("S", "J").AddNAD(&stubEntry{err: boom})

	_, err := r.Compose()
	assert.Same(t, boom, err)

	_, err = newTestReport().AddNAD(NewNameAndAddress("")).Compose()
	var mErr *MissingMandatoryFieldError
	require.ErrorAs(t, err, &mErr)
	assert.Equal(t, "party function code qualifier", mErr.Field)
}

func TestReport_ComposeIsDeterministic(t *testing.T) {
	r := newTestReport().
		SetReference("REF1").
		SetReason("S", "J").
		AddNAD(NewNameAndAddress(PartyConsignee).SetCity("Oslo")).
		SetPOD([]string{"a", "b"})

	c1, err := r.Compose()
	require.NoError(t, err)
	c2, err := r.Compose()
	require.NoError(t, err)
	assert.Equal(t, c1, c2)

	// Results do not share backing arrays with the builder.
	c1.Body[3][2] = "changed"
	c3, err := r.Compose()
	require.NoError(t, err)
	assert.Equal(t, c2, c3)
}

func TestReport_DTM(t *testing.T) {
	later := testTime.Add(48 * time.Hour)
	r := newTestReport().
		SetDTM(later, "").
		SetDTM(later, "ZZZ")

	assert.Equal(t, []Segment{
		{"DTM", "DSJ", "240305", "1407"},
		{"DTM", "DDI", "240307", "1407"},
		{"DTM", "ZZZ", "240307", "1407"},
	}, r.dtm)
}

func TestReport_POD(t *testing.T) {
	r := newTestReport().AddPOD("x").SetPOD([]string{"a", "b"})
	assert.Equal(t, []Segment{{"COM", "a", "FT"}, {"COM", "b", "FT"}}, r.pod)

	r.AddPOD("c")
	assert.Equal(t, []Segment{{"COM", "a", "FT"}, {"COM", "b", "FT"}, {"COM", "c", "FT"}}, r.pod)

	r.SetPOD(nil)
	assert.Empty(t, r.pod)
}

func TestReport_ClearOptionalSlots(t *testing.T) {
	r := newTestReport().SetReference("REF1").SetReason("S", "J")

	c, err := r.SetReceipt("X").SetComment("note").Compose()
	require.NoError(t, err)
	assert.Contains(t, c.Body, Segment{"DOC", "WBL", "X"})
	assert.Contains(t, c.Body, Segment{"TXT", "DEL", "note"})

	c, err = r.SetReceipt("").SetComment("").Compose()
	require.NoError(t, err)
	for _, s := range c.Body {
		assert.NotEqual(t, TagDOC, s.Tag())
		assert.NotEqual(t, TagTXT, s.Tag())
	}
}

func TestReport_ReasonDetailsNotProjected(t *testing.T) {
	r := newTestReport().
		SetReference("REF1").
		SetReason("S", "J", WithReasonLocation("AMS"), WithReasonUnit(3))

	c, err := r.Compose()
	require.NoError(t, err)
	assert.Equal(t, Segment{"RSJ", "MS", "S", "J"}, c.Body[3])
	assert.Equal(t, "AMS", r.reasonLocation)
	require.NotNil(t, r.reasonUnit)
	assert.Equal(t, 3, *r.reasonUnit)

	r.SetReason("S2", "J2")
	assert.Empty(t, r.reasonLocation)
	assert.Nil(t, r.reasonUnit)
}

func TestNewReport_Defaults(t *testing.T) {
	r := NewReport()

	assert.Len(t, r.MessageReference(), 14)
	assert.Equal(t, "M", r.MessageReference()[:1])
	require.Len(t, r.dtm, 1)
	assert.Equal(t, QualifierDocumentCreated, r.dtm[0][1])

	other := NewReport()
	assert.NotEqual(t, r.MessageReference(), other.MessageReference())

	custom := MessageIdentifier{Type: "REPORT", Version: "D", Release: "96A", ControllingAgency: "UN"}
	c, err := newTestReport(WithMessageIdentifier(custom)).SetReference("R").SetReason("S", "J").Compose()
	require.NoError(t, err)
	assert.Equal(t, custom, c.Identifier)
}

func TestReport_AddNADIgnoresNil(t *testing.T) {
	r := newTestReport().AddNAD(nil)
	assert.Empty(t, r.nad)
}
