package xedi

import (
	"errors"
	"fmt"
)

// ErrMissingMandatoryField is the sentinel wrapped by MissingMandatoryFieldError.
var ErrMissingMandatoryField = errors.New("missing mandatory field")

// MissingMandatoryFieldError reports a mandatory segment or element that was
// not set when a message was composed.
type MissingMandatoryFieldError struct {
	Field string
}

func NewMissingMandatoryFieldError(field string) *MissingMandatoryFieldError {
	return &MissingMandatoryFieldError{Field: field}
}

func (e *MissingMandatoryFieldError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingMandatoryField, e.Field)
}

func (e *MissingMandatoryFieldError) Unwrap() error { return ErrMissingMandatoryField }

var (
	ErrNoSinkConfigured = errors.New("xedi: no sink configured")
	ErrPublisherClosed  = errors.New("xedi: publisher is closed")
	ErrInvalidTopic     = errors.New("xedi: topic must not be empty")
	ErrNilMessage       = errors.New("xedi: composed message must not be nil")
	ErrUnsupportedValue = errors.New("xedi: codec does not support value")

	ErrDefaultPublisherNotInitialized = errors.New("xedi: default publisher not initialized")
)

type ErrUnknownSink struct{ name string }

func (e ErrUnknownSink) Error() string { return fmt.Sprintf("unknown sink: %s", e.name) }

type ErrUnknownCodec struct{ name string }

func (e ErrUnknownCodec) Error() string { return fmt.Sprintf("codec %q not registered", e.name) }
