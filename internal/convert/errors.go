package convert

import (
	"errors"
	"fmt"
	"strings"

	"jscard/internal/group"
)

var (
	// ErrMissingProperty is returned when a mandatory property is absent.
	ErrMissingProperty = errors.New("missing mandatory property")
	// ErrInvalidValue is returned for an unparseable mandatory value.
	ErrInvalidValue = errors.New("invalid value")
	// ErrUnknownToken is returned for an unknown TYPE or KIND token when
	// unknown tokens are treated as errors.
	ErrUnknownToken = errors.New("unknown token")
	// ErrMissingGroupMarker is returned when a record lists members but
	// carries no KIND.
	ErrMissingGroupMarker = group.ErrMissingGroupMarker
)

// ConversionError reports a structural error in one record.
type ConversionError struct {
	// Record is the uid of the record, or its batch position.
	Record string
	// Property is the offending property name.
	Property string
	Err      error
}

func (e *ConversionError) Error() string {
	if e.Property == "" {
		return fmt.Sprintf("record %s: %v", e.Record, e.Err)
	}

	return fmt.Sprintf("record %s: property %s: %v", e.Record, e.Property, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// BatchError collects the records that failed in a tolerant batch.
type BatchError struct {
	// Failed holds the batch positions of the failed records.
	Failed []int
	Errs   []error
}

func (e *BatchError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}

	return fmt.Sprintf("%d record(s) failed: %s", len(e.Errs), strings.Join(msgs, "; "))
}

func (e *BatchError) Unwrap() []error {
	return e.Errs
}
