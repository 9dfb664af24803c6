package jscontact

import (
	"encoding/json"
	"errors"
	"fmt"
)

// PartialDate is a calendar date where any part may be unknown.
type PartialDate struct {
	Year          int    `json:"year,omitempty"`
	Month         int    `json:"month,omitempty"`
	Day           int    `json:"day,omitempty"`
	CalendarScale string `json:"calendarScale,omitempty"`
}

// Date is either a PartialDate or a UTC timestamp.
type Date struct {
	Partial *PartialDate
	// UTC is an RFC 3339 timestamp in UTC, set when Partial is nil.
	UTC string
}

type partialDateJSON struct {
	Type string `json:"@type"`
	PartialDate
}

type timestampJSON struct {
	Type string `json:"@type"`
	UTC  string `json:"utc"`
}

// MarshalJSON emits the variant with its @type discriminator.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.Partial != nil {
		return json.Marshal(partialDateJSON{Type: "PartialDate", PartialDate: *d.Partial})
	}

	if d.UTC == "" {
		return nil, errors.New("date has neither partial date nor timestamp")
	}

	return json.Marshal(timestampJSON{Type: "Timestamp", UTC: d.UTC})
}

// UnmarshalJSON selects the variant by @type. A missing @type with a utc
// member is read as a timestamp, anything else as a partial date.
func (d *Date) UnmarshalJSON(data []byte) error {
	var shape struct {
		Type string `json:"@type"`
		UTC  string `json:"utc"`
	}

	if err := json.Unmarshal(data, &shape); err != nil {
		return fmt.Errorf("failed to parse date: %w", err)
	}

	if shape.Type == "Timestamp" || (shape.Type == "" && shape.UTC != "") {
		*d = Date{UTC: shape.UTC}
		return nil
	}

	var pd PartialDate
	if err := json.Unmarshal(data, &pd); err != nil {
		return fmt.Errorf("failed to parse partial date: %w", err)
	}

	*d = Date{Partial: &pd}

	return nil
}
