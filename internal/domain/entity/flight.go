// internal/domain/entity/flight.go
package entity

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-day format every flight date is stored in.
const DateLayout = "2006-01-02"

// ErrMissingField marks a flight that lacks one of its required fields.
var ErrMissingField = errors.New("missing required field")

// ErrDuplicateID marks a flight log in which two records share an ID.
var ErrDuplicateID = errors.New("duplicate flight id")

// Flight represents one logged flight segment. The identifier is opaque and
// assigned once at creation; departure, arrival and date are required, the
// airline is optional.
type Flight struct {
	ID        string `json:"id"`
	Departure string `json:"departure"`
	Arrival   string `json:"arrival"`
	Date      string `json:"date"`
	Airline   string `json:"airline,omitempty"`
}

// Validate checks the required-field invariant. Field format is deliberately
// not checked here; unparseable dates are tolerated downstream.
func (f *Flight) Validate() error {
	if strings.TrimSpace(f.Departure) == "" {
		return fmt.Errorf("%w: departure", ErrMissingField)
	}
	if strings.TrimSpace(f.Arrival) == "" {
		return fmt.Errorf("%w: arrival", ErrMissingField)
	}
	if strings.TrimSpace(f.Date) == "" {
		return fmt.Errorf("%w: date", ErrMissingField)
	}
	return nil
}

// DateValue parses the flight date. The second return is false when the date
// is not a valid calendar day; such flights stay in the collection but are
// excluded from year grouping and sort after all dated flights.
func (f *Flight) DateValue() (time.Time, bool) {
	t, err := time.Parse(DateLayout, f.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Year returns the calendar year of the flight as a label, or false when the
// date does not parse.
func (f *Flight) Year() (string, bool) {
	t, ok := f.DateValue()
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%04d", t.Year()), true
}
