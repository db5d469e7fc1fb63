package shared

import (
	"fmt"
	"time"
)

const (
	// ISODate is the wire format for date range filters.
	ISODate = "2006-01-02"
	// DisplayDate is the format surfaced to detail and list views.
	DisplayDate = "Jan 02, 2006"
)

// DateRange bounds a report to orders placed between Start and End inclusive.
// Zero values leave the corresponding side unbounded.
type DateRange struct {
	Start string `json:"start,omitempty" validate:"omitempty,datetime=2006-01-02"`
	End   string `json:"end,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// IsZero reports whether the range places no restriction at all.
func (r DateRange) IsZero() bool {
	return r.Start == "" && r.End == ""
}

// Validate checks both bounds parse as ISO dates and are ordered.
func (r DateRange) Validate() error {
	var start, end time.Time
	var err error
	if r.Start != "" {
		if start, err = time.Parse(ISODate, r.Start); err != nil {
			return fmt.Errorf("%w: start %q", ErrInvalidRange, r.Start)
		}
	}
	if r.End != "" {
		if end, err = time.Parse(ISODate, r.End); err != nil {
			return fmt.Errorf("%w: end %q", ErrInvalidRange, r.End)
		}
	}
	if r.Start != "" && r.End != "" && end.Before(start) {
		return fmt.Errorf("%w: end before start", ErrInvalidRange)
	}
	return nil
}

// FormatDate renders a stored date for display.
func FormatDate(t time.Time) string {
	return t.Format(DisplayDate)
}

// FormatDatePtr renders an optional date, preserving absence as nil so a
// missing shipped date never collapses into an empty string.
func FormatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DisplayDate)
	return &s
}
