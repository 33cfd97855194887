package models

import "time"

// Range modes
const (
	RangeModePayPeriod = "pay_period"
	RangeModeWeekly    = "weekly"
)

const (
	DefaultPayPeriodLength = 14
	DateLayout             = "2006-01-02"
)

// Job represents a work context with an hourly rate and a period configuration
type Job struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Rate            float64 `json:"rate"`
	ActiveSessionID string  `json:"activeSessionId,omitempty"`

	RangeMode       string `json:"rangeMode"`
	PayPeriodStart  string `json:"payPeriodStart"` // YYYY-MM-DD, local date
	PayPeriodLength int    `json:"payPeriodLength"`
}

// IsPunchedIn reports whether the job currently has an open session
func (j Job) IsPunchedIn() bool {
	return j.ActiveSessionID != ""
}

// PeriodLength returns the configured length clamped to at least one day
func (j Job) PeriodLength() int {
	if j.PayPeriodLength < 1 {
		return 1
	}
	return j.PayPeriodLength
}

// PeriodAnchor parses PayPeriodStart as a local date
func (j Job) PeriodAnchor(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, j.PayPeriodStart, loc)
}
