package models

import (
	"time"
)

// Session represents one punch-in/punch-out interval of a job
type Session struct {
	ID    string     `json:"id"`
	JobID string     `json:"jobId"`
	Start time.Time  `json:"start"`
	End   *time.Time `json:"end"` // nil while the session is running
}

// IsRunning returns true if the session has not been punched out yet
func (s Session) IsRunning() bool {
	return s.End == nil
}

// Duration returns the wall-clock length of a closed session, or the time
// elapsed until at for a running one
func (s Session) Duration(at time.Time) time.Duration {
	if s.End == nil {
		return at.Sub(s.Start)
	}
	return s.End.Sub(s.Start)
}

// Hours returns the session length in exact fractional hours
func (s Session) Hours() float64 {
	if s.End == nil {
		return 0
	}
	return float64(s.End.Sub(s.Start).Milliseconds()) / 3600000.0
}
