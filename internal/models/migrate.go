package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// SchemaVersion 1 is the original blob without rangeMode or schemaVersion.
// Version 2 adds both.
const SchemaVersion = 2

// RawJob is a job record as found on disk, before defaults are applied
type RawJob struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Rate            *float64        `json:"rate"`
	ActiveSessionID *string         `json:"activeSessionId"`
	RangeMode       string          `json:"rangeMode"`
	PayPeriodStart  string          `json:"payPeriodStart"`
	PayPeriodLength json.RawMessage `json:"payPeriodLength"`
}

type rawState struct {
	SchemaVersion int       `json:"schemaVersion"`
	Jobs          []RawJob  `json:"jobs"`
	Sessions      []Session `json:"sessions"`
	WeekStart     *string   `json:"weekStart"`
}

// MigrateJob fills defaults on a stored job record. Older records may lack
// rate, period settings or a range mode.
func MigrateJob(raw RawJob, today time.Time) Job {
	job := Job{
		ID:              raw.ID,
		Name:            raw.Name,
		RangeMode:       raw.RangeMode,
		PayPeriodStart:  raw.PayPeriodStart,
		PayPeriodLength: parseLength(raw.PayPeriodLength),
	}
	if raw.Rate != nil {
		job.Rate = *raw.Rate
	}
	if raw.ActiveSessionID != nil {
		job.ActiveSessionID = *raw.ActiveSessionID
	}
	if job.PayPeriodStart == "" {
		job.PayPeriodStart = today.Format(DateLayout)
	}
	if job.PayPeriodLength == 0 {
		job.PayPeriodLength = DefaultPayPeriodLength
	}
	if job.RangeMode != RangeModeWeekly {
		job.RangeMode = RangeModePayPeriod
	}
	return job
}

// parseLength accepts a JSON number or a numeric string. Anything else is 0.
func parseLength(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	text := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if n, err := strconv.Atoi(text); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return int(f)
	}
	return 0
}

// DecodeState parses a stored blob and migrates every job record
func DecodeState(data []byte, today time.Time) (*State, error) {
	var raw rawState
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	state := NewState()
	state.WeekStart = raw.WeekStart
	for _, rj := range raw.Jobs {
		state.Jobs = append(state.Jobs, MigrateJob(rj, today))
	}
	if raw.Sessions != nil {
		state.Sessions = raw.Sessions
	}
	return state, nil
}

// EncodeState serializes the state at the current schema version
func EncodeState(state *State) ([]byte, error) {
	state.SchemaVersion = SchemaVersion
	return json.Marshal(state)
}
