package models

import (
	"fmt"
	"sort"
	"time"
)

// StateKey is the fixed key the whole state blob is stored under
const StateKey = "timesheet_v1"

// StateBlob is the single row holding the serialized state
type StateBlob struct {
	Key       string `gorm:"primaryKey;column:blob_key"`
	Data      string `gorm:"not null"`
	UpdatedAt time.Time
}

// State is everything the application persists
type State struct {
	SchemaVersion int       `json:"schemaVersion"`
	Jobs          []Job     `json:"jobs"`
	Sessions      []Session `json:"sessions"`
	WeekStart     *string   `json:"weekStart"` // YYYY-MM-DD shared weekly anchor
}

// NewState returns an empty state at the current schema version
func NewState() *State {
	return &State{
		SchemaVersion: SchemaVersion,
		Jobs:          []Job{},
		Sessions:      []Session{},
	}
}

// FindJob returns a pointer into Jobs, or nil
func (s *State) FindJob(id string) *Job {
	for i := range s.Jobs {
		if s.Jobs[i].ID == id {
			return &s.Jobs[i]
		}
	}
	return nil
}

// FindSession returns a pointer into Sessions, or nil
func (s *State) FindSession(id string) *Session {
	for i := range s.Sessions {
		if s.Sessions[i].ID == id {
			return &s.Sessions[i]
		}
	}
	return nil
}

// ActiveJobs returns the jobs that are currently punched in
func (s *State) ActiveJobs() []Job {
	var active []Job
	for _, job := range s.Jobs {
		if job.IsPunchedIn() {
			active = append(active, job)
		}
	}
	return active
}

// RecentSessions returns up to limit sessions, most recent start first.
// A limit below 1 returns all of them.
func (s *State) RecentSessions(limit int) []Session {
	recent := make([]Session, len(s.Sessions))
	copy(recent, s.Sessions)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Start.After(recent[j].Start)
	})
	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	return recent
}

// WeekAnchor parses WeekStart as a local date. ok is false when unset or invalid.
func (s *State) WeekAnchor(loc *time.Location) (time.Time, bool) {
	if s.WeekStart == nil || *s.WeekStart == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DateLayout, *s.WeekStart, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// CheckActiveIndex verifies that every job's ActiveSessionID agrees with a
// full scan of the sessions for open ones.
func (s *State) CheckActiveIndex() error {
	open := make(map[string][]string)
	for _, session := range s.Sessions {
		if session.IsRunning() {
			open[session.JobID] = append(open[session.JobID], session.ID)
		}
	}

	for _, job := range s.Jobs {
		running := open[job.ID]
		if len(running) > 1 {
			return fmt.Errorf("job %s has %d open sessions", job.ID, len(running))
		}
		if job.ActiveSessionID == "" {
			if len(running) == 1 {
				return fmt.Errorf("job %s has open session %s but no active pointer", job.ID, running[0])
			}
			continue
		}
		if len(running) == 0 || running[0] != job.ActiveSessionID {
			return fmt.Errorf("job %s points at %s which is not its open session", job.ID, job.ActiveSessionID)
		}
		delete(open, job.ID)
	}

	for jobID, running := range open {
		if s.FindJob(jobID) == nil {
			return fmt.Errorf("open session %s belongs to missing job %s", running[0], jobID)
		}
	}
	return nil
}
