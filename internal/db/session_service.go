package db

import (
	"context"
	"strings"
	"time"

	"github.com/balkashynov/timesheet/internal/logging"
	"github.com/balkashynov/timesheet/internal/models"
	"github.com/balkashynov/timesheet/internal/parser"
)

// PunchResult describes what a punch did
type PunchResult struct {
	Job       models.Job
	Session   models.Session
	PunchedIn bool // false when the punch closed a session
}

// EditSessionRequest holds the raw user input of a session edit
type EditSessionRequest struct {
	SessionID string
	JobID     string // empty keeps the current job
	Start     string
	End       string
}

// TogglePunch opens a session for an idle job or closes the running one
func (s *Store) TogglePunch(ctx context.Context, ref string) (*PunchResult, error) {
	return s.punch(ctx, ref, togglePunch)
}

// PunchIn opens a session, refusing when the job is already punched in
func (s *Store) PunchIn(ctx context.Context, ref string) (*PunchResult, error) {
	return s.punch(ctx, ref, func(state *models.State, job *models.Job, now time.Time, newID func() string) (PunchResult, error) {
		if job.IsPunchedIn() {
			return PunchResult{}, &PreconditionError{Message: job.Name + " is already punched in"}
		}
		return togglePunch(state, job, now, newID)
	})
}

// PunchOut closes the running session, refusing when the job is idle
func (s *Store) PunchOut(ctx context.Context, ref string) (*PunchResult, error) {
	return s.punch(ctx, ref, func(state *models.State, job *models.Job, now time.Time, newID func() string) (PunchResult, error) {
		if !job.IsPunchedIn() {
			return PunchResult{}, &PreconditionError{Message: job.Name + " is not on the clock"}
		}
		return togglePunch(state, job, now, newID)
	})
}

type punchFunc func(state *models.State, job *models.Job, now time.Time, newID func() string) (PunchResult, error)

func (s *Store) punch(ctx context.Context, ref string, fn punchFunc) (*PunchResult, error) {
	var result PunchResult
	err := s.Mutate(ctx, func(state *models.State) error {
		job, err := resolveJob(state, ref)
		if err != nil {
			return err
		}
		result, err = fn(state, job, s.now(), s.newID)
		return err
	})
	if err != nil {
		return nil, err
	}

	op := "out"
	if result.PunchedIn {
		op = "in"
	}
	s.log.Info("punch",
		logging.FieldOperation, op,
		logging.FieldJobID, result.Job.ID,
		logging.FieldSessionID, result.Session.ID)
	return &result, nil
}

// EditSession validates and applies a manual session edit. Nothing changes
// when a timestamp does not parse or the end is not after the start.
func (s *Store) EditSession(ctx context.Context, req EditSessionRequest) (*models.Session, error) {
	var session models.Session
	err := s.Mutate(ctx, func(state *models.State) error {
		var err error
		session, err = editSession(state, req, s.now())
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("session edited", logging.FieldSessionID, session.ID, logging.FieldJobID, session.JobID)
	return &session, nil
}

// Session resolves a session reference and returns it with its job
func (s *Store) Session(ctx context.Context, ref string) (*models.Session, *models.State, error) {
	state, err := s.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	session, err := resolveSession(state, ref)
	if err != nil {
		return nil, nil, err
	}
	return session, state, nil
}

// togglePunch closes the job's active session if it has one, otherwise it
// opens a new session and makes it active
func togglePunch(state *models.State, job *models.Job, now time.Time, newID func() string) (PunchResult, error) {
	if job.IsPunchedIn() {
		var closed models.Session
		if session := state.FindSession(job.ActiveSessionID); session != nil {
			if session.End == nil {
				end := now
				session.End = &end
			}
			closed = *session
		}
		job.ActiveSessionID = ""
		return PunchResult{Job: *job, Session: closed, PunchedIn: false}, nil
	}

	session := models.Session{
		ID:    newID(),
		JobID: job.ID,
		Start: now,
	}
	state.Sessions = append(state.Sessions, session)
	job.ActiveSessionID = session.ID
	return PunchResult{Job: *job, Session: session, PunchedIn: true}, nil
}

func editSession(state *models.State, req EditSessionRequest, now time.Time) (models.Session, error) {
	session, err := resolveSession(state, req.SessionID)
	if err != nil {
		return models.Session{}, err
	}

	start, err := parser.ParseTimestamp(req.Start, now)
	if err != nil {
		return models.Session{}, invalid("start", "%v", err)
	}
	end, err := parser.ParseTimestamp(req.End, now)
	if err != nil {
		return models.Session{}, invalid("end", "%v", err)
	}
	if !end.After(start) {
		return models.Session{}, invalid("end", "end time must be after start time")
	}

	jobID := session.JobID
	if strings.TrimSpace(req.JobID) != "" {
		job, err := resolveJob(state, req.JobID)
		if err != nil {
			return models.Session{}, err
		}
		jobID = job.ID
	}

	session.JobID = jobID
	session.Start = start
	session.End = &end

	// A session with an end can no longer be anyone's running session.
	for i := range state.Jobs {
		if state.Jobs[i].ActiveSessionID == session.ID {
			state.Jobs[i].ActiveSessionID = ""
		}
	}
	return *session, nil
}

// resolveSession finds a session by id or unique id prefix
func resolveSession(state *models.State, ref string) (*models.Session, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrSessionNotFound
	}
	if session := state.FindSession(ref); session != nil {
		return session, nil
	}
	if len(ref) < minIDPrefix {
		return nil, ErrSessionNotFound
	}

	var match *models.Session
	for i := range state.Sessions {
		if strings.HasPrefix(state.Sessions[i].ID, ref) {
			if match != nil {
				return nil, invalid("session", "%q matches more than one session, use the id", ref)
			}
			match = &state.Sessions[i]
		}
	}
	if match == nil {
		return nil, ErrSessionNotFound
	}
	return match, nil
}
