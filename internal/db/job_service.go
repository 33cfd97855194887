package db

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/balkashynov/timesheet/internal/logging"
	"github.com/balkashynov/timesheet/internal/models"
	"github.com/balkashynov/timesheet/internal/period"
)

// minIDPrefix is the shortest id prefix accepted as a job or session reference
const minIDPrefix = 4

// CreateJobRequest holds the data needed to create a new job
type CreateJobRequest struct {
	Name      string
	Rate      float64
	RangeMode string // empty means pay period
}

// PayPeriodUpdate changes a job's period settings. Nil fields are kept.
type PayPeriodUpdate struct {
	Start  *time.Time
	Length *int
}

// CreateJob adds a job whose first pay period starts today
func (s *Store) CreateJob(ctx context.Context, req CreateJobRequest) (*models.Job, error) {
	var job models.Job
	err := s.Mutate(ctx, func(state *models.State) error {
		var err error
		job, err = createJob(state, req, s.now(), s.newID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("job created", logging.FieldJobID, job.ID, "name", job.Name)
	return &job, nil
}

// RemoveJob deletes a job and all of its sessions. It is refused while the
// job is punched in.
func (s *Store) RemoveJob(ctx context.Context, ref string) (*models.Job, int, error) {
	var (
		job     models.Job
		removed int
	)
	err := s.Mutate(ctx, func(state *models.State) error {
		var err error
		job, removed, err = removeJob(state, ref)
		return err
	})
	if err != nil {
		return nil, 0, err
	}

	s.log.Info("job removed", logging.FieldJobID, job.ID, "sessions", removed)
	return &job, removed, nil
}

// SetRate changes a job's hourly rate
func (s *Store) SetRate(ctx context.Context, ref string, rate float64) (*models.Job, error) {
	return s.updateJob(ctx, ref, func(job *models.Job) error {
		if rate < 0 {
			return invalid("rate", "must not be negative")
		}
		job.Rate = sanitizeRate(rate)
		return nil
	})
}

// SetPayPeriod changes a job's period anchor and/or length
func (s *Store) SetPayPeriod(ctx context.Context, ref string, update PayPeriodUpdate) (*models.Job, error) {
	return s.updateJob(ctx, ref, func(job *models.Job) error {
		if update.Start != nil {
			job.PayPeriodStart = update.Start.Format(models.DateLayout)
		}
		if update.Length != nil {
			length := *update.Length
			if length < 1 {
				length = models.DefaultPayPeriodLength
			}
			job.PayPeriodLength = length
		}
		return nil
	})
}

// SetRangeMode switches a job between pay period and weekly totals
func (s *Store) SetRangeMode(ctx context.Context, ref, mode string) (*models.Job, error) {
	return s.updateJob(ctx, ref, func(job *models.Job) error {
		switch mode {
		case models.RangeModePayPeriod, models.RangeModeWeekly:
			job.RangeMode = mode
			return nil
		default:
			return invalid("range mode", "%q must be %s or %s", mode, models.RangeModePayPeriod, models.RangeModeWeekly)
		}
	})
}

// SetWeekStart stores the shared weekly anchor verbatim
func (s *Store) SetWeekStart(ctx context.Context, anchor time.Time) (time.Time, error) {
	err := s.Mutate(ctx, func(state *models.State) error {
		value := anchor.Format(models.DateLayout)
		state.WeekStart = &value
		return nil
	})
	return anchor, err
}

// ResetWeekStart moves the shared weekly anchor to the most recent Sunday
func (s *Store) ResetWeekStart(ctx context.Context) (time.Time, error) {
	return s.SetWeekStart(ctx, period.StartOfWeek(s.now()))
}

// Job resolves a job reference against the current state
func (s *Store) Job(ctx context.Context, ref string) (*models.Job, *models.State, error) {
	state, err := s.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	job, err := resolveJob(state, ref)
	if err != nil {
		return nil, nil, err
	}
	return job, state, nil
}

func (s *Store) updateJob(ctx context.Context, ref string, fn func(*models.Job) error) (*models.Job, error) {
	var job models.Job
	err := s.Mutate(ctx, func(state *models.State) error {
		target, err := resolveJob(state, ref)
		if err != nil {
			return err
		}
		if err := fn(target); err != nil {
			return err
		}
		job = *target
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func createJob(state *models.State, req CreateJobRequest, now time.Time, newID func() string) (models.Job, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.Job{}, invalid("name", "job name is required")
	}
	if req.Rate < 0 {
		return models.Job{}, invalid("rate", "must not be negative")
	}

	mode := req.RangeMode
	if mode == "" {
		mode = models.RangeModePayPeriod
	}
	if mode != models.RangeModePayPeriod && mode != models.RangeModeWeekly {
		return models.Job{}, invalid("range mode", "%q must be %s or %s", mode, models.RangeModePayPeriod, models.RangeModeWeekly)
	}

	job := models.Job{
		ID:              newID(),
		Name:            name,
		Rate:            sanitizeRate(req.Rate),
		RangeMode:       mode,
		PayPeriodStart:  now.Format(models.DateLayout),
		PayPeriodLength: models.DefaultPayPeriodLength,
	}
	state.Jobs = append(state.Jobs, job)
	return job, nil
}

func removeJob(state *models.State, ref string) (models.Job, int, error) {
	target, err := resolveJob(state, ref)
	if err != nil {
		return models.Job{}, 0, err
	}
	if target.IsPunchedIn() {
		return models.Job{}, 0, &PreconditionError{Message: "punch out of " + target.Name + " before removing it"}
	}
	job := *target

	jobs := state.Jobs[:0]
	for _, j := range state.Jobs {
		if j.ID != job.ID {
			jobs = append(jobs, j)
		}
	}
	state.Jobs = jobs

	removed := 0
	sessions := state.Sessions[:0]
	for _, session := range state.Sessions {
		if session.JobID == job.ID {
			removed++
			continue
		}
		sessions = append(sessions, session)
	}
	state.Sessions = sessions

	return job, removed, nil
}

// resolveJob finds a job by id, case-insensitive name, or unique id prefix
func resolveJob(state *models.State, ref string) (*models.Job, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrJobNotFound
	}
	if job := state.FindJob(ref); job != nil {
		return job, nil
	}

	var matches []*models.Job
	for i := range state.Jobs {
		if strings.EqualFold(state.Jobs[i].Name, ref) {
			matches = append(matches, &state.Jobs[i])
		}
	}
	if len(matches) == 0 && len(ref) >= minIDPrefix {
		for i := range state.Jobs {
			if strings.HasPrefix(state.Jobs[i].ID, ref) {
				matches = append(matches, &state.Jobs[i])
			}
		}
	}

	switch len(matches) {
	case 0:
		return nil, ErrJobNotFound
	case 1:
		return matches[0], nil
	default:
		return nil, invalid("job", "%q matches %d jobs, use the id", ref, len(matches))
	}
}

// sanitizeRate maps non-finite rates to 0
func sanitizeRate(rate float64) float64 {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0
	}
	return rate
}
