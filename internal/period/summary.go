package period

import (
	"time"

	"github.com/balkashynov/timesheet/internal/models"
)

// Summary is a job's current range with its totals and earnings
type Summary struct {
	Job      models.Job
	Range    Range
	Totals   Totals
	Earnings float64
}

// Summarize computes the current range for job and totals its sessions
func Summarize(job models.Job, state *models.State, ref time.Time) (Summary, error) {
	r, err := RangeForJob(job, state, ref)
	if err != nil {
		return Summary{}, err
	}
	totals := CalcTotals(state.Sessions, job.ID, r)
	return Summary{
		Job:      job,
		Range:    r,
		Totals:   totals,
		Earnings: Earnings(totals, job.Rate),
	}, nil
}
