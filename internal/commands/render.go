package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/balkashynov/timesheet/internal/models"
	"github.com/balkashynov/timesheet/internal/period"
)

// shortIDLength is how much of an id listings show. Any unique prefix of at
// least four characters is accepted back as a reference.
const shortIDLength = 8

func shortID(id string) string {
	if len(id) <= shortIDLength {
		return id
	}
	return id[:shortIDLength]
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

func formatRange(r period.Range) string {
	return fmt.Sprintf("%s - %s", period.FormatDate(r.Start), period.FormatDate(r.End))
}

// describePeriod explains how a job's range is chosen
func describePeriod(job models.Job) string {
	if job.RangeMode == models.RangeModeWeekly {
		return "weekly"
	}
	anchor := job.PayPeriodStart
	if t, err := time.Parse(models.DateLayout, job.PayPeriodStart); err == nil {
		anchor = period.FormatDate(t)
	}
	return fmt.Sprintf("every %d days from %s", job.PeriodLength(), anchor)
}

// parseRangeMode accepts the spellings people actually type for a mode
func parseRangeMode(input string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "pay", "period", "pay-period", "pay_period", "payperiod":
		return models.RangeModePayPeriod, nil
	case "week", "weekly":
		return models.RangeModeWeekly, nil
	default:
		return "", fmt.Errorf("unknown range mode '%s': use 'pay' or 'weekly'", input)
	}
}

// jobStatus is the STATUS column of the job listing
func jobStatus(job models.Job, state *models.State, ref time.Time) string {
	if !job.IsPunchedIn() {
		return "off"
	}
	session := state.FindSession(job.ActiveSessionID)
	if session == nil {
		return "on"
	}
	return "on " + period.FormatElapsed(session.Start, ref)
}

func formatJobRow(s period.Summary, state *models.State, ref time.Time) string {
	return fmt.Sprintf("%-8s %-20s %9s %-29s %8d %8s %12s  %s",
		shortID(s.Job.ID),
		truncate(s.Job.Name, 20),
		"$"+period.FormatMoney(s.Job.Rate),
		formatRange(s.Range),
		s.Totals.SessionCount,
		period.FormatHours(s.Totals.TotalHours),
		"$"+period.FormatMoneyGrouped(s.Earnings),
		jobStatus(s.Job, state, ref))
}

func formatSessionRow(session models.Session, jobName string, ref time.Time) string {
	loc := ref.Location()
	end := "running"
	hours := period.FormatElapsed(session.Start, ref)
	if session.End != nil {
		end = period.FormatDateTime(session.End.In(loc))
		hours = period.FormatHours(session.Hours())
	}
	return fmt.Sprintf("%-8s %-20s %-15s %-15s %8s",
		shortID(session.ID),
		truncate(jobName, 20),
		period.FormatDateTime(session.Start.In(loc)),
		end,
		hours)
}

// jobNames maps job ids to names for session listings
func jobNames(state *models.State) map[string]string {
	names := make(map[string]string, len(state.Jobs))
	for _, job := range state.Jobs {
		names[job.ID] = job.Name
	}
	return names
}
