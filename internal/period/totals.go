package period

import "github.com/balkashynov/timesheet/internal/models"

// Totals summarizes a job's closed sessions inside a range
type Totals struct {
	TotalHours   float64
	SessionCount int
}

// CalcTotals sums the closed sessions of jobID whose start lies in r.
// Only the start is checked: a session starting inside r counts in full even
// if it ends after r, and one starting before r is excluded entirely.
func CalcTotals(sessions []models.Session, jobID string, r Range) Totals {
	var totals Totals
	for _, session := range sessions {
		if session.JobID != jobID || session.IsRunning() {
			continue
		}
		if !r.Contains(session.Start) {
			continue
		}
		totals.TotalHours += session.Hours()
		totals.SessionCount++
	}
	return totals
}

// Earnings is hours times the job's hourly rate
func Earnings(totals Totals, rate float64) float64 {
	return totals.TotalHours * rate
}

// DailyHours splits the hours CalcTotals would count by the calendar day each
// session started on. Index 0 is the first day of r.
func DailyHours(sessions []models.Session, jobID string, r Range) []float64 {
	days := make([]float64, r.Days())
	for _, session := range sessions {
		if session.JobID != jobID || session.IsRunning() || !r.Contains(session.Start) {
			continue
		}
		day := daysBetween(r.Start, session.Start.In(r.Start.Location()))
		if day >= 0 && day < len(days) {
			days[day] += session.Hours()
		}
	}
	return days
}
