// Package period computes the current reporting window for a job and
// aggregates its sessions inside that window.
//
// All boundaries are local calendar-day arithmetic: a range starts at
// 00:00:00.000 and ends at 23:59:59.999 of its last day, so a range spanning
// a daylight-saving change is 23 or 25 wall-clock hours longer or shorter.
package period

import (
	"fmt"
	"time"

	"github.com/jinzhu/now"

	"github.com/balkashynov/timesheet/internal/models"
)

// WeekLength is the number of days in a weekly range
const WeekLength = 7

var weekConfig = &now.Config{WeekStartDay: time.Sunday}

// Range is an inclusive [Start, End] window
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies in the range, both ends included
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Days returns the number of calendar days covered
func (r Range) Days() int {
	return daysBetween(r.Start, r.End) + 1
}

// ComputeRange returns the pay period containing ref for a period anchored at
// anchor and lengthDays long. An anchor in the future yields the first period,
// which starts on the anchor itself; periods never start before the anchor.
func ComputeRange(anchor time.Time, lengthDays int, ref time.Time) Range {
	if lengthDays < 1 {
		lengthDays = 1
	}

	today := now.With(ref).BeginningOfDay()
	base := dateIn(anchor, ref.Location())

	periods := 0
	if diff := daysBetween(base, today); diff >= 0 {
		periods = diff / lengthDays
	}

	start := base.AddDate(0, 0, periods*lengthDays)
	return Range{
		Start: start,
		End:   endOfDay(start.AddDate(0, 0, lengthDays-1)),
	}
}

// WeekRange returns the seven days starting at weekStart. The anchor is used
// verbatim; it is not moved back to a Sunday.
func WeekRange(weekStart time.Time) Range {
	start := dateIn(weekStart, weekStart.Location())
	return Range{
		Start: start,
		End:   endOfDay(start.AddDate(0, 0, WeekLength-1)),
	}
}

// StartOfWeek returns the most recent Sunday at local midnight
func StartOfWeek(t time.Time) time.Time {
	return weekConfig.With(t).BeginningOfWeek()
}

// RangeForJob picks the job's current range. Weekly jobs share the state's
// week anchor, falling back to the start of ref's week when none is stored.
func RangeForJob(job models.Job, state *models.State, ref time.Time) (Range, error) {
	if job.RangeMode == models.RangeModeWeekly {
		anchor, ok := state.WeekAnchor(ref.Location())
		if !ok {
			anchor = StartOfWeek(ref)
		}
		return WeekRange(anchor), nil
	}

	anchor, err := job.PeriodAnchor(ref.Location())
	if err != nil {
		return Range{}, fmt.Errorf("invalid pay period start %q for job %q: %w", job.PayPeriodStart, job.Name, err)
	}
	return ComputeRange(anchor, job.PeriodLength(), ref), nil
}

// dateIn keeps t's calendar date and moves it to midnight in loc
func dateIn(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// daysBetween counts calendar days from a to b, ignoring clock time and DST
func daysBetween(a, b time.Time) int {
	from := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}
