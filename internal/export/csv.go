package export

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/balkashynov/timesheet/internal/models"
	"github.com/balkashynov/timesheet/internal/period"
)

// Header is the first row of every export
var Header = []string{"Job", "Range Start", "Range End", "Sessions", "Hours", "Rate", "Earnings"}

const fallbackName = "job"

var unsafeRun = regexp.MustCompile(`[^a-z0-9]+`)

// BuildCSV renders a job's range totals as a header row plus one data row.
// Every field is quoted; there is no trailing newline.
func BuildCSV(job models.Job, r period.Range, totals period.Totals) string {
	row := []string{
		job.Name,
		period.FormatDate(r.Start),
		period.FormatDate(r.End),
		strconv.Itoa(totals.SessionCount),
		period.FormatHours(totals.TotalHours),
		period.FormatMoney(job.Rate),
		period.FormatMoney(period.Earnings(totals, job.Rate)),
	}

	lines := make([]string, 0, 2)
	for _, fields := range [][]string{Header, row} {
		lines = append(lines, joinQuoted(fields))
	}
	return strings.Join(lines, "\n")
}

func joinQuoted(fields []string) string {
	quoted := make([]string, len(fields))
	for i, field := range fields {
		quoted[i] = `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}

// SafeName lowercases name and collapses anything outside [a-z0-9] to single
// underscores, e.g. "O'Brien & Co" -> "o_brien_co"
func SafeName(name string) string {
	safe := unsafeRun.ReplaceAllString(strings.ToLower(name), "_")
	safe = strings.Trim(safe, "_")
	if safe == "" {
		return fallbackName
	}
	return safe
}

// Filename names the export file after the job and the range start date
func Filename(job models.Job, r period.Range) string {
	return "timesheet_" + SafeName(job.Name) + "_" + r.Start.Format(models.DateLayout) + ".csv"
}
