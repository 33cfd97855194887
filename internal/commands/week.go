package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/timesheet/internal/models"
	"github.com/balkashynov/timesheet/internal/parser"
	"github.com/balkashynov/timesheet/internal/period"
)

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show the hours of the current week by day",
	Long: `Show a timesheet of the current week grouped by job and day.

Weekly jobs total over this week. The week starts on the stored week start,
or on the most recent Sunday when none is set.

Example output:
  Job                   Sun   Mon   Tue   Wed   Thu   Fri   Sat   Total
  Corner Cafe             -  4.00  3.50     -     -     -     -    7.50
  Total                   -  4.00  3.50     -     -     -     -    7.50`,
	Run: withStore(func(cmd *cobra.Command, args []string, a *app) {
		state, err := a.store.Load(cmd.Context())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		now := a.store.Now()
		fmt.Print(renderWeekTable(state, currentWeek(state, now)))
	}),
}

var weekSetCmd = &cobra.Command{
	Use:   "set <date>",
	Short: "Start the week on a given day",
	Args:  cobra.ExactArgs(1),
	Run: withStore(func(cmd *cobra.Command, args []string, a *app) {
		anchor, err := parser.ParseDate(args[0], a.store.Now())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		start, err := a.store.SetWeekStart(cmd.Context(), anchor)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("📅 Week now runs %s\n", formatRange(period.WeekRange(start)))
	}),
}

var weekResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Start the week on the most recent Sunday",
	Run: withStore(func(cmd *cobra.Command, args []string, a *app) {
		start, err := a.store.ResetWeekStart(cmd.Context())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("📅 Week now runs %s\n", formatRange(period.WeekRange(start)))
	}),
}

func currentWeek(state *models.State, ref time.Time) period.Range {
	anchor, ok := state.WeekAnchor(ref.Location())
	if !ok {
		anchor = period.StartOfWeek(ref)
	}
	return period.WeekRange(anchor)
}

// renderWeekTable lays out hours per job and day, skipping jobs with no hours
func renderWeekTable(state *models.State, week period.Range) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Week of %s\n\n", formatRange(week))

	days := week.Days()
	dayTotals := make([]float64, days)
	var grand float64
	var rows []string

	for _, job := range state.Jobs {
		hours := period.DailyHours(state.Sessions, job.ID, week)
		var total float64
		for _, h := range hours {
			total += h
		}
		if total == 0 {
			continue
		}

		row := fmt.Sprintf("%-20s", truncate(job.Name, 20))
		for i, h := range hours {
			row += fmt.Sprintf(" %5s", hoursCell(h))
			dayTotals[i] += h
		}
		row += fmt.Sprintf(" %7s", period.FormatHours(total))
		rows = append(rows, row)
		grand += total
	}

	if len(rows) == 0 {
		b.WriteString("No time tracked this week.\n")
		return b.String()
	}

	header := fmt.Sprintf("%-20s", "Job")
	for i := 0; i < days; i++ {
		header += fmt.Sprintf(" %5s", week.Start.AddDate(0, 0, i).Format("Mon"))
	}
	header += fmt.Sprintf(" %7s", "Total")

	b.WriteString(header + "\n")
	b.WriteString(strings.Repeat("-", len(header)) + "\n")
	for _, row := range rows {
		b.WriteString(row + "\n")
	}
	b.WriteString(strings.Repeat("-", len(header)) + "\n")

	footer := fmt.Sprintf("%-20s", "Total")
	for _, h := range dayTotals {
		footer += fmt.Sprintf(" %5s", hoursCell(h))
	}
	footer += fmt.Sprintf(" %7s", period.FormatHours(grand))
	b.WriteString(footer + "\n")
	return b.String()
}

func hoursCell(h float64) string {
	if h == 0 {
		return "-"
	}
	return period.FormatHours(h)
}

func init() {
	weekCmd.AddCommand(weekSetCmd)
	weekCmd.AddCommand(weekResetCmd)
}
