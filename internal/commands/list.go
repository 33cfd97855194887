package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/timesheet/internal/models"
	"github.com/balkashynov/timesheet/internal/period"
)

// jobSummaryJSON is one job of `ls --json`
type jobSummaryJSON struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Rate       float64 `json:"rate"`
	RangeMode  string  `json:"rangeMode"`
	RangeStart string  `json:"rangeStart"`
	RangeEnd   string  `json:"rangeEnd"`
	Sessions   int     `json:"sessions"`
	Hours      float64 `json:"hours"`
	Earnings   float64 `json:"earnings"`
	PunchedIn  bool    `json:"punchedIn"`
}

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list", "jobs"},
	Short:   "List jobs with their current totals",
	Long:    "List every job with the hours, sessions and earnings of its current pay period or week",
	Run: withStore(func(cmd *cobra.Command, args []string, a *app) {
		state, err := a.store.Load(cmd.Context())
		if err != nil {
			fmt.Printf("Error fetching jobs: %v\n", err)
			return
		}

		now := a.store.Now()
		summaries := make([]period.Summary, 0, len(state.Jobs))
		for _, job := range state.Jobs {
			summary, err := period.Summarize(job, state, now)
			if err != nil {
				fmt.Printf("Error: %s: %v\n", job.Name, err)
				continue
			}
			summaries = append(summaries, summary)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			if err := printSummariesJSON(summaries); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
			return
		}

		if len(summaries) == 0 {
			fmt.Println("No jobs yet. Use 'timesheet job add \"name\" --rate 18' to add your first job.")
			return
		}

		header := fmt.Sprintf("%-8s %-20s %9s %-29s %8s %8s %12s  %s", "ID", "JOB", "RATE", "RANGE", "SESSIONS", "HOURS", "EARNINGS", "STATUS")
		fmt.Println(header)
		fmt.Println(strings.Repeat("-", len(header)))
		for _, summary := range summaries {
			fmt.Println(formatJobRow(summary, state, now))
		}
	}),
}

var sessionsCmd = &cobra.Command{
	Use:   "sessions [job]",
	Short: "List recent sessions",
	Long: `List the most recent sessions, newest first. The number shown defaults to
TIMESHEET_RECENT_LIMIT and can be changed with --limit.`,
	Args: cobra.MaximumNArgs(1),
	Run: withStore(func(cmd *cobra.Command, args []string, a *app) {
		ctx := cmd.Context()
		state, err := a.store.Load(ctx)
		if err != nil {
			fmt.Printf("Error fetching sessions: %v\n", err)
			return
		}

		limit := a.cfg.RecentLimit
		if cmd.Flags().Changed("limit") {
			limit, _ = cmd.Flags().GetInt("limit")
		}

		recent := state.RecentSessions(0)
		if len(args) == 1 {
			job, _, err := a.store.Job(ctx, args[0])
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			recent = filterSessions(recent, job.ID)
		}
		if limit > 0 && len(recent) > limit {
			recent = recent[:limit]
		}

		if len(recent) == 0 {
			fmt.Println("No sessions found.")
			return
		}

		now := a.store.Now()
		names := jobNames(state)
		header := fmt.Sprintf("%-8s %-20s %-15s %-15s %8s", "ID", "JOB", "START", "END", "HOURS")
		fmt.Println(header)
		fmt.Println(strings.Repeat("-", len(header)))
		for _, session := range recent {
			fmt.Println(formatSessionRow(session, names[session.JobID], now))
		}
	}),
}

func filterSessions(sessions []models.Session, jobID string) []models.Session {
	var filtered []models.Session
	for _, session := range sessions {
		if session.JobID == jobID {
			filtered = append(filtered, session)
		}
	}
	return filtered
}

func printSummariesJSON(summaries []period.Summary) error {
	out := make([]jobSummaryJSON, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, jobSummaryJSON{
			ID:         s.Job.ID,
			Name:       s.Job.Name,
			Rate:       s.Job.Rate,
			RangeMode:  s.Job.RangeMode,
			RangeStart: s.Range.Start.Format(models.DateLayout),
			RangeEnd:   s.Range.End.Format(models.DateLayout),
			Sessions:   s.Totals.SessionCount,
			Hours:      s.Totals.TotalHours,
			Earnings:   s.Earnings,
			PunchedIn:  s.Job.IsPunchedIn(),
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func init() {
	listCmd.Flags().Bool("json", false, "JSON output")
	sessionsCmd.Flags().IntP("limit", "n", 0, "Number of sessions to show (0 for all)")
}
