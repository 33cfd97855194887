package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/timesheet/internal/db"
	"github.com/balkashynov/timesheet/internal/period"
	"github.com/balkashynov/timesheet/internal/tui"
)

var punchCmd = &cobra.Command{
	Use:   "punch <job>",
	Short: "Punch in or out of a job",
	Long: `Punch in if the job is off the clock, punch out if it is on. Punching in
opens the running timer by default, use --no-ui for a plain punch.

Examples:
  timesheet punch cafe          # Toggle and watch the timer
  timesheet punch cafe --no-ui  # Toggle only`,
	Args: cobra.ExactArgs(1),
	Run: withStore(func(cmd *cobra.Command, args []string, a *app) {
		result, err := a.store.TogglePunch(cmd.Context(), args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		showPunch(cmd, a, result)
	}),
}

var inCmd = &cobra.Command{
	Use:   "in <job>",
	Short: "Punch in to a job",
	Args:  cobra.ExactArgs(1),
	Run: withStore(func(cmd *cobra.Command, args []string, a *app) {
		result, err := a.store.PunchIn(cmd.Context(), args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		showPunch(cmd, a, result)
	}),
}

var outCmd = &cobra.Command{
	Use:   "out <job>",
	Short: "Punch out of a job",
	Args:  cobra.ExactArgs(1),
	Run: withStore(func(cmd *cobra.Command, args []string, a *app) {
		result, err := a.store.PunchOut(cmd.Context(), args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		showPunch(cmd, a, result)
	}),
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which jobs are on the clock",
	Long: `Show every job that is on the clock. Use --watch to open the running timer.`,
	Run: withStore(func(cmd *cobra.Command, args []string, a *app) {
		if watch, _ := cmd.Flags().GetBool("watch"); watch {
			if err := tui.RunTimerTUI(cmd.Context(), a.store, ""); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
			return
		}

		state, err := a.store.Load(cmd.Context())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		active := state.ActiveJobs()
		if len(active) == 0 {
			fmt.Println("Not on the clock")
			return
		}

		now := a.store.Now()
		for _, job := range active {
			session := state.FindSession(job.ActiveSessionID)
			if session == nil {
				continue
			}
			fmt.Printf("⏱️  On the clock: %s\n", job.Name)
			fmt.Printf("Started: %s (%s)\n", period.FormatDateTime(session.Start.In(now.Location())), period.FormatSince(session.Start, now))
			fmt.Printf("Elapsed time: %s\n", period.FormatElapsed(session.Start, now))
		}
	}),
}

// showPunch reports a punch. A punch in hands over to the running timer
// unless --no-ui is set.
func showPunch(cmd *cobra.Command, a *app, result *db.PunchResult) {
	if !result.PunchedIn {
		fmt.Printf("⏹️  Punched out of %s\n", result.Job.Name)
		if result.Session.End == nil {
			return
		}
		fmt.Printf("Session: %s · %s hours\n", period.FormatElapsed(result.Session.Start, *result.Session.End), period.FormatHours(result.Session.Hours()))
		return
	}

	noUI, _ := cmd.Flags().GetBool("no-ui")
	if noUI {
		fmt.Printf("⏱️  Punched in to %s\n", result.Job.Name)
		fmt.Printf("Started at: %s\n", result.Session.Start.In(a.store.Now().Location()).Format("15:04:05"))
		return
	}
	if err := tui.RunTimerTUI(cmd.Context(), a.store, result.Job.ID); err != nil {
		fmt.Printf("Error: %v\n", err)
	}
}

func init() {
	punchCmd.Flags().Bool("no-ui", false, "Punch without the interactive timer")
	inCmd.Flags().Bool("no-ui", false, "Punch in without the interactive timer")
	statusCmd.Flags().BoolP("watch", "w", false, "Open the running timer")
}
