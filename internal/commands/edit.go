package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/timesheet/internal/db"
	"github.com/balkashynov/timesheet/internal/parser"
	"github.com/balkashynov/timesheet/internal/period"
	"github.com/balkashynov/timesheet/internal/tui"
)

var editCmd = &cobra.Command{
	Use:   "edit <session>",
	Short: "Edit a session",
	Long: `Edit the start, end or job of a session.

Opens a form pre-populated with the current values. With --start, --end or
--job the session is changed directly, keeping any value not given. The end
must come after the start, and editing a running session punches it out.

Usage:
  timesheet edit 3f9a1c2e
  timesheet edit 3f9a --end "2024-01-20 17:30"
  timesheet edit 3f9a --job bakery --no-ui`,
	Args: cobra.ExactArgs(1),
	Run: withStore(func(cmd *cobra.Command, args []string, a *app) {
		ctx := cmd.Context()
		session, state, err := a.store.Session(ctx, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		now := a.store.Now()
		req := db.EditSessionRequest{
			SessionID: session.ID,
			Start:     session.Start.In(now.Location()).Format(parser.TimestampLayout),
			End:       now.Format(parser.TimestampLayout),
		}
		if session.End != nil {
			req.End = session.End.In(now.Location()).Format(parser.TimestampLayout)
		}
		jobName := ""
		if job := state.FindJob(session.JobID); job != nil {
			jobName = job.Name
		}

		flags := cmd.Flags()
		noUI, _ := flags.GetBool("no-ui")
		direct := noUI || flags.Changed("start") || flags.Changed("end") || flags.Changed("job")
		if !direct {
			if err := tui.RunEditSessionTUI(ctx, a.store, req, jobName); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
			return
		}

		if flags.Changed("start") {
			req.Start, _ = flags.GetString("start")
		}
		if flags.Changed("end") {
			req.End, _ = flags.GetString("end")
		}
		if flags.Changed("job") {
			req.JobID, _ = flags.GetString("job")
		}

		edited, err := a.store.EditSession(ctx, req)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		loc := a.store.Now().Location()
		fmt.Printf("✅ Session %s updated: %s - %s (%s hours)\n",
			shortID(edited.ID),
			period.FormatDateTime(edited.Start.In(loc)),
			period.FormatDateTime(edited.End.In(loc)),
			period.FormatHours(edited.Hours()))
	}),
}

func init() {
	editCmd.Flags().String("start", "", "New start time (yyyy-mm-dd hh:mm, dd/mm/yyyy hh:mm, now, 2h ago)")
	editCmd.Flags().String("end", "", "New end time")
	editCmd.Flags().String("job", "", "Move the session to another job")
	editCmd.Flags().Bool("no-ui", false, "Edit via command line")
}
