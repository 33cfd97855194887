package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help [command]",
	Short: "Show comprehensive help for timesheet",
	Long:  `Display detailed help for all timesheet commands and flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			if target, _, err := rootCmd.Find(args); err == nil && target != rootCmd {
				target.Help()
				return
			}
		}
		showCustomHelp()
	},
}

func showCustomHelp() {
	fmt.Print(`
timesheet - punch clock for hourly jobs

COMMANDS:

  job add <name>          Add a job
    -r, --rate            Hourly rate, e.g. 18.50
    --weekly              Total by week instead of pay period
    --start               First day of a pay period (yyyy-mm-dd, dd/mm/yyyy)
    --length              Pay period length in days (default 14)
  job rm <job>            Remove a job and its sessions (punch out first)
  job rate <job> <rate>   Change the hourly rate
  job period <job>        Show or change the pay period (--start, --length)
  job mode <job> <mode>   pay | weekly

  punch <job>             Punch in or out
    --no-ui               Skip the running timer
  in <job>                Punch in (refused when already on the clock)
  out <job>               Punch out (refused when off the clock)
  status                  Show jobs on the clock
    -w, --watch           Open the running timer

    Running timer:
      ↑/↓           Switch job
      s             Punch out of the selected job
      esc/q         Quit (keep running)

  ls                      Jobs with hours and earnings for the current range
    --json                JSON output
  sessions [job]          Recent sessions, newest first
    -n, --limit           How many to show
  edit <session>          Edit a session in a form
    --start, --end        New times (yyyy-mm-dd hh:mm, now, 2h ago)
    --job                 Move to another job
    --no-ui               Edit via command line

  week                    Hours of the current week by job and day
  week set <date>         Start the week on a given day
  week reset              Start the week on the most recent Sunday

  export <job>            Write the current totals as CSV
    -o, --out             Output path
    --stdout              Print instead of writing a file

  backup [file]           Write all data as JSON
  restore <file> --yes    Replace all data with a backup

  version                 Print version information
  help [command]          Show this help

GLOBAL FLAGS:
  --db                    Database file (default ~/.timesheet/timesheet.db)

ENVIRONMENT (also read from .env):
  TIMESHEET_DB_PATH, TIMESHEET_LOG_LEVEL, TIMESHEET_EXPORT_DIR,
  TIMESHEET_RECENT_LIMIT

Jobs and sessions can be referenced by name, id, or a unique id prefix.

`)
}
