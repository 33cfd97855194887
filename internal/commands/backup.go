package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup [file]",
	Short: "Write all jobs and sessions as JSON",
	Long: `Write every job, session and the week start as one JSON document, to the
given file or to stdout. 'timesheet restore' reads it back.`,
	Args: cobra.MaximumNArgs(1),
	Run: withStore(func(cmd *cobra.Command, args []string, a *app) {
		data, err := a.store.Dump(cmd.Context())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if len(args) == 0 {
			fmt.Println(string(data))
			return
		}
		if err := os.WriteFile(args[0], data, 0600); err != nil {
			fmt.Printf("Error: failed to write backup: %v\n", err)
			return
		}
		fmt.Printf("💾 Backup written to %s\n", args[0])
	}),
}

var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Replace all data with a backup",
	Long: `Replace every job and session with the contents of a backup. A file that
does not parse or whose running sessions do not line up is refused and
nothing changes.`,
	Args: cobra.ExactArgs(1),
	Run: withStore(func(cmd *cobra.Command, args []string, a *app) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			fmt.Println("Restoring replaces all current jobs and sessions. Re-run with --yes to continue.")
			return
		}

		state, err := a.store.Import(cmd.Context(), data)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("♻️  Restored %d job(s) and %d session(s)\n", len(state.Jobs), len(state.Sessions))
	}),
}

func init() {
	restoreCmd.Flags().BoolP("yes", "y", false, "Confirm replacing the current data")
}
