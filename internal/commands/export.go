package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/balkashynov/timesheet/internal/export"
	"github.com/balkashynov/timesheet/internal/logging"
	"github.com/balkashynov/timesheet/internal/period"
)

var exportCmd = &cobra.Command{
	Use:   "export <job>",
	Short: "Export a job's current totals as CSV",
	Long: `Export the current pay period or week of a job as a CSV file with a header
row and one row of totals. The file is written to TIMESHEET_EXPORT_DIR as
timesheet_<job>_<range start>.csv unless --out or --stdout is given.

Example output:
  "Job","Range Start","Range End","Sessions","Hours","Rate","Earnings"
  "Corner Cafe","Jan 15, 2024","Jan 28, 2024","2","3.75","20.00","75.00"`,
	Args: cobra.ExactArgs(1),
	Run: withStore(func(cmd *cobra.Command, args []string, a *app) {
		ctx := cmd.Context()
		log := logging.FromContext(ctx).With(logging.FieldComponent, logging.ComponentExport)

		job, state, err := a.store.Job(ctx, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		summary, err := period.Summarize(*job, state, a.store.Now())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		content := export.BuildCSV(summary.Job, summary.Range, summary.Totals)

		if toStdout, _ := cmd.Flags().GetBool("stdout"); toStdout {
			fmt.Println(content)
			return
		}

		path, _ := cmd.Flags().GetString("out")
		if path == "" {
			path = filepath.Join(a.cfg.ExportDir, export.Filename(summary.Job, summary.Range))
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			fmt.Printf("Error: failed to write export: %v\n", err)
			return
		}

		log.Info("exported", logging.FieldJobID, job.ID, logging.FieldPath, path)
		fmt.Printf("📄 Exported %s (%s) to %s\n", job.Name, formatRange(summary.Range), path)
	}),
}

func init() {
	exportCmd.Flags().StringP("out", "o", "", "Write the CSV to this path")
	exportCmd.Flags().Bool("stdout", false, "Print the CSV instead of writing a file")
}
