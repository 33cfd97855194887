package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/timesheet/internal/db"
	"github.com/balkashynov/timesheet/internal/models"
	"github.com/balkashynov/timesheet/internal/parser"
)

var jobCmd = &cobra.Command{
	Use:   "job",
	Short: "Manage jobs",
	Long: `Add, remove and configure jobs. A job can be referenced by its name,
its id, or any unique id prefix of at least four characters.`,
}

var jobAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a job",
	Long: `Add a job. The first pay period starts today and lasts 14 days unless
--start or --length say otherwise.

Examples:
  timesheet job add "Corner Cafe" --rate 18.50
  timesheet job add Bakery --rate 21 --start 2024-01-01 --length 7
  timesheet job add "Weekend Bar" --weekly`,
	Args: cobra.MinimumNArgs(1),
	Run: withStore(func(cmd *cobra.Command, args []string, a *app) {
		ctx := cmd.Context()
		req := db.CreateJobRequest{Name: strings.Join(args, " ")}

		rateStr, _ := cmd.Flags().GetString("rate")
		rate, err := parser.ParseRate(rateStr)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		req.Rate = rate

		if weekly, _ := cmd.Flags().GetBool("weekly"); weekly {
			req.RangeMode = models.RangeModeWeekly
		}

		update, err := periodUpdateFromFlags(cmd, a)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		job, err := a.store.CreateJob(ctx, req)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if update.Start != nil || update.Length != nil {
			if job, err = a.store.SetPayPeriod(ctx, job.ID, update); err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
		}

		fmt.Printf("✅ Job \"%s\" added - ID: %s\n", job.Name, shortID(job.ID))
		fmt.Printf("Rate: $%.2f/h · Period: %s\n", job.Rate, describePeriod(*job))
	}),
}

var jobRemoveCmd = &cobra.Command{
	Use:     "rm <job>",
	Aliases: []string{"remove"},
	Short:   "Remove a job and all of its sessions",
	Args:    cobra.ExactArgs(1),
	Run: withStore(func(cmd *cobra.Command, args []string, a *app) {
		job, removed, err := a.store.RemoveJob(cmd.Context(), args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("🗑️  Removed job \"%s\" and %d session(s)\n", job.Name, removed)
	}),
}

var jobRateCmd = &cobra.Command{
	Use:   "rate <job> <rate>",
	Short: "Set a job's hourly rate",
	Args:  cobra.ExactArgs(2),
	Run: withStore(func(cmd *cobra.Command, args []string, a *app) {
		rate, err := parser.ParseRate(args[1])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		job, err := a.store.SetRate(cmd.Context(), args[0], rate)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("💵 %s now pays $%.2f/h\n", job.Name, job.Rate)
	}),
}

var jobPeriodCmd = &cobra.Command{
	Use:   "period <job>",
	Short: "Show or change a job's pay period",
	Long: `Show or change the anchor date and length of a job's pay period.

Examples:
  timesheet job period cafe
  timesheet job period cafe --start 2024-01-01 --length 14`,
	Args: cobra.ExactArgs(1),
	Run: withStore(func(cmd *cobra.Command, args []string, a *app) {
		ctx := cmd.Context()
		update, err := periodUpdateFromFlags(cmd, a)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		var job *models.Job
		if update.Start == nil && update.Length == nil {
			job, _, err = a.store.Job(ctx, args[0])
		} else {
			job, err = a.store.SetPayPeriod(ctx, args[0], update)
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("📅 %s: paid %s\n", job.Name, describePeriod(*job))
	}),
}

var jobModeCmd = &cobra.Command{
	Use:   "mode <job> <pay|weekly>",
	Short: "Choose whether totals follow the pay period or the week",
	Args:  cobra.ExactArgs(2),
	Run: withStore(func(cmd *cobra.Command, args []string, a *app) {
		mode, err := parseRangeMode(args[1])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		job, err := a.store.SetRangeMode(cmd.Context(), args[0], mode)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("📅 %s: totals now cover %s\n", job.Name, describePeriod(*job))
	}),
}

// periodUpdateFromFlags reads the --start and --length flags
func periodUpdateFromFlags(cmd *cobra.Command, a *app) (db.PayPeriodUpdate, error) {
	var update db.PayPeriodUpdate
	flags := cmd.Flags()

	if flags.Changed("start") {
		value, _ := flags.GetString("start")
		start, err := parser.ParseDate(value, a.store.Now())
		if err != nil {
			return update, err
		}
		update.Start = &start
	}
	if flags.Changed("length") {
		value, _ := flags.GetString("length")
		length, err := parser.ParsePeriodLength(value)
		if err != nil {
			return update, err
		}
		update.Length = &length
	}
	return update, nil
}

func init() {
	jobAddCmd.Flags().StringP("rate", "r", "", "Hourly rate, e.g. 18.50")
	jobAddCmd.Flags().Bool("weekly", false, "Total by week instead of pay period")
	jobAddCmd.Flags().String("start", "", "First day of a pay period (yyyy-mm-dd or dd/mm/yyyy)")
	jobAddCmd.Flags().String("length", "", "Pay period length in days (default 14)")

	jobPeriodCmd.Flags().String("start", "", "First day of a pay period (yyyy-mm-dd or dd/mm/yyyy)")
	jobPeriodCmd.Flags().String("length", "", "Pay period length in days")

	jobCmd.AddCommand(jobAddCmd)
	jobCmd.AddCommand(jobRemoveCmd)
	jobCmd.AddCommand(jobRateCmd)
	jobCmd.AddCommand(jobPeriodCmd)
	jobCmd.AddCommand(jobModeCmd)
}
