package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/concurrentcube/internal/storage"
)

var runsCmd = &cobra.Command{
	Use:   "runs [run-id]",
	Short: "List stored stress runs",
	Long: `Without arguments, list stored stress runs, newest first.
With a run ID, show that run's full report.
With --prune N, delete all but the newest N runs.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRuns,
}

var (
	runsLimit int
	runsPrune int
)

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "l", 20, "Maximum number of runs to list (0: all)")
	runsCmd.Flags().IntVar(&runsPrune, "prune", -1, "Delete all but the newest N runs")
}

func runRuns(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := storage.NewRunRepository(db)

	if runsPrune >= 0 {
		removed, err := repo.Prune(runsPrune)
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d runs.\n", removed)
		return nil
	}

	if len(args) == 1 {
		run, err := repo.Get(args[0])
		if err != nil {
			return err
		}
		if run == nil {
			return fmt.Errorf("run not found: %s", args[0])
		}
		fmt.Println(statusStyle.Render("Run " + run.RunID + " started " + run.Report.StartedAt.Local().Format(time.RFC3339)))
		printReport(run.Report)
		return nil
	}

	runs, err := repo.List(runsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No stored runs.")
		return nil
	}

	fmt.Printf("%-36s  %-19s  %4s  %7s  %9s  %9s  %s\n", "RUN", "STARTED", "N", "WORKERS", "ROTATIONS", "CANCELLED", "RESULT")
	for _, run := range runs {
		r := run.Report
		result := okStyle.Render("ok")
		if !r.OK() {
			result = errorStyle.Render("failed")
		}
		fmt.Printf("%-36s  %-19s  %4d  %7d  %9d  %9d  %s\n",
			run.RunID,
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Size, r.Workload.Workers, r.Rotations, r.Cancelled, result)
	}
	return nil
}
