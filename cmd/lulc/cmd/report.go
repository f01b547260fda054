// Package cmd - report and runs commands
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jade2451/LULC-ISA/adapters/storage"
	"github.com/Jade2451/LULC-ISA/core/accuracy"
	"github.com/Jade2451/LULC-ISA/core/report"
	"github.com/Jade2451/LULC-ISA/internal/config"
)

// reportCmd re-renders a stored run
var reportCmd = &cobra.Command{
	Use:   "report <run-id>",
	Short: "Re-render the report for a stored run",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

// runsCmd lists stored runs
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List stored classification runs",
	Args:  cobra.NoArgs,
	RunE:  runRuns,
}

var runsLimit int

func init() {
	reportCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "report format (text, json, html)")
	reportCmd.Flags().StringVarP(&outputPath, "out", "o", "", "write the report to a file instead of stdout")
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "maximum number of runs to list")
}

func openStore() (*storage.Store, error) {
	return storage.Open(config.Get().Storage.DatabasePath)
}

func runReport(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.GetRun(args[0])
	if err != nil {
		return err
	}

	s := &report.Summary{
		RunID:        rec.ID,
		JobName:      rec.JobName,
		StartedAt:    rec.StartedAt,
		Duration:     rec.Duration,
		SceneCount:   rec.SceneCount,
		TotalPixels:  rec.TotalPixels,
		UsablePixels: rec.UsablePixels,
		Breakdown:    rec.Breakdown,
	}
	// Per-class accuracy is not persisted; show the stored headline
	// numbers when present.
	if rec.Accuracy > 0 || rec.Kappa > 0 {
		s.Accuracy = &accuracy.Report{Overall: rec.Accuracy, Kappa: rec.Kappa}
	}
	return render(s)
}

func runRuns(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.ListRuns(runsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No stored runs.")
		return nil
	}

	fmt.Printf("%-36s %-20s %-20s %7s %9s %7s\n",
		"Run", "Job", "Started", "Scenes", "Accuracy", "Kappa")
	for _, r := range runs {
		fmt.Printf("%-36s %-20s %-20s %7d %9.4f %7.4f\n",
			r.ID, r.JobName, r.StartedAt.Format("2006-01-02 15:04:05"),
			r.SceneCount, r.Accuracy, r.Kappa)
	}
	return nil
}
