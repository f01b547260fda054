// Package cmd - classify command
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Jade2451/LULC-ISA/adapters/compute/httpengine"
	"github.com/Jade2451/LULC-ISA/adapters/job"
	"github.com/Jade2451/LULC-ISA/adapters/storage"
	"github.com/Jade2451/LULC-ISA/core/pipeline"
	"github.com/Jade2451/LULC-ISA/core/report"
	"github.com/Jade2451/LULC-ISA/internal/config"
	"github.com/Jade2451/LULC-ISA/internal/logging"
)

var (
	outputFormat string
	outputPath   string
	exportRaster bool
	dryRun       bool
)

// classifyCmd represents the classify command
var classifyCmd = &cobra.Command{
	Use:   "classify <job.hcl>",
	Short: "Run a classification job",
	Long: `Load a job definition, run the classification pipeline against the
compute service, and render the per-class area report.

Examples:
  lulc classify job.hcl
  lulc classify --format json job.hcl
  lulc classify --format html --out map.html job.hcl
  lulc classify --export job.hcl
  lulc classify --dry-run job.hcl`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "report format (text, json, html)")
	classifyCmd.Flags().StringVarP(&outputPath, "out", "o", "", "write the report to a file instead of stdout")
	classifyCmd.Flags().BoolVar(&exportRaster, "export", false, "request a palette raster export from the service")
	classifyCmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate the job file and exit")
}

func runClassify(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := config.Get()

	j, err := job.LoadFile(args[0])
	if err != nil {
		return err
	}
	if dryRun {
		fmt.Printf("Job %q is valid: %d classes, AOI ~%.1f km²\n",
			j.Name, len(j.Classes), j.AOI.AreaSqKm())
		return nil
	}

	engine := httpengine.New(cfg.Engine.BaseURL,
		httpengine.WithAPIKey(cfg.Engine.APIKey()),
		httpengine.WithTimeout(time.Duration(cfg.Engine.TimeoutSeconds)*time.Second),
	)

	result, err := pipeline.NewRunner(engine).Run(ctx, j, pipeline.Options{Export: exportRaster})
	if err != nil {
		return err
	}

	if cfg.Storage.Enabled {
		if err := saveRun(cfg, result); err != nil {
			// Persistence failure must not discard a finished run.
			logging.Warn("run not saved to history", zap.Error(err))
		}
	}

	return render(resultSummary(result))
}

func resultSummary(r *pipeline.Result) *report.Summary {
	return &report.Summary{
		RunID:        r.RunID,
		JobName:      r.Job.Name,
		StartedAt:    r.StartedAt,
		Duration:     r.Duration,
		SceneCount:   r.SceneCount,
		TotalPixels:  r.MaskStats.Total,
		UsablePixels: r.MaskStats.Usable,
		Breakdown:    r.Breakdown,
		Accuracy:     r.Accuracy,
		ExportTask:   r.ExportTask,
	}
}

func saveRun(cfg *config.Config, r *pipeline.Result) error {
	store, err := storage.Open(cfg.Storage.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	rec := &storage.RunRecord{
		ID:           r.RunID,
		JobName:      r.Job.Name,
		StartedAt:    r.StartedAt,
		Duration:     r.Duration,
		SceneCount:   r.SceneCount,
		TotalPixels:  r.MaskStats.Total,
		UsablePixels: r.MaskStats.Usable,
		Breakdown:    r.Breakdown,
	}
	if r.Accuracy != nil {
		rec.Accuracy = r.Accuracy.Overall
		rec.Kappa = r.Accuracy.Kappa
	}
	return store.SaveRun(rec)
}

func render(s *report.Summary) error {
	cfg := config.Get()
	format := outputFormat
	if format == "" {
		format = cfg.Output.DefaultFormat
	}
	if !cfg.Output.ShowAccuracy {
		s.Accuracy = nil
	}

	formatter, err := report.New(report.Format(format))
	if err != nil {
		return err
	}

	w := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return formatter.Render(w, s)
}
