// Package pipeline orchestrates a classification run end to end:
// validate the job, select imagery, mask clouds locally, then delegate
// compositing, training and inference to the compute engine and
// aggregate the classified pixels that come back.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Jade2451/LULC-ISA/adapters/compute"
	"github.com/Jade2451/LULC-ISA/core/accuracy"
	"github.com/Jade2451/LULC-ISA/core/area"
	"github.com/Jade2451/LULC-ISA/core/mask"
	"github.com/Jade2451/LULC-ISA/core/types"
	"github.com/Jade2451/LULC-ISA/internal/errors"
	"github.com/Jade2451/LULC-ISA/internal/logging"
)

// Options tune one run.
type Options struct {
	// Export requests a palette raster export after classification.
	Export bool
}

// Result is the outcome of one run.
type Result struct {
	RunID      string
	Job        *types.Job
	StartedAt  time.Time
	Duration   time.Duration
	SceneCount int
	MaskStats  mask.Stats
	Breakdown  area.Breakdown
	Accuracy   *accuracy.Report

	// ExportTask is the engine-side export task ID, empty if no export
	// was requested.
	ExportTask string
}

// Runner drives runs against one compute engine.
type Runner struct {
	engine compute.Engine
}

// NewRunner creates a Runner.
func NewRunner(engine compute.Engine) *Runner {
	return &Runner{engine: engine}
}

// Run executes the full pipeline for one job.
//
// Degenerate inputs stay well-behaved: zero matching scenes or zero
// classified pixels produce an empty breakdown, not an error.
func (r *Runner) Run(ctx context.Context, j *types.Job, opts Options) (*Result, error) {
	if err := j.Validate(); err != nil {
		return nil, err
	}

	result := &Result{
		RunID:     uuid.NewString(),
		Job:       j,
		StartedAt: time.Now(),
		Breakdown: make(area.Breakdown),
	}
	log := logging.With(zap.String("run_id", result.RunID), zap.String("job", j.Name))

	scenes, err := r.engine.FilterScenes(ctx, j.AOI, j.Dates, j.MaxCloudPercent)
	if err != nil {
		return nil, err
	}
	result.SceneCount = scenes.SceneCount
	log.Info("scenes selected",
		zap.Int("count", scenes.SceneCount),
		zap.Int64("pixels", scenes.PixelCount))

	if scenes.SceneCount == 0 {
		log.Warn("no imagery matched the filter; returning empty breakdown")
		result.Duration = time.Since(result.StartedAt)
		return result, nil
	}

	pixelMask, err := r.buildMask(ctx, scenes, &result.MaskStats)
	if err != nil {
		return nil, err
	}
	log.Info("cloud mask evaluated",
		zap.Int("total", result.MaskStats.Total),
		zap.Int("usable", result.MaskStats.Usable))

	composite, err := r.engine.Composite(ctx, scenes, pixelMask)
	if err != nil {
		return nil, err
	}

	model, err := r.engine.Train(ctx, composite, j.Classes)
	if err != nil {
		return nil, err
	}

	classification, err := r.engine.Classify(ctx, composite, model)
	if err != nil {
		return nil, err
	}

	result.Breakdown, err = r.aggregate(ctx, classification)
	if err != nil {
		return nil, err
	}
	r.checkAreaBound(log, j, result.Breakdown)

	if len(classification.Confusion) > 0 {
		matrix, err := accuracy.NewConfusionMatrix(classification.Confusion)
		if err != nil {
			return nil, err
		}
		result.Accuracy = matrix.Summarize()
	}

	if opts.Export {
		taskID, err := r.engine.ExportClassification(ctx, classification,
			types.ExportScaleMeters, types.ExportMaxPixels)
		if err != nil {
			return nil, err
		}
		result.ExportTask = taskID
		log.Info("export requested", zap.String("task", taskID))
	}

	result.Duration = time.Since(result.StartedAt)
	return result, nil
}

// buildMask streams QA pages and evaluates the cloud mask locally.
func (r *Runner) buildMask(ctx context.Context, scenes *compute.SceneSet, stats *mask.Stats) ([]bool, error) {
	var pixelMask []bool
	cursor := ""
	for {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.TypeCompute, "run canceled", err)
		}
		page, err := r.engine.FetchQA(ctx, scenes, cursor)
		if err != nil {
			return nil, err
		}
		decisions := mask.EvaluateBatch(page.Values)
		stats.Add(decisions)
		pixelMask = append(pixelMask, decisions...)
		if page.Next == "" {
			return pixelMask, nil
		}
		cursor = page.Next
	}
}

// aggregate streams classified pixels, aggregating each page as a shard
// and merging the shard totals. Merge order does not affect the result.
func (r *Runner) aggregate(ctx context.Context, c *compute.Classification) (area.Breakdown, error) {
	total := make(area.Breakdown)
	cursor := ""
	for {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.TypeCompute, "run canceled", err)
		}
		page, err := r.engine.FetchClassified(ctx, c, cursor)
		if err != nil {
			return nil, err
		}
		samples := make([]area.Sample, len(page.Pixels))
		for i, p := range page.Pixels {
			samples[i] = area.Sample{Label: types.ClassLabel(p.Label), AreaSqM: p.AreaSqM}
		}
		shard, err := area.Aggregate(samples)
		if err != nil {
			return nil, err
		}
		total = area.Merge(total, shard)
		if page.Next == "" {
			return total, nil
		}
		cursor = page.Next
	}
}

// checkAreaBound logs when the summed class areas exceed the nominal
// AOI rectangle. A sanity signal only, never fatal.
func (r *Runner) checkAreaBound(log *zap.Logger, j *types.Job, b area.Breakdown) {
	total, _ := b.TotalSqKm().Float64()
	if bound := j.AOI.AreaSqKm(); total > bound {
		log.Warn("classified area exceeds nominal AOI area",
			zap.Float64("total_sqkm", total),
			zap.Float64("aoi_sqkm", bound))
	}
}
