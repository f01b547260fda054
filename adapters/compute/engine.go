// Package compute defines the contract with the remote geospatial
// compute service. Imagery acquisition, compositing, index computation,
// classifier training and inference all happen on the service side;
// this package only names the operations and the data crossing the
// boundary.
package compute

import (
	"context"

	"github.com/Jade2451/LULC-ISA/core/types"
)

// SceneSet references the imagery selected by metadata filtering.
type SceneSet struct {
	// ID is the service-side handle for the selection.
	ID string `json:"id"`

	// SceneCount is how many scenes matched.
	SceneCount int `json:"scene_count"`

	// PixelCount is the total QA pixels the set will stream.
	PixelCount int64 `json:"pixel_count"`
}

// QAPage is one page of per-pixel QA words.
type QAPage struct {
	Values []uint32 `json:"values"`

	// Next is the cursor for the following page, empty when done.
	Next string `json:"next"`
}

// CompositeRef references the masked median composite with its
// NDVI/NDWI bands, held on the service.
type CompositeRef struct {
	ID string `json:"id"`
}

// ModelRef references a trained classifier held on the service.
type ModelRef struct {
	ID string `json:"id"`
}

// Classification references a classified image and carries the
// held-out confusion counts from the service's 70/30 split.
type Classification struct {
	ID string `json:"id"`

	// Confusion holds held-out sample counts, rows = reference class,
	// columns = predicted class.
	Confusion [][]float64 `json:"confusion"`
}

// ClassifiedPixel is one classified pixel with its geodesic area.
type ClassifiedPixel struct {
	Label   int     `json:"label"`
	AreaSqM float64 `json:"area_sqm"`
}

// ClassifiedPage is one page of classified pixels.
type ClassifiedPage struct {
	Pixels []ClassifiedPixel `json:"pixels"`

	// Next is the cursor for the following page, empty when done.
	Next string `json:"next"`
}

// Engine is the remote geospatial compute service.
type Engine interface {
	// FilterScenes selects imagery for the AOI and window whose
	// metadata cloud cover is at or below maxCloudPercent.
	FilterScenes(ctx context.Context, aoi types.AOI, dates types.DateRange, maxCloudPercent float64) (*SceneSet, error)

	// FetchQA streams the per-pixel QA words of a scene set. Pass an
	// empty cursor for the first page.
	FetchQA(ctx context.Context, scenes *SceneSet, cursor string) (*QAPage, error)

	// Composite builds the masked median composite and its derived
	// index bands. The mask is the local cloud-mask decision per pixel,
	// in QA stream order.
	Composite(ctx context.Context, scenes *SceneSet, pixelMask []bool) (*CompositeRef, error)

	// Train samples the composite at the training polygons, splits the
	// samples, and trains the classifier.
	Train(ctx context.Context, composite *CompositeRef, classes []types.TrainingClass) (*ModelRef, error)

	// Classify runs inference over the composite and evaluates the
	// held-out samples.
	Classify(ctx context.Context, composite *CompositeRef, model *ModelRef) (*Classification, error)

	// FetchClassified streams (label, area) pairs for aggregation. Pass
	// an empty cursor for the first page.
	FetchClassified(ctx context.Context, c *Classification, cursor string) (*ClassifiedPage, error)

	// ExportClassification asks the service to render the classified
	// raster with the fixed palette at the given scale. maxPixels is a
	// pass-through compute-cost ceiling. Returns the export task ID.
	ExportClassification(ctx context.Context, c *Classification, scaleMeters int, maxPixels float64) (string, error)

	// Healthcheck verifies connectivity.
	Healthcheck(ctx context.Context) error
}
