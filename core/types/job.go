// Package types - classification job definition
package types

import (
	"github.com/Jade2451/LULC-ISA/internal/errors"
)

// Polygon is a single training geometry, a closed ring of lon/lat
// vertices. The ring is not required to repeat its first vertex.
type Polygon struct {
	Ring [][2]float64 `json:"ring"`
}

// Validate checks the ring has enough vertices to enclose area.
func (p Polygon) Validate() error {
	if len(p.Ring) < 3 {
		return errors.Inputf("polygon ring needs at least 3 vertices, got %d", len(p.Ring))
	}
	return nil
}

// TrainingClass groups the user-drawn polygons for one land-cover class.
type TrainingClass struct {
	// Name is the block label from the job file (informational).
	Name string `json:"name"`

	// Label is the class the polygons train.
	Label ClassLabel `json:"label"`

	// Polygons are the labeled training geometries.
	Polygons []Polygon `json:"polygons"`
}

// Job is a complete classification job: where, when, how cloudy, and
// what the classifier trains on.
type Job struct {
	// Name identifies the job in reports and run history.
	Name string `json:"name"`

	// AOI is the region to classify.
	AOI AOI `json:"aoi"`

	// Dates is the imagery acquisition window.
	Dates DateRange `json:"dates"`

	// MaxCloudPercent filters scenes by their metadata cloud cover.
	MaxCloudPercent float64 `json:"max_cloud_percent"`

	// Classes holds the training polygons, one entry per class.
	Classes []TrainingClass `json:"classes"`
}

// Validate checks the full input contract: sane AOI and dates, cloud
// threshold in range, and at least one polygon for every class. The
// classifier cannot train a class with no samples, so a missing class
// fails here rather than deep inside the engine.
func (j *Job) Validate() error {
	if j.Name == "" {
		return errors.Input("job has no name")
	}
	if err := j.AOI.Validate(); err != nil {
		return err
	}
	if err := j.Dates.Validate(); err != nil {
		return err
	}
	if j.MaxCloudPercent < 0 || j.MaxCloudPercent > 100 {
		return errors.Inputf("max_cloud_percent must be in [0,100], got %.2f", j.MaxCloudPercent)
	}

	seen := make(map[ClassLabel]bool, NumClasses)
	for _, tc := range j.Classes {
		if !tc.Label.Valid() {
			return errors.Inputf("class %q has invalid label %d", tc.Name, int(tc.Label))
		}
		if seen[tc.Label] {
			return errors.Inputf("class label %d declared twice", int(tc.Label))
		}
		seen[tc.Label] = true
		if len(tc.Polygons) == 0 {
			return errors.Inputf("class %q (%s) has no training polygons", tc.Name, tc.Label)
		}
		for i, p := range tc.Polygons {
			if err := p.Validate(); err != nil {
				return errors.Wrapf(errors.TypeInput, err, "class %q polygon %d", tc.Name, i)
			}
		}
	}
	for _, c := range AllClasses() {
		if !seen[c] {
			return errors.Inputf("no training polygons for class %s (label %d)", c, int(c))
		}
	}
	return nil
}

// Class returns the training class with the given label.
func (j *Job) Class(label ClassLabel) (TrainingClass, bool) {
	for _, tc := range j.Classes {
		if tc.Label == label {
			return tc, true
		}
	}
	return TrainingClass{}, false
}
