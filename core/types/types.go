// Package types holds the domain vocabulary shared by every layer:
// class labels, the area of interest, the QA band layout and the fixed
// rendering palette.
package types

import (
	"fmt"
	"math"
	"time"

	"github.com/Jade2451/LULC-ISA/internal/errors"
)

// ClassLabel is the land-cover class assigned to a pixel.
type ClassLabel int

const (
	ClassWater ClassLabel = iota
	ClassVegetation
	ClassBuiltUp
	ClassBarren

	// NumClasses is the size of the fixed class enumeration.
	NumClasses = 4
)

// Valid reports whether the label is inside the fixed enumeration.
func (c ClassLabel) Valid() bool {
	return c >= ClassWater && c < NumClasses
}

// String returns the display name of the class.
func (c ClassLabel) String() string {
	switch c {
	case ClassWater:
		return "Water"
	case ClassVegetation:
		return "Vegetation"
	case ClassBuiltUp:
		return "Built-up"
	case ClassBarren:
		return "Barren"
	default:
		return fmt.Sprintf("ClassLabel(%d)", int(c))
	}
}

// Color returns the fixed palette color for the class as a hex string.
func (c ClassLabel) Color() string {
	switch c {
	case ClassWater:
		return "#1f78d1" // blue
	case ClassVegetation:
		return "#33a02c" // green
	case ClassBuiltUp:
		return "#9a9a9a" // gray
	case ClassBarren:
		return "#8c5a2b" // brown
	default:
		return "#000000"
	}
}

// AllClasses returns the labels in ascending order.
func AllClasses() []ClassLabel {
	return []ClassLabel{ClassWater, ClassVegetation, ClassBuiltUp, ClassBarren}
}

// ParseClassLabel converts a stored integer into a ClassLabel.
func ParseClassLabel(v int) (ClassLabel, error) {
	c := ClassLabel(v)
	if !c.Valid() {
		return 0, errors.Inputf("class label out of range: %d", v)
	}
	return c, nil
}

// QA band bit layout of the source sensor. Only these two bits are
// ever inspected.
const (
	// QACloudBit flags an opaque cloud.
	QACloudBit = 10

	// QACirrusBit flags a cirrus cloud.
	QACirrusBit = 11
)

// ReflectanceScale is the divisor converting scaled integer band values
// into reflectance fractions.
const ReflectanceScale = 10000.0

const (
	// ExportScaleMeters is the fixed export resolution.
	ExportScaleMeters = 10

	// ExportMaxPixels bounds export compute cost. Passed through to the
	// engine, never enforced locally.
	ExportMaxPixels = 1e13
)

// RawReflectance holds scaled integer band values as delivered by the
// sensor, keyed by band name.
type RawReflectance map[string]int32

// Reflectance holds normalized reflectance fractions in [0,1], keyed by
// band name.
type Reflectance map[string]float64

// AOI is the rectangular area of interest in decimal degrees.
type AOI struct {
	West  float64 `json:"west"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	North float64 `json:"north"`
}

// Validate checks the rectangle is well-formed and inside the globe.
func (a AOI) Validate() error {
	if a.West < -180 || a.East > 180 || a.West >= a.East {
		return errors.Inputf("invalid AOI longitudes: west=%.6f east=%.6f", a.West, a.East)
	}
	if a.South < -90 || a.North > 90 || a.South >= a.North {
		return errors.Inputf("invalid AOI latitudes: south=%.6f north=%.6f", a.South, a.North)
	}
	return nil
}

const kmPerDegree = 111.32

// AreaSqKm returns the nominal rectangle area in square kilometers using
// an equirectangular approximation. Good enough for the sanity bound on
// aggregated class areas, not for surveying.
func (a AOI) AreaSqKm() float64 {
	midLat := (a.South + a.North) / 2 * math.Pi / 180
	w := (a.East - a.West) * kmPerDegree * math.Cos(midLat)
	h := (a.North - a.South) * kmPerDegree
	return math.Abs(w * h)
}

// DateRange is a closed calendar interval.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ParseDateRange parses two ISO 8601 dates into a DateRange.
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := time.Parse("2006-01-02", start)
	if err != nil {
		return DateRange{}, errors.Wrapf(errors.TypeInput, err, "invalid start date %q", start)
	}
	e, err := time.Parse("2006-01-02", end)
	if err != nil {
		return DateRange{}, errors.Wrapf(errors.TypeInput, err, "invalid end date %q", end)
	}
	d := DateRange{Start: s, End: e}
	return d, d.Validate()
}

// Validate checks the interval ordering.
func (d DateRange) Validate() error {
	if d.End.Before(d.Start) {
		return errors.Inputf("date range ends before it starts: %s > %s",
			d.Start.Format("2006-01-02"), d.End.Format("2006-01-02"))
	}
	return nil
}
