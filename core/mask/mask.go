// Package mask implements the cloud-mask predicate over sensor QA bit
// fields and the mask-and-normalize transform applied before pixels
// enter compositing.
//
// A pixel is usable when neither the opaque-cloud bit nor the cirrus
// bit of its QA word is set. No other bits are inspected. The predicate
// is total: every integer is a valid QA word.
package mask

import (
	"github.com/Jade2451/LULC-ISA/core/types"
)

const (
	cloudMask  = 1 << types.QACloudBit
	cirrusMask = 1 << types.QACirrusBit
)

// Usable reports whether a pixel passes the cloud mask: true iff the
// opaque-cloud and cirrus bits are both clear.
func Usable(qa uint32) bool {
	return qa&cloudMask == 0 && qa&cirrusMask == 0
}

// EvaluateBatch applies Usable element-wise over a page of QA words.
func EvaluateBatch(qa []uint32) []bool {
	out := make([]bool, len(qa))
	for i, v := range qa {
		out[i] = Usable(v)
	}
	return out
}

// Stats counts mask decisions over one or more batches.
type Stats struct {
	Total  int `json:"total"`
	Usable int `json:"usable"`
}

// Add folds a batch of decisions into the stats.
func (s *Stats) Add(decisions []bool) {
	s.Total += len(decisions)
	for _, ok := range decisions {
		if ok {
			s.Usable++
		}
	}
}

// UsableFraction returns the retained share of pixels, 0 for empty stats.
func (s Stats) UsableFraction() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Usable) / float64(s.Total)
}

// Apply masks and normalizes one pixel. Excluded pixels are reported via
// ok=false with a nil vector, never as zeroed values: zero reflectance
// is a valid measurement and must stay distinguishable from "excluded".
// Usable pixels have every band divided by the sensor scale, yielding
// reflectance fractions.
func Apply(raw types.RawReflectance, usable bool) (types.Reflectance, bool) {
	if !usable {
		return nil, false
	}
	out := make(types.Reflectance, len(raw))
	for band, v := range raw {
		out[band] = float64(v) / types.ReflectanceScale
	}
	return out, true
}
