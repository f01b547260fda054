// Package area aggregates classified pixel areas into per-class totals.
//
// Sums are carried as decimals so that partial aggregates merge exactly:
// sharding the input and merging the shard totals yields the same
// breakdown as a single pass, whatever the order.
package area

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Jade2451/LULC-ISA/core/types"
	"github.com/Jade2451/LULC-ISA/internal/errors"
)

// sqMetersPerSqKm converts summed pixel areas to square kilometers.
var sqMetersPerSqKm = decimal.NewFromInt(1_000_000)

// Sample is one classified pixel: its label and its area in square
// meters. Masked-out pixels never appear here; they are excluded before
// classification.
type Sample struct {
	Label   types.ClassLabel
	AreaSqM float64
}

// Breakdown maps each class that received at least one pixel to its
// total area in square kilometers. Classes with no contributing pixels
// are absent, never present with a zero value.
type Breakdown map[types.ClassLabel]decimal.Decimal

// Aggregate groups samples by class and sums their areas. An empty
// input yields an empty breakdown. A negative area or a label outside
// the enumeration is a defect in the upstream data generation, so the
// whole batch fails and nothing partial is returned.
func Aggregate(samples []Sample) (Breakdown, error) {
	for i, s := range samples {
		if !s.Label.Valid() {
			return nil, errors.Contract("sample %d: class label %d outside enumeration", i, int(s.Label))
		}
		if s.AreaSqM < 0 {
			return nil, errors.Contract("sample %d: negative pixel area %.3f m²", i, s.AreaSqM)
		}
	}

	b := make(Breakdown)
	for _, s := range samples {
		sum := b[s.Label]
		b[s.Label] = sum.Add(decimal.NewFromFloat(s.AreaSqM).Div(sqMetersPerSqKm))
	}
	return b, nil
}

// Merge sums partial breakdowns elementwise. Addition over decimals is
// associative and commutative, so merge order never changes the result.
func Merge(parts ...Breakdown) Breakdown {
	out := make(Breakdown)
	for _, p := range parts {
		for label, a := range p {
			sum := out[label]
			out[label] = sum.Add(a)
		}
	}
	return out
}

// SortedClasses returns the present labels in ascending order for
// deterministic reporting.
func (b Breakdown) SortedClasses() []types.ClassLabel {
	labels := make([]types.ClassLabel, 0, len(b))
	for label := range b {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })
	return labels
}

// TotalSqKm returns the summed area over all classes.
func (b Breakdown) TotalSqKm() decimal.Decimal {
	var total decimal.Decimal
	for _, a := range b {
		total = total.Add(a)
	}
	return total
}

// SqKm returns the area for one class as a float64, 0 if absent.
func (b Breakdown) SqKm(label types.ClassLabel) float64 {
	f, _ := b[label].Float64()
	return f
}
