// Package accuracy derives classification-accuracy metrics from the
// confusion counts the compute engine reports over its held-out samples.
package accuracy

import (
	"gonum.org/v1/gonum/mat"

	"github.com/Jade2451/LULC-ISA/core/types"
	"github.com/Jade2451/LULC-ISA/internal/errors"
)

// ConfusionMatrix holds held-out sample counts, rows = reference class,
// columns = predicted class.
type ConfusionMatrix struct {
	m *mat.Dense
}

// NewConfusionMatrix builds a matrix from raw counts. The counts must be
// square with one row per class and non-negative.
func NewConfusionMatrix(counts [][]float64) (*ConfusionMatrix, error) {
	if len(counts) != types.NumClasses {
		return nil, errors.Contract("confusion matrix has %d rows, want %d", len(counts), types.NumClasses)
	}
	data := make([]float64, 0, types.NumClasses*types.NumClasses)
	for i, row := range counts {
		if len(row) != types.NumClasses {
			return nil, errors.Contract("confusion matrix row %d has %d columns, want %d", i, len(row), types.NumClasses)
		}
		for j, v := range row {
			if v < 0 {
				return nil, errors.Contract("confusion matrix cell (%d,%d) is negative: %f", i, j, v)
			}
			data = append(data, v)
		}
	}
	return &ConfusionMatrix{m: mat.NewDense(types.NumClasses, types.NumClasses, data)}, nil
}

// Total returns the number of held-out samples.
func (c *ConfusionMatrix) Total() float64 {
	return mat.Sum(c.m)
}

// At returns the count of reference-class i predicted as class j.
func (c *ConfusionMatrix) At(i, j types.ClassLabel) float64 {
	return c.m.At(int(i), int(j))
}

// Overall returns the overall accuracy: trace over total. Zero samples
// yields 0.
func (c *ConfusionMatrix) Overall() float64 {
	total := c.Total()
	if total == 0 {
		return 0
	}
	return mat.Trace(c.m) / total
}

// Kappa returns Cohen's kappa coefficient: chance-corrected agreement
// between reference and predicted labels. Returns 0 when agreement by
// chance is already perfect.
func (c *ConfusionMatrix) Kappa() float64 {
	total := c.Total()
	if total == 0 {
		return 0
	}

	po := mat.Trace(c.m) / total

	var pe float64
	for k := 0; k < types.NumClasses; k++ {
		rowSum := mat.Sum(c.m.RowView(k))
		colSum := mat.Sum(c.m.ColView(k))
		pe += rowSum * colSum / (total * total)
	}
	if pe == 1 {
		return 0
	}
	return (po - pe) / (1 - pe)
}

// Producer returns the producer's accuracy for a class: correctly
// predicted reference samples over all reference samples of the class.
func (c *ConfusionMatrix) Producer(label types.ClassLabel) float64 {
	rowSum := mat.Sum(c.m.RowView(int(label)))
	if rowSum == 0 {
		return 0
	}
	return c.m.At(int(label), int(label)) / rowSum
}

// User returns the user's accuracy for a class: correctly predicted
// samples over all samples predicted as the class.
func (c *ConfusionMatrix) User(label types.ClassLabel) float64 {
	colSum := mat.Sum(c.m.ColView(int(label)))
	if colSum == 0 {
		return 0
	}
	return c.m.At(int(label), int(label)) / colSum
}

// ClassAccuracy is the per-class slice of a Report.
type ClassAccuracy struct {
	Label    types.ClassLabel `json:"label"`
	Producer float64          `json:"producer"`
	User     float64          `json:"user"`
}

// Report is the display-ready accuracy summary.
type Report struct {
	Samples float64         `json:"samples"`
	Overall float64         `json:"overall"`
	Kappa   float64         `json:"kappa"`
	Classes []ClassAccuracy `json:"classes"`
}

// Summarize derives a Report from the matrix.
func (c *ConfusionMatrix) Summarize() *Report {
	r := &Report{
		Samples: c.Total(),
		Overall: c.Overall(),
		Kappa:   c.Kappa(),
	}
	for _, label := range types.AllClasses() {
		r.Classes = append(r.Classes, ClassAccuracy{
			Label:    label,
			Producer: c.Producer(label),
			User:     c.User(label),
		})
	}
	return r
}
