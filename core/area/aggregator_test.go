package area

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jade2451/LULC-ISA/core/types"
	"github.com/Jade2451/LULC-ISA/internal/errors"
)

func TestAggregateEmpty(t *testing.T) {
	b, err := Aggregate(nil)
	require.NoError(t, err)
	assert.Empty(t, b)

	b, err = Aggregate([]Sample{})
	require.NoError(t, err)
	assert.Empty(t, b)
}

func TestAggregateSingle(t *testing.T) {
	b, err := Aggregate([]Sample{{Label: types.ClassWater, AreaSqM: 1_000_000}})
	require.NoError(t, err)
	require.Len(t, b, 1)
	assert.Equal(t, 1.0, b.SqKm(types.ClassWater))
}

func TestAggregateGroups(t *testing.T) {
	b, err := Aggregate([]Sample{
		{Label: types.ClassVegetation, AreaSqM: 500_000},
		{Label: types.ClassVegetation, AreaSqM: 500_000},
		{Label: types.ClassBuiltUp, AreaSqM: 2_000_000},
	})
	require.NoError(t, err)
	require.Len(t, b, 2)
	assert.Equal(t, 1.0, b.SqKm(types.ClassVegetation))
	assert.Equal(t, 2.0, b.SqKm(types.ClassBuiltUp))
}

// A class with no contributing pixels must be absent, not zero.
func TestAggregateLabelAbsence(t *testing.T) {
	b, err := Aggregate([]Sample{{Label: types.ClassBarren, AreaSqM: 100}})
	require.NoError(t, err)

	_, present := b[types.ClassWater]
	assert.False(t, present)
	assert.Equal(t, []types.ClassLabel{types.ClassBarren}, b.SortedClasses())
}

func TestAggregateContractViolations(t *testing.T) {
	_, err := Aggregate([]Sample{
		{Label: types.ClassWater, AreaSqM: 100},
		{Label: types.ClassLabel(7), AreaSqM: 100},
	})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeContract))

	_, err = Aggregate([]Sample{{Label: types.ClassWater, AreaSqM: -1}})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeContract))
}

// Nothing partial may survive a failed batch.
func TestAggregateFailsWhole(t *testing.T) {
	b, err := Aggregate([]Sample{
		{Label: types.ClassWater, AreaSqM: 100},
		{Label: types.ClassWater, AreaSqM: -100},
	})
	require.Error(t, err)
	assert.Nil(t, b)
}

func TestSortedClasses(t *testing.T) {
	b, err := Aggregate([]Sample{
		{Label: types.ClassBarren, AreaSqM: 1},
		{Label: types.ClassWater, AreaSqM: 1},
		{Label: types.ClassBuiltUp, AreaSqM: 1},
	})
	require.NoError(t, err)
	assert.Equal(t,
		[]types.ClassLabel{types.ClassWater, types.ClassBuiltUp, types.ClassBarren},
		b.SortedClasses())
}

func TestTotalSqKm(t *testing.T) {
	b, err := Aggregate([]Sample{
		{Label: types.ClassWater, AreaSqM: 1_500_000},
		{Label: types.ClassBarren, AreaSqM: 500_000},
	})
	require.NoError(t, err)
	assert.True(t, b.TotalSqKm().Equal(decimal.NewFromInt(2)))
}

// Partitioning the input, aggregating each shard, and merging must give
// the same breakdown as one pass over the whole input.
func TestShardingInvariance(t *testing.T) {
	samples := []Sample{
		{Label: types.ClassWater, AreaSqM: 104.7},
		{Label: types.ClassVegetation, AreaSqM: 93.2},
		{Label: types.ClassWater, AreaSqM: 0.1},
		{Label: types.ClassBuiltUp, AreaSqM: 1234.5},
		{Label: types.ClassVegetation, AreaSqM: 93.2},
		{Label: types.ClassBarren, AreaSqM: 7},
		{Label: types.ClassWater, AreaSqM: 55.55},
	}

	whole, err := Aggregate(samples)
	require.NoError(t, err)

	// Contiguous split.
	a, err := Aggregate(samples[:3])
	require.NoError(t, err)
	b, err := Aggregate(samples[3:])
	require.NoError(t, err)
	assertBreakdownEqual(t, whole, Merge(a, b))

	// Interleaved split, merged in the opposite order.
	var even, odd []Sample
	for i, s := range samples {
		if i%2 == 0 {
			even = append(even, s)
		} else {
			odd = append(odd, s)
		}
	}
	e, err := Aggregate(even)
	require.NoError(t, err)
	o, err := Aggregate(odd)
	require.NoError(t, err)
	assertBreakdownEqual(t, whole, Merge(o, e))

	// One shard per sample.
	parts := make([]Breakdown, 0, len(samples))
	for _, s := range samples {
		p, err := Aggregate([]Sample{s})
		require.NoError(t, err)
		parts = append(parts, p)
	}
	assertBreakdownEqual(t, whole, Merge(parts...))
}

func TestMergeEmpty(t *testing.T) {
	assert.Empty(t, Merge())
	assert.Empty(t, Merge(Breakdown{}, Breakdown{}))
}

func assertBreakdownEqual(t *testing.T, want, got Breakdown) {
	t.Helper()
	require.Len(t, got, len(want))
	for label, a := range want {
		assert.True(t, a.Equal(got[label]),
			"class %s: want %s got %s", label, a, got[label])
	}
}
