package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassLabel(t *testing.T) {
	assert.Equal(t, "Water", ClassWater.String())
	assert.Equal(t, "Built-up", ClassBuiltUp.String())
	assert.True(t, ClassBarren.Valid())
	assert.False(t, ClassLabel(4).Valid())
	assert.False(t, ClassLabel(-1).Valid())

	_, err := ParseClassLabel(7)
	assert.Error(t, err)
	c, err := ParseClassLabel(2)
	require.NoError(t, err)
	assert.Equal(t, ClassBuiltUp, c)

	assert.Len(t, AllClasses(), NumClasses)
	for _, c := range AllClasses() {
		assert.NotEqual(t, "#000000", c.Color())
	}
}

func TestAOIValidate(t *testing.T) {
	good := AOI{West: 36.65, South: -1.40, East: 37.05, North: -1.15}
	assert.NoError(t, good.Validate())

	assert.Error(t, AOI{West: 37, South: -1.4, East: 36, North: -1.1}.Validate())
	assert.Error(t, AOI{West: 36, South: -1.1, East: 37, North: -1.4}.Validate())
	assert.Error(t, AOI{West: -190, South: 0, East: 0, North: 1}.Validate())
	assert.Error(t, AOI{West: 0, South: 0, East: 1, North: 95}.Validate())
}

func TestAOIAreaSqKm(t *testing.T) {
	// One square degree at the equator is roughly 111.32 km on a side.
	a := AOI{West: 0, South: -0.5, East: 1, North: 0.5}
	assert.InDelta(t, 111.32*111.32, a.AreaSqKm(), 30)

	// Shrinks with latitude.
	high := AOI{West: 0, South: 59.5, East: 1, North: 60.5}
	assert.Less(t, high.AreaSqKm(), a.AreaSqKm()/1.9)
}

func TestParseDateRange(t *testing.T) {
	d, err := ParseDateRange("2023-01-01", "2023-12-31")
	require.NoError(t, err)
	assert.Equal(t, 2023, d.Start.Year())

	_, err = ParseDateRange("2023-12-31", "2023-01-01")
	assert.Error(t, err)

	_, err = ParseDateRange("not-a-date", "2023-01-01")
	assert.Error(t, err)

	// Single-day window is valid.
	_, err = ParseDateRange("2023-06-01", "2023-06-01")
	assert.NoError(t, err)
}
