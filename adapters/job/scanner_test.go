package job

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jade2451/LULC-ISA/core/types"
	"github.com/Jade2451/LULC-ISA/internal/errors"
)

const validJob = `
job "nairobi-2023" {
  aoi {
    west  = 36.65
    south = -1.40
    east  = 37.05
    north = -1.15
  }
  dates {
    start = "2023-01-01"
    end   = "2023-12-31"
  }
  max_cloud_percent = 10.0

  class "water" {
    label = 0
    polygon { ring = [[36.80, -1.30], [36.81, -1.30], [36.81, -1.29], [36.80, -1.29]] }
  }
  class "vegetation" {
    label = 1
    polygon { ring = [[36.70, -1.20], [36.71, -1.20], [36.71, -1.19]] }
    polygon { ring = [[36.72, -1.22], [36.73, -1.22], [36.73, -1.21]] }
  }
  class "builtup" {
    label = 2
    polygon { ring = [[36.90, -1.28], [36.91, -1.28], [36.91, -1.27]] }
  }
  class "barren" {
    label = 3
    polygon { ring = [[37.00, -1.35], [37.01, -1.35], [37.01, -1.34]] }
  }
}
`

func TestLoadValidJob(t *testing.T) {
	j, err := Load([]byte(validJob), "job.hcl")
	require.NoError(t, err)

	assert.Equal(t, "nairobi-2023", j.Name)
	assert.Equal(t, 36.65, j.AOI.West)
	assert.Equal(t, -1.15, j.AOI.North)
	assert.Equal(t, 10.0, j.MaxCloudPercent)
	assert.Equal(t, "2023-01-01", j.Dates.Start.Format("2006-01-02"))
	assert.Equal(t, "2023-12-31", j.Dates.End.Format("2006-01-02"))

	require.Len(t, j.Classes, 4)
	veg, ok := j.Class(types.ClassVegetation)
	require.True(t, ok)
	assert.Equal(t, "vegetation", veg.Name)
	require.Len(t, veg.Polygons, 2)
	assert.Equal(t, [2]float64{36.70, -1.20}, veg.Polygons[0].Ring[0])

	water, ok := j.Class(types.ClassWater)
	require.True(t, ok)
	assert.Len(t, water.Polygons[0].Ring, 4)
}

func TestLoadMissingClass(t *testing.T) {
	src := strings.Replace(validJob, `class "barren" {
    label = 3
    polygon { ring = [[37.00, -1.35], [37.01, -1.35], [37.01, -1.34]] }
  }`, "", 1)

	_, err := Load([]byte(src), "job.hcl")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeInput))
	assert.Contains(t, err.Error(), "Barren")
}

func TestLoadClassWithoutPolygons(t *testing.T) {
	src := strings.Replace(validJob,
		`polygon { ring = [[37.00, -1.35], [37.01, -1.35], [37.01, -1.34]] }`, "", 1)

	_, err := Load([]byte(src), "job.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no training polygons")
}

func TestLoadBadDates(t *testing.T) {
	src := strings.Replace(validJob, `start = "2023-01-01"`, `start = "2024-06-01"`, 1)
	_, err := Load([]byte(src), "job.hcl")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeInput))
}

func TestLoadBadAOI(t *testing.T) {
	src := strings.Replace(validJob, "west  = 36.65", "west  = 38.00", 1)
	_, err := Load([]byte(src), "job.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AOI")
}

func TestLoadShortRing(t *testing.T) {
	src := strings.Replace(validJob,
		`ring = [[36.90, -1.28], [36.91, -1.28], [36.91, -1.27]]`,
		`ring = [[36.90, -1.28], [36.91, -1.28]]`, 1)
	_, err := Load([]byte(src), "job.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 3 vertices")
}

func TestLoadSyntaxError(t *testing.T) {
	_, err := Load([]byte(`job "x" {`), "job.hcl")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeParsing))
}

func TestLoadNoJobBlock(t *testing.T) {
	_, err := Load([]byte(``), "job.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one job block")
}

func TestLoadCloudThresholdRange(t *testing.T) {
	src := strings.Replace(validJob, "max_cloud_percent = 10.0", "max_cloud_percent = 140", 1)
	_, err := Load([]byte(src), "job.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_cloud_percent")
}
