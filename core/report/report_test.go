package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jade2451/LULC-ISA/core/accuracy"
	"github.com/Jade2451/LULC-ISA/core/area"
	"github.com/Jade2451/LULC-ISA/core/types"
	"github.com/Jade2451/LULC-ISA/internal/errors"
)

func testSummary(t *testing.T) *Summary {
	t.Helper()
	b, err := area.Aggregate([]area.Sample{
		{Label: types.ClassBarren, AreaSqM: 250_000},
		{Label: types.ClassWater, AreaSqM: 1_000_000},
		{Label: types.ClassVegetation, AreaSqM: 3_000_000},
	})
	require.NoError(t, err)

	matrix, err := accuracy.NewConfusionMatrix([][]float64{
		{10, 0, 0, 0},
		{0, 20, 0, 0},
		{0, 0, 30, 0},
		{0, 0, 0, 40},
	})
	require.NoError(t, err)

	return &Summary{
		RunID:        "run-1",
		JobName:      "nairobi-2023",
		StartedAt:    time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC),
		Duration:     92 * time.Second,
		SceneCount:   14,
		TotalPixels:  1000,
		UsablePixels: 870,
		Breakdown:    b,
		Accuracy:     matrix.Summarize(),
	}
}

func TestNewFormatter(t *testing.T) {
	for _, f := range []Format{FormatText, FormatJSON, FormatHTML} {
		fm, err := New(f)
		require.NoError(t, err)
		assert.Equal(t, f, fm.Format())
	}

	_, err := New(Format("xml"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeInput))
}

func TestTextRender(t *testing.T) {
	var buf bytes.Buffer
	fm, err := New(FormatText)
	require.NoError(t, err)
	require.NoError(t, fm.Render(&buf, testSummary(t)))
	out := buf.String()

	assert.Contains(t, out, "nairobi-2023")
	assert.Contains(t, out, "870/1000")

	// Classes sorted ascending by label; absent classes not shown.
	water := strings.Index(out, "Water")
	veg := strings.Index(out, "Vegetation")
	barren := strings.Index(out, "Barren")
	require.True(t, water > 0 && veg > 0 && barren > 0)
	assert.Less(t, water, veg)
	assert.Less(t, veg, barren)
	assert.NotContains(t, out, "Built-up")

	assert.Contains(t, out, "1.0000")
	assert.Contains(t, out, "3.0000")
	assert.Contains(t, out, "4.2500") // total
	assert.Contains(t, out, "Kappa")
}

func TestJSONRender(t *testing.T) {
	var buf bytes.Buffer
	fm, err := New(FormatJSON)
	require.NoError(t, err)
	require.NoError(t, fm.Render(&buf, testSummary(t)))

	var out jsonReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "run-1", out.RunID)
	assert.Equal(t, int64(92000), out.DurationMs)

	require.Len(t, out.Areas, 3)
	assert.Equal(t, 0, out.Areas[0].Label)
	assert.Equal(t, "Water", out.Areas[0].Name)
	assert.Equal(t, 1.0, out.Areas[0].AreaKm)
	assert.Equal(t, 3, out.Areas[2].Label)
	assert.InDelta(t, 4.25, out.TotalSqKm, 1e-12)

	require.NotNil(t, out.Accuracy)
	assert.Equal(t, 1.0, out.Accuracy.Overall)
}

func TestHTMLRender(t *testing.T) {
	var buf bytes.Buffer
	fm, err := New(FormatHTML)
	require.NoError(t, err)
	require.NoError(t, fm.Render(&buf, testSummary(t)))
	out := buf.String()

	assert.Contains(t, out, "Water")
	assert.Contains(t, out, "Vegetation")
	// Fixed palette colors reach the chart.
	assert.Contains(t, out, types.ClassWater.Color())
}

func TestTextRenderEmptyBreakdown(t *testing.T) {
	s := testSummary(t)
	s.Breakdown = make(area.Breakdown)
	s.Accuracy = nil

	var buf bytes.Buffer
	fm, err := New(FormatText)
	require.NoError(t, err)
	require.NoError(t, fm.Render(&buf, s))
	assert.Contains(t, buf.String(), "0.0000")
}
