package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

type htmlFormatter struct{}

func (h *htmlFormatter) Format() Format { return FormatHTML }

// Render writes a standalone HTML page with a pie of class areas using
// the fixed class palette.
func (h *htmlFormatter) Render(w io.Writer, s *Summary) error {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Land-cover classification: " + s.JobName,
			Width:     "800px",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: s.JobName,
			Subtitle: fmt.Sprintf("run %s | %d scenes | %.4f km² classified",
				s.RunID, s.SceneCount, totalSqKm(s)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	items := make([]opts.PieData, 0, len(s.Breakdown))
	for _, label := range s.Breakdown.SortedClasses() {
		items = append(items, opts.PieData{
			Name:      label.String(),
			Value:     s.Breakdown.SqKm(label),
			ItemStyle: &opts.ItemStyle{Color: label.Color()},
		})
	}

	pie.AddSeries("area (km²)", items).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Formatter: "{b}: {c} km²",
		}))

	return pie.Render(w)
}

func totalSqKm(s *Summary) float64 {
	f, _ := s.Breakdown.TotalSqKm().Float64()
	return f
}
