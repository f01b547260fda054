package report

import (
	"encoding/json"
	"io"

	"github.com/Jade2451/LULC-ISA/core/accuracy"
)

type jsonFormatter struct{}

func (j *jsonFormatter) Format() Format { return FormatJSON }

// jsonClassArea is one row of the machine-readable breakdown, sorted by
// label ascending.
type jsonClassArea struct {
	Label  int     `json:"label"`
	Name   string  `json:"name"`
	AreaKm float64 `json:"area_sqkm"`
}

type jsonReport struct {
	RunID        string           `json:"run_id"`
	JobName      string           `json:"job_name"`
	StartedAt    string           `json:"started_at"`
	DurationMs   int64            `json:"duration_ms"`
	SceneCount   int              `json:"scene_count"`
	TotalPixels  int              `json:"total_pixels"`
	UsablePixels int              `json:"usable_pixels"`
	Areas        []jsonClassArea  `json:"areas"`
	TotalSqKm    float64          `json:"total_sqkm"`
	Accuracy     *accuracy.Report `json:"accuracy,omitempty"`
	ExportTask   string           `json:"export_task,omitempty"`
}

func (j *jsonFormatter) Render(w io.Writer, s *Summary) error {
	total, _ := s.Breakdown.TotalSqKm().Float64()
	out := jsonReport{
		RunID:        s.RunID,
		JobName:      s.JobName,
		StartedAt:    s.StartedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		DurationMs:   s.Duration.Milliseconds(),
		SceneCount:   s.SceneCount,
		TotalPixels:  s.TotalPixels,
		UsablePixels: s.UsablePixels,
		Areas:        make([]jsonClassArea, 0, len(s.Breakdown)),
		TotalSqKm:    total,
		Accuracy:     s.Accuracy,
		ExportTask:   s.ExportTask,
	}
	for _, label := range s.Breakdown.SortedClasses() {
		out.Areas = append(out.Areas, jsonClassArea{
			Label:  int(label),
			Name:   label.String(),
			AreaKm: s.Breakdown.SqKm(label),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
