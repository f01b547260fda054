// Package report renders run results for humans and machines.
package report

import (
	"io"
	"time"

	"github.com/Jade2451/LULC-ISA/core/accuracy"
	"github.com/Jade2451/LULC-ISA/core/area"
	"github.com/Jade2451/LULC-ISA/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatText is a human-readable table
	FormatText Format = "text"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatHTML is an HTML chart report
	FormatHTML Format = "html"
)

// Summary is the display-ready view of one run.
type Summary struct {
	RunID        string           `json:"run_id"`
	JobName      string           `json:"job_name"`
	StartedAt    time.Time        `json:"started_at"`
	Duration     time.Duration    `json:"duration"`
	SceneCount   int              `json:"scene_count"`
	TotalPixels  int              `json:"total_pixels"`
	UsablePixels int              `json:"usable_pixels"`
	Breakdown    area.Breakdown   `json:"-"`
	Accuracy     *accuracy.Report `json:"accuracy,omitempty"`
	ExportTask   string           `json:"export_task,omitempty"`
}

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given summary
	Render(w io.Writer, s *Summary) error
}

// New returns the formatter for a format name.
func New(f Format) (Formatter, error) {
	switch f {
	case FormatText:
		return &textFormatter{}, nil
	case FormatJSON:
		return &jsonFormatter{}, nil
	case FormatHTML:
		return &htmlFormatter{}, nil
	default:
		return nil, errors.Inputf("unknown report format %q", string(f))
	}
}
