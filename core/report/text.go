package report

import (
	"fmt"
	"io"
	"strings"
	"time"
)

const durationPrecision = 10 * time.Millisecond

type textFormatter struct{}

func (t *textFormatter) Format() Format { return FormatText }

func (t *textFormatter) Render(w io.Writer, s *Summary) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Land-cover classification: %s\n", s.JobName)
	fmt.Fprintf(&b, "Run %s  started %s  took %s\n",
		s.RunID, s.StartedAt.Format("2006-01-02 15:04:05"), s.Duration.Round(durationPrecision))
	fmt.Fprintf(&b, "Scenes: %d", s.SceneCount)
	if s.TotalPixels > 0 {
		fmt.Fprintf(&b, "  Cloud-free pixels: %d/%d (%.1f%%)",
			s.UsablePixels, s.TotalPixels, 100*float64(s.UsablePixels)/float64(s.TotalPixels))
	}
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%-12s %14s %8s\n", "Class", "Area (km²)", "Share")
	fmt.Fprintf(&b, "%s\n", strings.Repeat("-", 36))
	total, _ := s.Breakdown.TotalSqKm().Float64()
	for _, label := range s.Breakdown.SortedClasses() {
		sqkm := s.Breakdown.SqKm(label)
		share := 0.0
		if total > 0 {
			share = 100 * sqkm / total
		}
		fmt.Fprintf(&b, "%-12s %14.4f %7.1f%%\n", label.String(), sqkm, share)
	}
	fmt.Fprintf(&b, "%s\n", strings.Repeat("-", 36))
	fmt.Fprintf(&b, "%-12s %14.4f\n", "Total", total)

	if s.Accuracy != nil {
		if s.Accuracy.Samples > 0 {
			fmt.Fprintf(&b, "\nAccuracy (held-out %d samples)\n", int(s.Accuracy.Samples))
		} else {
			b.WriteString("\nAccuracy\n")
		}
		fmt.Fprintf(&b, "  Overall: %.4f  Kappa: %.4f\n", s.Accuracy.Overall, s.Accuracy.Kappa)
		for _, ca := range s.Accuracy.Classes {
			fmt.Fprintf(&b, "  %-12s producer %.4f  user %.4f\n", ca.Label.String(), ca.Producer, ca.User)
		}
	}

	if s.ExportTask != "" {
		fmt.Fprintf(&b, "\nExport task: %s\n", s.ExportTask)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
