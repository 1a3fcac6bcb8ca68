package report

import (
	"fmt"
	"strings"
	"time"

	"SoyCrush/internal/model"
)

const stampFormat = "2006-01-02 15:04:05"

// FormatSpreadSummary formats the per-resolution crush spread statistics.
func FormatSpreadSummary(summaries []model.SpreadSummary) string {
	var b strings.Builder

	b.WriteString("Soybean Crush Spread ($/bu)\n")
	for _, s := range summaries {
		b.WriteString(fmt.Sprintf("\n[%s] %d rows\n", s.Resolution.Title(), s.Rows))
		if s.Rows == 0 {
			b.WriteString("  no data\n")
			continue
		}
		b.WriteString(fmt.Sprintf("  range: %s -> %s\n", stamp(s.First), stamp(s.Last)))
		b.WriteString(fmt.Sprintf("  last:  %+.4f\n", s.LastValue))
		b.WriteString(fmt.Sprintf("  mean:  %+.4f\n", s.Mean))
		b.WriteString(fmt.Sprintf("  high:  %+.4f | low: %+.4f\n", s.High, s.Low))
		b.WriteString(fmt.Sprintf("  position in range: %.0f%%\n", s.Position*100))
	}
	return b.String()
}

func stamp(t time.Time) string { return t.UTC().Format(stampFormat) }
