package fitload

import (
	"fmt"
	"math"
	"strings"
)

// BuildWorkoutNotes turns one workout's load and field statistics into a short text summary.
func BuildWorkoutNotes(m WorkoutMetrics, stats []FieldStats) string {
	var b strings.Builder

	if !m.Date.IsZero() {
		fmt.Fprintf(&b, "Date: %s\n", m.Date.Format(dateLayout))
	}
	fmt.Fprintf(&b, "Duration %s | Load source %s\n", formatDuration(m.MovingSeconds), m.Source)

	switch m.Source {
	case SourcePower:
		fmt.Fprintf(
			&b,
			"NP %.1f W | IF %.2f | TSS %.1f\n",
			m.NP,
			m.IF,
			m.TSS,
		)
	case SourceHeartRate:
		fmt.Fprintf(&b, "hrTSS %.1f\n", m.TSS)
	}

	if len(stats) > 0 {
		b.WriteString("\nField Summary\n")
		for _, st := range stats {
			if st.Count == 0 {
				fmt.Fprintf(&b, "- %-10s no data\n", st.Field)
				continue
			}
			fmt.Fprintf(
				&b,
				"- %-10s n=%d mean %.1f std %.1f min %.1f p25 %.1f p50 %.1f p75 %.1f max %.1f\n",
				st.Field,
				st.Count,
				st.Mean,
				st.Std,
				st.Min,
				st.P25,
				st.P50,
				st.P75,
				st.Max,
			)
		}
	}

	if len(m.Zones) > 0 {
		b.WriteString("\nHeart Rate Zone Distribution\n")
		for _, z := range m.Zones {
			if z.Seconds <= 0 {
				continue
			}
			fmt.Fprintf(
				&b,
				"- %s (%.0f-%.0f bpm): %s (%.1f%%)\n",
				z.Label,
				z.MinBPM,
				z.MaxBPM,
				formatDuration(z.Seconds),
				z.Percentage,
			)
		}
	}
	if m.UnzonedSamples > 0 {
		fmt.Fprintf(&b, "Excluded %d heart rate samples outside all zones.\n", m.UnzonedSamples)
	}

	return strings.TrimSpace(b.String())
}

// BuildPerformanceNotes summarises the last day of a PMC series.
func BuildPerformanceNotes(days []PerformanceDay) string {
	if len(days) == 0 {
		return ""
	}
	var b strings.Builder
	first, last := days[0], days[len(days)-1]
	active := 0
	total := 0.0
	peakCTL := 0.0
	for _, d := range days {
		if d.TSS > 0 {
			active++
		}
		total += d.TSS
		peakCTL = math.Max(peakCTL, d.CTL)
	}

	fmt.Fprintf(
		&b,
		"Range %s to %s | %d days | %d with load | total TSS %.0f\n",
		first.Date.Format(dateLayout),
		last.Date.Format(dateLayout),
		len(days),
		active,
		total,
	)
	fmt.Fprintf(
		&b,
		"Latest CTL %.1f | ATL %.1f | TSB %+.1f | peak CTL %.1f\n",
		last.CTL,
		last.ATL,
		last.TSB,
		peakCTL,
	)
	fmt.Fprintf(&b, "Form: %s", FormDescription(last.TSB))
	return b.String()
}

// FormDescription describes a training stress balance value.
func FormDescription(tsb float64) string {
	switch {
	case tsb > 25:
		return "very fresh, possibly detraining"
	case tsb > 10:
		return "fresh and ready to race"
	case tsb > 0:
		return "neutral, good for training"
	case tsb > -10:
		return "slightly fatigued"
	case tsb > -25:
		return "tired but building fitness"
	default:
		return "very fatigued, rest needed"
	}
}

func formatDuration(seconds float64) string {
	if seconds <= 0 {
		return "0s"
	}
	s := int(math.Round(seconds))
	h := s / 3600
	m := (s % 3600) / 60
	sec := s % 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, sec)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%02ds", m, sec)
	}
	return fmt.Sprintf("%ds", sec)
}
