package fitload

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	stats := Describe(powerSeries(4, 1, 3, 2))
	require.Len(t, stats, len(DescribedFields))

	p := stats[0]
	assert.Equal(t, "power", p.Field)
	assert.Equal(t, 4, p.Count)
	assert.Equal(t, 2.5, p.Mean)
	assert.InDelta(t, math.Sqrt(5.0/3.0), p.Std, 1e-12)
	assert.Equal(t, 1.0, p.Min)
	assert.Equal(t, 1.75, p.P25)
	assert.Equal(t, 2.5, p.P50)
	assert.Equal(t, 3.25, p.P75)
	assert.Equal(t, 4.0, p.Max)

	for _, st := range stats[1:] {
		assert.Zero(t, st.Count, st.Field)
	}
}

func TestBuildWorkoutNotes(t *testing.T) {
	m, err := PowerTSS(powerSeries(constant(250, 3601)...), 250)
	require.NoError(t, err)

	notes := BuildWorkoutNotes(m, Describe(powerSeries(constant(250, 3601)...)))
	assert.Contains(t, notes, "Date: 2024-06-01")
	assert.Contains(t, notes, "Duration 1h00m00s")
	assert.Contains(t, notes, "NP 250.0 W | IF 1.00 | TSS 100.0")
	assert.Contains(t, notes, "heart_rate no data")
}

func TestBuildWorkoutNotesHeartRateZones(t *testing.T) {
	m, err := HRTSS(hrSeries(append(constant(150, 60), 500)...), 171)
	require.NoError(t, err)

	notes := BuildWorkoutNotes(m, nil)
	assert.Contains(t, notes, "hrTSS")
	assert.Contains(t, notes, "Z2 high (145-152 bpm): 1m00s")
	assert.Contains(t, notes, "Excluded 1 heart rate samples")
	assert.NotContains(t, notes, "Z1 low")
}

func TestBuildPerformanceNotes(t *testing.T) {
	assert.Empty(t, BuildPerformanceNotes(nil))

	days := make([]DailyLoad, 10)
	for i := range days {
		days[i] = DailyLoad{Date: day(2024, 6, 1).Add(time.Duration(i) * 24 * time.Hour), TSS: 50}
	}
	notes := BuildPerformanceNotes(ComputePerformance(days))

	lines := strings.Split(notes, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Range 2024-06-01 to 2024-06-10 | 10 days | 10 with load | total TSS 500", lines[0])
	assert.Equal(t, "Latest CTL 50.0 | ATL 50.0 | TSB +0.0 | peak CTL 50.0", lines[1])
	assert.Equal(t, "Form: slightly fatigued", lines[2])
}

func TestFormDescription(t *testing.T) {
	assert.Equal(t, "very fresh, possibly detraining", FormDescription(30))
	assert.Equal(t, "fresh and ready to race", FormDescription(15))
	assert.Equal(t, "neutral, good for training", FormDescription(5))
	assert.Equal(t, "tired but building fitness", FormDescription(-20))
	assert.Equal(t, "very fatigued, rest needed", FormDescription(-40))
}
