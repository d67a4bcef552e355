package fitload

import "time"

var testStart = time.Date(2024, 6, 1, 7, 30, 0, 0, time.UTC)

func f64(v float64) *float64 { return &v }

// powerSeries builds a 1 Hz series with one sample per power value.
func powerSeries(power ...float64) *WorkoutSeries {
	samples := make([]Sample, len(power))
	for i, p := range power {
		samples[i] = Sample{Timestamp: testStart.Add(time.Duration(i) * time.Second), Power: f64(p)}
	}
	return NewWorkoutSeries(samples)
}

// hrSeries builds a 1 Hz series with one sample per heart rate value.
func hrSeries(hr ...float64) *WorkoutSeries {
	samples := make([]Sample, len(hr))
	for i, v := range hr {
		samples[i] = Sample{Timestamp: testStart.Add(time.Duration(i) * time.Second), HeartRate: f64(v)}
	}
	return NewWorkoutSeries(samples)
}

func constant(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
