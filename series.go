// Package fitload scores workouts by training stress and models fitness, fatigue and form
// over a range of calendar days.
package fitload

import (
	"sort"
	"time"
)

// Sample is one sensor reading. A nil field means the sensor did not report a value.
type Sample struct {
	Timestamp    time.Time `json:"timestamp"`
	Power        *float64  `json:"power_w,omitempty"`
	HeartRate    *float64  `json:"hr_bpm,omitempty"`
	Cadence      *float64  `json:"cadence_rpm,omitempty"`
	Speed        *float64  `json:"speed_mps,omitempty"`
	PositionLat  *float64  `json:"position_lat,omitempty"`
	PositionLong *float64  `json:"position_long,omitempty"`
	Distance     *float64  `json:"distance_m,omitempty"`
}

// WorkoutSeries is the ordered sample sequence of one recording session.
type WorkoutSeries struct {
	samples []Sample
}

// NewWorkoutSeries copies samples and orders them by timestamp.
// Samples sharing a timestamp keep their input order.
func NewWorkoutSeries(samples []Sample) *WorkoutSeries {
	rows := make([]Sample, len(samples))
	for i, s := range samples {
		rows[i] = cloneSample(s)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Timestamp.Before(rows[j].Timestamp)
	})
	return &WorkoutSeries{samples: rows}
}

// Len returns the number of samples.
func (w *WorkoutSeries) Len() int {
	if w == nil {
		return 0
	}
	return len(w.samples)
}

// Samples returns a copy of the ordered samples.
func (w *WorkoutSeries) Samples() []Sample {
	if w == nil {
		return nil
	}
	out := make([]Sample, len(w.samples))
	for i, s := range w.samples {
		out[i] = cloneSample(s)
	}
	return out
}

// Start returns the timestamp of the first sample, or the zero time for an empty series.
func (w *WorkoutSeries) Start() time.Time {
	if w.Len() == 0 {
		return time.Time{}
	}
	return w.samples[0].Timestamp
}

// End returns the timestamp of the last sample.
func (w *WorkoutSeries) End() time.Time {
	if w.Len() == 0 {
		return time.Time{}
	}
	return w.samples[len(w.samples)-1].Timestamp
}

// Date is the calendar day of the first sample, in the location of its timestamp,
// normalised to midnight UTC.
func (w *WorkoutSeries) Date() time.Time {
	if w.Len() == 0 {
		return time.Time{}
	}
	return CivilDay(w.samples[0].Timestamp)
}

// Duration is the elapsed time between the first and the last sample.
func (w *WorkoutSeries) Duration() time.Duration {
	if w.Len() < 2 {
		return 0
	}
	return w.End().Sub(w.Start())
}

// HasPower reports whether any sample carries a power value.
func (w *WorkoutSeries) HasPower() bool {
	return w.has(func(s Sample) *float64 { return s.Power })
}

// HasHeartRate reports whether any sample carries a heart rate value.
func (w *WorkoutSeries) HasHeartRate() bool {
	return w.has(func(s Sample) *float64 { return s.HeartRate })
}

func (w *WorkoutSeries) has(field func(Sample) *float64) bool {
	if w == nil {
		return false
	}
	for _, s := range w.samples {
		if field(s) != nil {
			return true
		}
	}
	return false
}

// values extracts one field. Missing entries are returned as NaN.
func (w *WorkoutSeries) values(field func(Sample) *float64) []float64 {
	out := make([]float64, len(w.samples))
	for i, s := range w.samples {
		out[i] = valueOrNaN(field(s))
	}
	return out
}

// CivilDay truncates t to its calendar day in t's location and returns that day at
// 00:00 UTC, so that days from different locations compare and subtract exactly.
func CivilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func cloneSample(s Sample) Sample {
	return Sample{
		Timestamp:    s.Timestamp,
		Power:        cloneFloat(s.Power),
		HeartRate:    cloneFloat(s.HeartRate),
		Cadence:      cloneFloat(s.Cadence),
		Speed:        cloneFloat(s.Speed),
		PositionLat:  cloneFloat(s.PositionLat),
		PositionLong: cloneFloat(s.PositionLong),
		Distance:     cloneFloat(s.Distance),
	}
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
