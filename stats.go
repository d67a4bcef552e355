package fitload

import (
	"math"
	"sort"
)

// FieldStats summarises one sample field.
type FieldStats struct {
	Field string  `json:"field"`
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
	Min   float64 `json:"min"`
	P25   float64 `json:"p25"`
	P50   float64 `json:"p50"`
	P75   float64 `json:"p75"`
	Max   float64 `json:"max"`
}

// DescribedFields are the fields Describe reports, in output order.
var DescribedFields = []string{"power", "heart_rate", "speed", "cadence"}

// Describe returns summary statistics for power, heart rate, speed and cadence over
// the samples that carry a value. Fields without values are reported with Count 0.
// Std is the sample standard deviation (0 below two values); quantiles interpolate
// linearly.
func Describe(w *WorkoutSeries) []FieldStats {
	out := make([]FieldStats, 0, len(DescribedFields))
	for _, name := range DescribedFields {
		f, ok := fieldByName(name)
		if !ok {
			continue
		}
		values := make([]float64, 0, w.Len())
		for _, s := range w.Samples() {
			if p := *f.ref(&s); p != nil && isFinite(*p) {
				values = append(values, *p)
			}
		}
		out = append(out, describeValues(name, values))
	}
	return out
}

func fieldByName(name string) (sampleField, bool) {
	for _, f := range sampleFields {
		if f.name == name {
			return f, true
		}
	}
	return sampleField{}, false
}

func describeValues(name string, values []float64) FieldStats {
	st := FieldStats{Field: name, Count: len(values)}
	if len(values) == 0 {
		return st
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	st.Mean = average(sorted)
	st.Std = sampleStdDev(sorted, st.Mean)
	st.Min = sorted[0]
	st.Max = sorted[len(sorted)-1]
	st.P25 = quantile(sorted, 0.25)
	st.P50 = quantile(sorted, 0.50)
	st.P75 = quantile(sorted, 0.75)
	return st
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func sampleStdDev(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}

// quantile expects sorted input.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	low := int(math.Floor(pos))
	high := int(math.Ceil(pos))
	if low == high {
		return sorted[low]
	}
	frac := pos - float64(low)
	return sorted[low] + (sorted[high]-sorted[low])*frac
}
