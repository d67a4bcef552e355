package fitload

import "time"

const (
	// ChronicWindowDays is the CTL averaging window.
	ChronicWindowDays = 42
	// AcuteWindowDays is the ATL averaging window.
	AcuteWindowDays = 7
)

// PerformanceDay is one day of the Performance Management Chart.
type PerformanceDay struct {
	Date time.Time `json:"date"`
	TSS  float64   `json:"tss"`
	CTL  float64   `json:"ctl"`
	ATL  float64   `json:"atl"`
	TSB  float64   `json:"tsb"`
}

// ComputePerformance derives CTL, ATL and TSB for every day. days must be one record
// per consecutive calendar day. CTL and ATL are trailing means over 42 and 7 days; until
// that many days exist, the mean covers the days available.
func ComputePerformance(days []DailyLoad) []PerformanceDay {
	if len(days) == 0 {
		return nil
	}
	tss := make([]float64, len(days))
	for i, d := range days {
		tss[i] = d.TSS
	}
	ctl := RollingMean(tss, ChronicWindowDays)
	atl := RollingMean(tss, AcuteWindowDays)

	out := make([]PerformanceDay, len(days))
	for i, d := range days {
		out[i] = PerformanceDay{
			Date: d.Date,
			TSS:  d.TSS,
			CTL:  ctl[i],
			ATL:  atl[i],
			TSB:  ctl[i] - atl[i],
		}
	}
	return out
}

// RollingMean returns the trailing mean over up to window values, using the values
// available at the start of the series.
func RollingMean(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 0 {
		return out
	}
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		n := window
		if i+1 < window {
			n = i + 1
		}
		out[i] = sum / float64(n)
	}
	return out
}
