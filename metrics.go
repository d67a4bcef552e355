package fitload

import (
	"fmt"
	"math"
	"time"
)

const (
	secondsPerHour = 3600.0

	// NormalizedPowerWindow is the rolling window, in samples, used for Normalized Power.
	NormalizedPowerWindow = 30
)

// LoadSource names the signal a workout's load was derived from.
type LoadSource string

const (
	SourcePower     LoadSource = "power"
	SourceHeartRate LoadSource = "heart_rate"
)

// Calibration holds the athlete thresholds used to score a workout.
type Calibration struct {
	FTP  float64 `json:"ftp_w"`
	LTHR float64 `json:"lthr_bpm"`
}

// WorkoutMetrics is the load derived from one workout.
type WorkoutMetrics struct {
	Source         LoadSource `json:"source"`
	Date           time.Time  `json:"date"`
	MovingSeconds  float64    `json:"moving_seconds"`
	NP             float64    `json:"np_w,omitempty"`
	IF             float64    `json:"intensity_factor,omitempty"`
	TSS            float64    `json:"tss"`
	Zones          []ZoneTime `json:"hr_zones,omitempty"`
	UnzonedSamples int        `json:"unzoned_samples,omitempty"`

	// Warnings lists non-fatal problems, for example ErrUnzoneableSample.
	Warnings []error `json:"-"`
}

// ZoneTime is the time spent in one heart rate zone.
type ZoneTime struct {
	HRZone
	Seconds    float64 `json:"seconds"`
	Percentage float64 `json:"percentage"`
}

// NormalizedPower computes NP: the 4th root of the mean 4th power of the 30-sample
// rolling mean power. The first 29 positions have no rolling value and are skipped,
// as is any window containing a missing sample.
func NormalizedPower(w *WorkoutSeries) (float64, error) {
	if w.Len() == 0 || !w.HasPower() {
		return 0, fmt.Errorf("%w: no power samples", ErrInsufficientData)
	}
	rolling := RollingWindowMean(w.values(func(s Sample) *float64 { return s.Power }), NormalizedPowerWindow)

	total := 0.0
	count := 0
	for _, v := range rolling {
		if math.IsNaN(v) {
			continue
		}
		total += math.Pow(v, 4)
		count++
	}
	if count == 0 {
		return 0, fmt.Errorf("%w: normalized power needs %d consecutive power samples, got %d",
			ErrInsufficientData, NormalizedPowerWindow, w.Len())
	}
	return math.Pow(total/float64(count), 0.25), nil
}

// IntensityFactor is np relative to ftp.
func IntensityFactor(np, ftp float64) (float64, error) {
	if err := checkCalibration("ftp", ftp); err != nil {
		return 0, err
	}
	return np / ftp, nil
}

// PowerTSS scores a workout from power. Moving time is the elapsed time between the
// first and the last sample, so recordings slower than 1 Hz are scored by duration.
func PowerTSS(w *WorkoutSeries, ftp float64) (WorkoutMetrics, error) {
	if err := checkCalibration("ftp", ftp); err != nil {
		return WorkoutMetrics{}, err
	}
	np, err := NormalizedPower(w)
	if err != nil {
		return WorkoutMetrics{}, err
	}
	intensity, err := IntensityFactor(np, ftp)
	if err != nil {
		return WorkoutMetrics{}, err
	}
	moving := w.Duration().Seconds()
	return WorkoutMetrics{
		Source:        SourcePower,
		Date:          w.Date(),
		MovingSeconds: moving,
		NP:            np,
		IF:            intensity,
		TSS:           moving * np * intensity / (ftp * secondsPerHour) * 100.0,
	}, nil
}

// HRTSS scores a workout from heart rate zones. Every sample contributes its zone's
// hourly rate divided by 3600, which assumes one sample per second; recordings at a
// different rate are over- or under-counted and are not corrected.
// Samples outside every zone are excluded and reported as an ErrUnzoneableSample warning.
func HRTSS(w *WorkoutSeries, lthr float64) (WorkoutMetrics, error) {
	if err := checkCalibration("lthr", lthr); err != nil {
		return WorkoutMetrics{}, err
	}
	if w.Len() == 0 || !w.HasHeartRate() {
		return WorkoutMetrics{}, fmt.Errorf("%w: no heart rate samples", ErrInsufficientData)
	}

	counts := make([]int, HRZoneCount)
	rateTotal := 0.0
	zoned := 0
	unzoned := 0
	for _, s := range w.samples {
		if s.HeartRate == nil {
			continue
		}
		zone, ok := ClassifyHeartRate(*s.HeartRate, lthr)
		if !ok {
			unzoned++
			continue
		}
		counts[zone.Index]++
		rateTotal += zone.TSSRate
		zoned++
	}

	m := WorkoutMetrics{
		Source:         SourceHeartRate,
		Date:           w.Date(),
		MovingSeconds:  w.Duration().Seconds(),
		TSS:            rateTotal / secondsPerHour,
		UnzonedSamples: unzoned,
	}
	if zoned > 0 {
		zones := HRZones(lthr)
		m.Zones = make([]ZoneTime, len(zones))
		for i, z := range zones {
			m.Zones[i] = ZoneTime{
				HRZone:     z,
				Seconds:    float64(counts[i]),
				Percentage: float64(counts[i]) / float64(zoned) * 100.0,
			}
		}
	}
	if unzoned > 0 {
		m.Warnings = append(m.Warnings, fmt.Errorf("%w: %d samples outside [0, %.1f) bpm",
			ErrUnzoneableSample, unzoned, 2*lthr))
	}
	return m, nil
}

// ComputeLoad repairs w and scores it from power when any power sample exists,
// otherwise from heart rate. A workout with neither signal returns ErrInsufficientData.
func ComputeLoad(w *WorkoutSeries, cal Calibration) (WorkoutMetrics, error) {
	if w.Len() == 0 {
		return WorkoutMetrics{}, fmt.Errorf("%w: workout has no samples", ErrInsufficientData)
	}
	repaired := Repair(w)
	switch {
	case repaired.HasPower():
		return PowerTSS(repaired, cal.FTP)
	case repaired.HasHeartRate():
		return HRTSS(repaired, cal.LTHR)
	default:
		return WorkoutMetrics{}, fmt.Errorf("%w: workout has neither power nor heart rate", ErrInsufficientData)
	}
}

// RollingWindowMean returns the trailing mean over exactly window values. Positions
// before the first full window, and windows containing NaN, are NaN.
func RollingWindowMean(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 0 {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}
	sum := 0.0
	missing := 0
	for i, v := range values {
		if math.IsNaN(v) {
			missing++
		} else {
			sum += v
		}
		if i >= window {
			old := values[i-window]
			if math.IsNaN(old) {
				missing--
			} else {
				sum -= old
			}
		}
		if i < window-1 || missing > 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = sum / float64(window)
	}
	return out
}

func valueOrNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
