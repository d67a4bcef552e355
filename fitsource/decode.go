// Package fitsource turns FIT activity files into workout sample series.
package fitsource

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/tormoder/fit"

	fitload "github.com/lucasjlepore/fit-load"
)

// ErrNotActivity is returned for FIT files that do not hold an activity.
var ErrNotActivity = errors.New("not an activity FIT file")

// DecodeError reports a FIT file that could not be turned into a workout.
type DecodeError struct {
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("decode FIT: %v", e.Err)
	}
	return fmt.Sprintf("decode FIT %s: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

type decodeConfig struct {
	location *time.Location
	source   string
}

// Option configures decoding.
type Option func(*decodeConfig)

// WithLocation converts sample timestamps to loc, which decides the workout's calendar day.
// FIT timestamps are UTC by default.
func WithLocation(loc *time.Location) Option {
	return func(c *decodeConfig) {
		if loc != nil {
			c.location = loc
		}
	}
}

// WithSource names the input in decode errors.
func WithSource(name string) Option {
	return func(c *decodeConfig) {
		c.source = name
	}
}

// Decode reads one FIT activity and returns its record messages as a workout series.
// It makes a single attempt; any failure is returned as a *DecodeError.
func Decode(r io.Reader, opts ...Option) (*fitload.WorkoutSeries, error) {
	cfg := decodeConfig{location: time.UTC}
	for _, opt := range opts {
		opt(&cfg)
	}

	decoded, err := fit.Decode(r)
	if err != nil {
		return nil, &DecodeError{Source: cfg.source, Err: err}
	}
	activity, err := decoded.Activity()
	if err != nil {
		return nil, &DecodeError{Source: cfg.source, Err: fmt.Errorf("%w: %v", ErrNotActivity, err)}
	}
	return fitload.NewWorkoutSeries(buildSamples(activity.Records, cfg.location)), nil
}

// DecodeBytes decodes an in-memory FIT activity.
func DecodeBytes(data []byte, opts ...Option) (*fitload.WorkoutSeries, error) {
	return Decode(bytes.NewReader(data), opts...)
}

// DecodeFile opens and decodes a FIT activity file.
func DecodeFile(path string, opts ...Option) (*fitload.WorkoutSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Source: path, Err: err}
	}
	defer f.Close()

	return Decode(f, append([]Option{WithSource(path)}, opts...)...)
}

// Discover lists the *.fit files directly inside dir, sorted by name.
// The extension match ignores case; subdirectories are not searched.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read workout directory: %w", err)
	}
	fitEntries := lo.Filter(entries, func(e os.DirEntry, _ int) bool {
		return e.Type().IsRegular() && strings.EqualFold(filepath.Ext(e.Name()), ".fit")
	})
	return lo.Map(fitEntries, func(e os.DirEntry, _ int) string {
		return filepath.Join(dir, e.Name())
	}), nil
}

func buildSamples(records []*fit.RecordMsg, loc *time.Location) []fitload.Sample {
	samples := make([]fitload.Sample, 0, len(records))
	for _, rec := range records {
		if rec == nil {
			continue
		}
		ts := validTimeOrZero(rec.Timestamp)
		if ts.IsZero() {
			continue
		}
		s := fitload.Sample{Timestamp: ts.In(loc)}
		if v, ok := extractPower(rec); ok {
			s.Power = &v
		}
		if v, ok := extractHeartRate(rec); ok {
			s.HeartRate = &v
		}
		if v, ok := extractCadence(rec); ok {
			s.Cadence = &v
		}
		if v, ok := extractSpeed(rec); ok {
			s.Speed = &v
		}
		if !rec.PositionLat.Invalid() && !rec.PositionLong.Invalid() {
			lat, long := rec.PositionLat.Degrees(), rec.PositionLong.Degrees()
			s.PositionLat, s.PositionLong = &lat, &long
		}
		if v := rec.GetDistanceScaled(); isFinite(v) && v >= 0 {
			s.Distance = &v
		}
		samples = append(samples, s)
	}
	return samples
}

func extractPower(rec *fit.RecordMsg) (float64, bool) {
	if rec.Power == math.MaxUint16 {
		return 0, false
	}
	return float64(rec.Power), true
}

func extractHeartRate(rec *fit.RecordMsg) (float64, bool) {
	if rec.HeartRate == math.MaxUint8 {
		return 0, false
	}
	return float64(rec.HeartRate), true
}

func extractCadence(rec *fit.RecordMsg) (float64, bool) {
	if cad256 := rec.GetCadence256Scaled(); isFinite(cad256) && cad256 > 0 {
		return cad256, true
	}
	if rec.Cadence == math.MaxUint8 {
		return 0, false
	}
	return float64(rec.Cadence), true
}

func extractSpeed(rec *fit.RecordMsg) (float64, bool) {
	speed := rec.GetEnhancedSpeedScaled()
	if isFinite(speed) && speed >= 0 {
		return speed, true
	}
	speed = rec.GetSpeedScaled()
	if isFinite(speed) && speed >= 0 {
		return speed, true
	}
	return 0, false
}

func validTimeOrZero(t time.Time) time.Time {
	if t.IsZero() || fit.IsBaseTime(t) {
		return time.Time{}
	}
	return t
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
