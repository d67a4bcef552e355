package fitsource

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tormoder/fit"

	fitload "github.com/lucasjlepore/fit-load"
	"github.com/lucasjlepore/fit-load/internal/testsupport"
)

var start = time.Date(2019, 3, 11, 18, 54, 27, 0, time.UTC)

func TestDecodeBytesExtractsSamples(t *testing.T) {
	data := testsupport.EncodeActivity(t, start, 3, func(i int, rec *fit.RecordMsg) {
		rec.Power = uint16(200 + i)
		rec.Cadence = 90
		rec.Speed = 8500
		rec.Distance = uint32(1000 * (i + 1))
		rec.PositionLat = fit.NewLatitudeDegrees(59.91)
		rec.PositionLong = fit.NewLongitudeDegrees(10.75)
		if i != 1 {
			rec.HeartRate = 140
		}
	})

	series, err := DecodeBytes(data)
	require.NoError(t, err)
	require.Equal(t, 3, series.Len())
	assert.Equal(t, start, series.Start())
	assert.Equal(t, 2*time.Second, series.Duration())

	samples := series.Samples()
	require.NotNil(t, samples[0].Power)
	assert.Equal(t, 200.0, *samples[0].Power)
	assert.Equal(t, 202.0, *samples[2].Power)
	assert.Equal(t, 90.0, *samples[0].Cadence)
	assert.InDelta(t, 8.5, *samples[0].Speed, 1e-9)
	assert.InDelta(t, 30.0, *samples[2].Distance, 1e-9)
	assert.InDelta(t, 59.91, *samples[0].PositionLat, 1e-6)
	assert.InDelta(t, 10.75, *samples[0].PositionLong, 1e-6)
	assert.Equal(t, 140.0, *samples[0].HeartRate)
	assert.Nil(t, samples[1].HeartRate, "invalid heart rate sentinel is missing")
}

func TestDecodeMissingSignalsStayMissing(t *testing.T) {
	series, err := DecodeBytes(testsupport.EncodeActivity(t, start, 5, nil))
	require.NoError(t, err)
	require.Equal(t, 5, series.Len())
	assert.False(t, series.HasPower())
	assert.False(t, series.HasHeartRate())
	for _, s := range series.Samples() {
		assert.Nil(t, s.PositionLat)
		assert.Nil(t, s.Distance)
	}
}

func TestDecodeWithLocationShiftsCalendarDay(t *testing.T) {
	late := time.Date(2024, 6, 2, 2, 0, 0, 0, time.UTC)
	data := testsupport.EncodeActivity(t, late, 2, testsupport.ConstantPower(150))

	utc, err := DecodeBytes(data)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), utc.Date())

	denver, err := time.LoadLocation("America/Denver")
	if err != nil {
		t.Skipf("tz database unavailable: %v", err)
	}
	local, err := DecodeBytes(data, WithLocation(denver))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), local.Date())
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := DecodeBytes([]byte("definitely not a fit file"), WithSource("junk.fit"))
	require.Error(t, err)

	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "junk.fit", decodeErr.Source)
	assert.Contains(t, err.Error(), "junk.fit")
}

func TestDecodeFileFeedsLoadEngine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ride.fit")
	testsupport.WriteActivity(t, path, start, 3601, testsupport.ConstantPower(275))

	series, err := DecodeFile(path)
	require.NoError(t, err)

	m, err := fitload.ComputeLoad(series, fitload.Calibration{FTP: 275})
	require.NoError(t, err)
	assert.InDelta(t, 275.0, m.NP, 1e-9)
	assert.InDelta(t, 100.0, m.TSS, 1e-9)
}

func TestDecodeFileMissing(t *testing.T) {
	_, err := DecodeFile(filepath.Join(t.TempDir(), "nope.fit"))
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.fit", "a.FIT", "notes.txt", "c.fit.bak"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.fit"), 0o755))

	got, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.FIT"), filepath.Join(dir, "b.fit")}, got)

	_, err = Discover(filepath.Join(dir, "missing"))
	require.Error(t, err)
}
