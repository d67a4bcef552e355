package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(values map[string]any) *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func fixedNow() time.Time {
	return time.Date(2024, 6, 30, 23, 30, 0, 0, time.UTC)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(newViper(nil), fixedNow)
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Dir)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "csv", cfg.Format)
	assert.Equal(t, time.UTC, cfg.Timezone)
	assert.True(t, cfg.StartDate.IsZero())
	assert.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), cfg.EndDate)
	assert.Zero(t, cfg.FTP)
}

func TestLoadParsesValues(t *testing.T) {
	cfg, err := load(newViper(map[string]any{
		KeyFTP:       "250",
		KeyLTHR:      171,
		KeyStartDate: "2024-06-01",
		KeyEndDate:   "2024-06-07",
		KeyFormat:    "Parquet",
		KeyWorkers:   8,
	}), fixedNow)
	require.NoError(t, err)

	assert.Equal(t, 250.0, cfg.FTP)
	assert.Equal(t, 171.0, cfg.LTHR)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), cfg.StartDate)
	assert.Equal(t, time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC), cfg.EndDate)
	assert.Equal(t, "parquet", cfg.Format)
	assert.Equal(t, 8, cfg.Workers)
}

func TestLoadTodayFollowsTimezone(t *testing.T) {
	if _, err := time.LoadLocation("Asia/Tokyo"); err != nil {
		t.Skipf("tz database unavailable: %v", err)
	}
	cfg, err := load(newViper(map[string]any{KeyTimezone: "Asia/Tokyo"}), fixedNow)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), cfg.EndDate)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]any{
		"bad date":        {KeyStartDate: "06/01/2024"},
		"start after end": {KeyStartDate: "2024-06-08", KeyEndDate: "2024-06-07"},
		"zero workers":    {KeyWorkers: 0},
		"unknown format":  {KeyFormat: "xlsx"},
		"negative ftp":    {KeyFTP: -1},
		"bad timezone":    {KeyTimezone: "Mars/Olympus"},
	}
	for name, values := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := load(newViper(values), fixedNow)
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".fitload.yml")
	require.NoError(t, os.WriteFile(path, []byte("ftp: 280\nlthr: 165\nstart-date: \"2024-05-01\"\nend-date: \"2024-05-31\"\n"), 0o644))

	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 280.0, cfg.FTP)
	assert.Equal(t, 165.0, cfg.LTHR)
	assert.Equal(t, time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC), cfg.EndDate)
}
