package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Keys shared by the cli flags, the config file and the FITLOAD_* environment.
const (
	KeyFTP         = "ftp"
	KeyLTHR        = "lthr"
	KeyStartDate   = "start-date"
	KeyEndDate     = "end-date"
	KeyDir         = "dir"
	KeyWorkers     = "workers"
	KeyTimezone    = "timezone"
	KeyOutDir      = "out-dir"
	KeyFormat      = "format"
	KeyLogLevel    = "log-level"
	KeyLogFormat   = "log-format"
	KeyMetricsFile = "metrics-file"
)

const DateLayout = "2006-01-02"

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the resolved configuration values.
type Config struct {
	FTP         float64 // watts; zero leaves power workouts uncalibrated
	LTHR        float64 // bpm; zero leaves heart rate workouts uncalibrated
	StartDate   time.Time
	EndDate     time.Time // defaults to today
	Dir         string
	Workers     int
	Timezone    *time.Location
	OutDir      string
	Format      string // csv|parquet|json
	LogLevel    string
	LogFormat   string // text|json
	MetricsFile string
}

// SetDefaults registers the default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDir, ".")
	v.SetDefault(KeyWorkers, 4)
	v.SetDefault(KeyTimezone, "UTC")
	v.SetDefault(KeyFormat, "csv")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
}

// Load resolves and validates the configuration held by v.
// Calibration values are not required here; they are checked per workout.
func Load(v *viper.Viper) (Config, error) {
	return load(v, time.Now)
}

func load(v *viper.Viper, now func() time.Time) (Config, error) {
	cfg := Config{
		FTP:         v.GetFloat64(KeyFTP),
		LTHR:        v.GetFloat64(KeyLTHR),
		Dir:         v.GetString(KeyDir),
		Workers:     v.GetInt(KeyWorkers),
		OutDir:      v.GetString(KeyOutDir),
		Format:      strings.ToLower(strings.TrimSpace(v.GetString(KeyFormat))),
		LogLevel:    v.GetString(KeyLogLevel),
		LogFormat:   v.GetString(KeyLogFormat),
		MetricsFile: v.GetString(KeyMetricsFile),
	}
	if cfg.FTP < 0 || cfg.LTHR < 0 {
		return Config{}, fmt.Errorf("%w: ftp and lthr must not be negative", ErrInvalidConfig)
	}
	if cfg.Workers <= 0 {
		return Config{}, fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, cfg.Workers)
	}
	switch cfg.Format {
	case "csv", "parquet", "json":
	default:
		return Config{}, fmt.Errorf("%w: unknown format %q (expected csv|parquet|json)", ErrInvalidConfig, cfg.Format)
	}

	tz := v.GetString(KeyTimezone)
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return Config{}, fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, tz, err)
	}
	cfg.Timezone = loc

	if cfg.StartDate, err = parseDate(v, KeyStartDate); err != nil {
		return Config{}, err
	}
	if cfg.EndDate, err = parseDate(v, KeyEndDate); err != nil {
		return Config{}, err
	}
	if cfg.EndDate.IsZero() {
		y, m, d := now().In(loc).Date()
		cfg.EndDate = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	if !cfg.StartDate.IsZero() && cfg.StartDate.After(cfg.EndDate) {
		return Config{}, fmt.Errorf("%w: start date %s is after end date %s", ErrInvalidConfig,
			cfg.StartDate.Format(DateLayout), cfg.EndDate.Format(DateLayout))
	}
	return cfg, nil
}

func parseDate(v *viper.Viper, key string) (time.Time, error) {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s %q: expected YYYY-MM-DD", ErrInvalidConfig, key, raw)
	}
	return t, nil
}
