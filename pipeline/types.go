package pipeline

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	fitload "github.com/lucasjlepore/fit-load"
)

// Options configures a multi-workout performance run.
type Options struct {
	// Dir is searched for *.fit files when Files is empty.
	Dir   string
	Files []string

	Calibration fitload.Calibration
	// Start and End are calendar days; only their year, month and day are used.
	Start time.Time
	End   time.Time

	Workers  int
	Location *time.Location // calendar used for workout dates; UTC when nil
	Logger   *zap.Logger

	// OutDir, when set, receives the performance series in Format (csv|parquet|json).
	OutDir string
	Format string
}

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = 4
	}
	if o.Location == nil {
		o.Location = time.UTC
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	o.Format = strings.ToLower(strings.TrimSpace(o.Format))
	if o.Format == "" {
		o.Format = FormatCSV
	}
	return o
}

// Status is the fate of one workout file in a run.
type Status string

const (
	StatusProcessed          Status = "processed"
	StatusMissingCalibration Status = "missing_calibration"
	StatusInsufficientData   Status = "insufficient_data"
	StatusDecodeFailed       Status = "decode_failed"
	StatusOutOfRange         Status = "out_of_range"
)

// WorkoutOutcome is the per-file result of a run.
type WorkoutOutcome struct {
	Path    string                  `json:"path"`
	Date    time.Time               `json:"date"`
	Status  Status                  `json:"status"`
	Metrics *fitload.WorkoutMetrics `json:"metrics,omitempty"`
	Err     error                   `json:"-"`
}

// Issue names a workout that was skipped or carried warnings.
type Issue struct {
	Path    string `json:"path"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Report summarises a run. Out-of-range workouts are counted only.
type Report struct {
	Files      int     `json:"files"`
	Processed  int     `json:"processed"`
	OutOfRange int     `json:"out_of_range"`
	Skipped    []Issue `json:"skipped,omitempty"`
	Warned     []Issue `json:"warned,omitempty"`
}

func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d files | %d processed | %d outside range | %d skipped | %d with warnings",
		r.Files, r.Processed, r.OutOfRange, len(r.Skipped), len(r.Warned))

	counts := lo.CountValuesBy(r.Skipped, func(i Issue) string { return i.Kind })
	kinds := lo.Keys(counts)
	slices.Sort(kinds)
	for _, kind := range kinds {
		fmt.Fprintf(&b, "\n  skipped %-20s %d", kind, counts[kind])
	}
	for _, issue := range r.Warned {
		fmt.Fprintf(&b, "\n  warning %s: %s", issue.Path, issue.Message)
	}
	return b.String()
}

// Result returns the per-day performance series and the run report.
type Result struct {
	Days        []fitload.DailyLoad      `json:"days"`
	Performance []fitload.PerformanceDay `json:"performance"`
	Workouts    []WorkoutOutcome         `json:"workouts"`
	Report      Report                   `json:"report"`
	ExportPath  string                   `json:"export_path,omitempty"`
}

// WorkoutSummary is the single-workout analysis.
type WorkoutSummary struct {
	Source  string                 `json:"source"`
	Start   time.Time              `json:"start"`
	Metrics fitload.WorkoutMetrics `json:"metrics"`
	Stats   []fitload.FieldStats   `json:"stats"`
	Notes   string                 `json:"notes"`
}
