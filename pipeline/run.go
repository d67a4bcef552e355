package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	fitload "github.com/lucasjlepore/fit-load"
	"github.com/lucasjlepore/fit-load/fitsource"
)

// Run decodes every workout, aggregates load per calendar day over [Start, End] and
// returns the performance series with a report of skipped and warned workouts.
// Workouts are decoded in parallel; their loads are summed in file order.
func Run(ctx context.Context, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	if opts.Start.IsZero() || opts.End.IsZero() {
		return nil, fmt.Errorf("start and end dates are required")
	}
	if opts.OutDir != "" {
		if err := checkFormat(opts.Format); err != nil {
			return nil, err
		}
	}

	daily, err := fitload.NewDailyLoadSeries(opts.Start, opts.End)
	if err != nil {
		return nil, err
	}

	paths := opts.Files
	if len(paths) == 0 {
		if strings.TrimSpace(opts.Dir) == "" {
			return nil, fmt.Errorf("workout directory or files are required")
		}
		paths, err = fitsource.Discover(opts.Dir)
		if err != nil {
			return nil, err
		}
	}

	outcomes := make([]WorkoutOutcome, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = analyzeFile(path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analyze workouts: %w", err)
	}

	report := Report{Files: len(paths)}
	for i := range outcomes {
		reduceOutcome(&outcomes[i], daily, &report, opts.Logger)
	}
	opts.Logger.Info("performance run complete",
		zap.Int("files", report.Files),
		zap.Int("processed", report.Processed),
		zap.Int("out_of_range", report.OutOfRange),
		zap.Int("skipped", len(report.Skipped)),
		zap.Int("warned", len(report.Warned)),
		zap.Float64("total_tss", daily.TotalTSS()),
	)

	res := &Result{
		Days:        daily.Days(),
		Performance: daily.Performance(),
		Workouts:    outcomes,
		Report:      report,
	}
	if opts.OutDir != "" {
		res.ExportPath, err = ExportPerformance(opts.OutDir, opts.Format, res.Performance)
		if err != nil {
			return nil, fmt.Errorf("export performance: %w", err)
		}
		opts.Logger.Info("performance series written", zap.String("path", res.ExportPath))
	}
	return res, nil
}

func analyzeFile(path string, opts Options) WorkoutOutcome {
	out := WorkoutOutcome{Path: path}
	series, err := fitsource.DecodeFile(path, fitsource.WithLocation(opts.Location))
	if err != nil {
		out.Status, out.Err = StatusDecodeFailed, err
		return out
	}
	if series.Len() > 0 {
		out.Date = series.Date()
	}

	m, err := fitload.ComputeLoad(series, opts.Calibration)
	switch {
	case errors.Is(err, fitload.ErrMissingCalibration):
		out.Status, out.Err = StatusMissingCalibration, err
	case err != nil:
		out.Status, out.Err = StatusInsufficientData, err
	default:
		out.Status, out.Metrics = StatusProcessed, &m
	}
	return out
}

// reduceOutcome folds one workout into the daily series. It runs on a single goroutine.
func reduceOutcome(o *WorkoutOutcome, daily *fitload.DailyLoadSeries, report *Report, logger *zap.Logger) {
	// A dated workout outside the range is dropped whatever else went wrong with it.
	if !o.Date.IsZero() && !daily.Contains(o.Date) {
		o.Status, o.Metrics = StatusOutOfRange, nil
		report.OutOfRange++
		recordWorkout(o.Status)
		return
	}
	recordWorkout(o.Status)

	if o.Status != StatusProcessed {
		report.Skipped = append(report.Skipped, Issue{Path: o.Path, Kind: string(o.Status), Message: o.Err.Error()})
		logger.Warn("workout skipped",
			zap.String("file", o.Path),
			zap.String("reason", string(o.Status)),
			zap.Error(o.Err),
		)
		return
	}

	daily.Add(o.Metrics.Date, o.Metrics.TSS)
	report.Processed++
	recordUnzoned(o.Metrics.UnzonedSamples)
	for _, w := range o.Metrics.Warnings {
		report.Warned = append(report.Warned, Issue{Path: o.Path, Kind: warningKind(w), Message: w.Error()})
		logger.Warn("workout warning",
			zap.String("file", o.Path),
			zap.Time("date", o.Metrics.Date),
			zap.Error(w),
		)
	}
}

func warningKind(err error) string {
	if errors.Is(err, fitload.ErrUnzoneableSample) {
		return "unzoneable_samples"
	}
	return "warning"
}

// AnalyzeWorkout computes load, field statistics and notes for one FIT file.
func AnalyzeWorkout(path string, cal fitload.Calibration, opts ...fitsource.Option) (*WorkoutSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &fitsource.DecodeError{Source: path, Err: err}
	}
	defer f.Close()

	series, err := fitsource.Decode(f, append([]fitsource.Option{fitsource.WithSource(filepath.Base(path))}, opts...)...)
	if err != nil {
		return nil, err
	}
	return summarize(filepath.Base(path), series, cal)
}

// AnalyzeBytes is AnalyzeWorkout for an in-memory FIT file.
func AnalyzeBytes(name string, data []byte, cal fitload.Calibration, opts ...fitsource.Option) (*WorkoutSummary, error) {
	series, err := fitsource.DecodeBytes(data, append([]fitsource.Option{fitsource.WithSource(name)}, opts...)...)
	if err != nil {
		return nil, err
	}
	return summarize(name, series, cal)
}

func summarize(name string, series *fitload.WorkoutSeries, cal fitload.Calibration) (*WorkoutSummary, error) {
	m, err := fitload.ComputeLoad(series, cal)
	if err != nil {
		return nil, fmt.Errorf("compute load for %s: %w", name, err)
	}
	stats := fitload.Describe(series)
	return &WorkoutSummary{
		Source:  name,
		Start:   series.Start(),
		Metrics: m,
		Stats:   stats,
		Notes:   fitload.BuildWorkoutNotes(m, stats),
	}, nil
}
