package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	fitload "github.com/lucasjlepore/fit-load"
	"github.com/lucasjlepore/fit-load/internal/config"
	"github.com/lucasjlepore/fit-load/pipeline"
)

func newPMCCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pmc",
		Short: "Daily load with fitness (CTL), fatigue (ATL) and form (TSB) for a directory of workouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runPMC(cmd)
		},
	}

	f := cmd.Flags()
	f.String(config.KeyStartDate, "", "first day of the range, YYYY-MM-DD (required)")
	f.String(config.KeyEndDate, "", "last day of the range, YYYY-MM-DD (default today)")
	f.String(config.KeyDir, ".", "directory holding the .fit files")
	f.Int(config.KeyWorkers, 4, "workouts decoded in parallel")
	f.String(config.KeyOutDir, "", "write the series to this directory")
	f.String(config.KeyFormat, "csv", "export format (csv|parquet|json)")
	return cmd
}

func (a *app) runPMC(cmd *cobra.Command) error {
	if a.cfg.StartDate.IsZero() {
		return fmt.Errorf("%s is required", config.KeyStartDate)
	}

	res, err := pipeline.Run(cmd.Context(), pipeline.Options{
		Dir:         a.cfg.Dir,
		Calibration: a.calibration(),
		Start:       a.cfg.StartDate,
		End:         a.cfg.EndDate,
		Workers:     a.cfg.Workers,
		Location:    a.cfg.Timezone,
		Logger:      a.logger,
		OutDir:      a.cfg.OutDir,
		Format:      a.cfg.Format,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, fitload.BuildPerformanceNotes(res.Performance))
	fmt.Fprintln(out, res.Report.String())
	if res.ExportPath != "" {
		fmt.Fprintf(out, "Series written to %s\n", res.ExportPath)
	}

	if a.cfg.MetricsFile != "" {
		if err := pipeline.WriteMetrics(a.cfg.MetricsFile); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
		a.logger.Debug("metrics written", zap.String("path", a.cfg.MetricsFile))
	}
	return nil
}
