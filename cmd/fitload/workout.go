package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lucasjlepore/fit-load/fitsource"
	"github.com/lucasjlepore/fit-load/pipeline"
)

func newWorkoutCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "workout <file.fit>",
		Short: "Score one workout: NP, IF and TSS, or hrTSS with zone times",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := pipeline.AnalyzeWorkout(args[0], a.calibration(), fitsource.WithLocation(a.cfg.Timezone))
			if err != nil {
				return err
			}
			for _, w := range summary.Metrics.Warnings {
				a.logger.Warn("workout warning", zap.String("file", args[0]), zap.Error(w))
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}
			_, err = fmt.Fprint(out, summary.Notes)
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as json")
	return cmd
}
