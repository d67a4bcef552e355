package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	fitload "github.com/lucasjlepore/fit-load"
	"github.com/lucasjlepore/fit-load/internal/config"
	fitlog "github.com/lucasjlepore/fit-load/internal/log"
)

const envPrefix = "FITLOAD"

// app carries the state resolved before any subcommand runs.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: zap.NewNop()}
	config.SetDefaults(a.v)

	root := &cobra.Command{
		Use:           "fitload",
		Short:         "Training load analytics for FIT workouts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initConfig(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is ./.fitload.yml or $HOME/.fitload.yml)")
	pf.Float64(config.KeyFTP, 0, "functional threshold power in watts")
	pf.Float64(config.KeyLTHR, 0, "lactate threshold heart rate in bpm")
	pf.String(config.KeyTimezone, "UTC", "IANA timezone that decides each workout's calendar day")
	pf.String(config.KeyLogLevel, "info", "log level (debug|info|warn|error)")
	pf.String(config.KeyLogFormat, "text", "log format (text|json)")
	pf.String(config.KeyMetricsFile, "", "write prometheus metrics to this textfile when done")

	root.AddCommand(newWorkoutCmd(a), newPMCCmd(a))
	return root
}

// initConfig reads the config file and FITLOAD_* variables, binds the flags of cmd and
// resolves the configuration.
func (a *app) initConfig(cmd *cobra.Command) error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.SetConfigName(".fitload")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			a.v.AddConfigPath(home)
		}
	}
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	if err := bindFlags(cmd, a.v); err != nil {
		return err
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	logger, err := fitlog.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	a.cfg, a.logger = cfg, logger
	if used := a.v.ConfigFileUsed(); used != "" {
		a.logger.Debug("using config file", zap.String("path", used))
	}
	return nil
}

// bindFlags makes every flag of cmd, inherited ones included, a viper key of the same
// name. A changed flag wins over FITLOAD_* variables and the config file.
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var err error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if bindErr := v.BindPFlag(f.Name, f); bindErr != nil && err == nil {
			err = fmt.Errorf("bind flag %s: %w", f.Name, bindErr)
		}
	})
	return err
}

func (a *app) calibration() fitload.Calibration {
	return fitload.Calibration{FTP: a.cfg.FTP, LTHR: a.cfg.LTHR}
}
