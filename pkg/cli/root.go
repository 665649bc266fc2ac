// Package cli provides the propstat command tree.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/yasi-python/propstat/pkg/config"
	"github.com/yasi-python/propstat/pkg/logger"
	"github.com/yasi-python/propstat/pkg/metrics"
)

// app carries state shared by every subcommand of one invocation.
type app struct {
	cfgFile string
	verbose bool
	output  string
	metrics bool

	cfg     *config.Config
	log     *logger.Logger
	reg     *prometheus.Registry
	started time.Time
}

func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "propstat",
		Short: "Interval estimation, coverage and power for a binomial proportion",
		Long: `propstat computes the numeric inputs behind confidence, prediction,
coverage and power visualizations for a binomial proportion.

Examples:
  propstat quantile --gamma 0.99
  propstat interval --method clopper-pearson --k 3 --n 20
  propstat coverage --p 0.3 --n 50 --trials 2000 --seed 7
  propstat power --n 20 --p0 0.5 --tail upper --points 11`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "YAML config file")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVarP(&a.output, "output", "o", "text", "output format (text, json)")
	pf.BoolVar(&a.metrics, "metrics", false, "write Prometheus metrics to stderr after the command")

	root.AddCommand(
		newQuantileCmd(a),
		newIntervalCmd(a),
		newPredictCmd(a),
		newCoverageCmd(a),
		newRegionCmd(a),
		newPowerCmd(a),
		newDecideCmd(a),
	)
	return root
}

func Execute() error {
	return NewRootCmd().Execute()
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.output != "text" && a.output != "json" {
		return fmt.Errorf("unknown output format %q", a.output)
	}
	a.cfg = config.Default()
	if a.cfgFile != "" {
		cfg, err := config.Load(a.cfgFile)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	level := a.cfg.Logging.Level
	if a.verbose {
		level = "debug"
	}
	a.log = logger.NewWriter(level, a.cfg.Logging.Format, cmd.ErrOrStderr()).With("command", cmd.Name())
	a.reg = prometheus.NewRegistry()
	metrics.MustRegister(a.reg)
	a.started = time.Now()
	return nil
}

func (a *app) teardown(cmd *cobra.Command, _ []string) error {
	defer a.log.Sync()
	metrics.CommandDuration.WithLabelValues(cmd.Name()).Observe(time.Since(a.started).Seconds())
	if a.metrics || a.cfg.Metrics.Enabled {
		return metrics.Dump(cmd.ErrOrStderr(), a.reg)
	}
	return nil
}

// emit writes v as JSON or calls text, depending on --output.
func (a *app) emit(cmd *cobra.Command, v any, text func(w io.Writer)) error {
	w := cmd.OutOrStdout()
	if a.output == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(w)
	return nil
}

// pick returns the flag value when the user set it, the configured default otherwise.
func pick[T any](cmd *cobra.Command, name string, flagVal, cfgVal T) T {
	if cmd.Flags().Changed(name) {
		return flagVal
	}
	return cfgVal
}

func fixed(x float64) string { return decimal.NewFromFloat(x).StringFixed(6) }
