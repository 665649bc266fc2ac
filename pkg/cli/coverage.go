package cli

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/yasi-python/propstat/pkg/coverage"
	"github.com/yasi-python/propstat/pkg/metrics"
	"github.com/yasi-python/propstat/pkg/stats"
)

func newCoverageCmd(a *app) *cobra.Command {
	var (
		p             float64
		n, trials     int
		gamma         float64
		seed          uint64
		method        string
		showIntervals bool
	)
	cmd := &cobra.Command{
		Use:   "coverage",
		Short: "Simulate the empirical coverage of an interval method",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := stats.ParseMethod(pick(cmd, "method", method, a.cfg.Defaults.Method))
			if err != nil {
				return err
			}
			params := coverage.Params{
				PTrue:  p,
				N:      pick(cmd, "n", n, a.cfg.Defaults.N),
				Gamma:  pick(cmd, "gamma", gamma, a.cfg.Defaults.Gamma),
				Trials: pick(cmd, "trials", trials, a.cfg.Defaults.Trials),
				Seed:   pick(cmd, "seed", seed, a.cfg.Defaults.Seed),
				Method: m,
			}
			runID := uuid.New()
			log := a.log.With("run_id", runID.String())
			log.Info("coverage_start", "p_true", params.PTrue, "n", params.N, "gamma", params.Gamma,
				"trials", params.Trials, "seed", params.Seed, "method", params.Method)

			res, err := coverage.Simulate(params)
			if err != nil {
				return err
			}
			sum, err := res.Summary()
			if err != nil {
				return err
			}
			metrics.CoverageTrials.Add(float64(params.Trials))
			metrics.Intervals.WithLabelValues(string(m)).Add(float64(params.Trials))
			metrics.CoverageRate.Set(res.Coverage)
			log.Info("coverage_done", "coverage", res.Coverage, "misses_below", sum.MissesBelow, "misses_above", sum.MissesAbove)

			out := struct {
				RunID   uuid.UUID        `json:"run_id"`
				Params  coverage.Params  `json:"params"`
				Summary coverage.Summary `json:"summary"`
				Draws   []coverage.Draw  `json:"draws,omitempty"`
			}{RunID: runID, Params: res.Params, Summary: sum}
			if showIntervals {
				out.Draws = res.Draws
			}
			return a.emit(cmd, out, func(w io.Writer) {
				fmt.Fprintf(w, "run        %s\n", runID)
				fmt.Fprintf(w, "method     %s\np_true     %s\nn          %d\ngamma      %s\ntrials     %d\nseed       %d\n",
					params.Method, fixed(params.PTrue), params.N, fixed(params.Gamma), params.Trials, params.Seed)
				fmt.Fprintf(w, "coverage   %s (%d/%d)\nmiss low   %d\nmiss high  %d\n",
					fixed(sum.Coverage), sum.Hits, params.Trials, sum.MissesBelow, sum.MissesAbove)
				fmt.Fprintf(w, "width      mean %s  median %s  p05 %s  p95 %s\n",
					fixed(sum.MeanWidth), fixed(sum.MedianWidth), fixed(sum.P05Width), fixed(sum.P95Width))
				if showIntervals {
					fmt.Fprintln(w, "\n#     k    lower     upper     covers")
					for i, d := range res.Draws {
						fmt.Fprintf(w, "%-5d %-4d %s  %s  %t\n", i+1, d.K, fixed(d.Interval.Lower), fixed(d.Interval.Upper), d.Covers)
					}
				}
			})
		},
	}
	f := cmd.Flags()
	f.Float64Var(&p, "p", 0, "true success probability in [0,1]")
	f.IntVar(&n, "n", 50, "sample size per draw")
	f.Float64Var(&gamma, "gamma", 0.95, "confidence level in (0,1)")
	f.IntVarP(&trials, "trials", "m", 100, "number of simulated draws")
	f.Uint64Var(&seed, "seed", 1, "random seed")
	f.StringVar(&method, "method", "wilson", "estimator (wald, wilson, clopper-pearson)")
	f.BoolVar(&showIntervals, "show-intervals", false, "list every simulated interval")
	_ = cmd.MarkFlagRequired("p")
	return cmd
}
