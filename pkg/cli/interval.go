package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yasi-python/propstat/pkg/metrics"
	"github.com/yasi-python/propstat/pkg/stats"
)

func newQuantileCmd(a *app) *cobra.Command {
	var gamma float64
	cmd := &cobra.Command{
		Use:   "quantile",
		Short: "Two-sided normal critical value for a confidence level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g := pick(cmd, "gamma", gamma, a.cfg.Defaults.Gamma)
			z, err := stats.Quantile(g)
			if err != nil {
				return err
			}
			out := struct {
				Gamma float64 `json:"gamma"`
				Z     float64 `json:"z"`
			}{g, z}
			return a.emit(cmd, out, func(w io.Writer) {
				fmt.Fprintf(w, "gamma  %s\nz      %s\n", fixed(g), fixed(z))
			})
		},
	}
	cmd.Flags().Float64Var(&gamma, "gamma", 0.95, "confidence level in (0,1)")
	return cmd
}

type intervalOut struct {
	Method string         `json:"method"`
	H      float64        `json:"h"`
	K      *int           `json:"k,omitempty"`
	N      int            `json:"n"`
	Gamma  float64        `json:"gamma"`
	CI     stats.Interval `json:"interval"`
	Width  float64        `json:"width"`
}

func newIntervalCmd(a *app) *cobra.Command {
	var (
		method string
		h      float64
		k, n   int
		gamma  float64
	)
	cmd := &cobra.Command{
		Use:   "interval",
		Short: "Confidence interval for an observed proportion (--h) or count (--k)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := stats.ParseMethod(pick(cmd, "method", method, a.cfg.Defaults.Method))
			if err != nil {
				return err
			}
			size := pick(cmd, "n", n, a.cfg.Defaults.N)
			g := pick(cmd, "gamma", gamma, a.cfg.Defaults.Gamma)

			out := intervalOut{Method: string(m), N: size, Gamma: g}
			switch {
			case cmd.Flags().Changed("k"):
				out.K = &k
				out.CI, err = stats.FromCount(m, k, size, g)
				if size > 0 {
					out.H = float64(k) / float64(size)
				}
			case cmd.Flags().Changed("h"):
				out.H = h
				out.CI, err = stats.Compute(m, h, size, g)
			default:
				return errors.New("one of --h or --k is required")
			}
			if err != nil {
				return err
			}
			out.Width = out.CI.Width()
			metrics.Intervals.WithLabelValues(string(m)).Inc()
			a.log.Debug("interval computed", "method", m, "n", size, "gamma", g, "lower", out.CI.Lower, "upper", out.CI.Upper)

			return a.emit(cmd, out, func(w io.Writer) {
				fmt.Fprintf(w, "method  %s\nh       %s\nn       %d\ngamma   %s\nlower   %s\nupper   %s\nwidth   %s\n",
					out.Method, fixed(out.H), size, fixed(g), fixed(out.CI.Lower), fixed(out.CI.Upper), fixed(out.Width))
			})
		},
	}
	f := cmd.Flags()
	f.StringVarP(&method, "method", "m", "wilson", "estimator (wald, wilson, clopper-pearson)")
	f.Float64Var(&h, "h", 0, "observed proportion in [0,1]")
	f.IntVar(&k, "k", 0, "observed count in [0,n]")
	f.IntVar(&n, "n", 50, "sample size")
	f.Float64Var(&gamma, "gamma", 0.95, "confidence level in (0,1)")
	cmd.MarkFlagsMutuallyExclusive("h", "k")
	return cmd
}

func newPredictCmd(a *app) *cobra.Command {
	var (
		p          float64
		n          int
		gamma      float64
		bandPoints int
	)
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Prediction interval for the observed proportion given a known p",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			size := pick(cmd, "n", n, a.cfg.Defaults.N)
			g := pick(cmd, "gamma", gamma, a.cfg.Defaults.Gamma)
			pi, err := stats.PredictionInterval(p, size, g)
			if err != nil {
				return err
			}
			var band []stats.BandPoint
			if bandPoints > 0 {
				if band, err = stats.PredictionBand(size, g, stats.Grid(0, 1, bandPoints)); err != nil {
					return err
				}
			}
			metrics.Intervals.WithLabelValues("prediction").Inc()

			out := struct {
				P     float64           `json:"p"`
				N     int               `json:"n"`
				Gamma float64           `json:"gamma"`
				PI    stats.Interval    `json:"interval"`
				Band  []stats.BandPoint `json:"band,omitempty"`
			}{p, size, g, pi, band}
			return a.emit(cmd, out, func(w io.Writer) {
				fmt.Fprintf(w, "p       %s\nn       %d\ngamma   %s\nlower   %s\nupper   %s\n",
					fixed(p), size, fixed(g), fixed(pi.Lower), fixed(pi.Upper))
				if len(band) > 0 {
					fmt.Fprintln(w, "\np         lower      upper")
					for _, bp := range band {
						fmt.Fprintf(w, "%s  %s  %s\n", fixed(bp.P), fixed(bp.Lower), fixed(bp.Upper))
					}
				}
			})
		},
	}
	f := cmd.Flags()
	f.Float64Var(&p, "p", 0, "known success probability in [0,1]")
	f.IntVar(&n, "n", 50, "sample size")
	f.Float64Var(&gamma, "gamma", 0.95, "confidence level in (0,1)")
	f.IntVar(&bandPoints, "band-points", 0, "also evaluate the prediction band on this many points over [0,1]")
	_ = cmd.MarkFlagRequired("p")
	return cmd
}
