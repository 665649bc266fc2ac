package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yasi-python/propstat/pkg/decision"
	"github.com/yasi-python/propstat/pkg/metrics"
	"github.com/yasi-python/propstat/pkg/model"
	"github.com/yasi-python/propstat/pkg/power"
	"github.com/yasi-python/propstat/pkg/region"
	"github.com/yasi-python/propstat/pkg/stats"
)

// ruleFlags are the flags shared by region, power and decide.
type ruleFlags struct {
	n     int
	p0    float64
	alpha float64
	tail  string
}

func (r *ruleFlags) register(f *pflag.FlagSet) {
	f.IntVar(&r.n, "n", 50, "sample size")
	f.Float64Var(&r.p0, "p0", 0.5, "success probability under H0")
	f.Float64Var(&r.alpha, "alpha", 0.05, "significance level in (0,1)")
	f.StringVar(&r.tail, "tail", "upper", "rejection tail (lower, upper, two-sided)")
}

func (r *ruleFlags) rule(a *app, cmd *cobra.Command) (decision.Rule, error) {
	tail, err := decision.ParseTail(r.tail)
	if err != nil {
		return decision.Rule{}, err
	}
	return decision.Rule{
		N:     pick(cmd, "n", r.n, a.cfg.Defaults.N),
		P0:    r.p0,
		Alpha: pick(cmd, "alpha", r.alpha, a.cfg.Power.Alpha),
		Tail:  tail,
	}, nil
}

type regionOut struct {
	N        int     `json:"n"`
	Members  []int   `json:"members"`
	Shape    string  `json:"shape"`
	Notation string  `json:"notation"`
	Size     float64 `json:"size"`
}

func describe(rule decision.Rule, k region.Region, plain bool) regionOut {
	notation := region.Format(k, rule.N)
	if plain {
		notation = region.FormatPlain(k, rule.N)
	}
	return regionOut{
		N:        rule.N,
		Members:  k.Values(),
		Shape:    region.Classify(k, rule.N).Shape.String(),
		Notation: notation,
		Size:     power.Size(model.Binomial{N: rule.N, P: rule.P0}, k),
	}
}

func newRegionCmd(a *app) *cobra.Command {
	var (
		rf    ruleFlags
		plain bool
	)
	cmd := &cobra.Command{
		Use:   "region",
		Short: "Build a binomial rejection region and print it in interval notation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rule, err := rf.rule(a, cmd)
			if err != nil {
				return err
			}
			k, err := decision.Build(rule)
			if err != nil {
				return err
			}
			out := describe(rule, k, plain)
			a.log.Debug("region built", "n", rule.N, "p0", rule.P0, "alpha", rule.Alpha, "tail", rule.Tail, "size", out.Size)
			return a.emit(cmd, out, func(w io.Writer) {
				fmt.Fprintf(w, "%s\nshape  %s\nsize   %s\n", out.Notation, out.Shape, fixed(out.Size))
			})
		},
	}
	rf.register(cmd.Flags())
	cmd.Flags().BoolVar(&plain, "plain", false, "plain text instead of LaTeX")
	return cmd
}

func newPowerCmd(a *app) *cobra.Command {
	var (
		rf         ruleFlags
		points     int
		pMin, pMax float64
		mirrorP    float64
		sigma      float64
	)
	cmd := &cobra.Command{
		Use:   "power",
		Short: "Power curve of a binomial rejection region",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rule, err := rf.rule(a, cmd)
			if err != nil {
				return err
			}
			k, err := decision.Build(rule)
			if err != nil {
				return err
			}
			ps := stats.Grid(
				pick(cmd, "p-min", pMin, a.cfg.Power.PMin),
				pick(cmd, "p-max", pMax, a.cfg.Power.PMax),
				pick(cmd, "points", points, a.cfg.Power.GridPoints),
			)
			curve, err := power.Curve(model.BinomialFactory(rule.N), ps, k)
			if err != nil {
				return err
			}
			metrics.PowerEvaluations.Add(float64(len(curve)))

			var bars []power.Bar
			if cmd.Flags().Changed("mirror") {
				alt, err := model.NewBinomial(rule.N, mirrorP)
				if err != nil {
					return err
				}
				null := model.Binomial{N: rule.N, P: rule.P0}
				bars = power.Mirror(null, alt, k, pick(cmd, "sigma", sigma, a.cfg.Power.SigmaRange))
			}

			out := struct {
				Region regionOut     `json:"region"`
				Curve  []power.Point `json:"curve"`
				Mirror []power.Bar   `json:"mirror,omitempty"`
			}{describe(rule, k, true), curve, bars}
			return a.emit(cmd, out, func(w io.Writer) {
				fmt.Fprintf(w, "%s  (size %s)\n\np         power\n", out.Region.Notation, fixed(out.Region.Size))
				for _, pt := range curve {
					fmt.Fprintf(w, "%s  %s\n", fixed(pt.P), fixed(pt.Power))
				}
				if len(bars) > 0 {
					fmt.Fprintf(w, "\nk     H0         H1 (p=%s)  in K\n", fixed(mirrorP))
					for _, b := range bars {
						fmt.Fprintf(w, "%-5d %s  %s      %t\n", b.K, fixed(b.Null), fixed(b.Alt), b.InRegion)
					}
				}
			})
		},
	}
	rf.register(cmd.Flags())
	f := cmd.Flags()
	f.IntVar(&points, "points", 21, "number of alternative p values")
	f.Float64Var(&pMin, "p-min", 0, "smallest alternative p")
	f.Float64Var(&pMax, "p-max", 1, "largest alternative p")
	f.Float64Var(&mirrorP, "mirror", 0, "also list H0/H1 masses for this alternative p")
	f.Float64Var(&sigma, "sigma", 4, "half-width of the mirror window in H0 standard deviations")
	return cmd
}

func newDecideCmd(a *app) *cobra.Command {
	var (
		rf       ruleFlags
		observed int
	)
	cmd := &cobra.Command{
		Use:   "decide",
		Short: "Test an observed count against a binomial rejection region",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rule, err := rf.rule(a, cmd)
			if err != nil {
				return err
			}
			d, err := decision.Evaluate(decision.Input{Rule: rule, Observed: observed})
			if err != nil {
				return err
			}
			a.log.Info("decision", "observed", observed, "action", d.Action, "reason", d.Reason)
			return a.emit(cmd, d, func(w io.Writer) {
				fmt.Fprintf(w, "%s\nsize      %s\nobserved  %d\naction    %s (%s)\nestimate  %s\n",
					d.Notation, fixed(d.Size), observed, d.Action, d.Reason, d.Estimate)
			})
		},
	}
	rf.register(cmd.Flags())
	cmd.Flags().IntVar(&observed, "observed", 0, "observed number of successes")
	_ = cmd.MarkFlagRequired("observed")
	return cmd
}
