package metrics

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

var (
	Intervals = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "propstat_intervals_total", Help: "Intervals computed",
	}, []string{"method"})
	CoverageTrials = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "propstat_coverage_trials_total", Help: "Simulated coverage draws",
	})
	CoverageRate = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "propstat_coverage_rate", Help: "Empirical coverage of the last simulation",
	})
	PowerEvaluations = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "propstat_power_evaluations_total", Help: "Power function evaluations",
	})
	CommandDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name: "propstat_command_duration_seconds", Help: "CLI command wall time",
		Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
	}, []string{"command"})
)

func MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(Intervals, CoverageTrials, CoverageRate, PowerEvaluations, CommandDuration)
}

// Dump writes everything g gathers in the Prometheus text format.
func Dump(w io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.FmtText)
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
