package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const promNamespace = "weekday_cycle"

type Prometheus struct {
	Metrics *Metrics

	registry     *prometheus.Registry
	runs         prometheus.Counter
	runFailures  prometheus.Counter
	cycles       prometheus.Gauge
	finalCapital prometheus.Gauge
}

func NewPrometheus() *Prometheus {
	registry := prometheus.NewRegistry()
	runs := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: promNamespace,
		Name:      "runs_total",
		Help:      "Total number of backtest runs started.",
	})
	runFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: promNamespace,
		Name:      "run_failures_total",
		Help:      "Total number of backtest runs that returned an error.",
	})
	cycles := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: promNamespace,
		Name:      "cycles_last_run",
		Help:      "Number of buy/sell cycles in the last successful run.",
	})
	finalCapital := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: promNamespace,
		Name:      "final_capital_last_run",
		Help:      "Final capital of the last successful run.",
	})

	registry.MustRegister(runs, runFailures, cycles, finalCapital)

	return &Prometheus{
		Metrics: &Metrics{
			Runs:         runs,
			RunFailures:  runFailures,
			Cycles:       cycles,
			FinalCapital: finalCapital,
		},
		registry:     registry,
		runs:         runs,
		runFailures:  runFailures,
		cycles:       cycles,
		finalCapital: finalCapital,
	}
}

func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}
