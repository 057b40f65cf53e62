package metrics

type Counter interface {
	Inc()
}

type Gauge interface {
	Set(float64)
}

// Metrics tracks backtest runs in schedule mode.
type Metrics struct {
	Runs         Counter
	RunFailures  Counter
	Cycles       Gauge
	FinalCapital Gauge
}

type noopCounter struct{}

func (noopCounter) Inc() {}

type noopGauge struct{}

func (noopGauge) Set(float64) {}

func NewNoop() *Metrics {
	return &Metrics{
		Runs:         noopCounter{},
		RunFailures:  noopCounter{},
		Cycles:       noopGauge{},
		FinalCapital: noopGauge{},
	}
}
