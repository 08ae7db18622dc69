package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector exposes Prometheus metrics for the planning engine. Strategy
// fitting failures are recovered internally (they fall back to the stub), so
// counters are the only externally visible trace of them.
type Collector struct {
	registry         *prometheus.Registry
	fitFailures      *prometheus.CounterVec
	modelChosen      *prometheus.CounterVec
	forecastRequests prometheus.Counter
	planRequests     prometheus.Counter
	scenarioRequests prometheus.Counter
}

func NewCollector() (*Collector, error) {
	registry := prometheus.NewRegistry()

	fitFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ibp",
		Subsystem: "forecast",
		Name:      "fit_failures_total",
		Help:      "Model fitting failures per strategy, all recovered by fallback.",
	}, []string{"strategy"})

	modelChosen := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ibp",
		Subsystem: "forecast",
		Name:      "model_chosen_total",
		Help:      "Winning strategy counts from per-SKU model selection.",
	}, []string{"strategy"})

	forecastRequests := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ibp",
		Subsystem: "engine",
		Name:      "forecast_requests_total",
		Help:      "Total forecast generation requests.",
	})

	planRequests := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ibp",
		Subsystem: "engine",
		Name:      "plan_requests_total",
		Help:      "Total supply plan generation requests.",
	})

	scenarioRequests := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ibp",
		Subsystem: "engine",
		Name:      "scenario_requests_total",
		Help:      "Total scenario evaluation requests.",
	})

	for _, c := range []prometheus.Collector{
		fitFailures, modelChosen, forecastRequests, planRequests, scenarioRequests,
	} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	return &Collector{
		registry:         registry,
		fitFailures:      fitFailures,
		modelChosen:      modelChosen,
		forecastRequests: forecastRequests,
		planRequests:     planRequests,
		scenarioRequests: scenarioRequests,
	}, nil
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *Collector) ObserveFitFailure(strategy string) {
	if c == nil {
		return
	}
	c.fitFailures.WithLabelValues(strategy).Inc()
}

func (c *Collector) ObserveModelChosen(strategy string) {
	if c == nil {
		return
	}
	c.modelChosen.WithLabelValues(strategy).Inc()
}

func (c *Collector) ObserveForecastRequest() {
	if c == nil {
		return
	}
	c.forecastRequests.Inc()
}

func (c *Collector) ObservePlanRequest() {
	if c == nil {
		return
	}
	c.planRequests.Inc()
}

func (c *Collector) ObserveScenarioRequest() {
	if c == nil {
		return
	}
	c.scenarioRequests.Inc()
}
