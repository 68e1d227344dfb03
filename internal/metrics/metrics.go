// Package metrics exposes Prometheus counters for the climate controller.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ac_remote"

// Result label values for CommandsTotal.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Metrics holds the collectors registered for one controller.
type Metrics struct {
	gatherer prometheus.Gatherer

	CommandsTotal     *prometheus.CounterVec
	SuppressedTotal   prometheus.Counter
	StateChangesTotal *prometheus.CounterVec
	TargetTemperature prometheus.Gauge
	LastSendSuccess   prometheus.Gauge
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return NewWithRegistry(reg, reg)
}

// NewWithRegistry registers the collectors on reg and serves them from g.
func NewWithRegistry(reg prometheus.Registerer, g prometheus.Gatherer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		gatherer: g,
		CommandsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "commands_total",
				Help:      "Commands posted to the AC controller by outcome",
			},
			[]string{"result"},
		),
		SuppressedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "commands_suppressed_total",
				Help:      "Explicit changes held back by min_cycle_duration",
			},
		),
		StateChangesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "state_changes_total",
				Help:      "Published state changes by reason",
			},
			[]string{"reason"},
		),
		TargetTemperature: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "target_temperature_celsius",
				Help:      "Current desired target temperature",
			},
		),
		LastSendSuccess: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_send_success",
				Help:      "1 if the last command was accepted by the device",
			},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// ObserveCommand records a dispatched command.
func (m *Metrics) ObserveCommand(ok bool) {
	if ok {
		m.CommandsTotal.WithLabelValues(ResultSuccess).Inc()
		m.LastSendSuccess.Set(1)
		return
	}
	m.CommandsTotal.WithLabelValues(ResultFailure).Inc()
	m.LastSendSuccess.Set(0)
}
