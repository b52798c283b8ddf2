package metrics

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/co2dash/core/metrics"
)

// PromSink exposes the latest estimate of every plant as Prometheus gauges.
type PromSink struct {
	estimates   *prometheus.CounterVec
	emissions   *prometheus.GaugeVec
	post        *prometheus.GaugeVec
	reduction   *prometheus.GaugeVec
	sensitivity *prometheus.GaugeVec
	plants      prometheus.Gauge
}

// NewPromSink registers the emission metrics on the default registerer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer. Metrics
// already registered by a previous sink are reused.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	var err error
	s := &PromSink{}
	if s.estimates, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "co2dash_estimates_total",
		Help: "Number of emission estimates recorded per plant",
	}, []string{"plant"})); err != nil {
		return nil, err
	}
	if s.emissions, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "co2dash_plant_emissions_tonnes",
		Help: "Baseline annual emissions per plant and source in tCO2",
	}, []string{"plant", "source"})); err != nil {
		return nil, err
	}
	if s.post, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "co2dash_plant_post_action_tonnes",
		Help: "Annual emissions after the selected actions in tCO2",
	}, []string{"plant"})); err != nil {
		return nil, err
	}
	if s.reduction, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "co2dash_plant_reduction_tonnes",
		Help: "Annual reduction of the selected actions in tCO2",
	}, []string{"plant"})); err != nil {
		return nil, err
	}
	if s.sensitivity, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "co2dash_sensitivity_total_tonnes",
		Help: "Total emissions for a perturbed input",
	}, []string{"plant", "parameter", "delta"})); err != nil {
		return nil, err
	}
	if s.plants, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "co2dash_compared_plants",
		Help: "Number of plants in the comparison registry",
	})); err != nil {
		return nil, err
	}
	return s, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordEstimate sets the per-source gauges of the plant.
func (s *PromSink) RecordEstimate(ev coremetrics.EstimateEvent) error {
	s.estimates.WithLabelValues(ev.Plant).Inc()
	for _, e := range ev.Baseline.Breakdown.Entries() {
		s.emissions.WithLabelValues(ev.Plant, e.Source.String()).Set(e.Value)
	}
	s.emissions.WithLabelValues(ev.Plant, "total").Set(ev.Baseline.Total)
	s.post.WithLabelValues(ev.Plant).Set(ev.PostTotal)
	s.reduction.WithLabelValues(ev.Plant).Set(ev.Reduction)
	return nil
}

// RecordSweep replaces the sensitivity curve of the plant and parameter.
func (s *PromSink) RecordSweep(ev coremetrics.SweepEvent) error {
	s.sensitivity.DeletePartialMatch(prometheus.Labels{"plant": ev.Plant, "parameter": ev.Parameter.String()})
	for _, p := range ev.Points {
		s.sensitivity.WithLabelValues(ev.Plant, ev.Parameter.String(), strconv.FormatFloat(p.Delta, 'f', -1, 64)).Set(p.Total)
	}
	return nil
}

// RecordPlantCount sets the comparison registry size.
func (s *PromSink) RecordPlantCount(n int) error {
	s.plants.Set(float64(n))
	return nil
}
