package scenarios

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/kilianp07/co2dash/core/metrics"
	"github.com/kilianp07/co2dash/core/scenario"
	"github.com/kilianp07/co2dash/infra/metrics"
	"github.com/kilianp07/co2dash/internal/eventbus"
)

const tolerance = 1e-6

func RunScenario(t *testing.T, sc *Scenario) {
	s, err := sc.ToScenario()
	if err != nil {
		t.Fatalf("scenario %s: %v", sc.Name, err)
	}
	ev := scenario.Evaluate(s)

	checks := []struct {
		name      string
		got, want float64
	}{
		{"baseline", ev.Baseline.Total, sc.Expected.Baseline},
		{"post_total", ev.PostTotal, sc.Expected.PostTotal},
		{"reduction", ev.Reduction, sc.Expected.Reduction},
		{"fraction", ev.Fraction, sc.Expected.Fraction},
		{"breakdown sum", ev.Baseline.Breakdown.Sum(), ev.Baseline.Total},
	}
	for _, c := range checks {
		if diff := c.got - c.want; diff > tolerance || diff < -tolerance {
			t.Errorf("scenario %s %s: expected %v, got %v", sc.Name, c.name, c.want, c.got)
		}
	}

	want, err := sc.ExpectedAdvisories()
	if err != nil {
		t.Fatalf("scenario %s: %v", sc.Name, err)
	}
	if len(want) != len(ev.Recommendations) {
		t.Fatalf("scenario %s expected advisories %v, got %v", sc.Name, want, ev.Recommendations)
	}
	for i := range want {
		if want[i] != ev.Recommendations[i] {
			t.Errorf("scenario %s advisory %d: expected %q, got %q", sc.Name, i, want[i], ev.Recommendations[i])
		}
	}

	reg := prometheus.NewRegistry()
	sink, err := metrics.NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("prom sink: %v", err)
	}
	bus := eventbus.NewTyped[coremetrics.Event]()
	ctx := t.Context()
	done := metrics.StartEventCollector(ctx, bus, sink)
	bus.Publish(coremetrics.NewEstimateEvent(ev, time.Unix(0, 0)))
	bus.Close()
	<-done

	if n, err := testutil.GatherAndCount(reg, "co2dash_plant_emissions_tonnes"); err != nil || n != 4 {
		t.Errorf("scenario %s expected 4 emission series, got %d (%v)", sc.Name, n, err)
	}
}
