// Package scenario composes the emissions core into the view a dashboard
// works with: the operator inputs, the evaluated results and a registry of
// plants kept for side-by-side comparison.
package scenario

import (
	"iter"
	"strings"

	"github.com/kilianp07/co2dash/core/emissions"
	"github.com/kilianp07/co2dash/core/regions"
)

// Scenario is the full set of operator inputs for one plant.
// Factors are used as given; Default and WithRegion seed them.
type Scenario struct {
	Plant       string                    `json:"plant"`
	Region      string                    `json:"region"`
	Monthly     emissions.MonthlyActivity `json:"monthly"`
	Factors     emissions.EmissionFactors `json:"factors"`
	Actions     emissions.Flags           `json:"actions"`
	Sensitivity emissions.Sensitivity     `json:"sensitivity"`
}

// Default returns the starting inputs of a new session.
func Default() Scenario {
	r := regions.Default()
	return Scenario{
		Plant:   "My Plant",
		Region:  r.Name,
		Monthly: emissions.MonthlyActivity{Production: 500, Coal: 200, Electricity: 100000, ScrapPercent: 20},
		Factors: emissions.EmissionFactors{
			Coal:        emissions.DefaultCoalFactor,
			Electricity: r.Factor,
			Process:     emissions.DefaultProcessFactor,
		},
	}
}

// WithRegion switches region and reseeds the electricity factor.
func (s Scenario) WithRegion(name string) (Scenario, error) {
	r, err := regions.Lookup(name)
	if err != nil {
		return s, err
	}
	s.Region = r.Name
	s.Factors.Electricity = r.Factor
	return s, nil
}

// PlantName returns the trimmed plant name.
func (s Scenario) PlantName() string { return strings.TrimSpace(s.Plant) }

// Evaluation is a Scenario run through the estimator and intervention engine.
type Evaluation struct {
	Scenario        Scenario                  `json:"scenario"`
	Factors         emissions.EmissionFactors `json:"factors"`
	Activity        emissions.PlantActivity   `json:"activity"`
	Baseline        emissions.Result          `json:"baseline"`
	PostTotal       float64                   `json:"post_total"`
	Reduction       float64                   `json:"reduction"`
	Fraction        float64                   `json:"fraction"`
	Actions         []emissions.Action        `json:"actions"`
	Recommendations []string                  `json:"recommendations"`
	// Adjusted is the baseline under the sensitivity deltas, nil when none are set.
	Adjusted *emissions.Result `json:"adjusted,omitempty"`
}

// Evaluate computes every figure shown for a scenario.
func Evaluate(s Scenario) Evaluation {
	f := s.Factors
	a := s.Monthly.Annualize()
	base := emissions.Estimate(a, f)
	post, red := emissions.ApplyInterventions(base.Total, s.Actions)
	ev := Evaluation{
		Scenario:        s,
		Factors:         f,
		Activity:        a,
		Baseline:        base,
		PostTotal:       post,
		Reduction:       red,
		Fraction:        s.Actions.Fraction(),
		Actions:         s.Actions.Selected(),
		Recommendations: emissions.Recommend(base.Breakdown),
	}
	if !s.Sensitivity.IsZero() {
		adj := emissions.Estimate(s.Sensitivity.Apply(a), f)
		ev.Adjusted = &adj
	}
	return ev
}

// Sweep runs a one-parameter sensitivity sweep around the evaluated activity.
func (e Evaluation) Sweep(p emissions.Parameter, deltas []float64) iter.Seq2[float64, float64] {
	return emissions.Sweep(e.Activity, e.Factors, p, deltas)
}

// ActionLabels returns the English labels of the selected actions.
func (e Evaluation) ActionLabels() []string {
	out := make([]string, len(e.Actions))
	for i, a := range e.Actions {
		out[i] = a.Label()
	}
	return out
}

// Snapshot condenses the evaluation for the plant comparison.
func (e Evaluation) Snapshot(name string) Snapshot {
	return Snapshot{
		Plant:     name,
		Region:    e.Scenario.Region,
		Baseline:  e.Baseline.Total,
		PostTotal: e.PostTotal,
		Reduction: e.Reduction,
		Breakdown: e.Baseline.Breakdown,
	}
}
