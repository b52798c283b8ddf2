package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/co2dash/core/emissions"
	"github.com/kilianp07/co2dash/core/regions"
)

func referenceScenario() Scenario {
	return Scenario{
		Plant:   "Reference",
		Region:  "India",
		Monthly: emissions.MonthlyActivity{Production: 500, Coal: 200, Electricity: 100000, ScrapPercent: 20},
		Factors: emissions.EmissionFactors{Coal: 2.5, Electricity: 0.0009, Process: 1.8},
		Actions: emissions.FlagsOf(emissions.ActionScrap, emissions.ActionHeat),
	}
}

func TestEvaluate_Reference(t *testing.T) {
	ev := Evaluate(referenceScenario())
	assert.InDelta(t, 15720, ev.Baseline.Total, 1e-9)
	assert.InDelta(t, 2672.4, ev.Reduction, 1e-9)
	assert.InDelta(t, 13047.6, ev.PostTotal, 1e-9)
	assert.InDelta(t, 0.17, ev.Fraction, 1e-12)
	assert.Equal(t, []emissions.Action{emissions.ActionScrap, emissions.ActionHeat}, ev.Actions)
	assert.Equal(t, []string{"Use more scrap steel", "Recover wasted heat"}, ev.ActionLabels())
	assert.Equal(t, []string{emissions.Advisory(emissions.SourceProcess)}, ev.Recommendations)
	assert.Nil(t, ev.Adjusted)
}

func TestEvaluate_Sensitivity(t *testing.T) {
	sc := referenceScenario()
	sc.Sensitivity = emissions.Sensitivity{Electricity: 50}
	ev := Evaluate(sc)
	require.NotNil(t, ev.Adjusted)
	assert.InDelta(t, 15720+540, ev.Adjusted.Total, 1e-9)
	assert.InDelta(t, 15720, ev.Baseline.Total, 1e-9)
}

func TestEvaluate_SweepUsesAnnualActivity(t *testing.T) {
	ev := Evaluate(referenceScenario())
	pts := emissions.Collect(ev.Sweep(emissions.ParamElectricity, []float64{0}))
	require.Len(t, pts, 1)
	assert.InDelta(t, ev.Baseline.Total, pts[0].Total, 1e-9)
}

func TestScenario_Factors(t *testing.T) {
	f := Default().Factors
	assert.Equal(t, emissions.DefaultCoalFactor, f.Coal)
	assert.Equal(t, emissions.DefaultProcessFactor, f.Process)
	assert.Equal(t, 0.00071, f.Electricity)

	sc, err := Default().WithRegion("usa (avg)")
	require.NoError(t, err)
	assert.Equal(t, "USA (avg)", sc.Region)
	assert.Equal(t, 0.00038, sc.Factors.Electricity)

	_, err = sc.WithRegion("Mars")
	assert.ErrorIs(t, err, regions.ErrUnknownRegion)
}

func TestEvaluate_ZeroFactorsAreKept(t *testing.T) {
	sc := Default()
	sc.Factors.Coal = 0
	ev := Evaluate(sc)
	assert.Zero(t, ev.Factors.Coal)
	assert.Zero(t, ev.Baseline.Breakdown.Coal)
	assert.InDelta(t, 15492-6000, ev.Baseline.Total, 1e-9)

	sc = Default()
	sc.Factors = emissions.EmissionFactors{}
	ev = Evaluate(sc)
	assert.Zero(t, ev.Baseline.Total)
	assert.Equal(t, emissions.EmissionFactors{}, ev.Factors)
}
