package emissions

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referencePlant() (PlantActivity, EmissionFactors) {
	return PlantActivity{
			AnnualProduction:  6000,
			AnnualCoal:        2400,
			AnnualElectricity: 1_200_000,
			ScrapPercent:      20,
		}, EmissionFactors{
			Coal:        2.5,
			Electricity: 0.0009,
			Process:     1.8,
		}
}

func TestEstimate_ReferencePlant(t *testing.T) {
	a, f := referencePlant()
	res := Estimate(a, f)

	assert.InDelta(t, 6000, res.Breakdown.Coal, 1e-9)
	assert.InDelta(t, 1080, res.Breakdown.Electricity, 1e-9)
	assert.InDelta(t, 8640, res.Breakdown.Process, 1e-9)
	assert.InDelta(t, 15720, res.Total, 1e-9)
}

func TestEstimate_TotalMatchesBreakdown(t *testing.T) {
	cases := []struct {
		name string
		a    PlantActivity
		f    EmissionFactors
	}{
		{"zero", PlantActivity{}, DefaultFactors()},
		{"alpha", MonthlyActivity{Production: 500, Coal: 200, Electricity: 100000, ScrapPercent: 20}.Annualize(), DefaultFactors()},
		{"large", PlantActivity{AnnualProduction: 3.2e6, AnnualCoal: 1.1e6, AnnualElectricity: 7.5e9, ScrapPercent: 35}, EmissionFactors{Coal: 2.42, Electricity: 0.00071, Process: 1.9}},
		{"full scrap", PlantActivity{AnnualProduction: 100, AnnualCoal: 10, AnnualElectricity: 1000, ScrapPercent: 100}, DefaultFactors()},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res := Estimate(c.a, c.f)
			sum := res.Breakdown.Sum()
			tol := 1e-9 * math.Max(1, math.Abs(sum))
			assert.InDelta(t, sum, res.Total, tol)
		})
	}
}

func TestEstimate_Linearity(t *testing.T) {
	a, f := referencePlant()
	base := Estimate(a, f).Breakdown
	const k = 3.5

	coal := a
	coal.AnnualCoal *= k
	assert.InDelta(t, base.Coal*k, Estimate(coal, f).Breakdown.Coal, 1e-9)

	elec := a
	elec.AnnualElectricity *= k
	assert.InDelta(t, base.Electricity*k, Estimate(elec, f).Breakdown.Electricity, 1e-6)

	prod := a
	prod.AnnualProduction *= k
	assert.InDelta(t, base.Process*k, Estimate(prod, f).Breakdown.Process, 1e-9)
}

func TestEstimate_FullScrapRemovesProcess(t *testing.T) {
	a, f := referencePlant()
	a.ScrapPercent = 100
	res := Estimate(a, f)
	assert.Zero(t, res.Breakdown.Process)
	assert.InDelta(t, 7080, res.Total, 1e-9)
}

func TestEstimate_NegativeInputsPropagate(t *testing.T) {
	res := Estimate(PlantActivity{AnnualCoal: -10}, DefaultFactors())
	assert.InDelta(t, -25, res.Total, 1e-12)
}

func TestMonthlyActivity_Annualize(t *testing.T) {
	got := MonthlyActivity{Production: 500, Coal: 200, Electricity: 100000, ScrapPercent: 20}.Annualize()
	require.Equal(t, PlantActivity{
		AnnualProduction:  6000,
		AnnualCoal:        2400,
		AnnualElectricity: 1_200_000,
		ScrapPercent:      20,
	}, got)
}

func TestBreakdown_EntriesOrder(t *testing.T) {
	b := Breakdown{Coal: 1, Electricity: 2, Process: 3}
	entries := b.Entries()
	require.Len(t, entries, 3)
	for i, s := range Sources {
		if entries[i].Source != s {
			t.Fatalf("entry %d: expected %s got %s", i, s, entries[i].Source)
		}
		if entries[i].Value != b.Get(s) {
			t.Fatalf("entry %d: value mismatch", i)
		}
	}
	assert.Equal(t, "electricity", SourceElectricity.String())
	assert.Zero(t, b.Get(Source(9)))
}
