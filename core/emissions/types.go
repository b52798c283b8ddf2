package emissions

import "fmt"

// Default emission factors used when the caller does not provide its own.
const (
	DefaultCoalFactor        = 2.5    // tCO2 per tonne of coal
	DefaultProcessFactor     = 1.8    // tCO2 per tonne of steel before scrap credit
	DefaultElectricityFactor = 0.0009 // tCO2 per kWh
)

// MonthsPerYear converts monthly plant inputs into annual figures.
const MonthsPerYear = 12

// EmissionFactors converts activity quantities into tonnes of CO2.
type EmissionFactors struct {
	Coal        float64 `json:"coal"`
	Electricity float64 `json:"electricity"`
	Process     float64 `json:"process"`
}

// DefaultFactors returns the built-in factor set.
func DefaultFactors() EmissionFactors {
	return EmissionFactors{
		Coal:        DefaultCoalFactor,
		Electricity: DefaultElectricityFactor,
		Process:     DefaultProcessFactor,
	}
}

// PlantActivity holds annual plant quantities.
// ScrapPercent is expected in [0,100] but is not clamped.
type PlantActivity struct {
	AnnualProduction  float64 `json:"annual_production"`
	AnnualCoal        float64 `json:"annual_coal"`
	AnnualElectricity float64 `json:"annual_electricity"`
	ScrapPercent      float64 `json:"scrap_percent"`
}

// MonthlyActivity holds the figures an operator reads off a monthly report.
type MonthlyActivity struct {
	Production   float64 `json:"production"`
	Coal         float64 `json:"coal"`
	Electricity  float64 `json:"electricity"`
	ScrapPercent float64 `json:"scrap_percent"`
}

// Annualize scales the monthly quantities to a full year. The scrap share is
// a ratio and is kept as is.
func (m MonthlyActivity) Annualize() PlantActivity {
	return PlantActivity{
		AnnualProduction:  m.Production * MonthsPerYear,
		AnnualCoal:        m.Coal * MonthsPerYear,
		AnnualElectricity: m.Electricity * MonthsPerYear,
		ScrapPercent:      m.ScrapPercent,
	}
}

// Source identifies the origin of an emission contribution.
type Source int

const (
	SourceCoal Source = iota
	SourceElectricity
	SourceProcess
)

// Sources lists every source in breakdown order.
var Sources = [...]Source{SourceCoal, SourceElectricity, SourceProcess}

func (s Source) String() string {
	switch s {
	case SourceCoal:
		return "coal"
	case SourceElectricity:
		return "electricity"
	case SourceProcess:
		return "process"
	default:
		return fmt.Sprintf("source(%d)", int(s))
	}
}

// Breakdown splits a total into its three contributions.
type Breakdown struct {
	Coal        float64 `json:"coal"`
	Electricity float64 `json:"electricity"`
	Process     float64 `json:"process"`
}

// Entry is a single source/value pair of a Breakdown.
type Entry struct {
	Source Source
	Value  float64
}

// Get returns the contribution of s. Unknown sources yield zero.
func (b Breakdown) Get(s Source) float64 {
	switch s {
	case SourceCoal:
		return b.Coal
	case SourceElectricity:
		return b.Electricity
	case SourceProcess:
		return b.Process
	default:
		return 0
	}
}

// Sum adds the three contributions.
func (b Breakdown) Sum() float64 { return b.Coal + b.Electricity + b.Process }

// Entries returns the contributions in coal, electricity, process order.
func (b Breakdown) Entries() []Entry {
	out := make([]Entry, 0, len(Sources))
	for _, s := range Sources {
		out = append(out, Entry{Source: s, Value: b.Get(s)})
	}
	return out
}

// Result is the outcome of an estimate. Total always equals Breakdown.Sum().
type Result struct {
	Total     float64   `json:"total"`
	Breakdown Breakdown `json:"breakdown"`
}
