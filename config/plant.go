package config

import (
	"fmt"

	"github.com/kilianp07/co2dash/core/emissions"
	"github.com/kilianp07/co2dash/core/regions"
	"github.com/kilianp07/co2dash/core/scenario"
)

// PlantConfig seeds the inputs of a new session.
type PlantConfig struct {
	Name string `json:"name"`
	// Region selects the grid electricity factor.
	Region string `json:"region"`
	// Monthly production in tonnes of steel.
	Production float64 `json:"production"`
	// Monthly coal consumption in tonnes.
	Coal float64 `json:"coal"`
	// Monthly electricity use in kWh.
	Electricity  float64  `json:"electricity"`
	ScrapPercent float64  `json:"scrap_percent"`
	Actions      []string `json:"actions"`
}

// SetDefaults fills an empty plant with the sample figures.
func (c *PlantConfig) SetDefaults() {
	def := scenario.Default()
	if c.Name == "" {
		c.Name = def.Plant
	}
	if c.Region == "" {
		c.Region = def.Region
	}
	if c.Production == 0 && c.Coal == 0 && c.Electricity == 0 {
		c.Production = def.Monthly.Production
		c.Coal = def.Monthly.Coal
		c.Electricity = def.Monthly.Electricity
		if c.ScrapPercent == 0 {
			c.ScrapPercent = def.Monthly.ScrapPercent
		}
	}
}

// Validate rejects inputs the estimator would accept but an operator
// cannot mean.
func (c PlantConfig) Validate() error {
	if _, err := regions.Lookup(c.Region); err != nil {
		return err
	}
	if c.Production < 0 || c.Coal < 0 || c.Electricity < 0 {
		return fmt.Errorf("monthly quantities must be non-negative")
	}
	if c.ScrapPercent < 0 || c.ScrapPercent > 100 {
		return fmt.Errorf("scrap_percent must be within [0,100], got %v", c.ScrapPercent)
	}
	if _, err := emissions.ParseActions(c.Actions); err != nil {
		return err
	}
	return nil
}

// FactorsConfig overrides the emission factors. An absent key keeps the
// default; an absent electricity factor follows the selected region.
// An explicit zero is kept.
type FactorsConfig struct {
	Coal        *float64 `json:"coal"`
	Electricity *float64 `json:"electricity"`
	Process     *float64 `json:"process"`
}

// SetDefaults applies the built-in coal and process factors.
func (c *FactorsConfig) SetDefaults() {
	if c.Coal == nil {
		c.Coal = ptr(emissions.DefaultCoalFactor)
	}
	if c.Process == nil {
		c.Process = ptr(emissions.DefaultProcessFactor)
	}
}

// Validate checks that factors are non-negative.
func (c FactorsConfig) Validate() error {
	for _, v := range []*float64{c.Coal, c.Electricity, c.Process} {
		if v != nil && *v < 0 {
			return fmt.Errorf("emission factors must be non-negative")
		}
	}
	return nil
}

// Resolve returns the factors for region, filling absent entries.
func (c FactorsConfig) Resolve(region string) emissions.EmissionFactors {
	return emissions.EmissionFactors{
		Coal:        valueOr(c.Coal, emissions.DefaultCoalFactor),
		Electricity: valueOr(c.Electricity, regions.Factor(region)),
		Process:     valueOr(c.Process, emissions.DefaultProcessFactor),
	}
}

func ptr(v float64) *float64 { return &v }

func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// Scenario builds the starting scenario from the plant and factor sections.
func (c *Config) Scenario() scenario.Scenario {
	flags, _ := emissions.ParseActions(c.Plant.Actions)
	return scenario.Scenario{
		Plant:  c.Plant.Name,
		Region: c.Plant.Region,
		Monthly: emissions.MonthlyActivity{
			Production:   c.Plant.Production,
			Coal:         c.Plant.Coal,
			Electricity:  c.Plant.Electricity,
			ScrapPercent: c.Plant.ScrapPercent,
		},
		Factors: c.Factors.Resolve(c.Plant.Region),
		Actions: flags,
	}
}
