// Package scenarios runs end-to-end emission checks described in YAML
// files against the estimator, the intervention engine and the metrics
// sinks.
package scenarios

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/co2dash/core/emissions"
	"github.com/kilianp07/co2dash/core/scenario"
	"github.com/kilianp07/co2dash/internal/plants"
)

// FactorsDef overrides the scenario factors. Absent keys keep the
// defaults and the region grid factor.
type FactorsDef struct {
	Coal        *float64 `yaml:"coal"`
	Electricity *float64 `yaml:"electricity"`
	Process     *float64 `yaml:"process"`
}

type Expected struct {
	Baseline   float64  `yaml:"baseline"`
	PostTotal  float64  `yaml:"post_total"`
	Reduction  float64  `yaml:"reduction"`
	Fraction   float64  `yaml:"fraction"`
	Advisories []string `yaml:"advisories"`
}

type Scenario struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description,omitempty"`
	Plant       plants.Plant `yaml:"plant"`
	Factors     FactorsDef   `yaml:"factors"`
	Expected    Expected     `yaml:"expected"`
}

// Load reads and checks one scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if sc.Name == "" {
		return nil, fmt.Errorf("%s: scenario name is required", path)
	}
	if _, err := sc.ToScenario(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &sc, nil
}

// ToScenario builds the session scenario.
func (s *Scenario) ToScenario() (scenario.Scenario, error) {
	sc, err := s.Plant.Scenario(scenario.Default())
	if err != nil {
		return sc, err
	}
	for _, o := range []struct {
		v   *float64
		dst *float64
	}{
		{s.Factors.Coal, &sc.Factors.Coal},
		{s.Factors.Electricity, &sc.Factors.Electricity},
		{s.Factors.Process, &sc.Factors.Process},
	} {
		if o.v != nil {
			*o.dst = *o.v
		}
	}
	return sc, nil
}

// ExpectedAdvisories maps source names to advisory texts.
func (s *Scenario) ExpectedAdvisories() ([]string, error) {
	out := make([]string, 0, len(s.Expected.Advisories))
	for _, name := range s.Expected.Advisories {
		src, err := parseSource(name)
		if err != nil {
			return nil, err
		}
		out = append(out, emissions.Advisory(src))
	}
	return out, nil
}

func parseSource(name string) (emissions.Source, error) {
	for _, s := range emissions.Sources {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown source %q", name)
}
