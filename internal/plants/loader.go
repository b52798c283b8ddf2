// Package plants loads plant definitions from CSV or YAML files for the
// multi-plant comparison.
package plants

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/co2dash/core/emissions"
	"github.com/kilianp07/co2dash/core/scenario"
)

var (
	ErrMissingColumn = errors.New("missing column")
	ErrUnknownFormat = errors.New("unknown plant file format")
)

// Plant is one row of a plant file. Quantities are monthly.
type Plant struct {
	Name         string   `yaml:"name"`
	Region       string   `yaml:"region,omitempty"`
	Production   float64  `yaml:"production"`
	Coal         float64  `yaml:"coal"`
	Electricity  float64  `yaml:"electricity"`
	ScrapPercent float64  `yaml:"scrap_percent"`
	Actions      []string `yaml:"actions,omitempty"`
}

// Scenario applies the plant over base. Region and actions fall back to
// the ones of base when empty.
func (p Plant) Scenario(base scenario.Scenario) (scenario.Scenario, error) {
	sc := base
	if p.Region != "" && !strings.EqualFold(p.Region, base.Region) {
		var err error
		if sc, err = base.WithRegion(p.Region); err != nil {
			return sc, fmt.Errorf("plant %q: %w", p.Name, err)
		}
	}
	sc.Plant = p.Name
	sc.Monthly = emissions.MonthlyActivity{
		Production:   p.Production,
		Coal:         p.Coal,
		Electricity:  p.Electricity,
		ScrapPercent: p.ScrapPercent,
	}
	if len(p.Actions) > 0 {
		flags, err := emissions.ParseActions(p.Actions)
		if err != nil {
			return sc, fmt.Errorf("plant %q: %w", p.Name, err)
		}
		sc.Actions = flags
	}
	return sc, nil
}

type file struct {
	Plants []Plant `yaml:"plants"`
}

// Load reads a .csv, .yaml or .yml plant file.
func Load(path string) ([]Plant, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(f)
	case ".yaml", ".yml":
		return LoadYAML(f)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
}

// LoadYAML decodes a document with a top-level plants list.
func LoadYAML(r io.Reader) ([]Plant, error) {
	var doc file
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode plants: %w", err)
	}
	return doc.Plants, nil
}

type column int

const (
	colName column = iota
	colProduction
	colCoal
	colElectricity
	colScrap
	colRegion
	colActions
)

var required = []column{colName, colProduction, colCoal, colElectricity, colScrap}

var columnNames = map[column]string{
	colName:        "plant",
	colProduction:  "production",
	colCoal:        "coal",
	colElectricity: "electricity",
	colScrap:       "scrap",
	colRegion:      "region",
	colActions:     "actions",
}

// headerColumn maps a header cell to a column. Both short names and the
// descriptive headers of the sample file are accepted, e.g.
// "Monthly Production (tons)" or "Scrap Steel (%)".
func headerColumn(h string) (column, bool) {
	h = strings.ToLower(strings.TrimSpace(h))
	switch {
	case h == "plant" || h == "name":
		return colName, true
	case strings.Contains(h, "production"):
		return colProduction, true
	case strings.Contains(h, "coal"):
		return colCoal, true
	case strings.Contains(h, "electricity"):
		return colElectricity, true
	case strings.Contains(h, "scrap"):
		return colScrap, true
	case h == "region":
		return colRegion, true
	case h == "actions":
		return colActions, true
	}
	return 0, false
}

// LoadCSV reads a header row followed by one plant per row. Actions are
// separated by semicolons.
func LoadCSV(r io.Reader) ([]Plant, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := map[column]int{}
	for i, h := range header {
		if c, ok := headerColumn(h); ok {
			if _, dup := idx[c]; !dup {
				idx[c] = i
			}
		}
	}
	for _, c := range required {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, columnNames[c])
		}
	}

	var out []Plant
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		p := Plant{Name: strings.TrimSpace(rec[idx[colName]])}
		nums := []struct {
			c   column
			dst *float64
		}{
			{colProduction, &p.Production},
			{colCoal, &p.Coal},
			{colElectricity, &p.Electricity},
			{colScrap, &p.ScrapPercent},
		}
		for _, n := range nums {
			raw := strings.TrimSpace(rec[idx[n.c]])
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d %s: %w", line, columnNames[n.c], err)
			}
			*n.dst = v
		}
		if i, ok := idx[colRegion]; ok {
			p.Region = strings.TrimSpace(rec[i])
		}
		if i, ok := idx[colActions]; ok && strings.TrimSpace(rec[i]) != "" {
			for _, a := range strings.Split(rec[i], ";") {
				p.Actions = append(p.Actions, strings.TrimSpace(a))
			}
		}
		out = append(out, p)
	}
	return out, nil
}

// Compare evaluates every plant over base and saves the results in reg,
// in file order.
func Compare(list []Plant, base scenario.Scenario, reg *scenario.Registry) error {
	for _, p := range list {
		sc, err := p.Scenario(base)
		if err != nil {
			return err
		}
		if err := reg.Add(scenario.Evaluate(sc).Snapshot(p.Name)); err != nil {
			return fmt.Errorf("save %q: %w", p.Name, err)
		}
	}
	return nil
}
