// Package regions holds the static table of grid electricity emission
// factors used to seed the electricity factor of an estimate.
package regions

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRegion is returned when a region name is not in the table.
var ErrUnknownRegion = errors.New("unknown region")

// Region is a grid area and its average emission factor in tCO2/kWh.
type Region struct {
	Name   string  `json:"name"`
	Factor float64 `json:"factor"`
}

var table = []Region{
	{Name: "India", Factor: 0.00071},
	{Name: "EU (avg)", Factor: 0.00025},
	{Name: "USA (avg)", Factor: 0.00038},
	{Name: "China", Factor: 0.00058},
	{Name: "Brazil", Factor: 0.00010},
}

// All returns a copy of the table in display order.
func All() []Region {
	out := make([]Region, len(table))
	copy(out, table)
	return out
}

// Names lists the region names in display order.
func Names() []string {
	out := make([]string, len(table))
	for i, r := range table {
		out[i] = r.Name
	}
	return out
}

// Default is the first region of the table.
func Default() Region { return table[0] }

// Lookup finds a region by name, ignoring case and surrounding spaces.
func Lookup(name string) (Region, error) {
	n := strings.TrimSpace(name)
	for _, r := range table {
		if strings.EqualFold(r.Name, n) {
			return r, nil
		}
	}
	return Region{}, fmt.Errorf("%w: %q", ErrUnknownRegion, name)
}

// Factor returns the grid factor of name, or the default region's factor
// when the name is unknown.
func Factor(name string) float64 {
	r, err := Lookup(name)
	if err != nil {
		return Default().Factor
	}
	return r.Factor
}
