package emissions

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknownAction is returned by ParseAction for unrecognised names.
var ErrUnknownAction = errors.New("unknown action")

// Action is a discrete mitigation measure with a fixed assumed reduction.
type Action int

const (
	ActionScrap Action = iota
	ActionHeat
	ActionRenewable
	ActionEfficiency
)

// Actions lists every action in display order.
var Actions = [...]Action{ActionScrap, ActionHeat, ActionRenewable, ActionEfficiency}

type actionInfo struct {
	name        string
	fraction    float64
	label       string
	description string
}

var actionTable = [...]actionInfo{
	ActionScrap:      {"scrap", 0.10, "Use more scrap steel", "Increase scrap usage to reduce steel-making emissions."},
	ActionHeat:       {"heat", 0.07, "Recover wasted heat", "Implement heat recovery to save energy and CO2."},
	ActionRenewable:  {"renewable", 0.05, "Add small renewable energy", "Add solar/wind to partially replace grid electricity."},
	ActionEfficiency: {"efficiency", 0.08, "Improve energy efficiency", "Minor upgrades to reduce energy consumption."},
}

func (a Action) valid() bool { return a >= 0 && int(a) < len(actionTable) }

func (a Action) String() string {
	if !a.valid() {
		return fmt.Sprintf("action(%d)", int(a))
	}
	return actionTable[a].name
}

// Fraction is the share of the baseline removed by the action.
func (a Action) Fraction() float64 {
	if !a.valid() {
		return 0
	}
	return actionTable[a].fraction
}

// Label is the short English display name.
func (a Action) Label() string {
	if !a.valid() {
		return a.String()
	}
	return actionTable[a].label
}

// Description is a one-sentence English explanation.
func (a Action) Description() string {
	if !a.valid() {
		return ""
	}
	return actionTable[a].description
}

// MarshalText encodes the action by name.
func (a Action) MarshalText() ([]byte, error) {
	if !a.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAction, int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText decodes an action name.
func (a *Action) UnmarshalText(b []byte) error {
	v, err := ParseAction(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// ParseAction resolves an action name. The short forms "re" and "eff" are
// accepted as well.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scrap":
		return ActionScrap, nil
	case "heat":
		return ActionHeat, nil
	case "renewable", "re":
		return ActionRenewable, nil
	case "efficiency", "eff":
		return ActionEfficiency, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
}

// ParseActions resolves a list of names into Flags.
func ParseActions(names []string) (Flags, error) {
	var f Flags
	for _, n := range names {
		a, err := ParseAction(n)
		if err != nil {
			return Flags{}, err
		}
		f = f.With(a, true)
	}
	return f, nil
}

// Flags toggles each action independently.
type Flags struct {
	Scrap      bool `json:"scrap"`
	Heat       bool `json:"heat"`
	Renewable  bool `json:"renewable"`
	Efficiency bool `json:"efficiency"`
}

// FlagsOf returns Flags with the given actions enabled.
func FlagsOf(actions ...Action) Flags {
	var f Flags
	for _, a := range actions {
		f = f.With(a, true)
	}
	return f
}

// AllFlags enables every action.
func AllFlags() Flags { return FlagsOf(Actions[:]...) }

// Enabled reports whether a is active.
func (f Flags) Enabled(a Action) bool {
	switch a {
	case ActionScrap:
		return f.Scrap
	case ActionHeat:
		return f.Heat
	case ActionRenewable:
		return f.Renewable
	case ActionEfficiency:
		return f.Efficiency
	default:
		return false
	}
}

// With returns a copy of f with a set to on.
func (f Flags) With(a Action, on bool) Flags {
	switch a {
	case ActionScrap:
		f.Scrap = on
	case ActionHeat:
		f.Heat = on
	case ActionRenewable:
		f.Renewable = on
	case ActionEfficiency:
		f.Efficiency = on
	}
	return f
}

// Toggle returns a copy of f with a flipped.
func (f Flags) Toggle(a Action) Flags { return f.With(a, !f.Enabled(a)) }

// Selected lists the active actions in display order.
func (f Flags) Selected() []Action {
	var out []Action
	for _, a := range Actions {
		if f.Enabled(a) {
			out = append(out, a)
		}
	}
	return out
}

// Fraction is the combined reduction share. Actions are additive.
func (f Flags) Fraction() float64 {
	var sum float64
	for _, a := range Actions {
		if f.Enabled(a) {
			sum += a.Fraction()
		}
	}
	return sum
}

// ApplyInterventions removes the combined fraction of the active actions from
// baseline. The post-action total never drops below zero.
func ApplyInterventions(baseline float64, flags Flags) (postTotal, reduction float64) {
	reduction = baseline * flags.Fraction()
	postTotal = math.Max(baseline-reduction, 0)
	return postTotal, reduction
}
