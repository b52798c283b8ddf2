package emissions

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyInterventions_NoFlags(t *testing.T) {
	for _, total := range []float64{0, 1, 15720, 1e9} {
		post, red := ApplyInterventions(total, Flags{})
		if post != total || red != 0 {
			t.Fatalf("total %v: expected (%v, 0) got (%v, %v)", total, total, post, red)
		}
	}
}

func TestApplyInterventions_AllFlags(t *testing.T) {
	all := AllFlags()
	assert.InDelta(t, 0.30, all.Fraction(), 1e-12)

	post, red := ApplyInterventions(15720, all)
	assert.InDelta(t, 15720*0.70, post, 1e-9)
	assert.InDelta(t, 15720*0.30, red, 1e-9)
}

func TestApplyInterventions_ScrapAndHeat(t *testing.T) {
	a, f := referencePlant()
	base := Estimate(a, f)
	flags := FlagsOf(ActionScrap, ActionHeat)

	assert.InDelta(t, 0.17, flags.Fraction(), 1e-12)
	post, red := ApplyInterventions(base.Total, flags)
	assert.InDelta(t, 2672.4, red, 1e-9)
	assert.InDelta(t, 13047.6, post, 1e-9)
}

func TestApplyInterventions_NeverNegative(t *testing.T) {
	combos := []Flags{{}, AllFlags(), FlagsOf(ActionEfficiency), FlagsOf(ActionRenewable, ActionHeat)}
	for _, f := range combos {
		for _, total := range []float64{0, 0.5, 42, 1e12} {
			post, _ := ApplyInterventions(total, f)
			if post < 0 {
				t.Fatalf("negative post total %v for %+v", post, f)
			}
		}
	}
}

func TestApplyInterventions_NegativeBaselineFloorsAtZero(t *testing.T) {
	for _, f := range []Flags{{}, AllFlags(), FlagsOf(ActionScrap)} {
		post, red := ApplyInterventions(-100, f)
		assert.Zero(t, post, "flags %+v", f)
		assert.InDelta(t, -100*f.Fraction(), red, 1e-9)
	}
}

func TestFlags_ToggleAndSelected(t *testing.T) {
	f := Flags{}.Toggle(ActionEfficiency).Toggle(ActionScrap)
	assert.Equal(t, []Action{ActionScrap, ActionEfficiency}, f.Selected())
	f = f.Toggle(ActionScrap)
	assert.Equal(t, []Action{ActionEfficiency}, f.Selected())
	assert.Nil(t, Flags{}.Selected())
}

func TestParseAction(t *testing.T) {
	cases := map[string]Action{
		"scrap":      ActionScrap,
		"Heat":       ActionHeat,
		"re":         ActionRenewable,
		"renewable":  ActionRenewable,
		" eff ":      ActionEfficiency,
		"efficiency": ActionEfficiency,
	}
	for in, want := range cases {
		got, err := ParseAction(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseAction("solar")
	assert.True(t, errors.Is(err, ErrUnknownAction))
}

func TestParseActions(t *testing.T) {
	f, err := ParseActions([]string{"scrap", "heat"})
	require.NoError(t, err)
	assert.Equal(t, Flags{Scrap: true, Heat: true}, f)

	_, err = ParseActions([]string{"scrap", "nope"})
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestAction_TextRoundTrip(t *testing.T) {
	for _, a := range Actions {
		b, err := a.MarshalText()
		require.NoError(t, err)
		var got Action
		require.NoError(t, got.UnmarshalText(b))
		assert.Equal(t, a, got)
		assert.NotEmpty(t, a.Label())
		assert.NotEmpty(t, a.Description())
	}
}
