package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kilianp07/co2dash/core/emissions"
)

func TestNew_Matching(t *testing.T) {
	cases := map[string]string{
		"":      "en",
		"en":    "en",
		"en-IN": "en",
		"hi":    "hi",
		"hi-IN": "hi",
		"fr":    "en",
	}
	for in, want := range cases {
		assert.Equal(t, want, New(in).Lang(), in)
	}
}

func TestTranslator_Strings(t *testing.T) {
	en := English()
	assert.Equal(t, "CO2 Emissions Summary", en.T(Title))
	assert.Equal(t, "None", en.T(None))
	assert.Equal(t, "Coal", en.Source(emissions.SourceCoal))
	assert.Equal(t, "Use more scrap steel", en.Action(emissions.ActionScrap))
	assert.Equal(t, "missing_key", en.T(Key("missing_key")))

	hi := New("hi")
	assert.Equal(t, "कोई नहीं", hi.T(None))
	assert.Equal(t, "बिजली", hi.Source(emissions.SourceElectricity))
	assert.Equal(t, "ऊर्जा दक्षता में सुधार", hi.Action(emissions.ActionEfficiency))
}

func TestCatalogsComplete(t *testing.T) {
	for tag, cat := range catalogs {
		for k := range catalogs[supported[0]] {
			if _, ok := cat[k]; !ok {
				t.Errorf("%s: missing %s", tag, k)
			}
		}
	}
}

func TestTranslator_Numbers(t *testing.T) {
	en := English()
	assert.Equal(t, "15,720.0", en.Number(15720, 1))
	assert.Equal(t, "13,047.6 t/yr", en.Tonnes(13047.6))
	assert.Equal(t, "0.00071", en.Number(0.00071, 5))
	assert.Equal(t, []string{"en", "hi"}, Languages())
}
