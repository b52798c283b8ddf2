// Package i18n provides the display strings of the dashboard, report and
// terminal UI in English and Hindi, plus locale-aware number formatting.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/kilianp07/co2dash/core/emissions"
)

// Key identifies a display string.
type Key string

const (
	Title           Key = "title"
	Generated       Key = "generated"
	Baseline        Key = "baseline"
	PostAction      Key = "post_action"
	Reduction       Key = "reduction"
	SelectedActions Key = "selected_actions"
	None            Key = "none"
	BeforeAfter     Key = "before_after"
	Breakdown       Key = "breakdown"
	Sensitivity     Key = "sensitivity"
	Comparison      Key = "comparison"
	Recommendations Key = "recommendations"
	PerYear         Key = "per_year"
	Before          Key = "before"
	After           Key = "after"
	Total           Key = "total"
	Change          Key = "change"
	Plant           Key = "plant"
	Region          Key = "region"
	Production      Key = "production"
	CoalInput       Key = "coal_input"
	ElectricityIn   Key = "electricity_input"
	ScrapInput      Key = "scrap_input"
	FactorCoal      Key = "factor_coal"
	FactorElec      Key = "factor_electricity"
	FactorProcess   Key = "factor_process"
	Actions         Key = "actions"
)

var supported = []language.Tag{language.English, language.Hindi}

var matcher = language.NewMatcher(supported)

var catalogs = map[language.Tag]map[Key]string{
	language.English: {
		Title:           "CO2 Emissions Summary",
		Generated:       "Generated",
		Baseline:        "Baseline CO2",
		PostAction:      "Post-action CO2",
		Reduction:       "Potential Reduction",
		SelectedActions: "Selected Actions",
		None:            "None",
		BeforeAfter:     "Before vs After",
		Breakdown:       "Baseline Breakdown",
		Sensitivity:     "Sensitivity",
		Comparison:      "Plant Comparison",
		Recommendations: "Recommendations",
		PerYear:         "t/yr",
		Before:          "Before",
		After:           "After",
		Total:           "Total",
		Change:          "Change (%)",
		Plant:           "Plant",
		Region:          "Region",
		Production:      "Monthly production (t)",
		CoalInput:       "Monthly coal (t)",
		ElectricityIn:   "Monthly electricity (kWh)",
		ScrapInput:      "Scrap steel (%)",
		FactorCoal:      "Coal factor (tCO2/t)",
		FactorElec:      "Grid factor (tCO2/kWh)",
		FactorProcess:   "Process factor (tCO2/t)",
		Actions:         "Actions",
	},
	language.Hindi: {
		Title:           "CO2 उत्सर्जन सारांश",
		Generated:       "तैयार किया गया",
		Baseline:        "आधार CO2",
		PostAction:      "कार्रवाई के बाद CO2",
		Reduction:       "संभावित कमी",
		SelectedActions: "चयनित कार्रवाइयाँ",
		None:            "कोई नहीं",
		BeforeAfter:     "पहले बनाम बाद",
		Breakdown:       "आधार उत्सर्जन विवरण",
		Sensitivity:     "संवेदनशीलता",
		Comparison:      "संयंत्र तुलना",
		Recommendations: "सिफ़ारिशें",
		PerYear:         "टन/वर्ष",
		Before:          "पहले",
		After:           "बाद",
		Total:           "कुल",
		Change:          "परिवर्तन (%)",
		Plant:           "संयंत्र",
		Region:          "क्षेत्र",
		Production:      "मासिक उत्पादन (टन)",
		CoalInput:       "मासिक कोयला (टन)",
		ElectricityIn:   "मासिक बिजली (kWh)",
		ScrapInput:      "स्क्रैप स्टील (%)",
		FactorCoal:      "कोयला कारक (tCO2/टन)",
		FactorElec:      "ग्रिड कारक (tCO2/kWh)",
		FactorProcess:   "प्रक्रिया कारक (tCO2/टन)",
		Actions:         "कार्रवाइयाँ",
	},
}

var sourceNames = map[language.Tag][3]string{
	language.English: {"Coal", "Electricity", "Process"},
	language.Hindi:   {"कोयला", "बिजली", "प्रक्रिया"},
}

var actionLabels = map[language.Tag][4]string{
	language.Hindi: {
		"अधिक स्क्रैप स्टील का उपयोग करें",
		"बर्बाद ऊष्मा की पुनर्प्राप्ति",
		"छोटी नवीकरणीय ऊर्जा जोड़ें",
		"ऊर्जा दक्षता में सुधार",
	},
}

// Translator renders strings and numbers for one language.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns the translator that best matches lang, such as "hi" or
// "en-IN". Unknown languages fall back to English.
func New(lang string) *Translator {
	tag, _ := language.MatchStrings(matcher, lang)
	base, _ := tag.Base()
	resolved := language.English
	for _, t := range supported {
		if b, _ := t.Base(); b == base {
			resolved = t
			break
		}
	}
	return &Translator{tag: resolved, printer: message.NewPrinter(resolved)}
}

// English is the default translator.
func English() *Translator { return New("en") }

// Languages lists the supported language codes.
func Languages() []string {
	out := make([]string, len(supported))
	for i, t := range supported {
		out[i] = t.String()
	}
	return out
}

// Lang returns the resolved language code.
func (t *Translator) Lang() string { return t.tag.String() }

// T returns the string for k, falling back to English then to the key.
func (t *Translator) T(k Key) string {
	if s, ok := catalogs[t.tag][k]; ok {
		return s
	}
	if s, ok := catalogs[language.English][k]; ok {
		return s
	}
	return string(k)
}

// Source returns the display name of an emission source.
func (t *Translator) Source(s emissions.Source) string {
	names, ok := sourceNames[t.tag]
	if !ok {
		names = sourceNames[language.English]
	}
	if s < 0 || int(s) >= len(names) {
		return s.String()
	}
	return names[s]
}

// Action returns the display label of an action.
func (t *Translator) Action(a emissions.Action) string {
	if labels, ok := actionLabels[t.tag]; ok && a >= 0 && int(a) < len(labels) {
		return labels[a]
	}
	return a.Label()
}

// Number formats v with digits fraction digits and locale grouping.
func (t *Translator) Number(v float64, digits int) string {
	return t.printer.Sprint(number.Decimal(v,
		number.MinFractionDigits(digits),
		number.MaxFractionDigits(digits)))
}

// Tonnes formats an annual mass such as "15,720.0 t/yr".
func (t *Translator) Tonnes(v float64) string {
	return t.Number(v, 1) + " " + t.T(PerYear)
}
