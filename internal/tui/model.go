// Package tui is an interactive terminal dashboard over a scenario session.
package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kilianp07/co2dash/core/emissions"
	"github.com/kilianp07/co2dash/core/regions"
	"github.com/kilianp07/co2dash/core/scenario"
	"github.com/kilianp07/co2dash/internal/i18n"
)

// field is one editable input row.
type field struct {
	label  i18n.Key
	step   float64
	min    float64
	max    float64
	digits int
	get    func(*scenario.Scenario) float64
	set    func(*scenario.Scenario, float64)
}

var fields = []field{
	{label: i18n.Production, step: 10, max: math.Inf(1), get: func(s *scenario.Scenario) float64 { return s.Monthly.Production }, set: func(s *scenario.Scenario, v float64) { s.Monthly.Production = v }},
	{label: i18n.CoalInput, step: 10, max: math.Inf(1), get: func(s *scenario.Scenario) float64 { return s.Monthly.Coal }, set: func(s *scenario.Scenario, v float64) { s.Monthly.Coal = v }},
	{label: i18n.ElectricityIn, step: 1000, max: math.Inf(1), get: func(s *scenario.Scenario) float64 { return s.Monthly.Electricity }, set: func(s *scenario.Scenario, v float64) { s.Monthly.Electricity = v }},
	{label: i18n.ScrapInput, step: 1, max: 100, get: func(s *scenario.Scenario) float64 { return s.Monthly.ScrapPercent }, set: func(s *scenario.Scenario, v float64) { s.Monthly.ScrapPercent = v }},
	{label: i18n.FactorCoal, step: 0.1, max: math.Inf(1), digits: 2, get: func(s *scenario.Scenario) float64 { return s.Factors.Coal }, set: func(s *scenario.Scenario, v float64) { s.Factors.Coal = v }},
	{label: i18n.FactorElec, step: 0.00001, max: math.Inf(1), digits: 5, get: func(s *scenario.Scenario) float64 { return s.Factors.Electricity }, set: func(s *scenario.Scenario, v float64) { s.Factors.Electricity = v }},
	{label: i18n.FactorProcess, step: 0.1, max: math.Inf(1), digits: 2, get: func(s *scenario.Scenario) float64 { return s.Factors.Process }, set: func(s *scenario.Scenario, v float64) { s.Factors.Process = v }},
}

// Rows are the fields, then the region selector, then one row per action.
const regionRow = 7

func rowCount() int { return len(fields) + 1 + len(emissions.Actions) }

func actionAt(row int) (emissions.Action, bool) {
	i := row - regionRow - 1
	if i < 0 || i >= len(emissions.Actions) {
		return 0, false
	}
	return emissions.Actions[i], true
}

// Model is the Bubble Tea model of the dashboard.
type Model struct {
	sess   *scenario.Session
	tr     *i18n.Translator
	eval   scenario.Evaluation
	cursor int
	status string
	width  int
}

// New creates a Model over sess.
func New(sess *scenario.Session, tr *i18n.Translator) *Model {
	if tr == nil {
		tr = i18n.English()
	}
	return &Model{sess: sess, tr: tr, eval: sess.Evaluate(), width: 80}
}

// Run starts the dashboard on the terminal and blocks until it exits.
func Run(sess *scenario.Session, tr *i18n.Translator) error {
	_, err := tea.NewProgram(New(sess, tr), tea.WithAltScreen()).Run()
	return err
}

// Evaluation returns the figures currently displayed.
func (m *Model) Evaluation() scenario.Evaluation { return m.eval }

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < rowCount()-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Inc):
		m.adjust(1)
	case key.Matches(msg, keys.Dec):
		m.adjust(-1)
	case key.Matches(msg, keys.Toggle):
		if a, ok := actionAt(m.cursor); ok {
			sc := m.sess.Scenario()
			sc.Actions = sc.Actions.Toggle(a)
			m.eval = m.sess.SetScenario(sc)
		}
	case key.Matches(msg, keys.Save):
		snap, err := m.sess.SaveCurrent("")
		if err != nil {
			m.status = err.Error()
		} else {
			m.status = fmt.Sprintf("saved %s", snap.Plant)
		}
	case key.Matches(msg, keys.Clear):
		m.sess.Plants().Clear()
		m.status = "cleared"
	}
	return m, nil
}

func (m *Model) adjust(dir float64) {
	sc := m.sess.Scenario()
	switch {
	case m.cursor < len(fields):
		f := fields[m.cursor]
		v := f.get(&sc) + dir*f.step
		v = math.Round(v/f.step) * f.step
		f.set(&sc, math.Min(math.Max(v, f.min), f.max))
	case m.cursor == regionRow:
		names := regions.Names()
		i := 0
		for j, n := range names {
			if n == sc.Region {
				i = j
			}
		}
		i = (i + int(dir) + len(names)) % len(names)
		next, err := sc.WithRegion(names[i])
		if err != nil {
			m.status = err.Error()
			return
		}
		sc = next
	default:
		if a, ok := actionAt(m.cursor); ok {
			sc.Actions = sc.Actions.With(a, dir > 0)
		}
	}
	m.eval = m.sess.SetScenario(sc)
}

func (m *Model) View() string {
	tr := m.tr
	sc := m.eval.Scenario
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s · %s", tr.T(i18n.Title), sc.PlantName())))
	b.WriteString("\n")

	row := func(i int, label, value string) {
		cursor := "  "
		ls := labelStyle
		if i == m.cursor {
			cursor = focusStyle.Render("> ")
			ls = focusStyle
		}
		b.WriteString(cursor + ls.Width(labelColWidth).Render(label) + valueStyle.Render(value) + "\n")
	}
	for i, f := range fields {
		row(i, tr.T(f.label), tr.Number(f.get(&sc), f.digits))
	}
	row(regionRow, tr.T(i18n.Region), sc.Region)
	for i, a := range emissions.Actions {
		mark := "[ ]"
		if sc.Actions.Enabled(a) {
			mark = goodStyle.Render("[x]")
		}
		row(regionRow+1+i, tr.Action(a), fmt.Sprintf("%s %.0f%%", mark, a.Fraction()*100))
	}

	b.WriteString(sectionStyle.Render(tr.T(i18n.Breakdown)) + "\n")
	total := m.eval.Baseline.Total
	for _, e := range m.eval.Baseline.Breakdown.Entries() {
		b.WriteString(labelStyle.Width(labelColWidth).Render("  "+tr.Source(e.Source)) + bar(e.Value, total) + " " + tr.Tonnes(e.Value) + "\n")
	}

	b.WriteString(sectionStyle.Render(tr.T(i18n.BeforeAfter)) + "\n")
	b.WriteString(labelStyle.Width(labelColWidth).Render("  "+tr.T(i18n.Baseline)) + valueStyle.Render(tr.Tonnes(total)) + "\n")
	b.WriteString(labelStyle.Width(labelColWidth).Render("  "+tr.T(i18n.PostAction)) + valueStyle.Render(tr.Tonnes(m.eval.PostTotal)) + "\n")
	b.WriteString(labelStyle.Width(labelColWidth).Render("  "+tr.T(i18n.Reduction)) + goodStyle.Render(tr.Tonnes(m.eval.Reduction)) + "\n")

	if len(m.eval.Recommendations) > 0 {
		b.WriteString(sectionStyle.Render(tr.T(i18n.Recommendations)) + "\n")
		for _, r := range m.eval.Recommendations {
			b.WriteString("  • " + r + "\n")
		}
	}

	if plants := m.sess.Plants().List(); len(plants) > 0 {
		b.WriteString(sectionStyle.Render(tr.T(i18n.Comparison)) + "\n")
		for _, p := range plants {
			b.WriteString(fmt.Sprintf("  %-20s %s → %s\n", p.Plant, tr.Tonnes(p.Baseline), tr.Tonnes(p.PostTotal)))
		}
	}

	if m.status != "" {
		b.WriteString("\n" + mutedStyle.Render(m.status) + "\n")
	}
	b.WriteString("\n" + m.help())
	return panelStyle.MaxWidth(max(m.width, 40)).Render(b.String())
}

func bar(v, total float64) string {
	n := 0
	if total > 0 && v > 0 {
		n = int(math.Round(v / total * float64(barWidth)))
	}
	return barStyle.Render(strings.Repeat("█", n)) + strings.Repeat(" ", barWidth-n)
}

func (m *Model) help() string {
	parts := make([]string, 0, len(keys.bindings()))
	for _, k := range keys.bindings() {
		h := k.Help()
		parts = append(parts, fmt.Sprintf("%s %s", h.Key, h.Desc))
	}
	return mutedStyle.Render(strings.Join(parts, " · "))
}

var _ tea.Model = (*Model)(nil)
