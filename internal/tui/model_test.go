package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/co2dash/core/emissions"
	"github.com/kilianp07/co2dash/core/scenario"
	"github.com/kilianp07/co2dash/internal/i18n"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func newModel(t *testing.T) (*Model, *scenario.Session) {
	t.Helper()
	sess := scenario.NewSession(scenario.Default())
	return New(sess, i18n.English()), sess
}

func press(m *Model, msgs ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func TestNew(t *testing.T) {
	m, _ := newModel(t)
	require.NotNil(t, m)
	assert.Nil(t, m.Init())
	assert.Equal(t, 0, m.cursor)
	assert.InDelta(t, 15492.0, m.Evaluation().Baseline.Total, 1e-6)

	view := m.View()
	assert.Contains(t, view, "CO2 Emissions Summary")
	assert.Contains(t, view, "15,492.0 t/yr")
	assert.Contains(t, view, "India")
}

func TestNavigation(t *testing.T) {
	m, _ := newModel(t)

	press(m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.cursor)

	press(m, tea.KeyMsg{Type: tea.KeyDown}, runes("j"))
	assert.Equal(t, 2, m.cursor)

	for range rowCount() + 3 {
		press(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, rowCount()-1, m.cursor)
}

func TestAdjustFields(t *testing.T) {
	t.Run("production step", func(t *testing.T) {
		m, sess := newModel(t)
		press(m, runes("+"))
		assert.InDelta(t, 510.0, sess.Scenario().Monthly.Production, 1e-9)
		press(m, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft})
		assert.InDelta(t, 490.0, sess.Scenario().Monthly.Production, 1e-9)
		assert.InDelta(t, 490*12*1.8*0.8, m.Evaluation().Baseline.Breakdown.Process, 1e-6)
	})

	t.Run("scrap is bounded", func(t *testing.T) {
		m, sess := newModel(t)
		press(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
		for range 30 {
			press(m, runes("-"))
		}
		assert.InDelta(t, 0.0, sess.Scenario().Monthly.ScrapPercent, 1e-9)
		for range 120 {
			press(m, runes("+"))
		}
		assert.InDelta(t, 100.0, sess.Scenario().Monthly.ScrapPercent, 1e-9)
		assert.InDelta(t, 0.0, m.Evaluation().Baseline.Breakdown.Process, 1e-9)
	})
}

func TestRegionCycle(t *testing.T) {
	m, sess := newModel(t)
	m.cursor = regionRow

	press(m, tea.KeyMsg{Type: tea.KeyRight})
	sc := sess.Scenario()
	assert.Equal(t, "EU (avg)", sc.Region)
	assert.InDelta(t, 0.00025, sc.Factors.Electricity, 1e-12)

	press(m, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, "Brazil", sess.Scenario().Region)
}

func TestToggleActions(t *testing.T) {
	m, sess := newModel(t)

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, sess.Scenario().Actions.Enabled(emissions.ActionScrap), "enter on an input row is ignored")

	m.cursor = regionRow + 1
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	m.cursor = regionRow + 2
	press(m, runes("+"))

	sc := sess.Scenario()
	assert.True(t, sc.Actions.Enabled(emissions.ActionScrap))
	assert.True(t, sc.Actions.Enabled(emissions.ActionHeat))
	assert.InDelta(t, 0.17, m.Evaluation().Fraction, 1e-12)
	assert.InDelta(t, 15492*0.83, m.Evaluation().PostTotal, 1e-6)

	press(m, runes("-"))
	assert.False(t, sess.Scenario().Actions.Enabled(emissions.ActionHeat))
}

func TestSaveAndClear(t *testing.T) {
	m, sess := newModel(t)

	press(m, runes("s"))
	require.Equal(t, 1, sess.Plants().Len())
	assert.Contains(t, m.View(), "Plant Comparison")
	assert.Contains(t, m.status, "saved My Plant")

	press(m, runes("c"))
	assert.Equal(t, 0, sess.Plants().Len())
	assert.NotContains(t, m.View(), "Plant Comparison")
}

func TestSaveWithoutName(t *testing.T) {
	sc := scenario.Default()
	sc.Plant = "  "
	sess := scenario.NewSession(sc)
	m := New(sess, nil)

	press(m, runes("s"))
	assert.Equal(t, 0, sess.Plants().Len())
	assert.Equal(t, scenario.ErrEmptyPlantName.Error(), m.status)
}

func TestQuit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		m, _ := newModel(t)
		cmd := press(m, msg)
		require.NotNil(t, cmd, msg.String())
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestWindowSize(t *testing.T) {
	m, _ := newModel(t)
	_, cmd := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Nil(t, cmd)
	assert.Equal(t, 120, m.width)
}
