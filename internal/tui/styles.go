package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorHeader    = lipgloss.Color("39")
	colorLabel     = lipgloss.Color("245")
	colorValue     = lipgloss.Color("255")
	colorHighlight = lipgloss.Color("212")
	colorGood      = lipgloss.Color("42")
	colorMuted     = lipgloss.Color("241")

	titleStyle = lipgloss.NewStyle().
			Foreground(colorHeader).
			Bold(true).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			MarginBottom(1)
	labelStyle    = lipgloss.NewStyle().Foreground(colorLabel)
	valueStyle    = lipgloss.NewStyle().Foreground(colorValue).Bold(true)
	focusStyle    = lipgloss.NewStyle().Foreground(colorHighlight).Bold(true)
	goodStyle     = lipgloss.NewStyle().Foreground(colorGood).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	sectionStyle  = lipgloss.NewStyle().Foreground(colorHeader).Bold(true).MarginTop(1)
	panelStyle    = lipgloss.NewStyle().Padding(0, 2)
	barStyle      = lipgloss.NewStyle().Foreground(colorHeader)
	barWidth      = 30
	labelColWidth = 28
)
