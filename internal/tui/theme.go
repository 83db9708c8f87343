package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette. The board must stay readable on light and dark terminals, so
// everything goes through lipgloss.AdaptiveColor and "faint" is reserved for
// dark backgrounds, where it does not wash out.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted    lipgloss.TerminalColor = ac("240", "243")
	colorAccent   lipgloss.TerminalColor = ac("27", "62")
	colorDone     lipgloss.TerminalColor = ac("242", "240")
	colorSelBg    lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelFg    lipgloss.TerminalColor = ac("235", "255")
	colorDragging lipgloss.TerminalColor = ac("94", "179")

	styleHeader    = lipgloss.NewStyle().Bold(true)
	styleColTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	styleColDimmed = lipgloss.NewStyle().Foreground(colorMuted)
	styleSelected  = lipgloss.NewStyle().Background(colorSelBg).Foreground(colorSelFg)
	styleDone      = lipgloss.NewStyle().Foreground(colorDone).Strikethrough(true)
	styleTime      = lipgloss.NewStyle().Foreground(colorAccent)
	stylePlacehold = faintIfDark(lipgloss.NewStyle().Foreground(colorDragging))
	styleStatus    = lipgloss.NewStyle().Foreground(colorMuted)
)
