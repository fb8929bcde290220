package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/mesha/internal/ui/style"
)

var (
	objectFreshStyle = lipgloss.NewStyle().
				Foreground(style.Green)

	objectChangedStyle = lipgloss.NewStyle().
				Foreground(style.Yellow)

	objectDeletedStyle = lipgloss.NewStyle().
				Foreground(style.Slate).
				Faint(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(style.Iris).
			Bold(true)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Iris).
			Foreground(style.Ink)

	failureTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Padding(0, 1).
				Background(style.Red).
				Foreground(style.Ink)

	listStyle = lipgloss.NewStyle().
			PaddingRight(2)

	detailStyle = lipgloss.NewStyle().
			PaddingLeft(1).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(style.Slate)
)
