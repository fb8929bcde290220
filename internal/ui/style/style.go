// Package style holds the colors, icons and text styles shared by the report
// writers, the logger and the watch TUI.
package style

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/mesha/internal/core/domain"
)

// Palette.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Ink    = lipgloss.Color("#0B0F19")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Circle  = "○"
	Arrow   = "→"
)

// Text styles.
var (
	Title  = lipgloss.NewStyle().Bold(true).Foreground(Iris)
	Header = lipgloss.NewStyle().Bold(true)
	Muted  = lipgloss.NewStyle().Foreground(Slate)
	Good   = lipgloss.NewStyle().Foreground(Green)
	Bad    = lipgloss.NewStyle().Foreground(Red)
	Warn   = lipgloss.NewStyle().Foreground(Yellow)
)

// Swatch converts a feature color to a terminal color. Alpha is ignored.
func Swatch(c domain.Color) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", channel(c[0]), channel(c[1]), channel(c[2])))
}

func channel(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}

// KindIcon returns the marker used for features of an element kind.
func KindIcon(k domain.ElementKind) string {
	switch k {
	case domain.KindVertex:
		return Dot
	case domain.KindEdge:
		return "─"
	default:
		return "▲"
	}
}
