// Package tui provides the interactive terminal interface for watch mode.
package tui

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/mesha/internal/core/domain"
	"go.trai.ch/mesha/internal/ui/output"
)

// NewModel creates a model that follows the most recent change.
func NewModel(w io.Writer) Model {
	if w == nil {
		w = os.Stderr
	}

	out := output.New(w)
	lipgloss.SetColorProfile(out.Profile)

	return Model{
		Objects:    make([]*ObjectNode, 0),
		ObjectMap:  make(map[domain.ObjectKey]*ObjectNode),
		FollowMode: true,
	}
}
