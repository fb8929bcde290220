package tui_test

import (
	"context"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mesha/internal/adapters/tui"
	"go.trai.ch/mesha/internal/core/domain"
	"go.trai.ch/zerr"
)

func newTestRenderer() *tui.Renderer {
	model := tui.NewModel(io.Discard)
	return tui.NewRenderer(
		&model,
		tea.WithInput(strings.NewReader("")),
		tea.WithOutput(io.Discard),
		tea.WithoutSignalHandler(),
		tea.WithoutRenderer(),
	)
}

func TestRenderer_Lifecycle(t *testing.T) {
	r := newTestRenderer()

	require.NoError(t, r.Start(context.Background()))
	require.NoError(t, r.Stop())
	require.NoError(t, r.Wait())
}

func TestRenderer_Forwarding(t *testing.T) {
	r := newTestRenderer()
	require.NoError(t, r.Start(context.Background()))

	r.OnChanges([]domain.ChangeEvent{{Object: cubeKey, Kind: domain.ChangeGeometry}})
	r.OnReport(sampleReport(1))
	r.OnError(zerr.New("boom"))

	require.NoError(t, r.Stop())
	require.NoError(t, r.Wait())
}
