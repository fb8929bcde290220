package ports

import (
	"context"

	"go.trai.ch/mesha/internal/core/domain"
)

// Renderer presents analysis rounds while watching a scene.
// It allows the same report stream to drive either a TUI or linear CI logs.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start initializes the renderer and begins its lifecycle.
	Start(ctx context.Context) error

	// Stop signals the renderer to stop accepting new reports.
	Stop() error

	// Wait blocks until the renderer has fully terminated.
	Wait() error

	// OnChanges is called with the host changes that triggered a round.
	OnChanges(events []domain.ChangeEvent)

	// OnReport is called when an analysis round completes.
	OnReport(report domain.Report)

	// OnError is called when a round fails.
	OnError(err error)
}
