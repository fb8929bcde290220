package ports

import (
	"context"

	"go.trai.ch/mesha/internal/core/domain"
)

// SnapshotProvider produces mesh snapshots for host objects.
//
//go:generate mockgen -source=snapshot.go -destination=mocks/mock_snapshot.go -package=mocks
type SnapshotProvider interface {
	// Snapshot returns the current mesh data of the object, including any
	// in-progress edit session.
	// It returns domain.ErrInvalidObject when the object is absent or not a mesh,
	// and domain.ErrStaleReference when the object was deleted.
	Snapshot(ctx context.Context, key domain.ObjectKey) (*domain.Snapshot, error)
}
