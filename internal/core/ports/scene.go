package ports

import "go.trai.ch/mesha/internal/core/domain"

//go:generate mockgen -source=scene.go -destination=mocks/mock_scene.go -package=mocks

// Scene is a host scene that can be analyzed.
type Scene interface {
	SnapshotProvider
	// Path returns the file the scene was loaded from.
	Path() string
	// Objects lists the scene objects in declaration order.
	Objects() []domain.ObjectInfo
	// Reload re-reads the scene and returns the changes since the previous load.
	Reload() ([]domain.ChangeEvent, error)
}

// SceneLoader opens scene files.
type SceneLoader interface {
	Load(path string) (Scene, error)
}
