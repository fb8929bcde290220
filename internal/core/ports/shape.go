package ports

import "go.trai.ch/mesha/internal/core/domain"

//go:generate mockgen -source=shape.go -destination=mocks/mock_shape.go -package=mocks

// ShapeMesher turns primitive shape descriptions into polygon meshes.
type ShapeMesher interface {
	// Mesh returns a welded mesh for shape.
	Mesh(shape domain.Shape) (*domain.IndexedMesh, error)
}
