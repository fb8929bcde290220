package domain

import "github.com/golang/geo/r3"

// ShapeKind selects a generated primitive shape.
type ShapeKind uint8

const (
	// ShapeBox is an axis-aligned box centered on the origin.
	ShapeBox ShapeKind = iota
	// ShapeCylinder is a Z-aligned cylinder centered on the origin.
	ShapeCylinder
	// ShapeSphere is a sphere centered on the origin.
	ShapeSphere
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeBox:
		return "box"
	case ShapeCylinder:
		return "cylinder"
	case ShapeSphere:
		return "sphere"
	default:
		return "unknown"
	}
}

// Shape describes a primitive to be meshed.
// Size applies to boxes, Height to cylinders, Radius to cylinders and spheres.
// Cells is the sampling resolution along the longest axis; zero picks a default.
type Shape struct {
	Kind   ShapeKind
	Size   r3.Vector
	Height float64
	Radius float64
	Cells  int
}

// IndexedMesh is raw polygon data: positions and vertex loops.
type IndexedMesh struct {
	Positions []r3.Vector
	Faces     [][]int
}
