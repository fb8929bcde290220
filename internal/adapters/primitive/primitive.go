// Package primitive generates indexed meshes for primitive shapes with sdfx.
//
// Shapes are described as signed distance functions and polygonized with
// uniform marching cubes. The triangle soup is welded so that neighbouring
// triangles share vertex indices, which gives the topology builder real
// connectivity to work with.
package primitive

import (
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/golang/geo/r3"
	"go.trai.ch/mesha/internal/core/domain"
	"go.trai.ch/mesha/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultCells is the marching cubes resolution along the longest axis.
const DefaultCells = 16

// MaxCells bounds the resolution a scene may request.
const MaxCells = 200

// weldTolerance is relative to the shape's largest dimension.
const weldTolerance = 1e-7

// Generator implements ports.ShapeMesher.
type Generator struct{}

var _ ports.ShapeMesher = (*Generator)(nil)

// NewGenerator creates a Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Mesh polygonizes shape and welds coincident vertices.
func (g *Generator) Mesh(shape domain.Shape) (*domain.IndexedMesh, error) {
	s, extent, err := solid(shape)
	if err != nil {
		return nil, zerr.With(zerr.With(err, "shape", shape.Kind.String()), "cells", shape.Cells)
	}

	cells := shape.Cells
	if cells == 0 {
		cells = DefaultCells
	}
	if cells < 2 || cells > MaxCells {
		return nil, zerr.With(zerr.Wrap(domain.ErrPrimitiveFailed, "cells out of range"), "cells", cells)
	}

	w := newWelder(extent * weldTolerance)
	for _, tri := range render.ToTriangles(s, render.NewMarchingCubesUniform(cells)) {
		w.triangle(tri[0], tri[1], tri[2])
	}
	return w.mesh, nil
}

func solid(shape domain.Shape) (sdf.SDF3, float64, error) {
	var (
		s      sdf.SDF3
		extent float64
		err    error
	)
	switch shape.Kind {
	case domain.ShapeBox:
		if shape.Size.X <= 0 || shape.Size.Y <= 0 || shape.Size.Z <= 0 {
			return nil, 0, zerr.Wrap(domain.ErrPrimitiveFailed, "box size must be positive")
		}
		s, err = sdf.Box3D(v3.Vec{X: shape.Size.X, Y: shape.Size.Y, Z: shape.Size.Z}, 0)
		extent = max(shape.Size.X, shape.Size.Y, shape.Size.Z)
	case domain.ShapeCylinder:
		if shape.Height <= 0 || shape.Radius <= 0 {
			return nil, 0, zerr.Wrap(domain.ErrPrimitiveFailed, "cylinder height and radius must be positive")
		}
		s, err = sdf.Cylinder3D(shape.Height, shape.Radius, 0)
		extent = max(shape.Height, 2*shape.Radius)
	case domain.ShapeSphere:
		if shape.Radius <= 0 {
			return nil, 0, zerr.Wrap(domain.ErrPrimitiveFailed, "sphere radius must be positive")
		}
		s, err = sdf.Sphere3D(shape.Radius)
		extent = 2 * shape.Radius
	default:
		return nil, 0, zerr.Wrap(domain.ErrPrimitiveFailed, "unknown shape")
	}
	if err != nil {
		return nil, 0, zerr.With(zerr.Wrap(domain.ErrPrimitiveFailed, "cannot build shape"), "cause", err.Error())
	}
	return s, extent, nil
}

type gridKey [3]int64

// welder merges positions within tol of each other and drops triangles that collapse.
// Positions are bucketed in cells of side tol, so a match is always in the
// cell of the new position or one of its 26 neighbours.
type welder struct {
	tol   float64
	mesh  *domain.IndexedMesh
	cells map[gridKey][]int
}

func newWelder(tol float64) *welder {
	return &welder{
		tol:   tol,
		mesh:  &domain.IndexedMesh{},
		cells: make(map[gridKey][]int),
	}
}

func (w *welder) cell(p r3.Vector) gridKey {
	return gridKey{
		int64(math.Floor(p.X / w.tol)),
		int64(math.Floor(p.Y / w.tol)),
		int64(math.Floor(p.Z / w.tol)),
	}
}

func (w *welder) vertex(v v3.Vec) int {
	p := r3.Vector{X: v.X, Y: v.Y, Z: v.Z}
	k := w.cell(p)
	tol2 := w.tol * w.tol
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for dz := int64(-1); dz <= 1; dz++ {
				for _, i := range w.cells[gridKey{k[0] + dx, k[1] + dy, k[2] + dz}] {
					if w.mesh.Positions[i].Sub(p).Norm2() <= tol2 {
						return i
					}
				}
			}
		}
	}
	i := len(w.mesh.Positions)
	w.cells[k] = append(w.cells[k], i)
	w.mesh.Positions = append(w.mesh.Positions, p)
	return i
}

func (w *welder) triangle(p0, p1, p2 v3.Vec) {
	a, b, c := w.vertex(p0), w.vertex(p1), w.vertex(p2)
	if a == b || b == c || a == c {
		return
	}
	w.mesh.Faces = append(w.mesh.Faces, []int{a, b, c})
}
