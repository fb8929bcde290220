package domain

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
)

// Vertex is a single mesh vertex in object space.
type Vertex struct {
	Position r3.Vector
	Normal   r3.Vector
	Manifold bool
}

// Edge connects two vertices by index.
type Edge struct {
	V        [2]int
	Manifold bool
	Smooth   bool
	Seam     bool
	Boundary bool
}

// Face is an ordered vertex loop with its reference normal.
type Face struct {
	Loop   []int
	Normal r3.Vector
}

// Snapshot is a read-only view of one mesh at one point in time.
// Element indices are only meaningful within the snapshot that produced them.
type Snapshot struct {
	Vertices  []Vertex
	Edges     []Edge
	Faces     []Face
	Transform mgl64.Mat4
	// Revision identifies the mesh content. Zero means the host could not tell.
	Revision uint64
}

// Degrees counts incident edges per vertex. Edges with out-of-range endpoints are ignored.
func (s *Snapshot) Degrees() []int {
	degrees := make([]int, len(s.Vertices))
	for _, e := range s.Edges {
		if !s.ValidEdge(e) {
			continue
		}
		degrees[e.V[0]]++
		if e.V[1] != e.V[0] {
			degrees[e.V[1]]++
		}
	}
	return degrees
}

// ValidLoop reports whether a face loop has at least three in-range vertex indices.
func (s *Snapshot) ValidLoop(loop []int) bool {
	if len(loop) < 3 {
		return false
	}
	for _, v := range loop {
		if v < 0 || v >= len(s.Vertices) {
			return false
		}
	}
	return true
}

// LoopPositions returns the object-space positions of a face loop.
// The loop must have been checked with ValidLoop.
func (s *Snapshot) LoopPositions(loop []int) []r3.Vector {
	out := make([]r3.Vector, len(loop))
	for i, v := range loop {
		out[i] = s.Vertices[v].Position
	}
	return out
}

// ValidEdge reports whether both edge endpoints are in range.
func (s *Snapshot) ValidEdge(e Edge) bool {
	n := len(s.Vertices)
	return e.V[0] >= 0 && e.V[0] < n && e.V[1] >= 0 && e.V[1] < n
}

// Empty reports whether the snapshot has no elements at all.
func (s *Snapshot) Empty() bool {
	return len(s.Vertices) == 0 && len(s.Edges) == 0 && len(s.Faces) == 0
}
