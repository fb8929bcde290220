// Package geometry provides face triangulation and the planarity and degeneracy
// predicates used by the classifier.
package geometry

import (
	"github.com/golang/geo/r3"
	"go.trai.ch/mesha/internal/core/domain"
)

// Triangle holds three vertex indices in loop winding order.
type Triangle [3]int

// Triangulator splits face loops into triangles.
type Triangulator struct {
	Split domain.QuadSplit
}

// NewTriangulator returns a triangulator using the given quad split rule.
func NewTriangulator(split domain.QuadSplit) Triangulator {
	return Triangulator{Split: split}
}

// Triangulate returns the triangles covering loop.
//
// Triangles are returned as-is. Quads are split along v0-v2 unless the shortest
// rule is selected and positions are given, in which case the shorter diagonal
// wins. Larger loops are fanned from v0 into len(loop)-2 triangles. Loops with
// fewer than three vertices produce nothing. positions, when given, must be
// parallel to loop.
func (t Triangulator) Triangulate(loop []int, positions []r3.Vector) []Triangle {
	n := len(loop)
	switch {
	case n < 3:
		return nil
	case n == 3:
		return []Triangle{{loop[0], loop[1], loop[2]}}
	case n == 4 && t.Split == domain.QuadSplitShortest && len(positions) == 4:
		if positions[1].Sub(positions[3]).Norm2() < positions[0].Sub(positions[2]).Norm2() {
			return []Triangle{
				{loop[0], loop[1], loop[3]},
				{loop[1], loop[2], loop[3]},
			}
		}
	}
	return fan(loop)
}

func fan(loop []int) []Triangle {
	tris := make([]Triangle, 0, len(loop)-2)
	for i := 1; i < len(loop)-1; i++ {
		tris = append(tris, Triangle{loop[0], loop[i], loop[i+1]})
	}
	return tris
}
