package domain

import "github.com/golang/geo/r3"

// FeatureResult is the classified output of one feature for one snapshot.
//
// Indices lists the matching elements. Positions and Normals hold world-space
// drawable geometry laid out for Primitive: one point per vertex, two endpoints
// per edge, three corners per triangle. An empty result is valid.
type FeatureResult struct {
	Feature   FeatureID
	Kind      ElementKind
	Primitive Primitive
	Indices   []int
	Positions []r3.Vector
	Normals   []r3.Vector
	Color     Color
}

// EmptyResult returns a result with no elements for a registered feature.
func EmptyResult(f FeatureID) FeatureResult {
	info, _ := f.Info()
	return FeatureResult{
		Feature:   f,
		Kind:      info.Kind,
		Primitive: info.Primitive,
	}
}

// Len returns the number of classified elements.
func (r FeatureResult) Len() int {
	return len(r.Indices)
}

// Primitives returns the number of drawable primitives in the result.
func (r FeatureResult) Primitives() int {
	return len(r.Positions) / r.Primitive.Stride()
}
