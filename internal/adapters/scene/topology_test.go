package scene_test

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mesha/internal/adapters/scene"
	"go.trai.ch/mesha/internal/core/domain"
)

var quad = []r3.Vector{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}

func manifoldFlags(s *domain.Snapshot) []bool {
	out := make([]bool, len(s.Vertices))
	for i, v := range s.Vertices {
		out[i] = v.Manifold
	}
	return out
}

func TestBuild_SingleQuad(t *testing.T) {
	s, err := scene.Build(&scene.Topology{Positions: quad, Faces: [][]int{{0, 1, 2, 3}}})
	require.NoError(t, err)

	want := []domain.Edge{
		{V: [2]int{0, 1}, Boundary: true, Smooth: true},
		{V: [2]int{1, 2}, Boundary: true, Smooth: true},
		{V: [2]int{2, 3}, Boundary: true, Smooth: true},
		{V: [2]int{0, 3}, Boundary: true, Smooth: true},
	}
	assert.Empty(t, cmp.Diff(want, s.Edges))
	assert.Equal(t, []bool{true, true, true, true}, manifoldFlags(s))

	approx := cmpopts.EquateApprox(0, 1e-12)
	assert.Empty(t, cmp.Diff(r3.Vector{Z: 1}, s.Faces[0].Normal, approx))
	for _, v := range s.Vertices {
		assert.Empty(t, cmp.Diff(r3.Vector{Z: 1}, v.Normal, approx))
	}
	assert.Equal(t, []int{2, 2, 2, 2}, s.Degrees())
}

func TestBuild_SharedEdgeIsManifold(t *testing.T) {
	s, err := scene.Build(&scene.Topology{Positions: quad, Faces: [][]int{{0, 1, 2}, {0, 2, 3}}})
	require.NoError(t, err)
	require.Len(t, s.Edges, 5)

	diagonal := s.Edges[2]
	assert.Equal(t, [2]int{0, 2}, diagonal.V)
	assert.True(t, diagonal.Manifold)
	assert.False(t, diagonal.Boundary)
	assert.Equal(t, []int{3, 2, 3, 2}, s.Degrees())
}

func TestBuild_NonManifold(t *testing.T) {
	positions := []r3.Vector{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, // first triangle
		{X: -1, Y: 0}, {X: 0, Y: -1}, // bowtie wing sharing vertex 0
		{X: 5, Y: 5}, // isolated
		{X: 6, Y: 6}, {X: 7, Y: 7}, // wire
	}
	s, err := scene.Build(&scene.Topology{
		Positions: positions,
		Faces:     [][]int{{0, 1, 2}, {0, 3, 4}},
		Loose:     [][2]int{{6, 7}},
	})
	require.NoError(t, err)

	assert.Equal(t,
		[]bool{false, true, true, true, true, false, false, false},
		manifoldFlags(s),
	)

	wire := s.Edges[len(s.Edges)-1]
	assert.Equal(t, [2]int{6, 7}, wire.V)
	assert.False(t, wire.Manifold)
	assert.False(t, wire.Boundary)
	assert.Equal(t, r3.Vector{}, s.Vertices[5].Normal)
}

func TestBuild_FinEdge(t *testing.T) {
	positions := []r3.Vector{{X: 0}, {X: 1}, {Y: 1}, {Y: -1}, {Z: 1}}
	s, err := scene.Build(&scene.Topology{
		Positions: positions,
		Faces:     [][]int{{0, 1, 2}, {0, 1, 3}, {0, 1, 4}},
	})
	require.NoError(t, err)

	fin := s.Edges[0]
	assert.Equal(t, [2]int{0, 1}, fin.V)
	assert.False(t, fin.Manifold)
	assert.False(t, fin.Boundary)
	assert.False(t, s.Vertices[0].Manifold)
	assert.False(t, s.Vertices[1].Manifold)
	assert.True(t, s.Vertices[2].Manifold)
}

func TestBuild_SharpAndSeams(t *testing.T) {
	s, err := scene.Build(&scene.Topology{
		Positions: quad,
		Faces:     [][]int{{0, 1, 2, 3}},
		Sharp:     [][2]int{{1, 0}},
		Seams:     [][2]int{{2, 3}},
	})
	require.NoError(t, err)
	assert.False(t, s.Edges[0].Smooth)
	assert.True(t, s.Edges[1].Smooth)
	assert.True(t, s.Edges[2].Seam)
	assert.False(t, s.Edges[0].Seam)
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name string
		topo scene.Topology
	}{
		{"short face", scene.Topology{Positions: quad, Faces: [][]int{{0, 1}}}},
		{"face out of range", scene.Topology{Positions: quad, Faces: [][]int{{0, 1, 9}}}},
		{"loose out of range", scene.Topology{Positions: quad, Loose: [][2]int{{0, 9}}}},
		{"loose self edge", scene.Topology{Positions: quad, Loose: [][2]int{{1, 1}}}},
		{"unknown sharp edge", scene.Topology{Positions: quad, Faces: [][]int{{0, 1, 2}}, Sharp: [][2]int{{0, 3}}}},
		{"unknown seam", scene.Topology{Positions: quad, Seams: [][2]int{{0, 1}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scene.Build(&tt.topo)
			require.ErrorIs(t, err, domain.ErrInvalidScene)
		})
	}
}
