package geometry_test

import (
	"fmt"
	"slices"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mesha/internal/core/domain"
	"go.trai.ch/mesha/internal/engine/geometry"
)

func TestTriangulate_Shapes(t *testing.T) {
	tests := []struct {
		name string
		loop []int
		want []geometry.Triangle
	}{
		{name: "empty", loop: nil, want: nil},
		{name: "two vertices", loop: []int{4, 5}, want: nil},
		{name: "triangle", loop: []int{7, 3, 9}, want: []geometry.Triangle{{7, 3, 9}}},
		{name: "quad", loop: []int{0, 1, 2, 3}, want: []geometry.Triangle{{0, 1, 2}, {0, 2, 3}}},
		{
			name: "pentagon",
			loop: []int{10, 11, 12, 13, 14},
			want: []geometry.Triangle{{10, 11, 12}, {10, 12, 13}, {10, 13, 14}},
		},
	}

	tr := geometry.NewTriangulator(domain.QuadSplitFixed)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tr.Triangulate(tt.loop, nil)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Triangulate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTriangulate_FanCoversLoop(t *testing.T) {
	tr := geometry.NewTriangulator(domain.QuadSplitFixed)
	for n := 5; n <= 12; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			loop := make([]int, n)
			for i := range loop {
				loop[i] = 100 + i
			}

			tris := tr.Triangulate(loop, nil)
			require.Len(t, tris, n-2)

			var used []int
			for _, tri := range tris {
				assert.Equal(t, loop[0], tri[0], "fan anchor must be v0")
				used = append(used, tri[:]...)
			}
			slices.Sort(used)
			assert.Equal(t, loop, slices.Compact(used))
		})
	}
}

func TestTriangulate_QuadSharesDiagonal(t *testing.T) {
	tr := geometry.NewTriangulator(domain.QuadSplitFixed)
	loop := []int{3, 8, 1, 6}

	tris := tr.Triangulate(loop, nil)
	require.Len(t, tris, 2)
	for _, tri := range tris {
		assert.Contains(t, tri[:], 3)
		assert.Contains(t, tri[:], 1)
	}
}

func TestTriangulate_ShortestDiagonal(t *testing.T) {
	// A kite whose v1-v3 diagonal is much shorter than v0-v2.
	positions := []r3.Vector{
		{X: -5, Y: 0},
		{X: 0, Y: -1},
		{X: 5, Y: 0},
		{X: 0, Y: 1},
	}
	loop := []int{0, 1, 2, 3}

	shortest := geometry.NewTriangulator(domain.QuadSplitShortest)
	got := shortest.Triangulate(loop, positions)
	assert.Equal(t, []geometry.Triangle{{0, 1, 3}, {1, 2, 3}}, got)

	// Without positions the rule cannot be applied.
	assert.Equal(t, []geometry.Triangle{{0, 1, 2}, {0, 2, 3}}, shortest.Triangulate(loop, nil))

	fixed := geometry.NewTriangulator(domain.QuadSplitFixed)
	assert.Equal(t, []geometry.Triangle{{0, 1, 2}, {0, 2, 3}}, fixed.Triangulate(loop, positions))
}
