package scene

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"go.trai.ch/mesha/internal/core/domain"
	"go.trai.ch/mesha/internal/engine/geometry"
	"go.trai.ch/zerr"
)

// Topology is polygon data before connectivity has been derived.
type Topology struct {
	Positions []r3.Vector
	Faces     [][]int
	// Loose lists edges that belong to no face.
	Loose [][2]int
	Sharp [][2]int
	Seams [][2]int
}

type edgeKey [2]int

func makeEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// Build derives edges, manifold flags and normals from t.
//
// Edges are numbered in order of first appearance along the face loops,
// followed by loose edges. An edge used by one face is a boundary, by two
// faces manifold. A vertex is manifold when it has edges, every incident edge
// is manifold or a boundary, and its incident faces form a single fan.
func Build(t *Topology) (*domain.Snapshot, error) {
	n := len(t.Positions)
	inRange := func(v int) bool { return v >= 0 && v < n }

	edgeIndex := make(map[edgeKey]int)
	var keys []edgeKey
	var faceCount []int
	addEdge := func(a, b int) int {
		k := makeEdgeKey(a, b)
		if i, ok := edgeIndex[k]; ok {
			return i
		}
		edgeIndex[k] = len(keys)
		keys = append(keys, k)
		faceCount = append(faceCount, 0)
		return len(keys) - 1
	}

	// faceEdges[f] lists the distinct edges of face f.
	faceEdges := make([][]int, len(t.Faces))
	faces := make([]domain.Face, len(t.Faces))
	for f, loop := range t.Faces {
		if len(loop) < 3 {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidScene, "face needs at least 3 vertices"), "face", f)
		}
		for _, v := range loop {
			if !inRange(v) {
				return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrInvalidScene, "face vertex out of range"), "face", f), "vertex", v)
			}
		}

		seen := make(map[int]bool, len(loop))
		for i, a := range loop {
			b := loop[(i+1)%len(loop)]
			if a == b {
				continue
			}
			e := addEdge(a, b)
			if !seen[e] {
				seen[e] = true
				faceCount[e]++
				faceEdges[f] = append(faceEdges[f], e)
			}
		}

		faces[f] = domain.Face{
			Loop:   append([]int(nil), loop...),
			Normal: unit(geometry.NewellNormal(loopPositions(t.Positions, loop))),
		}
	}

	for _, pair := range t.Loose {
		if !inRange(pair[0]) || !inRange(pair[1]) || pair[0] == pair[1] {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidScene, "invalid loose edge"), "edge", pair)
		}
		addEdge(pair[0], pair[1])
	}

	edges := make([]domain.Edge, len(keys))
	for i, k := range keys {
		edges[i] = domain.Edge{
			V:        [2]int(k),
			Manifold: faceCount[i] == 2,
			Boundary: faceCount[i] == 1,
			Smooth:   true,
		}
	}

	mark := func(pairs [][2]int, what string, apply func(*domain.Edge)) error {
		for _, pair := range pairs {
			i, ok := edgeIndex[makeEdgeKey(pair[0], pair[1])]
			if !ok {
				return zerr.With(zerr.Wrap(domain.ErrInvalidScene, what+" edge does not exist"), "edge", pair)
			}
			apply(&edges[i])
		}
		return nil
	}
	if err := mark(t.Sharp, "sharp", func(e *domain.Edge) { e.Smooth = false }); err != nil {
		return nil, err
	}
	if err := mark(t.Seams, "seam", func(e *domain.Edge) { e.Seam = true }); err != nil {
		return nil, err
	}

	return &domain.Snapshot{
		Vertices:  buildVertices(t.Positions, faces, edges, faceCount, faceEdges),
		Edges:     edges,
		Faces:     faces,
		Transform: mgl64.Ident4(),
	}, nil
}

func buildVertices(
	positions []r3.Vector,
	faces []domain.Face,
	edges []domain.Edge,
	faceCount []int,
	faceEdges [][]int,
) []domain.Vertex {
	vertexEdges := make([][]int, len(positions))
	for i, e := range edges {
		vertexEdges[e.V[0]] = append(vertexEdges[e.V[0]], i)
		vertexEdges[e.V[1]] = append(vertexEdges[e.V[1]], i)
	}
	vertexFaces := make([][]int, len(positions))
	normalSum := make([]r3.Vector, len(positions))
	for f, face := range faces {
		seen := make(map[int]bool, len(face.Loop))
		for _, v := range face.Loop {
			if seen[v] {
				continue
			}
			seen[v] = true
			vertexFaces[v] = append(vertexFaces[v], f)
			normalSum[v] = normalSum[v].Add(face.Normal)
		}
	}

	vertices := make([]domain.Vertex, len(positions))
	for v, p := range positions {
		vertices[v] = domain.Vertex{
			Position: p,
			Normal:   unit(normalSum[v]),
			Manifold: vertexManifold(v, vertexEdges[v], vertexFaces[v], edges, faceCount, faceEdges),
		}
	}
	return vertices
}

func vertexManifold(v int, incident, fan []int, edges []domain.Edge, faceCount []int, faceEdges [][]int) bool {
	if len(incident) == 0 {
		return false
	}
	for _, e := range incident {
		if faceCount[e] < 1 || faceCount[e] > 2 {
			return false
		}
	}

	// Union the faces around v that share an edge incident to v.
	parent := make(map[int]int, len(fan))
	for _, f := range fan {
		parent[f] = f
	}
	var find func(int) int
	find = func(f int) int {
		for parent[f] != f {
			parent[f] = parent[parent[f]]
			f = parent[f]
		}
		return f
	}

	owners := make(map[int]int, len(incident))
	for _, f := range fan {
		for _, e := range faceEdges[f] {
			if edges[e].V[0] != v && edges[e].V[1] != v {
				continue
			}
			if other, ok := owners[e]; ok {
				parent[find(f)] = find(other)
				continue
			}
			owners[e] = f
		}
	}

	roots := make(map[int]struct{}, 1)
	for _, f := range fan {
		roots[find(f)] = struct{}{}
	}
	return len(roots) == 1
}

func unit(v r3.Vector) r3.Vector {
	if v.Norm2() == 0 {
		return r3.Vector{}
	}
	return v.Normalize()
}

func loopPositions(positions []r3.Vector, loop []int) []r3.Vector {
	out := make([]r3.Vector, len(loop))
	for i, v := range loop {
		out[i] = positions[v]
	}
	return out
}
