package classifier

import (
	"github.com/golang/geo/r3"
	"go.trai.ch/mesha/internal/core/domain"
	"go.trai.ch/mesha/internal/engine/geometry"
)

type vertexRule func(v domain.Vertex, degree int) bool

type edgeRule func(e domain.Edge) bool

// faceRule decides membership for a face with a valid loop.
type faceRule func(c *Classifier, face domain.Face, points []r3.Vector) bool

var vertexRules = map[domain.FeatureID]vertexRule{
	domain.FeatureIsolatedVertices:    func(_ domain.Vertex, d int) bool { return d == 0 },
	domain.FeaturePole3Vertices:       func(_ domain.Vertex, d int) bool { return d == 3 },
	domain.FeaturePole5Vertices:       func(_ domain.Vertex, d int) bool { return d == 5 },
	domain.FeaturePole6Vertices:       func(_ domain.Vertex, d int) bool { return d >= 6 },
	domain.FeatureNonManifoldVertices: func(v domain.Vertex, _ int) bool { return !v.Manifold },
}

var edgeRules = map[domain.FeatureID]edgeRule{
	domain.FeatureNonManifoldEdges: func(e domain.Edge) bool { return !e.Manifold },
	domain.FeatureSharpEdges:       func(e domain.Edge) bool { return !e.Smooth },
	domain.FeatureSeamEdges:        func(e domain.Edge) bool { return e.Seam },
	domain.FeatureBoundaryEdges:    func(e domain.Edge) bool { return e.Boundary },
}

var faceRules = map[domain.FeatureID]faceRule{
	domain.FeatureTriFaces: func(_ *Classifier, f domain.Face, _ []r3.Vector) bool {
		return len(f.Loop) == 3
	},
	domain.FeatureQuadFaces: func(_ *Classifier, f domain.Face, _ []r3.Vector) bool {
		return len(f.Loop) == 4
	},
	domain.FeatureNgonFaces: func(_ *Classifier, f domain.Face, _ []r3.Vector) bool {
		return len(f.Loop) > 4
	},
	domain.FeatureNonPlanarFaces: func(c *Classifier, f domain.Face, points []r3.Vector) bool {
		return len(f.Loop) > 3 && !geometry.IsPlanar(points, f.Normal, c.cfg.PlanarThreshold)
	},
	domain.FeatureDegenerateFaces: func(c *Classifier, _ domain.Face, points []r3.Vector) bool {
		return geometry.IsDegenerate(points, c.degeneracy)
	},
}
