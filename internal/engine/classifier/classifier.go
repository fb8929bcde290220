// Package classifier maps mesh snapshots to per-feature element sets and their
// drawable world-space geometry.
package classifier

import (
	"github.com/golang/geo/r3"
	"go.trai.ch/mesha/internal/core/domain"
	"go.trai.ch/mesha/internal/engine/geometry"
	"go.trai.ch/zerr"
)

// Classifier evaluates features against snapshots. It holds no per-snapshot
// state; identical inputs yield identical results.
type Classifier struct {
	cfg          domain.ClassifierConfig
	triangulator geometry.Triangulator
	degeneracy   geometry.DegeneracyOptions
}

// New creates a Classifier for the given configuration.
func New(cfg domain.ClassifierConfig) *Classifier {
	return &Classifier{
		cfg:          cfg,
		triangulator: geometry.NewTriangulator(cfg.QuadSplit),
		degeneracy:   geometry.DegeneracyOptionsFrom(cfg),
	}
}

// Config returns the configuration the classifier was built with.
func (c *Classifier) Config() domain.ClassifierConfig {
	return c.cfg
}

// Classify evaluates one feature. Unknown features are rejected with
// domain.ErrUnknownFeature before the snapshot is inspected.
func (c *Classifier) Classify(s *domain.Snapshot, f domain.FeatureID) (domain.FeatureResult, error) {
	if err := checkFeature(f); err != nil {
		return domain.FeatureResult{}, err
	}
	return newPass(c, s).run(f), nil
}

// ClassifyMany evaluates several features against one snapshot, sharing the
// derived per-snapshot data between them.
func (c *Classifier) ClassifyMany(s *domain.Snapshot, features []domain.FeatureID) (map[domain.FeatureID]domain.FeatureResult, error) {
	for _, f := range features {
		if err := checkFeature(f); err != nil {
			return nil, err
		}
	}
	p := newPass(c, s)
	out := make(map[domain.FeatureID]domain.FeatureResult, len(features))
	for _, f := range features {
		if _, done := out[f]; done {
			continue
		}
		out[f] = p.run(f)
	}
	return out, nil
}

func checkFeature(f domain.FeatureID) error {
	_, vertex := vertexRules[f]
	_, edge := edgeRules[f]
	_, face := faceRules[f]
	if !vertex && !edge && !face {
		return zerr.With(zerr.Wrap(domain.ErrUnknownFeature, "cannot classify"), "feature", f.String())
	}
	return nil
}

// pass carries the data derived from one snapshot.
type pass struct {
	c       *Classifier
	s       *domain.Snapshot
	xf      worldTransform
	degrees []int
}

func newPass(c *Classifier, s *domain.Snapshot) *pass {
	if s == nil {
		s = &domain.Snapshot{}
	}
	return &pass{c: c, s: s, xf: newWorldTransform(s.Transform)}
}

func (p *pass) run(f domain.FeatureID) domain.FeatureResult {
	res := domain.EmptyResult(f)
	if rule, ok := vertexRules[f]; ok {
		p.vertices(&res, rule)
	} else if rule, ok := edgeRules[f]; ok {
		p.edges(&res, rule)
	} else if rule, ok := faceRules[f]; ok {
		p.faces(&res, f, rule)
	}
	return res
}

func (p *pass) vertexDegrees() []int {
	if p.degrees == nil {
		p.degrees = p.s.Degrees()
	}
	return p.degrees
}

func (p *pass) vertices(res *domain.FeatureResult, rule vertexRule) {
	if len(p.s.Vertices) == 0 {
		return
	}
	degrees := p.vertexDegrees()
	for i, v := range p.s.Vertices {
		if !rule(v, degrees[i]) {
			continue
		}
		res.Indices = append(res.Indices, i)
		res.Positions = append(res.Positions, p.xf.point(v.Position))
		res.Normals = append(res.Normals, p.xf.direction(v.Normal))
	}
}

func (p *pass) edges(res *domain.FeatureResult, rule edgeRule) {
	for i, e := range p.s.Edges {
		if !p.s.ValidEdge(e) || !rule(e) {
			continue
		}
		a, b := p.s.Vertices[e.V[0]], p.s.Vertices[e.V[1]]
		res.Indices = append(res.Indices, i)
		res.Positions = append(res.Positions, p.xf.point(a.Position), p.xf.point(b.Position))
		res.Normals = append(res.Normals, p.xf.direction(a.Normal), p.xf.direction(b.Normal))
	}
}

// faces applies a face rule. Faces with malformed loops only ever belong to the
// degenerate class, and only by index since they cannot be drawn.
func (p *pass) faces(res *domain.FeatureResult, f domain.FeatureID, rule faceRule) {
	for i, face := range p.s.Faces {
		if !p.s.ValidLoop(face.Loop) {
			if f == domain.FeatureDegenerateFaces {
				res.Indices = append(res.Indices, i)
			}
			continue
		}
		points := p.s.LoopPositions(face.Loop)
		if !rule(p.c, face, points) {
			continue
		}
		res.Indices = append(res.Indices, i)
		p.appendFace(res, face, points)
	}
}

func (p *pass) appendFace(res *domain.FeatureResult, face domain.Face, points []r3.Vector) {
	normal := face.Normal
	if normal.Norm2() == 0 {
		normal = geometry.NewellNormal(points)
	}
	n := p.xf.direction(normal)
	offset := n.Mul(p.c.cfg.FaceOffset)

	// Triangulate in loop-local indices so positions can be looked up directly.
	local := make([]int, len(face.Loop))
	for i := range local {
		local[i] = i
	}
	for _, tri := range p.c.triangulator.Triangulate(local, points) {
		for _, corner := range tri {
			res.Positions = append(res.Positions, p.xf.point(points[corner]).Add(offset))
			res.Normals = append(res.Normals, n)
		}
	}
}
