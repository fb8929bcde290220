package domain

import (
	"math"

	"go.trai.ch/zerr"
)

// Defaults for AnalysisConfig.
const (
	DefaultObjectCapacity   = 10
	DefaultPlanarThreshold  = 1e-4
	DefaultAreaEpsilon      = 1e-8
	DefaultPositionEpsilon  = 1e-6
	DefaultCollinearEpsilon = 1e-6
	DefaultTransformEpsilon = 1e-6
	DefaultVertexRadius     = 10
	DefaultEdgeWidth        = 5
)

// Display bounds.
const (
	MinVertexRadius = 1
	MaxVertexRadius = 50
	MinEdgeWidth    = 1
	MaxEdgeWidth    = 10
)

// QuadSplit selects the diagonal used to split quads into triangles.
type QuadSplit uint8

const (
	// QuadSplitFixed always splits along v0-v2.
	QuadSplitFixed QuadSplit = iota
	// QuadSplitShortest splits along the shorter diagonal.
	QuadSplitShortest
)

func (q QuadSplit) String() string {
	if q == QuadSplitShortest {
		return "shortest"
	}
	return "fixed"
}

// ParseQuadSplit parses a quad split rule. The empty string selects the fixed rule.
func ParseQuadSplit(s string) (QuadSplit, error) {
	switch s {
	case "", "fixed":
		return QuadSplitFixed, nil
	case "shortest":
		return QuadSplitShortest, nil
	default:
		return 0, zerr.With(zerr.Wrap(ErrInvalidQuadSplit, "cannot parse quad split"), "quad_split", s)
	}
}

// ClassifierConfig holds every setting that changes classification output.
type ClassifierConfig struct {
	// PlanarThreshold is the maximum per-vertex deviation from the face plane, in degrees.
	PlanarThreshold  float64
	AreaEpsilon      float64
	PositionEpsilon  float64
	CollinearCheck   bool
	CollinearEpsilon float64
	QuadSplit        QuadSplit
	// FaceOffset pushes face overlays along their normal, in world units.
	FaceOffset float64
}

// FeatureConfig is the per-feature host configuration.
type FeatureConfig struct {
	Enabled bool
	Color   Color
}

// DisplayConfig is passed through to renderers untouched.
type DisplayConfig struct {
	VertexRadius float64
	EdgeWidth    float64
}

// AnalysisConfig is the complete engine configuration.
type AnalysisConfig struct {
	Features         map[FeatureID]FeatureConfig
	Classifier       ClassifierConfig
	ObjectCapacity   int
	TransformEpsilon float64
	Display          DisplayConfig
}

// DefaultClassifierConfig returns the classifier defaults.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		PlanarThreshold:  DefaultPlanarThreshold,
		AreaEpsilon:      DefaultAreaEpsilon,
		PositionEpsilon:  DefaultPositionEpsilon,
		CollinearEpsilon: DefaultCollinearEpsilon,
		QuadSplit:        QuadSplitFixed,
	}
}

// DefaultConfig returns a configuration with every feature enabled in its default color.
func DefaultConfig() AnalysisConfig {
	features := make(map[FeatureID]FeatureConfig, len(featureRegistry))
	for _, info := range featureRegistry {
		features[info.ID] = FeatureConfig{Enabled: true, Color: info.DefaultColor}
	}
	return AnalysisConfig{
		Features:         features,
		Classifier:       DefaultClassifierConfig(),
		ObjectCapacity:   DefaultObjectCapacity,
		TransformEpsilon: DefaultTransformEpsilon,
		Display: DisplayConfig{
			VertexRadius: DefaultVertexRadius,
			EdgeWidth:    DefaultEdgeWidth,
		},
	}
}

// Feature returns the configuration for f. Features missing from the map are
// disabled and carry their default color.
func (c *AnalysisConfig) Feature(f FeatureID) FeatureConfig {
	if fc, ok := c.Features[f]; ok {
		return fc
	}
	info, _ := f.Info()
	return FeatureConfig{Color: info.DefaultColor}
}

// EnabledFeatures returns the enabled features in registry order.
func (c *AnalysisConfig) EnabledFeatures() []FeatureID {
	var out []FeatureID
	for _, info := range featureRegistry {
		if c.Feature(info.ID).Enabled {
			out = append(out, info.ID)
		}
	}
	return out
}

// Validate checks the classifier settings.
func (c *ClassifierConfig) Validate() error {
	if math.IsNaN(c.PlanarThreshold) || c.PlanarThreshold < 0 || c.PlanarThreshold > 90 {
		return zerr.With(zerr.Wrap(ErrInvalidThreshold, "invalid classifier config"), "threshold", c.PlanarThreshold)
	}
	epsilons := []struct {
		name  string
		value float64
	}{
		{"area_epsilon", c.AreaEpsilon},
		{"position_epsilon", c.PositionEpsilon},
		{"collinear_epsilon", c.CollinearEpsilon},
	}
	for _, eps := range epsilons {
		if math.IsNaN(eps.value) || eps.value < 0 {
			return zerr.With(zerr.Wrap(ErrInvalidEpsilon, "invalid classifier config"), eps.name, eps.value)
		}
	}
	if math.IsNaN(c.FaceOffset) || math.IsInf(c.FaceOffset, 0) {
		return zerr.With(zerr.Wrap(ErrInvalidEpsilon, "invalid classifier config"), "face_offset", c.FaceOffset)
	}
	if c.QuadSplit > QuadSplitShortest {
		return zerr.With(zerr.Wrap(ErrInvalidQuadSplit, "invalid classifier config"), "quad_split", int(c.QuadSplit))
	}
	return nil
}

// Validate checks the whole configuration.
func (c *AnalysisConfig) Validate() error {
	if c.ObjectCapacity < 1 {
		return zerr.With(zerr.Wrap(ErrInvalidCapacity, "invalid analysis config"), "capacity", c.ObjectCapacity)
	}
	if math.IsNaN(c.TransformEpsilon) || c.TransformEpsilon < 0 {
		return zerr.With(zerr.Wrap(ErrInvalidEpsilon, "invalid analysis config"), "transform_epsilon", c.TransformEpsilon)
	}
	if c.Display.VertexRadius < MinVertexRadius || c.Display.VertexRadius > MaxVertexRadius {
		return zerr.With(zerr.Wrap(ErrInvalidDisplay, "invalid analysis config"), "vertex_radius", c.Display.VertexRadius)
	}
	if c.Display.EdgeWidth < MinEdgeWidth || c.Display.EdgeWidth > MaxEdgeWidth {
		return zerr.With(zerr.Wrap(ErrInvalidDisplay, "invalid analysis config"), "edge_width", c.Display.EdgeWidth)
	}
	for f := range c.Features {
		if !f.Valid() {
			return zerr.With(zerr.Wrap(ErrUnknownFeature, "invalid analysis config"), "feature", int(f))
		}
	}
	return c.Classifier.Validate()
}
