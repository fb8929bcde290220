package config

// File represents the structure of the mesha.yaml configuration file.
// Pointer fields distinguish an explicit zero from an omitted setting.
type File struct {
	Version       string                `yaml:"version"`
	Cache         CacheDTO              `yaml:"cache"`
	Planarity     PlanarityDTO          `yaml:"planarity"`
	Degeneracy    DegeneracyDTO         `yaml:"degeneracy"`
	Triangulation TriangulationDTO      `yaml:"triangulation"`
	Invalidation  InvalidationDTO       `yaml:"invalidation"`
	Display       DisplayDTO            `yaml:"display"`
	Features      map[string]FeatureDTO `yaml:"features"`
}

// CacheDTO configures the analysis cache.
type CacheDTO struct {
	Objects *int `yaml:"objects"`
}

// PlanarityDTO configures the non-planar face test.
type PlanarityDTO struct {
	Threshold *float64 `yaml:"threshold"`
}

// DegeneracyDTO configures the degenerate face test.
type DegeneracyDTO struct {
	AreaEpsilon      *float64 `yaml:"area_epsilon"`
	PositionEpsilon  *float64 `yaml:"position_epsilon"`
	Collinear        *bool    `yaml:"collinear"`
	CollinearEpsilon *float64 `yaml:"collinear_epsilon"`
}

// TriangulationDTO configures face triangulation.
type TriangulationDTO struct {
	QuadSplit string `yaml:"quad_split"`
}

// InvalidationDTO configures change detection.
type InvalidationDTO struct {
	TransformEpsilon *float64 `yaml:"transform_epsilon"`
}

// DisplayDTO holds overlay settings.
type DisplayDTO struct {
	FaceOffset   *float64 `yaml:"face_offset"`
	VertexRadius *float64 `yaml:"vertex_radius"`
	EdgeWidth    *float64 `yaml:"edge_width"`
}

// FeatureDTO overrides one feature. Color takes three or four components.
type FeatureDTO struct {
	Enabled *bool     `yaml:"enabled"`
	Color   []float64 `yaml:"color"`
}
