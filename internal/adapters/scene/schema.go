package scene

// File represents the structure of a scene file.
type File struct {
	Version string      `yaml:"version"`
	Objects []ObjectDTO `yaml:"objects"`
}

// ObjectDTO represents one scene object.
type ObjectDTO struct {
	ID        string        `yaml:"id"`
	Name      string        `yaml:"name"`
	Type      string        `yaml:"type"`
	Mode      string        `yaml:"mode"`
	Transform TransformDTO  `yaml:"transform"`
	Mesh      *MeshDTO      `yaml:"mesh"`
	Primitive *PrimitiveDTO `yaml:"primitive"`
}

// TransformDTO places an object in the world. Matrix is column-major and
// cannot be combined with the other fields.
type TransformDTO struct {
	Translate []float64 `yaml:"translate"`
	Rotate    []float64 `yaml:"rotate"`
	Scale     []float64 `yaml:"scale"`
	Matrix    []float64 `yaml:"matrix"`
}

// MeshDTO is explicit polygon data. Edges lists loose edges not used by any face.
type MeshDTO struct {
	Vertices [][]float64 `yaml:"vertices"`
	Faces    [][]int     `yaml:"faces"`
	Edges    [][]int     `yaml:"edges"`
	Sharp    [][]int     `yaml:"sharp"`
	Seams    [][]int     `yaml:"seams"`
}

// PrimitiveDTO requests a generated mesh. Exactly one shape must be set.
type PrimitiveDTO struct {
	Box      []float64    `yaml:"box"`
	Cylinder *CylinderDTO `yaml:"cylinder"`
	Sphere   *SphereDTO   `yaml:"sphere"`
	Cells    int          `yaml:"cells"`
}

// CylinderDTO describes a Z-aligned cylinder.
type CylinderDTO struct {
	Height float64 `yaml:"height"`
	Radius float64 `yaml:"radius"`
}

// SphereDTO describes a sphere.
type SphereDTO struct {
	Radius float64 `yaml:"radius"`
}
