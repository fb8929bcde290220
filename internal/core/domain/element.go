package domain

// ElementKind identifies the mesh element a feature classifies.
type ElementKind uint8

const (
	// KindVertex classifies vertices.
	KindVertex ElementKind = iota
	// KindEdge classifies edges.
	KindEdge
	// KindFace classifies faces.
	KindFace
)

func (k ElementKind) String() string {
	switch k {
	case KindVertex:
		return "vertex"
	case KindEdge:
		return "edge"
	case KindFace:
		return "face"
	default:
		return "unknown"
	}
}

// Primitive is the draw primitive a feature's geometry is laid out for.
type Primitive uint8

const (
	// PrimitivePoints emits one position per element.
	PrimitivePoints Primitive = iota
	// PrimitiveLines emits two positions per element.
	PrimitiveLines
	// PrimitiveTris emits three positions per triangle.
	PrimitiveTris
)

func (p Primitive) String() string {
	switch p {
	case PrimitivePoints:
		return "points"
	case PrimitiveLines:
		return "lines"
	case PrimitiveTris:
		return "tris"
	default:
		return "unknown"
	}
}

// Stride returns the number of positions emitted per primitive.
func (p Primitive) Stride() int {
	switch p {
	case PrimitiveLines:
		return 2
	case PrimitiveTris:
		return 3
	default:
		return 1
	}
}

// Color is an RGBA display color in the [0, 1] range.
// It is carried alongside results for the renderer and never interpreted.
type Color [4]float64
