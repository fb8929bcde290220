package domain

import (
	"strconv"

	"go.trai.ch/zerr"
)

// FeatureID identifies one classification. The zero value is not a feature.
type FeatureID uint8

const (
	// FeatureIsolatedVertices are vertices with no incident edges.
	FeatureIsolatedVertices FeatureID = iota + 1
	// FeaturePole3Vertices are vertices with exactly three incident edges.
	FeaturePole3Vertices
	// FeaturePole5Vertices are vertices with exactly five incident edges.
	FeaturePole5Vertices
	// FeaturePole6Vertices are vertices with six or more incident edges.
	FeaturePole6Vertices
	// FeatureNonManifoldVertices are vertices whose manifold flag is false.
	FeatureNonManifoldVertices
	// FeatureNonManifoldEdges are edges whose manifold flag is false.
	FeatureNonManifoldEdges
	// FeatureSharpEdges are edges not marked smooth.
	FeatureSharpEdges
	// FeatureSeamEdges are edges marked as UV seams.
	FeatureSeamEdges
	// FeatureBoundaryEdges are edges with exactly one incident face.
	FeatureBoundaryEdges
	// FeatureTriFaces are faces with three vertices.
	FeatureTriFaces
	// FeatureQuadFaces are faces with four vertices.
	FeatureQuadFaces
	// FeatureNgonFaces are faces with more than four vertices.
	FeatureNgonFaces
	// FeatureNonPlanarFaces are faces with more than three vertices that deviate from their plane.
	FeatureNonPlanarFaces
	// FeatureDegenerateFaces are faces with no usable area or invalid loops.
	FeatureDegenerateFaces
)

// FeatureInfo describes a registered feature.
type FeatureInfo struct {
	ID           FeatureID
	Name         string
	Label        string
	Description  string
	Kind         ElementKind
	Primitive    Primitive
	DefaultColor Color
}

var featureRegistry = []FeatureInfo{
	{
		ID: FeatureIsolatedVertices, Name: "isolated_vertices", Label: "Single Vertices",
		Description: "Vertices with no connected edges",
		Kind:        KindVertex, Primitive: PrimitivePoints, DefaultColor: Color{1, 1, 0, 0.5},
	},
	{
		ID: FeaturePole3Vertices, Name: "pole3_vertices", Label: "N-Poles (3)",
		Description: "Vertices with 3 edges",
		Kind:        KindVertex, Primitive: PrimitivePoints, DefaultColor: Color{1, 0.5, 0, 0.5},
	},
	{
		ID: FeaturePole5Vertices, Name: "pole5_vertices", Label: "E-Poles (5)",
		Description: "Vertices with 5 edges",
		Kind:        KindVertex, Primitive: PrimitivePoints, DefaultColor: Color{0, 1, 1, 0.5},
	},
	{
		ID: FeaturePole6Vertices, Name: "pole6_vertices", Label: "High-Poles (6+)",
		Description: "Vertices with 6 or more edges",
		Kind:        KindVertex, Primitive: PrimitivePoints, DefaultColor: Color{1, 0, 1, 0.5},
	},
	{
		ID: FeatureNonManifoldVertices, Name: "non_manifold_vertices", Label: "Non-Manifold Vertices",
		Description: "Vertices whose neighborhood is not a single surface sheet",
		Kind:        KindVertex, Primitive: PrimitivePoints, DefaultColor: Color{1, 0, 0.5, 0.5},
	},
	{
		ID: FeatureNonManifoldEdges, Name: "non_manifold_edges", Label: "Non-Manifold Edges",
		Description: "Edges shared by more than two faces",
		Kind:        KindEdge, Primitive: PrimitiveLines, DefaultColor: Color{1, 0.5, 0, 0.5},
	},
	{
		ID: FeatureSharpEdges, Name: "sharp_edges", Label: "Sharp Edges",
		Description: "Edges not marked smooth",
		Kind:        KindEdge, Primitive: PrimitiveLines, DefaultColor: Color{1, 1, 1, 0.5},
	},
	{
		ID: FeatureSeamEdges, Name: "seam_edges", Label: "Seam Edges",
		Description: "Edges marked as UV seams",
		Kind:        KindEdge, Primitive: PrimitiveLines, DefaultColor: Color{1, 0, 0, 0.5},
	},
	{
		ID: FeatureBoundaryEdges, Name: "boundary_edges", Label: "Boundary Edges",
		Description: "Edges on mesh boundaries",
		Kind:        KindEdge, Primitive: PrimitiveLines, DefaultColor: Color{0, 1, 1, 0.5},
	},
	{
		ID: FeatureTriFaces, Name: "tri_faces", Label: "Triangles",
		Description: "Faces with 3 vertices",
		Kind:        KindFace, Primitive: PrimitiveTris, DefaultColor: Color{1, 0, 0, 0.5},
	},
	{
		ID: FeatureQuadFaces, Name: "quad_faces", Label: "Quads",
		Description: "Faces with 4 vertices",
		Kind:        KindFace, Primitive: PrimitiveTris, DefaultColor: Color{0, 1, 0, 0.5},
	},
	{
		ID: FeatureNgonFaces, Name: "ngon_faces", Label: "N-Gons",
		Description: "Faces with more than 4 vertices",
		Kind:        KindFace, Primitive: PrimitiveTris, DefaultColor: Color{0, 0, 1, 0.5},
	},
	{
		ID: FeatureNonPlanarFaces, Name: "non_planar_faces", Label: "Non-Planar Faces",
		Description: "Faces whose vertices deviate from the face plane",
		Kind:        KindFace, Primitive: PrimitiveTris, DefaultColor: Color{1, 0.7, 0, 0.5},
	},
	{
		ID: FeatureDegenerateFaces, Name: "degenerate_faces", Label: "Degenerate Faces",
		Description: "Faces with zero area or invalid geometry",
		Kind:        KindFace, Primitive: PrimitiveTris, DefaultColor: Color{1, 0, 0.5, 0.5},
	},
}

var featuresByName = func() map[string]FeatureID {
	m := make(map[string]FeatureID, len(featureRegistry))
	for _, info := range featureRegistry {
		m[info.Name] = info.ID
	}
	return m
}()

// Features returns every registered feature in registry order.
func Features() []FeatureInfo {
	out := make([]FeatureInfo, len(featureRegistry))
	copy(out, featureRegistry)
	return out
}

// FeaturesOfKind returns the registered features that classify the given element kind.
func FeaturesOfKind(kind ElementKind) []FeatureID {
	var out []FeatureID
	for _, info := range featureRegistry {
		if info.Kind == kind {
			out = append(out, info.ID)
		}
	}
	return out
}

// ParseFeatureID resolves a feature by its registry name.
func ParseFeatureID(name string) (FeatureID, error) {
	id, ok := featuresByName[name]
	if !ok {
		return 0, zerr.With(zerr.Wrap(ErrUnknownFeature, "cannot parse feature"), "feature", name)
	}
	return id, nil
}

// Info returns the registry entry for the feature.
func (f FeatureID) Info() (FeatureInfo, bool) {
	if !f.Valid() {
		return FeatureInfo{}, false
	}
	return featureRegistry[f-1], true
}

// Valid reports whether the feature is registered.
func (f FeatureID) Valid() bool {
	return f >= FeatureIsolatedVertices && int(f) <= len(featureRegistry)
}

// Kind returns the element kind the feature classifies.
func (f FeatureID) Kind() ElementKind {
	info, _ := f.Info()
	return info.Kind
}

func (f FeatureID) String() string {
	if info, ok := f.Info(); ok {
		return info.Name
	}
	return "feature(" + strconv.Itoa(int(f)) + ")"
}

// MarshalText encodes the feature as its registry name.
func (f FeatureID) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, zerr.With(zerr.Wrap(ErrUnknownFeature, "cannot marshal feature"), "feature", int(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText decodes a registry name.
func (f *FeatureID) UnmarshalText(text []byte) error {
	id, err := ParseFeatureID(string(text))
	if err != nil {
		return err
	}
	*f = id
	return nil
}
