package classifier

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
)

// worldTransform maps object-space positions and normals into world space.
type worldTransform struct {
	model  mgl64.Mat4
	normal mgl64.Mat3
}

// newWorldTransform builds the transform for an object matrix. A zero matrix is
// treated as identity. Normals use the inverse transpose of the linear part so
// that non-uniform scale keeps them perpendicular; singular matrices fall back
// to the linear part itself.
func newWorldTransform(m mgl64.Mat4) worldTransform {
	if m == (mgl64.Mat4{}) {
		m = mgl64.Ident4()
	}
	linear := m.Mat3()
	normal := linear
	if linear.Det() != 0 {
		normal = linear.Inv().Transpose()
	}
	return worldTransform{model: m, normal: normal}
}

func (t worldTransform) point(p r3.Vector) r3.Vector {
	v := t.model.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}

func (t worldTransform) direction(n r3.Vector) r3.Vector {
	v := t.normal.Mul3x1(mgl64.Vec3{n.X, n.Y, n.Z})
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}.Normalize()
}
