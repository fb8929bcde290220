package scene

import (
	"github.com/go-gl/mathgl/mgl64"
	"go.trai.ch/mesha/internal/core/domain"
	"go.trai.ch/zerr"
)

// Matrix4 returns the world matrix described by t: translate * rotate * scale,
// with rotations applied in X, Y, Z order.
func (t *TransformDTO) Matrix4() (mgl64.Mat4, error) {
	if t.Matrix != nil {
		if t.Translate != nil || t.Rotate != nil || t.Scale != nil {
			return mgl64.Mat4{}, zerr.Wrap(domain.ErrInvalidScene, "matrix cannot be combined with translate, rotate or scale")
		}
		if len(t.Matrix) != 16 {
			return mgl64.Mat4{}, zerr.With(zerr.Wrap(domain.ErrInvalidScene, "matrix needs 16 values"), "values", len(t.Matrix))
		}
		var m mgl64.Mat4
		copy(m[:], t.Matrix)
		return m, nil
	}

	translate, err := vec3("translate", t.Translate, 0)
	if err != nil {
		return mgl64.Mat4{}, err
	}
	rotate, err := vec3("rotate", t.Rotate, 0)
	if err != nil {
		return mgl64.Mat4{}, err
	}
	scale, err := vec3("scale", t.Scale, 1)
	if err != nil {
		return mgl64.Mat4{}, err
	}

	m := mgl64.Translate3D(translate[0], translate[1], translate[2])
	m = m.Mul4(mgl64.HomogRotate3DZ(mgl64.DegToRad(rotate[2])))
	m = m.Mul4(mgl64.HomogRotate3DY(mgl64.DegToRad(rotate[1])))
	m = m.Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(rotate[0])))
	return m.Mul4(mgl64.Scale3D(scale[0], scale[1], scale[2])), nil
}

// vec3 reads three components. A single value is broadcast, an empty slice
// yields fallback.
func vec3(field string, v []float64, fallback float64) ([3]float64, error) {
	switch len(v) {
	case 0:
		return [3]float64{fallback, fallback, fallback}, nil
	case 1:
		return [3]float64{v[0], v[0], v[0]}, nil
	case 3:
		return [3]float64{v[0], v[1], v[2]}, nil
	default:
		return [3]float64{}, zerr.With(zerr.With(zerr.Wrap(domain.ErrInvalidScene, "vector needs 1 or 3 values"), "field", field), "values", len(v))
	}
}
