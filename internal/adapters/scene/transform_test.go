package scene_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mesha/internal/adapters/scene"
	"go.trai.ch/mesha/internal/core/domain"
)

func TestTransform_Matrix4(t *testing.T) {
	tests := []struct {
		name string
		dto  scene.TransformDTO
		in   mgl64.Vec3
		want mgl64.Vec3
	}{
		{"identity", scene.TransformDTO{}, mgl64.Vec3{1, 2, 3}, mgl64.Vec3{1, 2, 3}},
		{"translate", scene.TransformDTO{Translate: []float64{1, 0, -1}}, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, -1}},
		{"uniform scale", scene.TransformDTO{Scale: []float64{2}}, mgl64.Vec3{1, 1, 1}, mgl64.Vec3{2, 2, 2}},
		{"rotate z", scene.TransformDTO{Rotate: []float64{0, 0, 90}}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}},
		{
			"scale then rotate then translate",
			scene.TransformDTO{Translate: []float64{0, 0, 5}, Rotate: []float64{90, 0, 0}, Scale: []float64{1, 2, 1}},
			mgl64.Vec3{0, 1, 0},
			mgl64.Vec3{0, 0, 7},
		},
		{
			"matrix",
			scene.TransformDTO{Matrix: []float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 4, 5, 6, 1}},
			mgl64.Vec3{1, 1, 1},
			mgl64.Vec3{5, 6, 7},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := tt.dto.Matrix4()
			require.NoError(t, err)
			got := mgl64.TransformCoordinate(tt.in, m)
			assert.True(t, got.ApproxEqualThreshold(tt.want, 1e-9), "got %v", got)
		})
	}
}

func TestTransform_Errors(t *testing.T) {
	tests := []struct {
		name string
		dto  scene.TransformDTO
	}{
		{"matrix and translate", scene.TransformDTO{Matrix: make([]float64, 16), Translate: []float64{1}}},
		{"short matrix", scene.TransformDTO{Matrix: []float64{1, 2, 3}}},
		{"two component scale", scene.TransformDTO{Scale: []float64{1, 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.dto.Matrix4()
			require.ErrorIs(t, err, domain.ErrInvalidScene)
		})
	}
}
