package scene

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl64"
	"go.trai.ch/mesha/internal/core/domain"
)

// hasher feeds fixed-width values into an xxhash digest.
type hasher struct {
	d   *xxhash.Digest
	buf [8]byte
}

func newHasher() *hasher {
	return &hasher{d: xxhash.New()}
}

func (h *hasher) uint(v uint64) {
	binary.LittleEndian.PutUint64(h.buf[:], v)
	_, _ = h.d.Write(h.buf[:])
}

func (h *hasher) int(v int) {
	h.uint(uint64(v)) //nolint:gosec // bit pattern only
}

func (h *hasher) float(v float64) {
	h.uint(math.Float64bits(v))
}

func (h *hasher) bool(v bool) {
	if v {
		h.uint(1)
		return
	}
	h.uint(0)
}

// geometryHash digests the mesh content of s, ignoring its transform.
func geometryHash(s *domain.Snapshot) uint64 {
	h := newHasher()
	h.int(len(s.Vertices))
	for _, v := range s.Vertices {
		h.float(v.Position.X)
		h.float(v.Position.Y)
		h.float(v.Position.Z)
	}
	h.int(len(s.Faces))
	for _, f := range s.Faces {
		h.int(len(f.Loop))
		for _, v := range f.Loop {
			h.int(v)
		}
	}
	h.int(len(s.Edges))
	for _, e := range s.Edges {
		h.int(e.V[0])
		h.int(e.V[1])
		h.bool(e.Smooth)
		h.bool(e.Seam)
	}
	return h.d.Sum64()
}

// revision combines the geometry digest with the transform. Classified
// geometry is world space, so a moved object must not share a revision with
// its previous placement. The result is never zero.
func revision(geometry uint64, transform mgl64.Mat4) uint64 {
	h := newHasher()
	h.uint(geometry)
	for _, v := range transform {
		h.float(v)
	}
	if sum := h.d.Sum64(); sum != 0 {
		return sum
	}
	return 1
}
