package geometry

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"go.trai.ch/mesha/internal/core/domain"
)

// Center returns the mean of points.
func Center(points []r3.Vector) r3.Vector {
	var sum r3.Vector
	if len(points) == 0 {
		return sum
	}
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Mul(1 / float64(len(points)))
}

// NewellNormal returns the polygon normal scaled by twice the polygon area.
func NewellNormal(points []r3.Vector) r3.Vector {
	var n r3.Vector
	for i, cur := range points {
		next := points[(i+1)%len(points)]
		n.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		n.Y += (cur.Z - next.Z) * (cur.X + next.X)
		n.Z += (cur.X - next.X) * (cur.Y + next.Y)
	}
	return n
}

// Area returns the area of a polygon given by its loop positions.
func Area(points []r3.Vector) float64 {
	if len(points) < 3 {
		return 0
	}
	return NewellNormal(points).Norm() / 2
}

// Deviation returns the angle between a direction and the plane with the given normal.
// Both vectors must be unit length.
func Deviation(normal, dir r3.Vector) s1.Angle {
	return s1.Angle(math.Asin(math.Min(1, math.Abs(normal.Dot(dir)))))
}

// planarTolerance absorbs rounding in the deviation of coplanar points from a
// plane whose normal was itself computed from those points, in degrees.
const planarTolerance = 1e-9

// IsPlanar reports whether every point lies within thresholdDegrees of the plane
// through the mean of points with the given reference normal.
//
// Loops of three or fewer points are planar. A zero normal cannot be checked and
// is treated as planar; points that coincide with the center are skipped.
func IsPlanar(points []r3.Vector, normal r3.Vector, thresholdDegrees float64) bool {
	if len(points) <= 3 {
		return true
	}
	n := normal.Normalize()
	if n.Norm2() == 0 {
		return true
	}
	center := Center(points)
	for _, p := range points {
		d := p.Sub(center)
		if d.Norm2() == 0 {
			continue
		}
		if Deviation(n, d.Normalize()).Degrees() > thresholdDegrees+planarTolerance {
			return false
		}
	}
	return true
}

// DegeneracyOptions are the tolerances used by IsDegenerate.
type DegeneracyOptions struct {
	AreaEpsilon      float64
	PositionEpsilon  float64
	Collinear        bool
	CollinearEpsilon float64
}

// DegeneracyOptionsFrom extracts the degeneracy tolerances from a classifier config.
func DegeneracyOptionsFrom(cfg domain.ClassifierConfig) DegeneracyOptions {
	return DegeneracyOptions{
		AreaEpsilon:      cfg.AreaEpsilon,
		PositionEpsilon:  cfg.PositionEpsilon,
		Collinear:        cfg.CollinearCheck,
		CollinearEpsilon: cfg.CollinearEpsilon,
	}
}

// IsDegenerate reports whether a polygon has fewer than three points, an area
// below the area epsilon, or two points within the position epsilon. With the
// collinear check enabled, three cyclically consecutive collinear points also
// make the polygon degenerate.
func IsDegenerate(points []r3.Vector, opts DegeneracyOptions) bool {
	if len(points) < 3 {
		return true
	}
	if Area(points) < opts.AreaEpsilon {
		return true
	}
	if HasCoincident(points, opts.PositionEpsilon) {
		return true
	}
	return opts.Collinear && HasCollinearRun(points, opts.CollinearEpsilon)
}

// HasCoincident reports whether any two points are within eps of each other.
func HasCoincident(points []r3.Vector, eps float64) bool {
	eps2 := eps * eps
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			if points[i].Sub(points[j]).Norm2() <= eps2 {
				return true
			}
		}
	}
	return false
}

// HasCollinearRun reports whether three cyclically consecutive points are collinear,
// that is, the sine of the turn angle at the middle point is at most eps.
func HasCollinearRun(points []r3.Vector, eps float64) bool {
	n := len(points)
	if n < 3 {
		return false
	}
	for i := range points {
		a := points[(i+n-1)%n]
		b := points[i]
		c := points[(i+1)%n]
		in := b.Sub(a)
		out := c.Sub(b)
		lengths := in.Norm() * out.Norm()
		if lengths == 0 {
			return true
		}
		if in.Cross(out).Norm() <= eps*lengths {
			return true
		}
	}
	return false
}
