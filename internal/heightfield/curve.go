package heightfield

import (
	"math"
	"sort"
)

// CurvePoint is one control point of a piecewise-linear remap curve.
type CurvePoint struct {
	T float64 // input position, usually in [0,1]
	Y float64 // output value
}

// Curve is a piecewise-linear function over sorted control points.
// Evaluation clamps outside the defined range; zero-width segments are
// skipped so they never divide by zero.
type Curve struct {
	points []CurvePoint
	minY   float64
	maxY   float64
}

// IdentityCurve maps every input to itself over [0,1].
func IdentityCurve() Curve {
	return NewCurve([]CurvePoint{{T: 0, Y: 0}, {T: 1, Y: 1}})
}

// NewCurve builds a curve from control points, sorting them by T. An empty
// point set yields the identity curve.
func NewCurve(points []CurvePoint) Curve {
	if len(points) == 0 {
		return IdentityCurve()
	}
	pts := make([]CurvePoint, len(points))
	copy(pts, points)
	sort.SliceStable(pts, func(i, j int) bool { return pts[i].T < pts[j].T })

	minY := pts[0].Y
	maxY := pts[0].Y
	for _, p := range pts[1:] {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return Curve{points: pts, minY: minY, maxY: maxY}
}

// Eval evaluates the curve at t. Inputs left of the first point clamp to
// its value, right of the last to the last value. NaN input clamps to the
// curve minimum.
func (c Curve) Eval(t float64) float64 {
	if len(c.points) == 0 {
		return t
	}
	if math.IsNaN(t) {
		return c.minY
	}
	if t <= c.points[0].T {
		return c.points[0].Y
	}
	last := c.points[len(c.points)-1]
	if t >= last.T {
		return last.Y
	}
	for i := 1; i < len(c.points); i++ {
		a := c.points[i-1]
		b := c.points[i]
		if t > b.T {
			continue
		}
		span := b.T - a.T
		if span <= 0 {
			// Zero-width segment, take the right-hand value.
			return b.Y
		}
		f := (t - a.T) / span
		return a.Y + (b.Y-a.Y)*f
	}
	return last.Y
}

// Clamp bounds v to the curve's output range, replacing NaN/Inf with the
// nearest defined value.
func (c Curve) Clamp(v float64) float64 {
	if len(c.points) == 0 {
		return v
	}
	if math.IsNaN(v) {
		return c.minY
	}
	if v < c.minY {
		return c.minY
	}
	if v > c.maxY {
		return c.maxY
	}
	return v
}
