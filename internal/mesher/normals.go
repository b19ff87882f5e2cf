package mesher

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// upVector is the fallback for degenerate zero-length normal sums.
var upVector = mgl32.Vec3{0, 1, 0}

// ComputeNormals fills b.Normals with area-weighted vertex normals:
// every triangle's cross product is accumulated into its three vertices,
// then each sum is normalized. Accumulation runs in float64 so the result
// does not depend on triangle visit order more than the summation itself.
func ComputeNormals(b *Buffers) {
	acc := make([]mgl64.Vec3, len(b.Positions))

	for i := 0; i+2 < len(b.Indices); i += 3 {
		i0 := b.Indices[i]
		i1 := b.Indices[i+1]
		i2 := b.Indices[i+2]
		p0 := vec64(b.Positions[i0])
		p1 := vec64(b.Positions[i1])
		p2 := vec64(b.Positions[i2])

		// Un-normalized cross: larger triangles weigh more.
		n := p1.Sub(p0).Cross(p2.Sub(p0))
		acc[i0] = acc[i0].Add(n)
		acc[i1] = acc[i1].Add(n)
		acc[i2] = acc[i2].Add(n)
	}

	if cap(b.Normals) < len(acc) {
		b.Normals = make([]mgl32.Vec3, len(acc))
	}
	b.Normals = b.Normals[:len(acc)]
	for i, n := range acc {
		b.Normals[i] = normalize64(n)
	}
}

func vec64(v mgl32.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{float64(v.X()), float64(v.Y()), float64(v.Z())}
}

// normalize64 converts an accumulated float64 normal to float32,
// defaulting to straight up when the sum cancels to zero.
func normalize64(n mgl64.Vec3) mgl32.Vec3 {
	l := n.Len()
	if l == 0 {
		return upVector
	}
	return mgl32.Vec3{float32(n.X() / l), float32(n.Y() / l), float32(n.Z() / l)}
}
