package mesher

import (
	"github.com/go-gl/mathgl/mgl64"
)

// vertexKey correlates same-position surface vertices across chunks by
// their exact integer grid coordinate. Keying by the grid index instead of
// rounded world-space floats makes seam matching immune to floating-point
// path differences between chunks.
type vertexKey struct {
	x, z int
}

// ResolveSeams merges the normals of surface vertices that share a global
// grid position, across all chunks of one generation pass. Every
// contributing vertex receives the same averaged normal, so shared
// boundary positions end up with bit-identical normals and no lighting
// seam. Only surface vertices participate; walls and bottom caps are
// identified by index range (they follow the surface block) and keep
// their own normals.
//
// Must run only after every chunk mesh exists; it reads and writes all of
// them.
func ResolveSeams(chunks []*Buffers) {
	if len(chunks) == 0 {
		return
	}

	acc := make(map[vertexKey]mgl64.Vec3)
	for _, c := range chunks {
		stride := c.Desc.Width + 1
		for i := 0; i < c.surfaceVerts; i++ {
			k := vertexKey{
				x: c.Desc.OffsetX + i%stride,
				z: c.Desc.OffsetZ + i/stride,
			}
			acc[k] = acc[k].Add(vec64(c.Normals[i]))
		}
	}

	for _, c := range chunks {
		stride := c.Desc.Width + 1
		for i := 0; i < c.surfaceVerts; i++ {
			k := vertexKey{
				x: c.Desc.OffsetX + i%stride,
				z: c.Desc.OffsetZ + i/stride,
			}
			c.Normals[i] = normalize64(acc[k])
		}
	}
}
