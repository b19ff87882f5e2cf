package mesher

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Buffers holds one chunk's mesh data. The chunk owns it exclusively
// during generation and hands it to the rendering side afterwards; the
// core never mutates a handed-off buffer except during the one seam
// resolution pass that runs before hand-off.
//
// Vertex order is fixed: surface grid first, then any boundary walls,
// then the bottom cap. Seam resolution relies on surface vertices being
// the leading SurfaceVertexCount() entries.
type Buffers struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Colors    []mgl32.Vec4
	Indices   []uint32 // counter-clockwise front faces

	// Origin is the world-space offset of the chunk; positions are
	// relative to it.
	Origin mgl32.Vec3

	Desc Descriptor

	surfaceVerts int
}

// SurfaceVertexCount returns how many leading vertices belong to the top
// surface grid.
func (b *Buffers) SurfaceVertexCount() int { return b.surfaceVerts }

// VertexCount returns the total number of vertices.
func (b *Buffers) VertexCount() int { return len(b.Positions) }

// TriangleCount returns the number of triangles.
func (b *Buffers) TriangleCount() int { return len(b.Indices) / 3 }
