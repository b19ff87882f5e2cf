package mesher

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"terraforge/internal/heightfield"
)

// UVMode selects how texture coordinates are generated.
type UVMode int

const (
	// UVModeLocal maps each chunk to [0,1] on its own. Textures visibly
	// repeat per chunk; kept for the legacy non-seamless path.
	UVModeLocal UVMode = iota
	// UVModeGlobal derives UVs from world coordinates divided by the
	// texture scale, so texturing is continuous across chunk boundaries.
	// Required whenever seamless texturing is enabled.
	UVModeGlobal
)

// ColorFunc supplies a per-vertex color from world grid coordinates and
// the vertex height. A nil func paints everything white.
type ColorFunc func(worldX, worldZ int, height float64) mgl32.Vec4

// Mesher builds closed-volume chunk meshes from slices of the global
// height grid: top surface, boundary walls where flagged, bottom cap.
type Mesher struct {
	BottomDepth  float64
	UVMode       UVMode
	TextureScale float64 // world units per texture repeat in UVModeGlobal
	Color        ColorFunc
}

// Mesh builds the buffers for one chunk. The descriptor must cover at
// least one cell and lie inside the field; violations are invalid
// arguments, not soft fallbacks.
func (m *Mesher) Mesh(f *heightfield.Field, d Descriptor) (*Buffers, error) {
	if d.Width < 1 || d.Depth < 1 {
		return nil, fmt.Errorf("mesher: chunk (%d,%d) is %dx%d cells, minimum is 1x1", d.ChunkX, d.ChunkZ, d.Width, d.Depth)
	}
	if d.OffsetX < 0 || d.OffsetZ < 0 || d.OffsetX+d.Width > f.Width || d.OffsetZ+d.Depth > f.Depth {
		return nil, fmt.Errorf("mesher: chunk (%d,%d) exceeds the %dx%d height grid", d.ChunkX, d.ChunkZ, f.Width, f.Depth)
	}

	surface := (d.Width + 1) * (d.Depth + 1)
	walls := 0
	if d.WallLeft {
		walls += 2 * (d.Depth + 1)
	}
	if d.WallRight {
		walls += 2 * (d.Depth + 1)
	}
	if d.WallFront {
		walls += 2 * (d.Width + 1)
	}
	if d.WallBack {
		walls += 2 * (d.Width + 1)
	}
	total := surface*2 + walls

	b := &Buffers{
		Positions:    make([]mgl32.Vec3, 0, total),
		UVs:          make([]mgl32.Vec2, 0, total),
		Colors:       make([]mgl32.Vec4, 0, total),
		Indices:      make([]uint32, 0, 6*(2*d.Width*d.Depth+d.Width*2+d.Depth*2)),
		Origin:       mgl32.Vec3{float32(d.OffsetX), 0, float32(d.OffsetZ)},
		Desc:         d,
		surfaceVerts: surface,
	}

	m.buildSurface(f, d, b)
	m.buildWalls(f, d, b)
	m.buildBottom(d, b)

	ComputeNormals(b)
	return b, nil
}

func (m *Mesher) vertexUV(worldX, worldZ float64, d Descriptor) mgl32.Vec2 {
	if m.UVMode == UVModeGlobal {
		scale := m.TextureScale
		if scale <= 0 {
			scale = 1
		}
		return mgl32.Vec2{float32(worldX / scale), float32(worldZ / scale)}
	}
	return mgl32.Vec2{
		float32((worldX - float64(d.OffsetX)) / float64(d.Width)),
		float32((worldZ - float64(d.OffsetZ)) / float64(d.Depth)),
	}
}

func (m *Mesher) vertexColor(worldX, worldZ int, h float64) mgl32.Vec4 {
	if m.Color == nil {
		return mgl32.Vec4{1, 1, 1, 1}
	}
	return m.Color(worldX, worldZ, h)
}

// buildSurface copies the chunk's rectangle of the global grid into local
// vertices and triangulates it two triangles per quad.
func (m *Mesher) buildSurface(f *heightfield.Field, d Descriptor, b *Buffers) {
	stride := d.Width + 1
	for z := 0; z <= d.Depth; z++ {
		for x := 0; x <= d.Width; x++ {
			wx := d.OffsetX + x
			wz := d.OffsetZ + z
			h := f.At(wx, wz)
			b.Positions = append(b.Positions, mgl32.Vec3{float32(x), float32(h), float32(z)})
			b.UVs = append(b.UVs, m.vertexUV(float64(wx), float64(wz), d))
			b.Colors = append(b.Colors, m.vertexColor(wx, wz, h))
		}
	}
	for z := 0; z < d.Depth; z++ {
		for x := 0; x < d.Width; x++ {
			i := uint32(z*stride + x)
			s := uint32(stride)
			b.Indices = append(b.Indices,
				i, i+s, i+1,
				i+1, i+s, i+s+1,
			)
		}
	}
}

// buildWalls emits a ribbon of quads dropping from the surface edge to the
// bottom depth for every side flagged in the descriptor. Winding is
// mirrored between opposite sides so all wall normals face outward.
func (m *Mesher) buildWalls(f *heightfield.Field, d Descriptor, b *Buffers) {
	if d.WallLeft {
		m.buildWallX(f, d, b, 0, false)
	}
	if d.WallRight {
		m.buildWallX(f, d, b, d.Width, true)
	}
	if d.WallFront {
		m.buildWallZ(f, d, b, 0, false)
	}
	if d.WallBack {
		m.buildWallZ(f, d, b, d.Depth, true)
	}
}

// buildWallX builds the wall along a constant local x (0 or Width).
// flip mirrors the winding for the +X side.
func (m *Mesher) buildWallX(f *heightfield.Field, d Descriptor, b *Buffers, lx int, flip bool) {
	base := uint32(len(b.Positions))
	wx := d.OffsetX + lx
	for z := 0; z <= d.Depth; z++ {
		wz := d.OffsetZ + z
		h := f.At(wx, wz)
		top := mgl32.Vec3{float32(lx), float32(h), float32(z)}
		bot := mgl32.Vec3{float32(lx), float32(m.BottomDepth), float32(z)}
		b.Positions = append(b.Positions, top, bot)
		b.UVs = append(b.UVs, m.wallUV(float64(wz), h), m.wallUV(float64(wz), m.BottomDepth))
		c := m.vertexColor(wx, wz, h)
		b.Colors = append(b.Colors, c, c)
	}
	for z := 0; z < d.Depth; z++ {
		t0 := base + uint32(z*2)
		b0 := t0 + 1
		t1 := t0 + 2
		b1 := t0 + 3
		if flip {
			b.Indices = append(b.Indices, t0, t1, b0, t1, b1, b0)
		} else {
			b.Indices = append(b.Indices, t0, b0, t1, t1, b0, b1)
		}
	}
}

// buildWallZ builds the wall along a constant local z (0 or Depth).
func (m *Mesher) buildWallZ(f *heightfield.Field, d Descriptor, b *Buffers, lz int, flip bool) {
	base := uint32(len(b.Positions))
	wz := d.OffsetZ + lz
	for x := 0; x <= d.Width; x++ {
		wx := d.OffsetX + x
		h := f.At(wx, wz)
		top := mgl32.Vec3{float32(x), float32(h), float32(lz)}
		bot := mgl32.Vec3{float32(x), float32(m.BottomDepth), float32(lz)}
		b.Positions = append(b.Positions, top, bot)
		b.UVs = append(b.UVs, m.wallUV(float64(wx), h), m.wallUV(float64(wx), m.BottomDepth))
		c := m.vertexColor(wx, wz, h)
		b.Colors = append(b.Colors, c, c)
	}
	for x := 0; x < d.Width; x++ {
		t0 := base + uint32(x*2)
		b0 := t0 + 1
		t1 := t0 + 2
		b1 := t0 + 3
		if flip {
			b.Indices = append(b.Indices, t0, b0, t1, t1, b0, b1)
		} else {
			b.Indices = append(b.Indices, t0, t1, b0, t1, b1, b0)
		}
	}
}

func (m *Mesher) wallUV(along, height float64) mgl32.Vec2 {
	scale := m.TextureScale
	if m.UVMode != UVModeGlobal || scale <= 0 {
		scale = 1
	}
	return mgl32.Vec2{float32(along / scale), float32(height / scale)}
}

// buildBottom mirrors the surface grid at the bottom depth with reversed
// winding so the cap faces downward.
func (m *Mesher) buildBottom(d Descriptor, b *Buffers) {
	base := uint32(len(b.Positions))
	stride := d.Width + 1
	for z := 0; z <= d.Depth; z++ {
		for x := 0; x <= d.Width; x++ {
			wx := d.OffsetX + x
			wz := d.OffsetZ + z
			b.Positions = append(b.Positions, mgl32.Vec3{float32(x), float32(m.BottomDepth), float32(z)})
			b.UVs = append(b.UVs, m.vertexUV(float64(wx), float64(wz), d))
			b.Colors = append(b.Colors, m.vertexColor(wx, wz, m.BottomDepth))
		}
	}
	for z := 0; z < d.Depth; z++ {
		for x := 0; x < d.Width; x++ {
			i := base + uint32(z*stride+x)
			s := uint32(stride)
			b.Indices = append(b.Indices,
				i, i+1, i+s,
				i+1, i+s+1, i+s,
			)
		}
	}
}
