package mesher

// Descriptor identifies one chunk's rectangle inside the global height grid
// and which boundary walls it must emit. Wall flags depend only on whether
// the side is the outer edge of the whole terrain, never on neighbor
// chunk existence: interior seams stay open because the adjacent chunk
// supplies the matching surface.
type Descriptor struct {
	ChunkX, ChunkZ   int // chunk grid coordinates
	OffsetX, OffsetZ int // vertex offset into the global grid
	Width, Depth     int // cells covered by this chunk

	WallLeft  bool // x = OffsetX is the terrain's west edge
	WallRight bool // x = OffsetX+Width is the terrain's east edge
	WallFront bool // z = OffsetZ is the terrain's south edge
	WallBack  bool // z = OffsetZ+Depth is the terrain's north edge
}

// Partition splits a (width x depth)-cell terrain into chunk descriptors of
// at most chunkSize cells per side. Edge chunks are clamped, never smaller
// than one cell. Returns nil for degenerate inputs.
func Partition(width, depth, chunkSize int) []Descriptor {
	if width <= 0 || depth <= 0 || chunkSize <= 0 {
		return nil
	}
	chunksX := (width + chunkSize - 1) / chunkSize
	chunksZ := (depth + chunkSize - 1) / chunkSize

	descs := make([]Descriptor, 0, chunksX*chunksZ)
	for cz := 0; cz < chunksZ; cz++ {
		for cx := 0; cx < chunksX; cx++ {
			ox := cx * chunkSize
			oz := cz * chunkSize
			w := chunkSize
			if ox+w > width {
				w = width - ox
			}
			d := chunkSize
			if oz+d > depth {
				d = depth - oz
			}
			descs = append(descs, Descriptor{
				ChunkX:    cx,
				ChunkZ:    cz,
				OffsetX:   ox,
				OffsetZ:   oz,
				Width:     w,
				Depth:     d,
				WallLeft:  ox == 0,
				WallRight: ox+w == width,
				WallFront: oz == 0,
				WallBack:  oz+d == depth,
			})
		}
	}
	return descs
}
