package heightfield

// Field is the dense global height grid for one generation pass. It holds
// (Width+1) x (Depth+1) vertex heights in row-major order: index =
// z*(Width+1)+x. Width and Depth count cells, not vertices.
type Field struct {
	Width   int
	Depth   int
	Heights []float64
}

// NewField allocates a zeroed grid. Non-positive dimensions produce an
// empty grid rather than an error.
func NewField(width, depth int) *Field {
	if width <= 0 || depth <= 0 {
		return &Field{}
	}
	return &Field{
		Width:   width,
		Depth:   depth,
		Heights: make([]float64, (width+1)*(depth+1)),
	}
}

// Empty reports whether the grid holds no vertices.
func (f *Field) Empty() bool { return len(f.Heights) == 0 }

// At returns the height at vertex (x, z). Callers must stay in range.
func (f *Field) At(x, z int) float64 {
	return f.Heights[z*(f.Width+1)+x]
}

// Set writes the height at vertex (x, z).
func (f *Field) Set(x, z int, h float64) {
	f.Heights[z*(f.Width+1)+x] = h
}
