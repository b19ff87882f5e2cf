package noise

import (
	"math"

	"github.com/aquilax/go-perlin"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Field samples every supported noise family for a fixed seed. The perlin
// and simplex sources precompute read-only permutation tables at
// construction; they are a performance detail only and every sample is a
// pure function of (type, coordinates, settings, seed).
type Field struct {
	seed    int64
	perlin  *perlin.Perlin
	simplex opensimplex.Noise
}

// New creates a noise field for the given seed.
func New(seed int64) *Field {
	return &Field{
		seed:    seed,
		perlin:  perlin.NewPerlin(2, 2, 3, seed),
		simplex: opensimplex.New(seed),
	}
}

// Seed returns the seed the field was built with.
func (f *Field) Seed() int64 { return f.seed }

// Sample2D evaluates a single octave of the given family at (x, z),
// returning a value in [0,1].
func (f *Field) Sample2D(t Type, x, z float64) float64 {
	switch t {
	case TypePerlin:
		return clamp01(f.perlin.Noise2D(x, z)*0.5 + 0.5)
	case TypeSimplex:
		return clamp01(f.simplex.Eval2(x, z)*0.5 + 0.5)
	case TypeRidged:
		n := f.simplex.Eval2(x, z) // signed
		r := 1 - math.Abs(n)
		return clamp01(r * r)
	case TypeWarped:
		// Offset the sample position by two decorrelated auxiliary samples.
		wx := valueNoise2D(x+13.7, z+71.3, f.seed+1) * 2
		wz := valueNoise2D(x+47.1, z+5.9, f.seed+2) * 2
		return valueNoise2D(x+wx, z+wz, f.seed)
	case TypeCellular:
		return f.cellular2D(x, z)
	default:
		return valueNoise2D(x, z, f.seed)
	}
}

// Sample3D evaluates a single octave of the given family at (x, y, z),
// returning a value in [0,1]. Families without a native 3D form fall back
// to value noise.
func (f *Field) Sample3D(t Type, x, y, z float64) float64 {
	switch t {
	case TypePerlin:
		return clamp01(f.perlin.Noise3D(x, y, z)*0.5 + 0.5)
	case TypeSimplex:
		return clamp01(f.simplex.Eval3(x, y, z)*0.5 + 0.5)
	case TypeRidged:
		n := f.simplex.Eval3(x, y, z)
		r := 1 - math.Abs(n)
		return clamp01(r * r)
	default:
		return valueNoise3D(x, y, z, f.seed)
	}
}

// Octave2D sums octaves of Sample2D in fractal Brownian motion style:
// amplitude decays by persistence, frequency grows by lacunarity. The sum
// is normalized by the total amplitude so the result stays in [0,1].
// octaves <= 0 yields 0.
func (f *Field) Octave2D(t Type, x, z float64, octaves int, persistence, lacunarity float64) float64 {
	amplitude := 1.0
	frequency := 1.0
	sum := 0.0
	norm := 0.0
	for i := 0; i < octaves; i++ {
		sum += f.Sample2D(t, x*frequency, z*frequency) * amplitude
		norm += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm // [0,1]
}

// Octave3D is the 3D counterpart of Octave2D.
func (f *Field) Octave3D(t Type, x, y, z float64, octaves int, persistence, lacunarity float64) float64 {
	amplitude := 1.0
	frequency := 1.0
	sum := 0.0
	norm := 0.0
	for i := 0; i < octaves; i++ {
		sum += f.Sample3D(t, x*frequency, y*frequency, z*frequency) * amplitude
		norm += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm // [0,1]
}

// OctaveSettings evaluates Octave2D with the scale and offset baked into a
// Settings value applied to the coordinates.
func (f *Field) OctaveSettings(s Settings, x, z float64) float64 {
	sx := (x + s.Offset) * s.Scale
	sz := (z + s.Offset) * s.Scale
	return f.Octave2D(s.Type, sx, sz, s.Octaves, s.Persistence, s.Lacunarity)
}

// cellular2D is Worley noise: F2-F1 distance to the two nearest feature
// points over the 3x3 neighborhood of lattice cells, one hashed feature
// point per cell.
func (f *Field) cellular2D(x, z float64) float64 {
	cx := int64(math.Floor(x))
	cz := int64(math.Floor(z))

	f1 := math.MaxFloat64
	f2 := math.MaxFloat64
	for dz := int64(-1); dz <= 1; dz++ {
		for dx := int64(-1); dx <= 1; dx++ {
			nx := cx + dx
			nz := cz + dz
			// Feature point position inside cell (nx, nz)
			px := float64(nx) + latticeValue(nx, nz, f.seed+101)
			pz := float64(nz) + latticeValue(nx, nz, f.seed+211)
			ddx := px - x
			ddz := pz - z
			d := math.Sqrt(ddx*ddx + ddz*ddz)
			if d < f1 {
				f2 = f1
				f1 = d
			} else if d < f2 {
				f2 = d
			}
		}
	}
	return clamp01(f2 - f1)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
