package heightfield

import (
	"context"
	"math"
	"runtime"
	"sync"

	"terraforge/internal/noise"
)

// FalloffConfig attenuates heights toward the bottom depth near the edge
// of the map, so island-style terrains end in water/void instead of a cliff.
type FalloffConfig struct {
	Enabled  bool
	Start    float64 // normalized distance from center where falloff begins, [0,1)
	Strength float64 // exponent applied to the falloff factor
}

// Generator computes the dense global height grid for one terrain extent.
type Generator struct {
	Noise            *noise.Field
	Settings         noise.Settings
	HeightMultiplier float64
	BottomDepth      float64
	Falloff          FalloffConfig
	Curve            Curve
	Workers          int // <= 0 means GOMAXPROCS
}

// Generate fills a (width+1) x (depth+1) grid. Vertex rows are computed in
// parallel; each worker writes only its own rows so the stage needs no
// locking, just the final join. The height-curve remap runs as a second
// whole-grid pass after every raw octave sum exists. Cancellation is
// checked between the two passes; a cancelled pass returns ctx.Err().
func (g *Generator) Generate(ctx context.Context, width, depth int) (*Field, error) {
	field := NewField(width, depth)
	if field.Empty() {
		return field, nil
	}

	workers := g.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > depth+1 {
		workers = depth + 1
	}

	mult := g.HeightMultiplier
	if mult == 0 {
		mult = 1
	}

	var wg sync.WaitGroup
	rows := make(chan int, depth+1)
	for z := 0; z <= depth; z++ {
		rows <- z
	}
	close(rows)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for z := range rows {
				for x := 0; x <= width; x++ {
					field.Set(x, z, g.rawHeightAt(float64(x), float64(z), width, depth, mult))
				}
			}
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Whole-grid curve remap. Runs only after all octave contributions
	// have been summed above.
	for i, h := range field.Heights {
		y := g.Curve.Eval(h / mult)
		y = g.Curve.Clamp(y)
		field.Heights[i] = y * mult
	}
	return field, nil
}

// rawHeightAt is the per-vertex octave accumulation plus edge falloff,
// before the curve remap. HeightAt-style queries must go through the same
// path so placed objects match the generated mesh.
func (g *Generator) rawHeightAt(x, z float64, width, depth int, mult float64) float64 {
	seed := float64(g.Noise.Seed())
	s := g.Settings
	n := g.Noise.Octave2D(s.Type, (x+seed+s.Offset)*s.Scale, (z+seed+s.Offset)*s.Scale,
		s.Octaves, s.Persistence, s.Lacunarity)
	h := n * mult

	if g.Falloff.Enabled && width > 0 && depth > 0 {
		nx := x / float64(width)
		nz := z / float64(depth)
		f := falloffFactor(nx, nz, g.Falloff.Start, g.Falloff.Strength)
		h = h + (g.BottomDepth-h)*f
	}
	return h
}

// HeightAt computes the curve-remapped height at an arbitrary grid vertex
// without materializing a full field. It matches Generate bit for bit.
func (g *Generator) HeightAt(x, z float64, width, depth int) float64 {
	mult := g.HeightMultiplier
	if mult == 0 {
		mult = 1
	}
	h := g.rawHeightAt(x, z, width, depth, mult)
	y := g.Curve.Eval(h / mult)
	return g.Curve.Clamp(y) * mult
}

// falloffFactor returns the edge attenuation in [0,1]. Distance from the
// center is the Chebyshev max of the two normalized axes.
func falloffFactor(nx, nz, start, strength float64) float64 {
	d := math.Max(math.Abs(2*nx-1), math.Abs(2*nz-1))
	if start >= 1 {
		return 0
	}
	t := (d - start) / (1 - start)
	if t <= 0 {
		return 0
	}
	if t > 1 {
		t = 1
	}
	if strength <= 0 {
		return t
	}
	return math.Pow(t, strength)
}
