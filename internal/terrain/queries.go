package terrain

import (
	"math"

	"terraforge/internal/biome"
	"terraforge/internal/noise"
)

// HeightAt returns the terrain height at a world position, consistent
// with the generated mesh: inside a cell it interpolates across the same
// two-triangle split the mesher emits, not bilinearly. Before a pass has
// run it evaluates the generator directly, which is the same algorithm.
func (e *Engine) HeightAt(worldX, worldZ float64) float64 {
	w := e.cfg.Terrain.Width
	d := e.cfg.Terrain.Depth

	if e.field == nil || e.field.Empty() {
		return e.heightGen.HeightAt(worldX, worldZ, w, d)
	}

	x := clampFloat(worldX, 0, float64(w))
	z := clampFloat(worldZ, 0, float64(d))

	x0 := int(math.Floor(x))
	z0 := int(math.Floor(z))
	if x0 >= w {
		x0 = w - 1
	}
	if z0 >= d {
		z0 = d - 1
	}
	fx := x - float64(x0)
	fz := z - float64(z0)

	h00 := e.field.At(x0, z0)
	h10 := e.field.At(x0+1, z0)
	h01 := e.field.At(x0, z0+1)
	h11 := e.field.At(x0+1, z0+1)

	// The mesher splits each quad along the (x1,z0)-(x0,z1) diagonal.
	if fx+fz <= 1 {
		return h00 + fx*(h10-h00) + fz*(h01-h00)
	}
	return h11 + (1-fx)*(h01-h11) + (1-fz)*(h10-h11)
}

// SlopeAt returns the gradient magnitude at a world position from central
// differences of HeightAt, one cell apart.
func (e *Engine) SlopeAt(worldX, worldZ float64) float64 {
	dx := (e.HeightAt(worldX+1, worldZ) - e.HeightAt(worldX-1, worldZ)) / 2
	dz := (e.HeightAt(worldX, worldZ+1) - e.HeightAt(worldX, worldZ-1)) / 2
	return math.Sqrt(dx*dx + dz*dz)
}

// BiomeAt returns the blended biome mixture at a world position.
func (e *Engine) BiomeAt(worldX, worldZ float64) (biome.Blend, error) {
	return e.classifier.Blend(worldX, worldZ, e.cfg.Blend.SampleCount)
}

// NoiseSettingsAt returns the blended noise settings at a position.
func (e *Engine) NoiseSettingsAt(worldX, worldZ float64) (noise.Settings, error) {
	b, err := e.BiomeAt(worldX, worldZ)
	if err != nil {
		return noise.Settings{}, err
	}
	return b.NoiseSettings(), nil
}

// HeightMultiplierAt returns the blended height multiplier at a position.
func (e *Engine) HeightMultiplierAt(worldX, worldZ float64) (float64, error) {
	b, err := e.BiomeAt(worldX, worldZ)
	if err != nil {
		return 0, err
	}
	return b.HeightMultiplier(), nil
}

// BiomeHeightAt is the biome-aware height function: octave noise with the
// blended per-position settings, remapped by the dominant biome's curve,
// scaled by the blended multiplier and lifted by the blended base height.
func (e *Engine) BiomeHeightAt(worldX, worldZ float64) (float64, error) {
	b, err := e.BiomeAt(worldX, worldZ)
	if err != nil {
		return 0, err
	}
	s := b.NoiseSettings()
	seed := float64(e.noise.Seed())
	n := e.noise.Octave2D(s.Type,
		(worldX+seed+s.Offset)*s.Scale,
		(worldZ+seed+s.Offset)*s.Scale,
		s.Octaves, s.Persistence, s.Lacunarity)

	curve := b.HeightCurve()
	y := curve.Clamp(curve.Eval(n))
	return y*b.HeightMultiplier() + b.BaseHeight(), nil
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
