package noise

import (
	"math"
	"math/rand"
	"testing"
)

// TestHash2Deterministic verifies hash2 produces identical results for same inputs
func TestHash2Deterministic(t *testing.T) {
	var results [100]uint64
	for i := range results {
		results[i] = hash2(10, 20, 42)
	}

	first := results[0]
	for i := 1; i < len(results); i++ {
		if results[i] != first {
			t.Errorf("hash2 not deterministic: results[0]=%d, results[%d]=%d", first, i, results[i])
		}
	}
}

// TestHash2DifferentInputs verifies hash2 produces different values for different inputs
func TestHash2DifferentInputs(t *testing.T) {
	seed := int64(42)

	if h1, h2 := hash2(1, 0, seed), hash2(2, 0, seed); h1 == h2 {
		t.Errorf("hash2 should differ for different X: %d == %d", h1, h2)
	}
	if h1, h2 := hash2(0, 1, seed), hash2(0, 2, seed); h1 == h2 {
		t.Errorf("hash2 should differ for different Z: %d == %d", h1, h2)
	}
	if h1, h2 := hash2(1, 1, 100), hash2(1, 1, 200); h1 == h2 {
		t.Errorf("hash2 should differ for different seed: %d == %d", h1, h2)
	}
	// Axis swap (ensures axes aren't interchangeable)
	if h1, h2 := hash2(1, 3, seed), hash2(3, 1, seed); h1 == h2 {
		t.Errorf("hash2 should differ for axis swap: %d == %d", h1, h2)
	}
}

// TestValueNoise2DRange verifies valueNoise2D outputs are in [0,1]
func TestValueNoise2DRange(t *testing.T) {
	rng := rand.New(rand.NewSource(12345)) // deterministic test RNG
	seed := int64(42)

	for i := 0; i < 1000; i++ {
		x := rng.Float64()*200 - 100
		z := rng.Float64()*200 - 100

		v := valueNoise2D(x, z, seed)
		if v < 0.0 || v > 1.0 {
			t.Errorf("valueNoise2D(%f, %f, %d) = %f, expected in [0,1]", x, z, seed, v)
		}
	}
}

// TestSample2DRange verifies all families stay in [0,1]
func TestSample2DRange(t *testing.T) {
	f := New(42)
	rng := rand.New(rand.NewSource(99))
	families := []Type{TypeValue, TypePerlin, TypeSimplex, TypeRidged, TypeWarped, TypeCellular}

	for _, ty := range families {
		for i := 0; i < 500; i++ {
			x := rng.Float64()*200 - 100
			z := rng.Float64()*200 - 100
			v := f.Sample2D(ty, x, z)
			if v < 0.0 || v > 1.0 {
				t.Errorf("Sample2D(%v, %f, %f) = %f, expected in [0,1]", ty, x, z, v)
			}
		}
	}
}

// TestSample2DDeterministic verifies identical inputs always give identical outputs
func TestSample2DDeterministic(t *testing.T) {
	families := []Type{TypeValue, TypePerlin, TypeSimplex, TypeRidged, TypeWarped, TypeCellular}
	a := New(42)
	b := New(42)

	for _, ty := range families {
		v1 := a.Sample2D(ty, 1.5, 2.7)
		v2 := b.Sample2D(ty, 1.5, 2.7)
		if v1 != v2 {
			t.Errorf("Sample2D(%v) not deterministic across instances: %f != %f", ty, v1, v2)
		}
		for i := 0; i < 100; i++ {
			if v := a.Sample2D(ty, 1.5, 2.7); v != v1 {
				t.Errorf("Sample2D(%v) not deterministic: %f != %f", ty, v, v1)
			}
		}
	}
}

// TestSample2DContinuity verifies no jumps between nearby samples
func TestSample2DContinuity(t *testing.T) {
	f := New(42)
	families := []Type{TypeValue, TypePerlin, TypeSimplex, TypeRidged, TypeCellular}

	for _, ty := range families {
		v1 := f.Sample2D(ty, 1.0, 1.0)
		v2 := f.Sample2D(ty, 1.01, 1.0)
		if diff := math.Abs(v1 - v2); diff >= 0.1 {
			t.Errorf("Sample2D(%v) not continuous: |%f - %f| = %f >= 0.1", ty, v1, v2, diff)
		}
	}
}

// TestCellularBoundaryContinuity samples just inside and outside an integer
// cell boundary; Worley distance fields are continuous there.
func TestCellularBoundaryContinuity(t *testing.T) {
	f := New(7)
	for i := 0; i < 50; i++ {
		b := float64(i) // boundary at integer x
		inside := f.Sample2D(TypeCellular, b-1e-6, 3.3)
		outside := f.Sample2D(TypeCellular, b+1e-6, 3.3)
		if diff := math.Abs(inside - outside); diff > 1e-3 {
			t.Errorf("cellular noise discontinuous at x=%f: inside=%f outside=%f diff=%f", b, inside, outside, diff)
		}
	}
}

// TestOctave2DRange verifies octave sums stay in [0,1]
func TestOctave2DRange(t *testing.T) {
	f := New(42)
	rng := rand.New(rand.NewSource(12345))

	for i := 0; i < 1000; i++ {
		x := rng.Float64()*200 - 100
		z := rng.Float64()*200 - 100
		v := f.Octave2D(TypeValue, x, z, 4, 0.5, 2.0)
		if v < 0.0 || v > 1.0 {
			t.Errorf("Octave2D(%f, %f) = %f, expected in [0,1]", x, z, v)
		}
	}
}

// TestOctave2DZeroOctaves verifies octaves <= 0 yields 0
func TestOctave2DZeroOctaves(t *testing.T) {
	f := New(42)
	if v := f.Octave2D(TypeValue, 1.5, 2.5, 0, 0.5, 2.0); v != 0 {
		t.Errorf("Octave2D with 0 octaves = %f, expected 0", v)
	}
	if v := f.Octave2D(TypeValue, 1.5, 2.5, -3, 0.5, 2.0); v != 0 {
		t.Errorf("Octave2D with negative octaves = %f, expected 0", v)
	}
}

// TestOctave3DDeterministic verifies the 3D octave path
func TestOctave3DDeterministic(t *testing.T) {
	f := New(42)
	var results [100]float64
	for i := range results {
		results[i] = f.Octave3D(TypeValue, 1.5, 2.7, 3.3, 4, 0.5, 2.0)
	}
	first := results[0]
	for i := 1; i < len(results); i++ {
		if results[i] != first {
			t.Errorf("Octave3D not deterministic: results[0]=%f, results[%d]=%f", first, i, results[i])
		}
	}
}

// TestOctaveSettingsOffset verifies the offset shifts the sample position
func TestOctaveSettingsOffset(t *testing.T) {
	f := New(42)
	s := DefaultSettings()
	s.Scale = 0.05

	base := f.OctaveSettings(s, 10, 20)
	s.Offset = 100
	shifted := f.OctaveSettings(s, 10, 20)
	want := f.Octave2D(s.Type, (10+100.0)*s.Scale, (20+100.0)*s.Scale, s.Octaves, s.Persistence, s.Lacunarity)
	if shifted != want {
		t.Errorf("OctaveSettings offset mismatch: got %f want %f", shifted, want)
	}
	if base == shifted {
		t.Errorf("offset had no effect: %f == %f", base, shifted)
	}
}

// TestParseTypeRoundTrip verifies names parse back to their type
func TestParseTypeRoundTrip(t *testing.T) {
	for _, ty := range []Type{TypeValue, TypePerlin, TypeSimplex, TypeRidged, TypeWarped, TypeCellular} {
		if got := ParseType(ty.String()); got != ty {
			t.Errorf("ParseType(%q) = %v, want %v", ty.String(), got, ty)
		}
	}
	if got := ParseType("nonsense"); got != TypeValue {
		t.Errorf("ParseType fallback = %v, want TypeValue", got)
	}
}

func BenchmarkOctave2DValue(b *testing.B) {
	f := New(42)
	for i := 0; i < b.N; i++ {
		f.Octave2D(TypeValue, float64(i)*0.01, 2.5, 4, 0.5, 2.0)
	}
}

func BenchmarkSample2DCellular(b *testing.B) {
	f := New(42)
	for i := 0; i < b.N; i++ {
		f.Sample2D(TypeCellular, float64(i)*0.01, 2.5)
	}
}
