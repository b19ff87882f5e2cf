package biome

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"terraforge/internal/climate"
	"terraforge/internal/noise"
)

func twoBiomeSet() (*Set, *Record, *Record) {
	cold := &Record{Name: "cold", Temperature: 0, Humidity: 0, HeightMultiplier: 10, SlopeMultiplier: 1,
		Noise: noise.Settings{Scale: 0.01, Octaves: 2, Persistence: 0.5, Lacunarity: 2}}
	hot := &Record{Name: "hot", Temperature: 1, Humidity: 1, HeightMultiplier: 30, SlopeMultiplier: 2,
		Noise: noise.Settings{Scale: 0.03, Octaves: 5, Persistence: 0.4, Lacunarity: 2.4}}
	cold = NewFromPreset(cold)
	hot = NewFromPreset(hot)
	return NewSet([]*Record{cold, hot}, cold), cold, hot
}

func testClassifier() (*Classifier, *Record, *Record) {
	set, cold, hot := twoBiomeSet()
	cf := climate.New(noise.New(42), 1.0/128.0, 1.0/128.0)
	return NewClassifier(set, cf), cold, hot
}

// TestClassifyNearest checks the classification contract: (0.1,0.1) goes
// to the first biome, (0.9,0.9) to the second, and the equidistant
// (0.5,0.5) ties to the first-declared.
func TestClassifyNearest(t *testing.T) {
	c, cold, hot := testClassifier()

	require.True(t, cold.Equal(c.Classify(climate.Sample{Temperature: 0.1, Humidity: 0.1})))
	require.True(t, hot.Equal(c.Classify(climate.Sample{Temperature: 0.9, Humidity: 0.9})))
	require.True(t, cold.Equal(c.Classify(climate.Sample{Temperature: 0.5, Humidity: 0.5})), "tie should resolve to first-declared")
}

// TestEmptySetSubstitutesDefaults verifies the fail-soft path for an
// empty biome set.
func TestEmptySetSubstitutesDefaults(t *testing.T) {
	s := NewSet(nil, nil)
	require.NotEmpty(t, s.Records())
	require.NotNil(t, s.Default())
	require.True(t, s.Default().Equal(s.Records()[0]))
}

// TestClonePreservesID and fresh-ID preset instantiation.
func TestCloneIdentityRules(t *testing.T) {
	_, cold, _ := twoBiomeSet()

	clone := cold.Clone()
	require.Equal(t, cold.ID, clone.ID, "Clone always preserves the ID")
	require.True(t, cold.Equal(clone))

	fresh := NewFromPreset(cold)
	require.NotEqual(t, cold.ID, fresh.ID, "NewFromPreset always generates a fresh ID")
	require.False(t, cold.Equal(fresh), "equal fields, different IDs: distinct biomes")

	// Deep copy: mutating the clone's layers must not touch the original.
	clone.TextureLayers = append(clone.TextureLayers, TextureLayer{Name: "extra"})
	require.NotEqual(t, len(cold.TextureLayers), len(clone.TextureLayers))
}

// TestBlendNormalized verifies weights sum to 1, hold no duplicate IDs
// and are sorted descending.
func TestBlendNormalized(t *testing.T) {
	c, _, _ := testClassifier()
	c.BlendRadius = 200 // force crossing climate cells

	for _, pos := range [][2]float64{{0, 0}, {333, -777}, {-1500, 912}} {
		b, err := c.Blend(pos[0], pos[1], 8)
		require.NoError(t, err)
		require.NotEmpty(t, b)

		sum := 0.0
		seen := map[string]bool{}
		for i, e := range b {
			sum += e.Weight
			id := e.Record.ID.String()
			require.False(t, seen[id], "duplicate biome id in blend")
			seen[id] = true
			if i > 0 {
				require.LessOrEqual(t, e.Weight, b[i-1].Weight, "weights must be sorted descending")
			}
		}
		require.InDelta(t, 1.0, sum, 1e-9)
	}
}

// TestBlendCenterDominant verifies the center-point bonus makes the
// center biome the first entry.
func TestBlendCenterDominant(t *testing.T) {
	c, _, _ := testClassifier()
	c.BlendRadius = 200

	for _, pos := range [][2]float64{{0, 0}, {512, 512}, {-300, 250}} {
		center := c.ClassifyAt(pos[0], pos[1])
		b, err := c.Blend(pos[0], pos[1], 6)
		require.NoError(t, err)
		require.True(t, center.Equal(b.Dominant()), "center biome must dominate at %v", pos)
	}
}

// TestBlendDegenerate verifies the short-circuit paths return a single
// full-weight entry equal to the center classification.
func TestBlendDegenerate(t *testing.T) {
	c, _, _ := testClassifier()

	c.BlendStrength = 0
	b, err := c.Blend(100, 100, 8)
	require.NoError(t, err)
	require.Len(t, b, 1)
	require.Equal(t, 1.0, b[0].Weight)
	require.True(t, c.ClassifyAt(100, 100).Equal(b[0].Record))

	c.BlendStrength = 1
	b, err = c.Blend(100, 100, 1)
	require.NoError(t, err)
	require.Len(t, b, 1)
	require.Equal(t, 1.0, b[0].Weight)
}

// TestBlendNegativeSampleCount is the one fail-fast precondition.
func TestBlendNegativeSampleCount(t *testing.T) {
	c, _, _ := testClassifier()
	_, err := c.Blend(0, 0, -1)
	require.Error(t, err)
}

// TestBlendedParameters verifies scalar weighting and octave rounding.
func TestBlendedParameters(t *testing.T) {
	_, cold, hot := twoBiomeSet()
	b := Blend{
		{Record: hot, Weight: 0.75},
		{Record: cold, Weight: 0.25},
	}

	require.InDelta(t, 0.75*30+0.25*10, b.HeightMultiplier(), 1e-12)
	require.InDelta(t, 0.75*2+0.25*1, b.SlopeMultiplier(), 1e-12)

	s := b.NoiseSettings()
	require.InDelta(t, 0.75*0.03+0.25*0.01, s.Scale, 1e-12)
	require.Equal(t, int(math.Round(0.75*5+0.25*2)), s.Octaves, "octave count rounds the weighted sum")
	require.Equal(t, hot.Noise.Type, s.Type, "noise type comes from the dominant biome")

	// Curve and layers come from the dominant biome verbatim.
	require.Equal(t, hot.HeightCurve, b.HeightCurve())
}

// TestClassifyByImage verifies pixel lookup with wrapping and nearest
// reference color.
func TestClassifyByImage(t *testing.T) {
	c, cold, hot := testClassifier()
	cold.MapColor = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	hot.MapColor = color.RGBA{R: 255, G: 0, B: 0, A: 255}

	// 2x1 map: left pixel blue (cold), right pixel red (hot).
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 10, G: 10, B: 240, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 240, G: 10, B: 10, A: 255})
	c.SetMapImage(img, 1)

	require.True(t, cold.Equal(c.ClassifyAt(0.5, 0.5)))
	require.True(t, hot.Equal(c.ClassifyAt(1.5, 0.5)))

	// Wrapping: x=2 wraps to pixel 0, negative x wraps to the right edge.
	require.True(t, cold.Equal(c.ClassifyAt(2.5, 0.5)))
	require.True(t, hot.Equal(c.ClassifyAt(-0.5, 0.5)))
}

// TestBlendMergesDuplicateIDs feeds the accumulator the same record twice.
func TestBlendMergesDuplicateIDs(t *testing.T) {
	_, cold, hot := twoBiomeSet()
	acc := newWeightAccumulator()
	acc.add(cold, 1)
	acc.add(hot, 1)
	acc.add(cold, 2)

	b := acc.normalized()
	require.Len(t, b, 2)
	require.True(t, cold.Equal(b[0].Record))
	require.InDelta(t, 0.75, b[0].Weight, 1e-12)
	require.InDelta(t, 0.25, b[1].Weight, 1e-12)
}
