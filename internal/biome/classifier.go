package biome

import (
	"fmt"
	"image"
	"math"

	"terraforge/internal/climate"
)

// blendEpsilon is the strength under which blending short-circuits to the
// center biome alone.
const blendEpsilon = 1e-4

// Classifier selects biome records for world positions, either by nearest
// neighbor in climate space or, when a biome-map image is set, by nearest
// reference color of the sampled pixel.
type Classifier struct {
	set     *Set
	climate *climate.Field

	mapImage image.Image
	mapScale float64 // world units per map pixel

	// BlendRadius is the sampling circle radius in world units.
	BlendRadius float64
	// BlendStrength <= blendEpsilon disables multi-sampling entirely.
	BlendStrength float64
}

// NewClassifier creates a classifier over a biome set and climate field.
func NewClassifier(set *Set, cf *climate.Field) *Classifier {
	return &Classifier{
		set:           set,
		climate:       cf,
		BlendRadius:   24,
		BlendStrength: 1,
	}
}

// SetMapImage switches classification to image-based lookup. scale is the
// world-unit size of one pixel; non-positive values default to 1. Passing
// a nil image reverts to climate-space classification.
func (c *Classifier) SetMapImage(img image.Image, scale float64) {
	c.mapImage = img
	if scale <= 0 {
		scale = 1
	}
	c.mapScale = scale
}

// Set returns the classifier's biome set.
func (c *Classifier) Set() *Set { return c.set }

// Classify returns the record nearest to the climate sample by squared
// Euclidean distance in (temperature, humidity) space. Ties resolve to
// the first-declared record. An empty set returns the default.
func (c *Classifier) Classify(s climate.Sample) *Record {
	best := c.set.Default()
	bestDist := math.MaxFloat64
	for _, r := range c.set.Records() {
		dt := r.Temperature - s.Temperature
		dh := r.Humidity - s.Humidity
		d := dt*dt + dh*dh
		if d < bestDist {
			bestDist = d
			best = r
		}
	}
	return best
}

// ClassifyAt classifies the biome at a world position, using the biome
// map image when one is set and the climate field otherwise.
func (c *Classifier) ClassifyAt(x, z float64) *Record {
	if c.mapImage != nil {
		return c.classifyByImage(x, z)
	}
	return c.Classify(c.climate.Sample(x, z))
}

// classifyByImage maps the world position onto the biome-map image with
// modulo wrapping (corrected for negative results) and picks the record
// whose reference color is nearest in squared RGB distance.
func (c *Classifier) classifyByImage(x, z float64) *Record {
	bounds := c.mapImage.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w == 0 || h == 0 {
		return c.set.Default()
	}

	px := wrap(int(math.Floor(x/c.mapScale)), w)
	pz := wrap(int(math.Floor(z/c.mapScale)), h)

	r16, g16, b16, _ := c.mapImage.At(bounds.Min.X+px, bounds.Min.Y+pz).RGBA()
	pr := float64(r16 >> 8)
	pg := float64(g16 >> 8)
	pb := float64(b16 >> 8)

	best := c.set.Default()
	bestDist := math.MaxFloat64
	for _, rec := range c.set.Records() {
		dr := float64(rec.MapColor.R) - pr
		dg := float64(rec.MapColor.G) - pg
		db := float64(rec.MapColor.B) - pb
		d := dr*dr + dg*dg + db*db
		if d < bestDist {
			bestDist = d
			best = rec
		}
	}
	return best
}

func wrap(v, n int) int {
	m := v % n
	if m < 0 {
		m += n
	}
	return m
}

// Blend samples sampleCount points on a circle of BlendRadius around the
// position, classifies each, then classifies the center with a bonus
// weight of half the sample total, making the center biome dominant by
// construction. Weights are merged per biome ID, normalized to sum to 1
// and sorted descending. A negative sampleCount is an invalid argument.
//
// When BlendStrength is negligible or sampleCount <= 1 the multi-sampling
// is skipped and the center biome returned with weight 1 — the same
// answer the general algorithm converges to in the single-sample limit.
func (c *Classifier) Blend(x, z float64, sampleCount int) (Blend, error) {
	if sampleCount < 0 {
		return nil, fmt.Errorf("biome: negative sample count %d", sampleCount)
	}

	center := c.ClassifyAt(x, z)
	if c.BlendStrength <= blendEpsilon || sampleCount <= 1 {
		return Blend{{Record: center, Weight: 1}}, nil
	}

	acc := newWeightAccumulator()
	for i := 0; i < sampleCount; i++ {
		angle := float64(i) * 2 * math.Pi / float64(sampleCount)
		sx := x + math.Cos(angle)*c.BlendRadius
		sz := z + math.Sin(angle)*c.BlendRadius
		acc.add(c.ClassifyAt(sx, sz), 1)
	}
	// Center bonus: half the accumulated sample weight.
	acc.add(center, acc.total/2)

	return acc.normalized(), nil
}
