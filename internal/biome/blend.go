package biome

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"terraforge/internal/heightfield"
	"terraforge/internal/noise"
)

// Weighted is one (record, weight) entry of a blend.
type Weighted struct {
	Record *Record
	Weight float64
}

// Blend is an ordered biome mixture: weights sum to 1, no biome ID
// appears twice, entries are sorted descending by weight. The first entry
// is the dominant biome.
type Blend []Weighted

// Dominant returns the highest-weight record, or nil for an empty blend.
func (b Blend) Dominant() *Record {
	if len(b) == 0 {
		return nil
	}
	return b[0].Record
}

// weightAccumulator merges per-ID weights while remembering first-seen
// order so equal weights sort deterministically.
type weightAccumulator struct {
	weights map[uuid.UUID]float64
	order   map[uuid.UUID]int
	records map[uuid.UUID]*Record
	next    int
	total   float64
}

func newWeightAccumulator() *weightAccumulator {
	return &weightAccumulator{
		weights: make(map[uuid.UUID]float64),
		order:   make(map[uuid.UUID]int),
		records: make(map[uuid.UUID]*Record),
	}
}

// add accumulates weight for a record; repeated IDs sum rather than
// append.
func (a *weightAccumulator) add(r *Record, w float64) {
	if _, ok := a.weights[r.ID]; !ok {
		a.order[r.ID] = a.next
		a.next++
		a.records[r.ID] = r
	}
	a.weights[r.ID] += w
	a.total += w
}

// normalized produces the sorted, normalized blend. A zero total (nothing
// accumulated) yields an empty blend; callers guard against that.
func (a *weightAccumulator) normalized() Blend {
	if a.total == 0 {
		return nil
	}
	out := make(Blend, 0, len(a.weights))
	for id, w := range a.weights {
		out = append(out, Weighted{Record: a.records[id], Weight: w / a.total})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight > out[j].Weight
		}
		return a.order[out[i].Record.ID] < a.order[out[j].Record.ID]
	})
	return out
}

// NoiseSettings returns the weight-summed noise settings of the blend.
// Scalar fields interpolate; the octave count rounds to nearest; the
// noise type is taken from the dominant biome since families cannot be
// interpolated.
func (b Blend) NoiseSettings() noise.Settings {
	if len(b) == 0 {
		return noise.DefaultSettings()
	}
	var s noise.Settings
	s.Type = b[0].Record.Noise.Type
	octaves := 0.0
	for _, e := range b {
		s.Scale += e.Record.Noise.Scale * e.Weight
		s.Persistence += e.Record.Noise.Persistence * e.Weight
		s.Lacunarity += e.Record.Noise.Lacunarity * e.Weight
		s.Offset += e.Record.Noise.Offset * e.Weight
		octaves += float64(e.Record.Noise.Octaves) * e.Weight
	}
	s.Octaves = int(math.Round(octaves))
	return s
}

// HeightMultiplier returns the weighted height multiplier.
func (b Blend) HeightMultiplier() float64 {
	v := 0.0
	for _, e := range b {
		v += e.Record.HeightMultiplier * e.Weight
	}
	return v
}

// SlopeMultiplier returns the weighted slope multiplier.
func (b Blend) SlopeMultiplier() float64 {
	v := 0.0
	for _, e := range b {
		v += e.Record.SlopeMultiplier * e.Weight
	}
	return v
}

// BaseHeight returns the weighted base height.
func (b Blend) BaseHeight() float64 {
	v := 0.0
	for _, e := range b {
		v += e.Record.BaseHeight * e.Weight
	}
	return v
}

// SnowHeight returns the weighted snow line.
func (b Blend) SnowHeight() float64 {
	v := 0.0
	for _, e := range b {
		v += e.Record.SnowHeight * e.Weight
	}
	return v
}

// VegetationDensity returns the weighted vegetation density.
func (b Blend) VegetationDensity() float64 {
	v := 0.0
	for _, e := range b {
		v += e.Record.VegetationDensity * e.Weight
	}
	return v
}

// HeightCurve returns the dominant biome's curve verbatim. Interpolating
// piecewise curves with arbitrary control points is not well-defined, so
// blends never mix them.
func (b Blend) HeightCurve() heightfield.Curve {
	return b.Dominant().HeightCurve
}

// TextureLayers returns the dominant biome's layers verbatim, for the
// same reason curves aren't blended.
func (b Blend) TextureLayers() []TextureLayer {
	return b.Dominant().TextureLayers
}
