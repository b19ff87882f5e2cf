package biome

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"terraforge/internal/heightfield"
	"terraforge/internal/noise"
)

// Set is an ordered collection of biome records plus a default record.
// Order matters: nearest-classification ties resolve to the
// first-declared record.
type Set struct {
	records []*Record
	def     *Record
}

// NewSet builds a set from records with an explicit default. An empty
// record slice substitutes the built-in defaults instead of failing; a
// nil default falls back to the first record.
func NewSet(records []*Record, def *Record) *Set {
	if len(records) == 0 {
		records = DefaultRecords()
	}
	if def == nil {
		def = records[0]
	}
	return &Set{records: records, def: def}
}

// Records returns the records in declaration order. Callers must not
// mutate the slice.
func (s *Set) Records() []*Record { return s.records }

// Default returns the fallback record.
func (s *Set) Default() *Record { return s.def }

// ByID finds a record by identity, or nil.
func (s *Set) ByID(id uuid.UUID) *Record {
	for _, r := range s.records {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// DefaultRecords is the built-in biome set used when configuration
// supplies none. Each call creates fresh IDs; the set is a substitute,
// not a shared global.
func DefaultRecords() []*Record {
	plains := &Record{
		ID:          uuid.New(),
		Name:        "plains",
		Temperature: 0.5,
		Humidity:    0.5,
		MapColor:    color.RGBA{R: 96, G: 160, B: 64, A: 255},
		BaseHeight:  2,
		SnowHeight:  60,
		Noise: noise.Settings{
			Type: noise.TypeValue, Scale: 1.0 / 96.0, Octaves: 4, Persistence: 0.5, Lacunarity: 2.0,
		},
		HeightMultiplier: 12,
		SlopeMultiplier:  0.6,
		HeightCurve:      heightfield.IdentityCurve(),
		TextureLayers: []TextureLayer{
			{Name: "grass", Tint: mgl32.Vec4{0.35, 0.6, 0.25, 1}, StartHeight: 0, BlendRange: 0.1},
			{Name: "rock", Tint: mgl32.Vec4{0.5, 0.48, 0.45, 1}, StartHeight: 0.7, BlendRange: 0.15},
		},
		Vegetation: []VegetationRule{
			{Name: "oak", Density: 0.05, MinHeight: 0.05, MaxHeight: 0.6, MaxSlope: 0.5},
			{Name: "grass_tuft", Density: 0.4, MinHeight: 0.02, MaxHeight: 0.7, MaxSlope: 0.7},
		},
		VegetationDensity: 1,
	}
	desert := &Record{
		ID:          uuid.New(),
		Name:        "desert",
		Temperature: 0.9,
		Humidity:    0.1,
		MapColor:    color.RGBA{R: 210, G: 190, B: 120, A: 255},
		BaseHeight:  1,
		SnowHeight:  999,
		Noise: noise.Settings{
			Type: noise.TypeValue, Scale: 1.0 / 128.0, Octaves: 3, Persistence: 0.45, Lacunarity: 2.1,
		},
		HeightMultiplier: 8,
		SlopeMultiplier:  0.3,
		HeightCurve:      heightfield.IdentityCurve(),
		TextureLayers: []TextureLayer{
			{Name: "sand", Tint: mgl32.Vec4{0.85, 0.76, 0.5, 1}, StartHeight: 0, BlendRange: 0.2},
		},
		Vegetation: []VegetationRule{
			{Name: "cactus", Density: 0.01, MinHeight: 0.05, MaxHeight: 0.5, MaxSlope: 0.3},
		},
		VegetationDensity: 0.2,
	}
	mountains := &Record{
		ID:          uuid.New(),
		Name:        "mountains",
		Temperature: 0.3,
		Humidity:    0.4,
		MapColor:    color.RGBA{R: 130, G: 130, B: 135, A: 255},
		BaseHeight:  8,
		SnowHeight:  28,
		Noise: noise.Settings{
			Type: noise.TypeRidged, Scale: 1.0 / 160.0, Octaves: 5, Persistence: 0.55, Lacunarity: 2.0,
		},
		HeightMultiplier: 42,
		SlopeMultiplier:  1.4,
		HeightCurve: heightfield.NewCurve([]heightfield.CurvePoint{
			{T: 0, Y: 0}, {T: 0.4, Y: 0.2}, {T: 1, Y: 1},
		}),
		TextureLayers: []TextureLayer{
			{Name: "rock", Tint: mgl32.Vec4{0.5, 0.48, 0.45, 1}, StartHeight: 0, BlendRange: 0.2},
			{Name: "snow", Tint: mgl32.Vec4{0.95, 0.95, 0.97, 1}, StartHeight: 0.65, BlendRange: 0.1},
		},
		Vegetation: []VegetationRule{
			{Name: "pine", Density: 0.03, MinHeight: 0.1, MaxHeight: 0.5, MaxSlope: 0.6},
		},
		VegetationDensity: 0.5,
	}
	tundra := &Record{
		ID:          uuid.New(),
		Name:        "tundra",
		Temperature: 0.1,
		Humidity:    0.6,
		MapColor:    color.RGBA{R: 220, G: 228, B: 235, A: 255},
		BaseHeight:  3,
		SnowHeight:  6,
		Noise: noise.Settings{
			Type: noise.TypeValue, Scale: 1.0 / 110.0, Octaves: 4, Persistence: 0.5, Lacunarity: 2.0,
		},
		HeightMultiplier: 10,
		SlopeMultiplier:  0.5,
		HeightCurve:      heightfield.IdentityCurve(),
		TextureLayers: []TextureLayer{
			{Name: "snow", Tint: mgl32.Vec4{0.95, 0.95, 0.97, 1}, StartHeight: 0, BlendRange: 0.15},
		},
		Vegetation: []VegetationRule{
			{Name: "shrub", Density: 0.02, MinHeight: 0.05, MaxHeight: 0.6, MaxSlope: 0.5},
		},
		VegetationDensity: 0.3,
	}
	return []*Record{plains, desert, mountains, tundra}
}
