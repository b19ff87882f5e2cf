// Package biome classifies world positions into biome records via climate
// space or a biome-map image, and blends biome parameters across regions.
package biome

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"terraforge/internal/heightfield"
	"terraforge/internal/noise"
)

// TextureLayer describes one texture band of a biome. Construction of the
// actual texture atlas is the renderer's problem; the core only carries
// the data.
type TextureLayer struct {
	Name        string
	Tint        mgl32.Vec4
	StartHeight float64 // normalized height where the layer begins
	BlendRange  float64 // normalized height span blended into the next layer
}

// VegetationRule describes where one kind of vegetation may be placed.
type VegetationRule struct {
	Name      string
	Density   float64 // instances per cell, scaled by the biome density
	MinHeight float64
	MaxHeight float64
	MinSlope  float64
	MaxSlope  float64
}

// Record is one biome definition. Identity and equality are by ID only;
// two records with equal fields but different IDs are distinct biomes.
// Records are immutable in practice during a generation pass.
type Record struct {
	ID   uuid.UUID
	Name string

	// Position in climate space.
	Temperature float64
	Humidity    float64

	// Reference color for biome-map image classification.
	MapColor color.RGBA

	BaseHeight       float64
	SnowHeight       float64
	Noise            noise.Settings
	HeightMultiplier float64
	SlopeMultiplier  float64
	HeightCurve      heightfield.Curve

	TextureLayers     []TextureLayer
	Vegetation        []VegetationRule
	VegetationDensity float64
}

// Clone deep-copies the record, preserving its ID. Use it when the copy
// stands in for the same biome (default-biome caching, config snapshots).
func (r *Record) Clone() *Record {
	c := *r
	c.TextureLayers = append([]TextureLayer(nil), r.TextureLayers...)
	c.Vegetation = append([]VegetationRule(nil), r.Vegetation...)
	return &c
}

// NewFromPreset deep-copies a preset record under a fresh ID. Use it when
// instantiating a new biome from authored data; the result is a distinct
// biome even if every field matches the preset.
func NewFromPreset(p *Record) *Record {
	c := p.Clone()
	c.ID = uuid.New()
	return c
}

// Equal reports identity, which is ID equality.
func (r *Record) Equal(other *Record) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.ID == other.ID
}
