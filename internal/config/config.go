// Package config loads and validates terrain generation settings from
// YAML files, substituting defaults for anything left unset.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config captures every tunable of a generation pass.
type Config struct {
	Terrain   TerrainConfig   `yaml:"terrain"`
	Noise     NoiseConfig     `yaml:"noise"`
	Curve     []CurvePoint    `yaml:"curve"`
	Falloff   FalloffConfig   `yaml:"falloff"`
	Texturing TexturingConfig `yaml:"texturing"`
	Climate   ClimateConfig   `yaml:"climate"`
	Blend     BlendConfig     `yaml:"blend"`

	Biomes       []BiomeConfig `yaml:"biomes"`
	DefaultBiome string        `yaml:"defaultBiome"` // name of the fallback biome
}

type TerrainConfig struct {
	Width            int     `yaml:"width"` // cells along X
	Depth            int     `yaml:"depth"` // cells along Z
	ChunkSize        int     `yaml:"chunkSize"`
	Seed             int64   `yaml:"seed"`
	HeightMultiplier float64 `yaml:"heightMultiplier"`
	BottomDepth      float64 `yaml:"bottomDepth"`
	Workers          int     `yaml:"workers"` // 0 = GOMAXPROCS
}

type NoiseConfig struct {
	Type        string  `yaml:"type"` // value|perlin|simplex|ridged|warped|cellular
	Scale       float64 `yaml:"scale"`
	Octaves     int     `yaml:"octaves"`
	Persistence float64 `yaml:"persistence"`
	Lacunarity  float64 `yaml:"lacunarity"`
	Offset      float64 `yaml:"offset"`
}

type CurvePoint struct {
	T float64 `yaml:"t"`
	Y float64 `yaml:"y"`
}

type FalloffConfig struct {
	Enabled  bool    `yaml:"enabled"`
	Start    float64 `yaml:"start"`
	Strength float64 `yaml:"strength"`
}

type TexturingConfig struct {
	Seamless     bool    `yaml:"seamless"`     // global UVs across chunks
	TextureScale float64 `yaml:"textureScale"` // world units per repeat
}

type ClimateConfig struct {
	TemperatureScale float64 `yaml:"temperatureScale"`
	HumidityScale    float64 `yaml:"humidityScale"`
	CellSize         int     `yaml:"cellSize"`
	CacheLimit       int     `yaml:"cacheLimit"`
}

type BlendConfig struct {
	Strength    float64 `yaml:"strength"`
	Radius      float64 `yaml:"radius"`
	SampleCount int     `yaml:"sampleCount"`
}

// BiomeConfig is the authored form of a biome record. Records get their
// identity when the biome set is instantiated, not here.
type BiomeConfig struct {
	Name              string       `yaml:"name"`
	Temperature       float64      `yaml:"temperature"`
	Humidity          float64      `yaml:"humidity"`
	MapColor          string       `yaml:"mapColor"` // "#RRGGBB"
	BaseHeight        float64      `yaml:"baseHeight"`
	SnowHeight        float64      `yaml:"snowHeight"`
	Noise             NoiseConfig  `yaml:"noise"`
	HeightMultiplier  float64      `yaml:"heightMultiplier"`
	SlopeMultiplier   float64      `yaml:"slopeMultiplier"`
	Curve             []CurvePoint `yaml:"curve"`
	VegetationDensity float64      `yaml:"vegetationDensity"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Terrain: TerrainConfig{
			Width:            256,
			Depth:            256,
			ChunkSize:        32,
			Seed:             1337,
			HeightMultiplier: 48,
			BottomDepth:      -12,
		},
		Noise: NoiseConfig{
			Type:        "value",
			Scale:       1.0 / 96.0,
			Octaves:     4,
			Persistence: 0.5,
			Lacunarity:  2.0,
		},
		Curve: []CurvePoint{{T: 0, Y: 0}, {T: 1, Y: 1}},
		Falloff: FalloffConfig{
			Enabled:  true,
			Start:    0.65,
			Strength: 2.5,
		},
		Texturing: TexturingConfig{
			Seamless:     true,
			TextureScale: 16,
		},
		Climate: ClimateConfig{
			TemperatureScale: 1.0 / 512.0,
			HumidityScale:    1.0 / 512.0,
			CellSize:         16,
			CacheLimit:       4096,
		},
		Blend: BlendConfig{
			Strength:    1,
			Radius:      24,
			SampleCount: 8,
		},
	}
}

// Load reads configuration from a YAML file. An empty path returns the
// defaults. Soft issues like an unknown biome name in a record are left
// to the generator's fallbacks; only structurally invalid configs error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Validate rejects configurations the generator cannot interpret at all.
// Zero/negative extents are NOT errors; generation treats them as an
// empty terrain.
func (c *Config) Validate() error {
	if c.Terrain.ChunkSize <= 0 {
		return errors.New("terrain.chunkSize must be positive")
	}
	if c.Terrain.Workers < 0 {
		return errors.New("terrain.workers cannot be negative")
	}
	if c.Noise.Persistence < 0 {
		return errors.New("noise.persistence cannot be negative")
	}
	if c.Noise.Lacunarity < 0 {
		return errors.New("noise.lacunarity cannot be negative")
	}
	if c.Blend.SampleCount < 0 {
		return errors.New("blend.sampleCount cannot be negative")
	}
	if c.Falloff.Enabled && (c.Falloff.Start < 0 || c.Falloff.Start >= 1) {
		return errors.New("falloff.start must be in [0,1)")
	}
	if c.Climate.CacheLimit < 0 {
		return errors.New("climate.cacheLimit cannot be negative")
	}
	if c.DefaultBiome != "" && len(c.Biomes) > 0 {
		found := false
		for _, b := range c.Biomes {
			if b.Name == c.DefaultBiome {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("defaultBiome %q not present in biomes", c.DefaultBiome)
		}
	}
	return nil
}
