package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultValidates(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "terrain.yaml")
	data := `
terrain:
  width: 64
  depth: 48
  chunkSize: 16
  seed: 99
  heightMultiplier: 20
noise:
  type: ridged
  octaves: 6
falloff:
  enabled: true
  start: 0.5
  strength: 3
biomes:
  - name: swamp
    temperature: 0.6
    humidity: 0.9
    mapColor: "#2F4F2F"
    heightMultiplier: 6
defaultBiome: swamp
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 64, cfg.Terrain.Width)
	require.Equal(t, 48, cfg.Terrain.Depth)
	require.Equal(t, int64(99), cfg.Terrain.Seed)
	require.Equal(t, "ridged", cfg.Noise.Type)
	require.Equal(t, 6, cfg.Noise.Octaves)
	// Unset fields keep their defaults.
	require.Equal(t, Default().Noise.Persistence, cfg.Noise.Persistence)
	require.Len(t, cfg.Biomes, 1)
	require.Equal(t, "swamp", cfg.DefaultBiome)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidateErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero chunk size", func(c *Config) { c.Terrain.ChunkSize = 0 }},
		{"negative workers", func(c *Config) { c.Terrain.Workers = -1 }},
		{"negative persistence", func(c *Config) { c.Noise.Persistence = -0.1 }},
		{"negative sample count", func(c *Config) { c.Blend.SampleCount = -1 }},
		{"falloff start out of range", func(c *Config) { c.Falloff.Enabled = true; c.Falloff.Start = 1.0 }},
		{"unknown default biome", func(c *Config) {
			c.Biomes = []BiomeConfig{{Name: "a"}}
			c.DefaultBiome = "b"
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestValidateZeroExtentAllowed(t *testing.T) {
	cfg := Default()
	cfg.Terrain.Width = 0
	cfg.Terrain.Depth = -5
	require.NoError(t, cfg.Validate(), "empty extents are handled by generation, not config")
}
