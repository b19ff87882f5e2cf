// Package terrain orchestrates a full generation pass: height field,
// chunk meshing, seam resolution, and the biome-aware queries gameplay
// systems use afterwards.
package terrain

import (
	"context"
	"image"
	"image/color"
	"runtime"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"terraforge/internal/biome"
	"terraforge/internal/climate"
	"terraforge/internal/config"
	"terraforge/internal/heightfield"
	"terraforge/internal/mesher"
	"terraforge/internal/noise"
)

var snowTint = mgl32.Vec4{0.95, 0.95, 0.97, 1}

// Engine owns all state of one terrain instance. Every cache lives on the
// engine, never in package globals, so independent engines (parallel
// tests, multiple worlds) cannot interfere with each other.
type Engine struct {
	cfg *config.Config

	noise      *noise.Field
	heightGen  *heightfield.Generator
	mesh       *mesher.Mesher
	climate    *climate.Field
	classifier *biome.Classifier

	// Populated by Generate.
	field  *heightfield.Field
	chunks []*mesher.Buffers
}

// Result is handed to the caller after the final barrier; the engine no
// longer mutates the chunk buffers once returned.
type Result struct {
	Field  *heightfield.Field
	Chunks []*mesher.Buffers
}

// New builds an engine from configuration. Config errors that the
// generator can absorb (empty biome set, unset scales) degrade to
// defaults here rather than failing.
func New(cfg *config.Config) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	nf := noise.New(cfg.Terrain.Seed)

	cf := climate.New(nf, cfg.Climate.TemperatureScale, cfg.Climate.HumidityScale,
		climate.WithCellSize(cfg.Climate.CellSize),
		climate.WithCacheLimit(cfg.Climate.CacheLimit),
	)

	records := recordsFromConfig(cfg.Biomes)
	var def *biome.Record
	for _, r := range records {
		if cfg.DefaultBiome != "" && r.Name == cfg.DefaultBiome {
			def = r
			break
		}
	}
	set := biome.NewSet(records, def)
	classifier := biome.NewClassifier(set, cf)
	classifier.BlendRadius = cfg.Blend.Radius
	classifier.BlendStrength = cfg.Blend.Strength

	e := &Engine{
		cfg:        cfg,
		noise:      nf,
		climate:    cf,
		classifier: classifier,
	}

	e.heightGen = &heightfield.Generator{
		Noise:            nf,
		Settings:         settingsFromConfig(cfg.Noise),
		HeightMultiplier: cfg.Terrain.HeightMultiplier,
		BottomDepth:      cfg.Terrain.BottomDepth,
		Falloff: heightfield.FalloffConfig{
			Enabled:  cfg.Falloff.Enabled,
			Start:    cfg.Falloff.Start,
			Strength: cfg.Falloff.Strength,
		},
		Curve:   curveFromConfig(cfg.Curve),
		Workers: cfg.Terrain.Workers,
	}

	uvMode := mesher.UVModeLocal
	if cfg.Texturing.Seamless {
		uvMode = mesher.UVModeGlobal
	}
	e.mesh = &mesher.Mesher{
		BottomDepth:  cfg.Terrain.BottomDepth,
		UVMode:       uvMode,
		TextureScale: cfg.Texturing.TextureScale,
		Color:        e.vertexColor,
	}
	return e, nil
}

// SetBiomeMap switches biome classification to an image lookup. scale is
// world units per pixel.
func (e *Engine) SetBiomeMap(img image.Image, scale float64) {
	e.classifier.SetMapImage(img, scale)
}

// Classifier exposes the biome classifier for collaborators that place
// vegetation or build texture atlases.
func (e *Engine) Classifier() *biome.Classifier { return e.classifier }

// Generate runs the full pass. Stages are separated by hard barriers:
// the height grid is complete before any chunk job reads it, and every
// chunk mesh exists before seam resolution touches any of them.
// Cancellation is honored between stages; the error is ctx.Err() and all
// intermediate buffers are dropped for collection.
func (e *Engine) Generate(ctx context.Context) (*Result, error) {
	w := e.cfg.Terrain.Width
	d := e.cfg.Terrain.Depth

	// Stage 1: height field (parallel per-row, joined inside).
	field, err := e.heightGen.Generate(ctx, w, d)
	if err != nil {
		return nil, err
	}
	e.field = field
	if field.Empty() {
		e.chunks = nil
		return &Result{Field: field}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: chunk meshing, parallel across chunks. Jobs only start
	// after the stage-1 join above.
	descs := mesher.Partition(w, d, e.cfg.Terrain.ChunkSize)
	workers := e.cfg.Terrain.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	pool := newMeshPool(ctx, e.mesh, field, workers, len(descs))
	chunks, err := pool.run(descs)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: seam resolution over the complete chunk set.
	mesher.ResolveSeams(chunks)

	e.chunks = chunks
	return &Result{Field: field, Chunks: chunks}, nil
}

// vertexColor paints vertices with the dominant biome's base layer tint,
// switching to snow above the biome's snow line.
func (e *Engine) vertexColor(worldX, worldZ int, h float64) mgl32.Vec4 {
	r := e.classifier.ClassifyAt(float64(worldX), float64(worldZ))
	if h >= r.SnowHeight {
		return snowTint
	}
	if len(r.TextureLayers) > 0 {
		return r.TextureLayers[0].Tint
	}
	return mgl32.Vec4{1, 1, 1, 1}
}

// settingsFromConfig converts the YAML noise block, substituting the
// package defaults for zeroed fields.
func settingsFromConfig(nc config.NoiseConfig) noise.Settings {
	s := noise.DefaultSettings()
	s.Type = noise.ParseType(nc.Type)
	if nc.Scale != 0 {
		s.Scale = nc.Scale
	}
	if nc.Octaves != 0 {
		s.Octaves = nc.Octaves
	}
	if nc.Persistence != 0 {
		s.Persistence = nc.Persistence
	}
	if nc.Lacunarity != 0 {
		s.Lacunarity = nc.Lacunarity
	}
	s.Offset = nc.Offset
	return s
}

func curveFromConfig(points []config.CurvePoint) heightfield.Curve {
	if len(points) == 0 {
		return heightfield.IdentityCurve()
	}
	pts := make([]heightfield.CurvePoint, len(points))
	for i, p := range points {
		pts[i] = heightfield.CurvePoint{T: p.T, Y: p.Y}
	}
	return heightfield.NewCurve(pts)
}

// recordsFromConfig instantiates biome records from authored data. Each
// record receives a fresh identity; two generation passes over the same
// config produce distinct record sets.
func recordsFromConfig(bcs []config.BiomeConfig) []*biome.Record {
	if len(bcs) == 0 {
		return nil // NewSet substitutes the built-in defaults
	}
	out := make([]*biome.Record, 0, len(bcs))
	for _, bc := range bcs {
		r := &biome.Record{
			Name:              bc.Name,
			Temperature:       bc.Temperature,
			Humidity:          bc.Humidity,
			MapColor:          parseHexColor(bc.MapColor),
			BaseHeight:        bc.BaseHeight,
			SnowHeight:        bc.SnowHeight,
			Noise:             settingsFromConfig(bc.Noise),
			HeightMultiplier:  bc.HeightMultiplier,
			SlopeMultiplier:   bc.SlopeMultiplier,
			HeightCurve:       curveFromConfig(bc.Curve),
			VegetationDensity: bc.VegetationDensity,
		}
		out = append(out, biome.NewFromPreset(r))
	}
	return out
}

// parseHexColor reads "#RRGGBB" (or "RRGGBB"); malformed values degrade
// to mid-gray instead of erroring, keeping biome configs fail-soft.
func parseHexColor(s string) color.RGBA {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{R: 128, G: 128, B: 128, A: 255}
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{R: 128, G: 128, B: 128, A: 255}
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}
}
