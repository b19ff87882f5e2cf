package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"terraforge/internal/config"
	"terraforge/internal/terrain"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (empty = defaults)")
	heightmapPath := flag.String("heightmap", "", "optional path to write the height grid as a grayscale PNG")
	biomeMapPath := flag.String("biomemap", "", "optional biome-map image; switches classification to image lookup")
	biomeMapScale := flag.Float64("biomemap-scale", 4, "world units per biome-map pixel")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	engine, err := terrain.New(cfg)
	if err != nil {
		log.Fatalf("engine: %v", err)
	}

	if *biomeMapPath != "" {
		img, err := loadImage(*biomeMapPath)
		if err != nil {
			log.Fatalf("biome map: %v", err)
		}
		engine.SetBiomeMap(img, *biomeMapScale)
	}

	// Ctrl-C cancels between generation stages.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("generating %dx%d terrain (chunk size %d, seed %d)",
		cfg.Terrain.Width, cfg.Terrain.Depth, cfg.Terrain.ChunkSize, cfg.Terrain.Seed)

	start := time.Now()
	result, err := engine.Generate(ctx)
	if err != nil {
		log.Fatalf("generate: %v", err)
	}
	elapsed := time.Since(start)

	verts := 0
	tris := 0
	for _, c := range result.Chunks {
		verts += c.VertexCount()
		tris += c.TriangleCount()
	}
	log.Printf("done in %s: %d chunks, %d vertices, %d triangles",
		elapsed.Round(time.Millisecond), len(result.Chunks), verts, tris)

	if *heightmapPath != "" {
		if err := writeHeightmap(*heightmapPath, result); err != nil {
			log.Fatalf("heightmap: %v", err)
		}
		log.Printf("wrote heightmap to %s", *heightmapPath)
	}
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// writeHeightmap renders the generated grid as grayscale, normalized to
// the grid's own min/max.
func writeHeightmap(path string, r *terrain.Result) error {
	f := r.Field
	if f.Empty() {
		return fmt.Errorf("empty terrain, nothing to write")
	}

	lo := math.Inf(1)
	hi := math.Inf(-1)
	for _, h := range f.Heights {
		lo = math.Min(lo, h)
		hi = math.Max(hi, h)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	img := image.NewGray(image.Rect(0, 0, f.Width+1, f.Depth+1))
	for z := 0; z <= f.Depth; z++ {
		for x := 0; x <= f.Width; x++ {
			v := (f.At(x, z) - lo) / span
			img.SetGray(x, z, color.Gray{Y: uint8(v * 255)})
		}
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return png.Encode(out, img)
}
