// Package climate derives (temperature, humidity) samples from two
// decorrelated noise fields, with a soft-bounded cache.
package climate

import (
	"sync"

	"terraforge/internal/noise"
)

// humidityOffset decorrelates the humidity sample from the temperature
// sample; both use the same noise field, offset far enough apart that the
// lattices never line up.
const humidityOffset = 500.0

// Sample is one climate-space point. Both axes are in [0,1].
type Sample struct {
	Temperature float64
	Humidity    float64
}

type cellKey struct {
	x, z int
}

// Field computes climate samples per chunk-quantized cell. The cache is
// keyed by cell coordinate, not raw floats, which bounds its cardinality
// to the number of distinct cells ever visited. A mutex guards it so
// parallel biome-blend workers may share one field.
type Field struct {
	noise            *noise.Field
	temperatureScale float64
	humidityScale    float64
	cellSize         int

	mu         sync.Mutex
	cache      map[cellKey]Sample
	maxEntries int
}

// Option configures a Field.
type Option func(*Field)

// WithCellSize sets the quantization cell size in world units.
func WithCellSize(size int) Option {
	return func(f *Field) {
		if size > 0 {
			f.cellSize = size
		}
	}
}

// WithCacheLimit sets the soft cache bound.
func WithCacheLimit(limit int) Option {
	return func(f *Field) {
		if limit > 0 {
			f.maxEntries = limit
		}
	}
}

// New creates a climate field. temperatureScale and humidityScale are
// noise frequencies; zero values fall back to defaults.
func New(n *noise.Field, temperatureScale, humidityScale float64, opts ...Option) *Field {
	if temperatureScale == 0 {
		temperatureScale = 1.0 / 512.0
	}
	if humidityScale == 0 {
		humidityScale = 1.0 / 512.0
	}
	f := &Field{
		noise:            n,
		temperatureScale: temperatureScale,
		humidityScale:    humidityScale,
		cellSize:         16,
		cache:            make(map[cellKey]Sample),
		maxEntries:       4096,
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Sample returns the climate at world (x, z), quantized to the cell grid.
// Values are cached; a miss computes and stores the cell sample.
func (f *Field) Sample(x, z float64) Sample {
	k := f.key(x, z)

	f.mu.Lock()
	if s, ok := f.cache[k]; ok {
		f.mu.Unlock()
		return s
	}
	f.mu.Unlock()

	// Compute outside the lock; overwrite-on-miss means a racing
	// duplicate computation stores the same value anyway.
	s := f.compute(k)

	f.mu.Lock()
	if len(f.cache) >= f.maxEntries {
		f.evictLocked()
	}
	f.cache[k] = s
	f.mu.Unlock()
	return s
}

// Len reports the current cache size.
func (f *Field) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.cache)
}

// Clear drops every cached sample.
func (f *Field) Clear() {
	f.mu.Lock()
	f.cache = make(map[cellKey]Sample)
	f.mu.Unlock()
}

func (f *Field) key(x, z float64) cellKey {
	cs := float64(f.cellSize)
	return cellKey{
		x: quantize(x, cs),
		z: quantize(z, cs),
	}
}

func quantize(v, cell float64) int {
	q := int(v / cell)
	if v < 0 && v != float64(q)*cell {
		q--
	}
	return q
}

// compute samples the two noise layers at the cell origin and remaps
// [-1,1]-style output to [0,1]. Value noise is already [0,1], so the
// remap only clamps.
func (f *Field) compute(k cellKey) Sample {
	cx := float64(k.x * f.cellSize)
	cz := float64(k.z * f.cellSize)

	temp := f.noise.Octave2D(noise.TypePerlin, cx*f.temperatureScale, cz*f.temperatureScale, 3, 0.5, 2.0)
	hum := f.noise.Octave2D(noise.TypePerlin, (cx+humidityOffset)*f.humidityScale, (cz+humidityOffset)*f.humidityScale, 3, 0.5, 2.0)
	return Sample{Temperature: temp, Humidity: hum}
}

// evictLocked drops roughly a quarter of the cache. Map iteration order is
// arbitrary; the contract is only a soft memory bound, not LRU.
func (f *Field) evictLocked() {
	drop := len(f.cache) / 4
	if drop == 0 {
		drop = 1
	}
	for k := range f.cache {
		delete(f.cache, k)
		drop--
		if drop == 0 {
			break
		}
	}
}
