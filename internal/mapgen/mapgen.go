package mapgen

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"rts-select/internal/physics"
)

// minHeight keeps every tile at least this tall so the ground is never empty.
const minHeight = 0.15

// HeightMapOptions controls procedural terrain generation.
// Width/Depth are in tiles; TileSize is the world size of one tile on X/Z.
// HeightScale is the maximum height of the terrain in world units.
// Seed controls randomness; Seed == 0 uses a time-based seed.
// Octaves, Frequency, Lacunarity, and Gain control the fractal noise shape.
type HeightMapOptions struct {
	Width       int
	Depth       int
	TileSize    float32
	HeightScale float32

	Seed       int64
	Octaves    int
	Frequency  float32
	Lacunarity float32
	Gain       float32
}

// DefaultHeightMapOptions returns a 24x24 field of 2-unit tiles, at most 1.2 units high.
func DefaultHeightMapOptions() HeightMapOptions {
	return HeightMapOptions{
		Width:       24,
		Depth:       24,
		TileSize:    2,
		HeightScale: 1.2,
		Seed:        0,
		Octaves:     4,
		Frequency:   0.08,
		Lacunarity:  2.0,
		Gain:        0.5,
	}
}

func (o HeightMapOptions) normalized() HeightMapOptions {
	def := DefaultHeightMapOptions()
	if o.Width <= 0 {
		o.Width = def.Width
	}
	if o.Depth <= 0 {
		o.Depth = def.Depth
	}
	if o.TileSize <= 0 {
		o.TileSize = def.TileSize
	}
	if o.HeightScale <= minHeight {
		o.HeightScale = def.HeightScale
	}
	if o.Octaves <= 0 {
		o.Octaves = 1
	}
	if o.Frequency <= 0 {
		o.Frequency = 0.05
	}
	if o.Lacunarity <= 0 {
		o.Lacunarity = 2.0
	}
	if o.Gain <= 0 {
		o.Gain = 0.5
	}
	if o.Seed == 0 {
		o.Seed = time.Now().UnixNano()
	}
	return o
}

// Terrain is a height field of static box colliders sitting on Y=0, centered on the origin.
type Terrain struct {
	Tiles   []*physics.Body
	opts    HeightMapOptions
	heights []float32
	originX float32
	originZ float32
}

// Generate builds the terrain and adds every tile to w on layer. Each tile is one box whose
// height comes from fractal noise.
func Generate(w *physics.World, layer physics.Layer, opts HeightMapOptions) *Terrain {
	opts = opts.normalized()
	t := &Terrain{
		opts:    opts,
		heights: make([]float32, 0, opts.Width*opts.Depth),
		Tiles:   make([]*physics.Body, 0, opts.Width*opts.Depth),
		originX: -float32(opts.Width) * opts.TileSize * 0.5,
		originZ: -float32(opts.Depth) * opts.TileSize * 0.5,
	}

	half := opts.TileSize * 0.5
	for z := 0; z < opts.Depth; z++ {
		for x := 0; x < opts.Width; x++ {
			n := fractalValueNoise2D(float32(x)*opts.Frequency, float32(z)*opts.Frequency, opts.Seed, opts.Octaves, opts.Lacunarity, opts.Gain)
			height := minHeight + n*(opts.HeightScale-minHeight)
			if !isFinite(height) || height <= 0 {
				height = minHeight
			}
			t.heights = append(t.heights, height)

			pos := mgl32.Vec3{t.originX + float32(x)*opts.TileSize + half, height * 0.5, t.originZ + float32(z)*opts.TileSize + half}
			b := physics.NewBody(pos, mgl32.Vec3{opts.TileSize, height, opts.TileSize}, 0, true)
			b.Layer = layer
			w.AddBody(b)
			t.Tiles = append(t.Tiles, b)
		}
	}
	return t
}

// HeightAt returns the top of the tile under (x, z), or 0 outside the terrain.
func (t *Terrain) HeightAt(x, z float32) float32 {
	ix := int(math32.Floor((x - t.originX) / t.opts.TileSize))
	iz := int(math32.Floor((z - t.originZ) / t.opts.TileSize))
	if ix < 0 || iz < 0 || ix >= t.opts.Width || iz >= t.opts.Depth {
		return 0
	}
	return t.heights[iz*t.opts.Width+ix]
}

// Seed returns the seed the terrain was generated with.
func (t *Terrain) Seed() int64 {
	return t.opts.Seed
}

// fractalValueNoise2D is layered smooth value noise with configurable octaves, lacunarity, and gain.
// Output is in [0,1].
func fractalValueNoise2D(x, y float32, seed int64, octaves int, lacunarity, gain float32) float32 {
	var sum, maxAmp float32
	amplitude := float32(1)
	freq := float32(1)

	for i := 0; i < octaves; i++ {
		sum += valueNoise2D(x*freq, y*freq, int32(seed)+int32(i)) * amplitude
		maxAmp += amplitude
		amplitude *= gain
		freq *= lacunarity
	}
	if maxAmp == 0 {
		return 0
	}
	return sum / maxAmp
}

// valueNoise2D is smooth value noise in [0,1] over a hashed lattice.
func valueNoise2D(x, y float32, seed int32) float32 {
	x0 := int32(math32.Floor(x))
	y0 := int32(math32.Floor(y))
	sx := smoothStep(x - float32(x0))
	sy := smoothStep(y - float32(y0))

	top := lerp(hash2D(x0, y0, seed), hash2D(x0+1, y0, seed), sx)
	bottom := lerp(hash2D(x0, y0+1, seed), hash2D(x0+1, y0+1, seed), sx)
	return lerp(top, bottom, sy)
}

// hash2D maps integer lattice coordinates to a deterministic pseudo-random float in [0,1].
func hash2D(x, y, seed int32) float32 {
	n := x*374761393 + y*668265263 + seed*362437
	n = (n ^ (n >> 13)) * 1274126177
	n = n ^ (n >> 16)
	const invMaxInt = 1.0 / 2147483647.0
	return float32(n&0x7fffffff) * float32(invMaxInt)
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// smoothStep is cubic easing: 3t^2 - 2t^3.
func smoothStep(t float32) float32 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}

func isFinite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
