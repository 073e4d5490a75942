package tilemap

import (
	"fmt"
	"math"

	"github.com/aquilax/go-perlin"
)

// Source is the random source generators draw from. *rand.Rand from
// math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
}

// Generator fills a new grid of the requested size. The border ring is
// always wall regardless of generator.
type Generator func(width, height int, rng Source) (*Grid, error)

// Generate builds a grid whose border ring is wall and whose interior cells
// are independently wall with probability wallProbability.
func Generate(width, height int, wallProbability float64, rng Source) (*Grid, error) {
	return Uniform(wallProbability)(width, height, rng)
}

// Uniform returns a generator placing interior walls with a fixed
// probability per cell.
func Uniform(wallProbability float64) Generator {
	return func(width, height int, rng Source) (*Grid, error) {
		if wallProbability < 0 || wallProbability > 1 {
			return nil, fmt.Errorf("tilemap: wall probability %v outside [0,1]", wallProbability)
		}
		grid, err := NewGrid(width, height)
		if err != nil {
			return nil, err
		}

		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if grid.IsBorder(x, y) {
					grid.Set(x, y, Wall)
					continue
				}
				if rng.Float64() < wallProbability {
					grid.Set(x, y, Wall)
				}
			}
		}
		return grid, nil
	}
}

// Perlin noise parameters.
const (
	noiseAlpha   = 2.0
	noiseBeta    = 2.0
	noiseOctaves = int32(3)
)

// Noise returns a generator that clusters interior walls into blobs: a cell
// is wall when its perlin value, mapped to [0,1], is at least threshold.
// scale controls blob size; smaller is larger blobs.
func Noise(threshold, scale float64) Generator {
	return func(width, height int, rng Source) (*Grid, error) {
		if scale <= 0 {
			return nil, fmt.Errorf("tilemap: noise scale must be positive, got %v", scale)
		}
		grid, err := NewGrid(width, height)
		if err != nil {
			return nil, err
		}

		seed := int64(rng.Float64() * math.MaxInt32)
		noise := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed)

		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if grid.IsBorder(x, y) {
					grid.Set(x, y, Wall)
					continue
				}
				value := (noise.Noise2D(float64(x)*scale, float64(y)*scale) + 1.0) / 2.0
				if value >= threshold {
					grid.Set(x, y, Wall)
				}
			}
		}
		return grid, nil
	}
}
