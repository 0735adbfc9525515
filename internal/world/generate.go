package world

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/aquilax/go-perlin"
	"github.com/cespare/xxhash/v2"
)

// FillMode selects how the initial noise grid is drawn.
type FillMode string

const (
	// FillUniform makes each interior tile a wall with probability fillPercent/100.
	FillUniform FillMode = "uniform"
	// FillPerlin skews the per-tile wall probability with low-frequency Perlin
	// noise, which yields larger chambers and thicker pillars after smoothing.
	FillPerlin FillMode = "perlin"
)

const (
	perlinAlpha     = 2
	perlinBeta      = 2
	perlinOctaves   = 3
	perlinFrequency = 0.08
	perlinStrength  = 30.0
)

// ParseFillMode converts a config string into a FillMode.
func ParseFillMode(s string) (FillMode, error) {
	switch FillMode(s) {
	case "", FillUniform:
		return FillUniform, nil
	case FillPerlin:
		return FillPerlin, nil
	default:
		return "", fmt.Errorf("unknown fill mode %q", s)
	}
}

// SeedValue hashes a string seed into the int64 used to seed the PRNG.
func SeedValue(seed string) int64 {
	return int64(xxhash.Sum64String(seed))
}

// RandomSeed derives a seed string from the current time.
func RandomSeed() string {
	return strconv.FormatInt(time.Now().UnixNano(), 10)
}

// RandomFill creates a grid whose outer ring is wall and whose interior is
// random noise. Exactly one draw is taken from the seeded stream per interior
// tile, row by row from y=1 upward and left to right within a row, so a seed
// always reproduces the same grid.
func RandomFill(width, height, fillPercent int, seed string, mode FillMode) *Grid {
	g := NewGrid(width, height)
	rng := rand.New(rand.NewSource(SeedValue(seed)))

	var noise *perlin.Perlin
	if mode == FillPerlin {
		noise = perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, SeedValue(seed))
	}

	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			threshold := float64(fillPercent)
			if noise != nil {
				// Scale the skew down towards 0 and 100 so the extremes stay exact
				spread := float64(min(fillPercent, 100-fillPercent)) / 50
				threshold += noise.Noise2D(float64(x)*perlinFrequency, float64(y)*perlinFrequency) * perlinStrength * spread
			}
			if float64(rng.Intn(100)) < threshold {
				g.Tiles[y][x] = TileWall
			} else {
				g.Tiles[y][x] = TileOpen
			}
		}
	}
	return g
}
