// Package level runs the full cave pipeline: grid generation, room
// connection, border padding and meshing.
package level

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/samdwyer/cavegen/internal/mesh"
	"github.com/samdwyer/cavegen/internal/world"
)

var (
	ErrInvalidDimensions  = errors.New("width and height must be positive")
	ErrInvalidFillPercent = errors.New("fill percent must be between 0 and 100")
	ErrInvalidMeshParams  = errors.New("mesh parameters must be positive")
	ErrInvalidFillMode    = errors.New("unknown fill mode")
)

// ConfigError reports an invalid configuration field.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Config holds level generation options.
type Config struct {
	Width       int
	Height      int
	FillPercent int // Chance in percent that an interior tile starts as wall

	// Seed for the fill noise. Used for reproducible caves.
	// UseRandomSeed replaces it with one derived from the clock on every level.
	Seed          string
	UseRandomSeed bool
	FillMode      world.FillMode

	SquareSize    float64
	WallHeight    float64
	TextureTiling float64
}

// DefaultConfig returns the standard cave settings.
func DefaultConfig() Config {
	return Config{
		Width:         world.DefaultWidth,
		Height:        world.DefaultHeight,
		FillPercent:   world.DefaultFillPercent,
		FillMode:      world.FillUniform,
		SquareSize:    mesh.DefaultSquareSize,
		WallHeight:    mesh.DefaultWallHeight,
		TextureTiling: mesh.DefaultTextureTiling,
	}
}

// Validate rejects configurations that would produce an undefined cave.
func (c Config) Validate() error {
	if c.Width <= 0 {
		return &ConfigError{Field: "width", Err: fmt.Errorf("%w: got %d", ErrInvalidDimensions, c.Width)}
	}
	if c.Height <= 0 {
		return &ConfigError{Field: "height", Err: fmt.Errorf("%w: got %d", ErrInvalidDimensions, c.Height)}
	}
	if c.FillPercent < 0 || c.FillPercent > 100 {
		return &ConfigError{Field: "fill percent", Err: fmt.Errorf("%w: got %d", ErrInvalidFillPercent, c.FillPercent)}
	}
	if _, err := world.ParseFillMode(string(c.FillMode)); err != nil {
		return &ConfigError{Field: "fill mode", Err: fmt.Errorf("%w: %q", ErrInvalidFillMode, c.FillMode)}
	}
	if c.SquareSize <= 0 {
		return &ConfigError{Field: "square size", Err: fmt.Errorf("%w: got %v", ErrInvalidMeshParams, c.SquareSize)}
	}
	if c.WallHeight <= 0 {
		return &ConfigError{Field: "wall height", Err: fmt.Errorf("%w: got %v", ErrInvalidMeshParams, c.WallHeight)}
	}
	if c.TextureTiling <= 0 {
		return &ConfigError{Field: "texture tiling", Err: fmt.Errorf("%w: got %v", ErrInvalidMeshParams, c.TextureTiling)}
	}
	return nil
}

// ConfigFromEnv overlays CAVEGEN_* environment variables on the defaults.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	ints := []struct {
		key string
		dst *int
	}{
		{"CAVEGEN_WIDTH", &cfg.Width},
		{"CAVEGEN_HEIGHT", &cfg.Height},
		{"CAVEGEN_FILL_PERCENT", &cfg.FillPercent},
	}
	for _, v := range ints {
		raw, ok := os.LookupEnv(v.key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return cfg, fmt.Errorf("parse %s: %w", v.key, err)
		}
		*v.dst = n
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"CAVEGEN_SQUARE_SIZE", &cfg.SquareSize},
		{"CAVEGEN_WALL_HEIGHT", &cfg.WallHeight},
	}
	for _, v := range floats {
		raw, ok := os.LookupEnv(v.key)
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return cfg, fmt.Errorf("parse %s: %w", v.key, err)
		}
		*v.dst = f
	}

	if seed, ok := os.LookupEnv("CAVEGEN_SEED"); ok {
		cfg.Seed = seed
	}
	if raw, ok := os.LookupEnv("CAVEGEN_RANDOM_SEED"); ok {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return cfg, fmt.Errorf("parse CAVEGEN_RANDOM_SEED: %w", err)
		}
		cfg.UseRandomSeed = b
	}
	if raw, ok := os.LookupEnv("CAVEGEN_FILL_MODE"); ok {
		mode, err := world.ParseFillMode(raw)
		if err != nil {
			return cfg, fmt.Errorf("parse CAVEGEN_FILL_MODE: %w", err)
		}
		cfg.FillMode = mode
	}
	return cfg, nil
}
