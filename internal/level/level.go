package level

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/cavegen/internal/mesh"
	"github.com/samdwyer/cavegen/internal/telemetry"
	"github.com/samdwyer/cavegen/internal/vmath"
	"github.com/samdwyer/cavegen/internal/world"
)

// Level is one generated cave with its geometry.
type Level struct {
	ID       uuid.UUID
	Seed     string
	Config   Config
	Cave     *world.Cave
	Bordered *world.Grid // Cave grid plus a one-tile wall border
	Mesh     *mesh.Result
}

// Generate validates cfg and runs the cave and mesh pipeline.
func Generate(ctx context.Context, cfg Config, log logr.Logger) (*Level, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ctx, span := telemetry.Tracer("level").Start(ctx, "level.generate")
	defer span.End()

	seed := cfg.Seed
	if cfg.UseRandomSeed {
		seed = world.RandomSeed()
	}

	cave, err := world.Generate(ctx, world.Options{
		Width:       cfg.Width,
		Height:      cfg.Height,
		FillPercent: cfg.FillPercent,
		Seed:        seed,
		FillMode:    cfg.FillMode,
		Logger:      log,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, world.ErrNoRooms) {
			return nil, &ConfigError{Field: "fill percent", Err: fmt.Errorf("%d%% leaves no open room: %w", cfg.FillPercent, err)}
		}
		return nil, fmt.Errorf("generate cave: %w", err)
	}

	bordered := cave.Bordered()
	result := mesh.Build(ctx, bordered, mesh.Params{
		SquareSize:    cfg.SquareSize,
		WallHeight:    cfg.WallHeight,
		TextureTiling: cfg.TextureTiling,
		Logger:        log,
	})

	lvl := &Level{
		ID:       uuid.New(),
		Seed:     seed,
		Config:   cfg,
		Cave:     cave,
		Bordered: bordered,
		Mesh:     result,
	}
	span.SetAttributes(
		attribute.String("level.id", lvl.ID.String()),
		attribute.String("level.seed", seed),
	)
	log.Info("generated level",
		"id", lvl.ID,
		"seed", seed,
		"width", cfg.Width,
		"height", cfg.Height,
		"rooms", len(cave.Rooms),
		"passages", len(cave.Passages),
	)
	return lvl, nil
}

// TileToWorld returns the world position of a cave tile at the given height.
func (l *Level) TileToWorld(tile world.Coord, height float64) vmath.Vec3 {
	return l.Cave.CoordToWorldPoint(tile, l.Config.SquareSize, height)
}

// Runner owns the current level. Regeneration is serialized so a level is
// never replaced while another generation is in flight.
type Runner struct {
	mu      sync.Mutex
	cfg     Config
	log     logr.Logger
	current *Level
	count   int
}

// NewRunner returns a Runner with no level yet.
func NewRunner(cfg Config, log logr.Logger) *Runner {
	return &Runner{cfg: cfg, log: log}
}

// NewLevel generates a fresh level and makes it current. On error the
// previous level stays current.
func (r *Runner) NewLevel(ctx context.Context) (*Level, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lvl, err := Generate(ctx, r.cfg, r.log.WithValues("level", r.count+1))
	if err != nil {
		return nil, err
	}
	r.current = lvl
	r.count++
	return lvl, nil
}

// Current returns the active level, or nil before the first NewLevel.
func (r *Runner) Current() *Level {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Count returns how many levels have been generated.
func (r *Runner) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}
