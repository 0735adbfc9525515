// Package main is the entry point for cavegen.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/samdwyer/cavegen/internal/export"
	"github.com/samdwyer/cavegen/internal/game"
	"github.com/samdwyer/cavegen/internal/gamedata"
	"github.com/samdwyer/cavegen/internal/level"
	"github.com/samdwyer/cavegen/internal/spawn"
	"github.com/samdwyer/cavegen/internal/telemetry"
	"github.com/samdwyer/cavegen/internal/world"
	"github.com/samdwyer/cavegen/internal/ws"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: .env file not loaded: %v", err)
	}
	setupOTelEnv()

	cfg, err := level.ConfigFromEnv()
	if err != nil {
		log.Fatalf("Invalid environment: %v", err)
	}

	mode := flag.String("mode", "play", "play, obj or serve")
	out := flag.String("out", "cave.obj", "output path for -mode obj")
	addr := flag.String("addr", ":8080", "listen address for -mode serve")
	flag.IntVar(&cfg.Width, "width", cfg.Width, "cave width in tiles")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "cave height in tiles")
	flag.IntVar(&cfg.FillPercent, "fill", cfg.FillPercent, "initial wall percentage (0-100)")
	flag.StringVar(&cfg.Seed, "seed", cfg.Seed, "seed string for reproducible caves")
	flag.BoolVar(&cfg.UseRandomSeed, "random-seed", cfg.UseRandomSeed, "derive a new seed from the clock for every level")
	fillMode := flag.String("fill-mode", string(cfg.FillMode), "uniform or perlin")
	flag.Float64Var(&cfg.WallHeight, "wall-height", cfg.WallHeight, "wall height in world units")
	flag.Float64Var(&cfg.SquareSize, "square-size", cfg.SquareSize, "world size of one tile")
	flag.Parse()

	cfg.FillMode = world.FillMode(*fillMode)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		if !errors.Is(err, telemetry.ErrNoEndpoint) {
			log.Printf("Warning: telemetry setup failed: %v", err)
		}
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	logger := telemetry.Logger()

	switch *mode {
	case "obj":
		err = writeOBJ(ctx, cfg, *out)
	case "play", "serve":
		runner := level.NewRunner(cfg, logger)
		spawner := spawn.NewSpawner(gamedata.MustLoadEnemyRegistry(), logger)
		session, serr := game.NewSession(ctx, runner, spawner, logger)
		if serr != nil {
			log.Fatalf("Failed to start session: %v", serr)
		}
		if *mode == "play" {
			err = play(ctx, session)
		} else {
			err = serve(ctx, session, *addr)
		}
	default:
		log.Fatalf("Unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatalf("%s: %v", *mode, err)
	}
}

func writeOBJ(ctx context.Context, cfg level.Config, path string) error {
	lvl, err := level.Generate(ctx, cfg, telemetry.Logger())
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WriteOBJ(f, "cave "+lvl.Seed, lvl.Mesh); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("Wrote %s: seed %q, %d rooms, %d floor and %d wall triangles",
		path, lvl.Seed, len(lvl.Cave.Rooms), lvl.Mesh.Floor.TriangleCount(), lvl.Mesh.Walls.TriangleCount())
	return nil
}

func play(ctx context.Context, session *game.Session) error {
	g, err := game.New(session)
	if err != nil {
		return fmt.Errorf("initialize terminal: %w", err)
	}
	return g.Run(ctx)
}

func serve(ctx context.Context, session *game.Session, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           ws.NewServer(session, telemetry.Logger().WithName("ws")).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("Listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// setupOTelEnv points the OTLP exporter at Honeycomb when an API key is set.
func setupOTelEnv() {
	apiKey := os.Getenv("HONEYCOMB_CAVEGEN_API_KEY")
	if apiKey == "" {
		return
	}
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}
	dataset := os.Getenv("HONEYCOMB_CAVEGEN_DATASET")
	if dataset == "" {
		dataset = "cavegen"
	}
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
}
