package mesh

import (
	"context"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/cavegen/internal/telemetry"
	"github.com/samdwyer/cavegen/internal/world"
)

const (
	DefaultSquareSize    = 1.0
	DefaultWallHeight    = 2.0
	DefaultTextureTiling = 150.0
)

// Params controls mesh geometry.
type Params struct {
	SquareSize    float64 // World size of one tile
	WallHeight    float64 // Height walls rise above the floor
	TextureTiling float64 // Floor texture repeats across the map
	Logger        logr.Logger
}

// Result is the cave geometry built from one grid.
type Result struct {
	Floor    Mesh
	Walls    Mesh
	Outlines [][]int // Loops of floor vertex indexes
}

// Build meshes the grid. The grid should already carry a solid border so that
// every floor region is closed.
func Build(ctx context.Context, g *world.Grid, p Params) *Result {
	tracer := telemetry.Tracer("mesh")
	ctx, span := tracer.Start(ctx, "mesh.build")
	defer span.End()

	_, triSpan := tracer.Start(ctx, "mesh.triangulate")
	tri := Triangulate(NewSquareGrid(g, p.SquareSize))
	tri.UVs = FloorUVs(tri.Vertices, g.Width, g.Height, p.SquareSize, p.TextureTiling)
	triSpan.SetAttributes(
		attribute.Int("mesh.floor_vertices", len(tri.Vertices)),
		attribute.Int("mesh.floor_triangles", tri.TriangleCount()),
	)
	triSpan.End()

	_, wallSpan := tracer.Start(ctx, "mesh.walls")
	outlines := Outlines(tri)
	walls := BuildWalls(tri.Vertices, outlines, p.WallHeight)
	wallSpan.SetAttributes(
		attribute.Int("mesh.outlines", len(outlines)),
		attribute.Int("mesh.wall_triangles", walls.TriangleCount()),
	)
	wallSpan.End()

	p.Logger.V(1).Info("built cave mesh",
		"floorVertices", len(tri.Vertices),
		"floorTriangles", tri.TriangleCount(),
		"outlines", len(outlines),
		"wallTriangles", walls.TriangleCount(),
	)

	return &Result{
		Floor:    tri.Mesh,
		Walls:    walls,
		Outlines: outlines,
	}
}
