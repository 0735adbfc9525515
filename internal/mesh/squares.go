// Package mesh turns a cave tile grid into floor and wall triangle meshes
// using marching squares.
package mesh

import (
	"github.com/samdwyer/cavegen/internal/vmath"
	"github.com/samdwyer/cavegen/internal/world"
)

// unassigned marks a node that has not yet been given a mesh vertex.
const unassigned = -1

// Node is a sample point that may become a mesh vertex. It is shared by every
// square that touches it, so its vertex index is assigned once.
type Node struct {
	Position    vmath.Vec3
	VertexIndex int
}

func newNode(pos vmath.Vec3) *Node {
	return &Node{Position: pos, VertexIndex: unassigned}
}

// ControlNode sits on a tile center. It owns the edge-midpoint nodes above
// (+Z) and to the right (+X) of itself.
type ControlNode struct {
	Node
	Active bool // Tile is open floor
	Above  *Node
	Right  *Node
}

func newControlNode(pos vmath.Vec3, active bool, squareSize float64) *ControlNode {
	return &ControlNode{
		Node:   Node{Position: pos, VertexIndex: unassigned},
		Active: active,
		Above:  newNode(pos.Add(vmath.Vec3{Z: squareSize / 2})),
		Right:  newNode(pos.Add(vmath.Vec3{X: squareSize / 2})),
	}
}

// Square is one marching-squares cell spanning four neighboring tile centers.
type Square struct {
	TopLeft, TopRight, BottomRight, BottomLeft       *ControlNode
	CenterTop, CenterRight, CenterBottom, CenterLeft *Node

	// Configuration has bit 3..0 set when the top-left, top-right,
	// bottom-right and bottom-left corner is active.
	Configuration int
}

func newSquare(topLeft, topRight, bottomRight, bottomLeft *ControlNode) *Square {
	s := &Square{
		TopLeft:      topLeft,
		TopRight:     topRight,
		BottomRight:  bottomRight,
		BottomLeft:   bottomLeft,
		CenterTop:    topLeft.Right,
		CenterRight:  bottomRight.Above,
		CenterBottom: bottomLeft.Right,
		CenterLeft:   bottomLeft.Above,
	}
	if topLeft.Active {
		s.Configuration |= 8
	}
	if topRight.Active {
		s.Configuration |= 4
	}
	if bottomRight.Active {
		s.Configuration |= 2
	}
	if bottomLeft.Active {
		s.Configuration |= 1
	}
	return s
}

// SquareGrid is a (width-1)×(height-1) grid of squares over a tile grid,
// indexed as Squares[x][y].
type SquareGrid struct {
	Squares [][]*Square
	Width   int // Squares along X
	Height  int // Squares along Y
}

// NewSquareGrid builds squares over g. Tile centers are laid out on the XZ
// plane, centered on the origin, squareSize apart. Open tiles are active.
func NewSquareGrid(g *world.Grid, squareSize float64) *SquareGrid {
	nodeCountX, nodeCountY := g.Width, g.Height
	mapWidth := float64(nodeCountX) * squareSize
	mapHeight := float64(nodeCountY) * squareSize

	controlNodes := make([][]*ControlNode, nodeCountX)
	for x := range controlNodes {
		controlNodes[x] = make([]*ControlNode, nodeCountY)
		for y := range controlNodes[x] {
			pos := vmath.Vec3{
				X: -mapWidth/2 + float64(x)*squareSize + squareSize/2,
				Z: -mapHeight/2 + float64(y)*squareSize + squareSize/2,
			}
			controlNodes[x][y] = newControlNode(pos, g.At(x, y) == world.TileOpen, squareSize)
		}
	}

	sg := &SquareGrid{
		Width:  max(nodeCountX-1, 0),
		Height: max(nodeCountY-1, 0),
	}
	sg.Squares = make([][]*Square, sg.Width)
	for x := 0; x < sg.Width; x++ {
		sg.Squares[x] = make([]*Square, sg.Height)
		for y := 0; y < sg.Height; y++ {
			sg.Squares[x][y] = newSquare(
				controlNodes[x][y+1],
				controlNodes[x+1][y+1],
				controlNodes[x+1][y],
				controlNodes[x][y],
			)
		}
	}
	return sg
}
