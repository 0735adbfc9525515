package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/cavegen/internal/entity"
	"github.com/samdwyer/cavegen/internal/world"
)

// statusRows is the number of rows reserved under the map.
const statusRows = 2

// View is everything drawn in one frame.
type View struct {
	Grid    *world.Grid
	Player  *entity.Player
	Enemies []*entity.Enemy
	Status  string
	Message string
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws the cave, its creatures and the status lines. Grid Y grows
// upward, so the top screen row shows the highest row of the grid. When the
// cave is larger than the terminal the view follows the player.
func (r *Renderer) Render(v View) {
	r.screen.Clear()

	w, h := r.screen.Size()
	mapH := max(h-statusRows, 0)
	ox := camera(v.Player.Pos.X, v.Grid.Width, w)
	oy := camera(v.Grid.Height-1-v.Player.Pos.Y, v.Grid.Height, mapH)

	for y := 0; y < v.Grid.Height; y++ {
		sy := v.Grid.Height - 1 - y - oy
		if sy < 0 || sy >= mapH {
			continue
		}
		for x := 0; x < v.Grid.Width; x++ {
			tile := v.Grid.Tiles[y][x]
			r.screen.SetContent(x-ox, sy, tile.Rune(), tileStyle(tile))
		}
	}

	plot := func(c world.Coord, ch rune, style tcell.Style) {
		sy := v.Grid.Height - 1 - c.Y - oy
		if sy < mapH {
			r.screen.SetContent(c.X-ox, sy, ch, style)
		}
	}
	for _, e := range v.Enemies {
		if e.IsAlive() {
			plot(e.Pos, e.Symbol, tcell.StyleDefault.Foreground(e.Color()))
		}
	}
	plot(v.Player.Pos, v.Player.Symbol, tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true))

	r.screen.DrawText(0, mapH, v.Status, tcell.StyleDefault.Foreground(tcell.ColorWhite))
	if mapH+1 < h {
		r.screen.DrawText(0, mapH+1, v.Message, tcell.StyleDefault.Foreground(tcell.ColorSilver))
	}

	r.screen.Show()
}

// StatusLine formats the player summary shown under the map.
func StatusLine(depth int, p *entity.Player, alive int) string {
	return fmt.Sprintf("Depth %d  HP %d/%d  Creatures %d", depth, p.HP, p.MaxHP, alive)
}

// camera returns the first visible column (or row) so that pos stays on a
// screen of the given size.
func camera(pos, mapSize, screenSize int) int {
	if mapSize <= screenSize {
		return 0
	}
	off := pos - screenSize/2
	return min(max(off, 0), mapSize-screenSize)
}

func tileStyle(tile world.Tile) tcell.Style {
	switch tile {
	case world.TileWall:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	case world.TileOpen:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	default:
		return tcell.StyleDefault
	}
}
