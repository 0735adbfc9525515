package game

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/cavegen/internal/ui"
)

// Game is the interactive terminal front end for a Session.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	session  *Session
	running  bool
}

// New opens the terminal for an existing session.
func New(session *Session) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	return newGame(screen, session), nil
}

func newGame(screen *ui.Screen, session *Session) *Game {
	return &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		session:  session,
		running:  true,
	}
}

// Run executes the main game loop until the player quits.
func (g *Game) Run(ctx context.Context) error {
	defer g.screen.Close()

	for g.running {
		g.render()
		g.handleInput(ctx)
		if _, err := g.session.Advance(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) render() {
	s := g.session
	g.renderer.Render(ui.View{
		Grid:    s.Level.Cave.Grid,
		Player:  s.Player,
		Enemies: s.Enemies,
		Status:  ui.StatusLine(s.Depth, s.Player, s.Alive()),
		Message: s.Message,
	})
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	switch ev := g.screen.PollEvent().(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKeyEvent processes keyboard input. Up moves toward higher grid Y.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false
	case tcell.KeyUp:
		g.session.TryMove(0, 1)
	case tcell.KeyDown:
		g.session.TryMove(0, -1)
	case tcell.KeyLeft:
		g.session.TryMove(-1, 0)
	case tcell.KeyRight:
		g.session.TryMove(1, 0)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			g.running = false
		case 'n', 'N':
			if err := g.session.NextLevel(ctx); err != nil {
				g.session.Message = err.Error()
			}
		}
	}
}
