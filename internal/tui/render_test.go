package tui

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/vladimirvolkov/pong/internal/game"
	"github.com/vladimirvolkov/pong/internal/match"
	"github.com/vladimirvolkov/pong/internal/physics"
)

// gridCanvas records runes for inspection.
type gridCanvas struct {
	w, h  int
	cells [][]rune
}

func newGridCanvas(w, h int) *gridCanvas {
	g := &gridCanvas{w: w, h: h, cells: make([][]rune, h)}
	for y := range g.cells {
		g.cells[y] = []rune(strings.Repeat(" ", w))
	}
	return g
}

func (g *gridCanvas) Size() (int, int) { return g.w, g.h }

func (g *gridCanvas) SetContent(x, y int, r rune, _ []rune, _ tcell.Style) {
	g.cells[y][x] = r
}

func (g *gridCanvas) row(y int) string { return string(g.cells[y]) }

func (g *gridCanvas) contains(s string) bool {
	for y := 0; y < g.h; y++ {
		if strings.Contains(g.row(y), s) {
			return true
		}
	}
	return false
}

func (g *gridCanvas) count(r rune) int {
	n := 0
	for _, row := range g.cells {
		for _, c := range row {
			if c == r {
				n++
			}
		}
	}
	return n
}

func waitingFrame() game.Frame {
	s := game.NewSession(game.SessionConfig{}, rand.New(rand.NewPCG(1, 1)), zerolog.Nop())
	return s.Step(1, game.Input{})
}

func TestDrawWaitingFrame(t *testing.T) {
	c := newGridCanvas(80, 24)
	NewRenderer(c).Draw(waitingFrame())

	if !c.contains("Left player: press SPACE to serve") {
		t.Error("missing serve prompt")
	}
	if c.count('●') != 1 {
		t.Errorf("ball drawn %d times, want 1", c.count('●'))
	}
	if c.count('█') == 0 {
		t.Error("paddles not drawn")
	}
	if !strings.Contains(c.row(0), "0") {
		t.Errorf("score row = %q", c.row(0))
	}
}

func TestDrawBallPosition(t *testing.T) {
	c := newGridCanvas(81, 25)
	r := NewRenderer(c)
	f := game.Frame{World: physics.State{Ball: &physics.BallState{X: 0, Y: 0}}}
	r.Draw(f)

	x, y := r.cell(0, 0)
	if c.cells[y][x] != '●' {
		t.Errorf("cell (%d,%d) = %q, want ball", x, y, c.cells[y][x])
	}
	if x != 40 {
		t.Errorf("court center column = %d, want 40", x)
	}
}

func TestDrawGameOverOverlay(t *testing.T) {
	winner := match.Left
	f := game.Frame{Snapshot: match.Snapshot{
		Phase:   match.PhaseGameOver,
		Score:   match.Score{Left: 7},
		Winner:  &winner,
		WinType: match.WinMercy,
	}}
	c := newGridCanvas(80, 24)
	NewRenderer(c).Draw(f)

	for _, want := range []string{"MERCY WIN!", "Left Player Wins!", "Final Score: 7 - 0", "Press SPACE to play again or ESC for menu"} {
		if !c.contains(want) {
			t.Errorf("overlay missing %q", want)
		}
	}
}

func TestGameOverLinesVictory(t *testing.T) {
	winner := match.Right
	lines := GameOverLines(match.Snapshot{Score: match.Score{Left: 9, Right: 11}, Winner: &winner, WinType: match.WinGame})
	if lines[0] != "VICTORY!" || lines[1] != "Right Player Wins!" || lines[2] != "Final Score: 9 - 11" {
		t.Errorf("lines = %q", lines)
	}
}

func TestDrawTinyScreenIsSafe(t *testing.T) {
	c := newGridCanvas(5, 3)
	NewRenderer(c).Draw(waitingFrame())
}

func TestDrawOnSimulationScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(80, 24)

	NewRenderer(screen).Draw(waitingFrame())
	screen.Show()
}
