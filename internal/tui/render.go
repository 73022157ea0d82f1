package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/vladimirvolkov/pong/internal/game"
	"github.com/vladimirvolkov/pong/internal/match"
	"github.com/vladimirvolkov/pong/internal/physics"
)

// Canvas is the part of tcell.Screen the renderer draws on.
type Canvas interface {
	Size() (width, height int)
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

var (
	styleCourt  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleLine   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleBall   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleScore  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	stylePrompt = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleBanner = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite).Bold(true)
	styleHint   = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// Renderer maps court space onto terminal cells. Row 0 holds the score, the
// court takes the rest.
type Renderer struct {
	canvas Canvas
	w, h   int
}

func NewRenderer(c Canvas) *Renderer {
	return &Renderer{canvas: c}
}

// cell converts court coordinates (origin center, y up) to a screen cell.
func (r *Renderer) cell(x, y float64) (int, int) {
	cx := int((x + physics.CourtWidth/2) / physics.CourtWidth * float64(r.w-1))
	cy := 1 + int((physics.CourtHeight/2-y)/physics.CourtHeight*float64(r.h-2))
	return cx, cy
}

func (r *Renderer) clear() {
	for y := 0; y < r.h; y++ {
		for x := 0; x < r.w; x++ {
			r.canvas.SetContent(x, y, ' ', nil, tcell.StyleDefault)
		}
	}
}

func (r *Renderer) put(x, y int, ch rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= r.w || y >= r.h {
		return
	}
	r.canvas.SetContent(x, y, ch, nil, style)
}

func (r *Renderer) text(x, y int, s string, style tcell.Style) {
	for i, ch := range []rune(s) {
		r.put(x+i, y, ch, style)
	}
}

func (r *Renderer) centered(y int, s string, style tcell.Style) {
	r.text((r.w-len([]rune(s)))/2, y, s, style)
}

// Draw paints one frame. The caller shows the screen.
func (r *Renderer) Draw(f game.Frame) {
	r.w, r.h = r.canvas.Size()
	if r.w < 20 || r.h < 8 {
		return
	}
	r.clear()
	r.drawCourt()
	for _, p := range f.World.Paddles {
		r.drawPaddle(p)
	}
	if b := f.World.Ball; b != nil {
		x, y := r.cell(b.X, b.Y)
		r.put(x, y, '●', styleBall)
	}
	r.drawScore(f.Score)
	r.drawPhase(f)
}

func (r *Renderer) drawCourt() {
	_, top := r.cell(0, physics.CourtHeight/2)
	_, bottom := r.cell(0, -physics.CourtHeight/2)
	for x := 0; x < r.w; x++ {
		r.put(x, top, '─', styleCourt)
		r.put(x, bottom, '─', styleCourt)
	}
	mid, _ := r.cell(0, 0)
	for y := top + 1; y < bottom; y++ {
		if (y-top)%3 != 0 {
			r.put(mid, y, '┆', styleLine)
		}
	}
}

func (r *Renderer) drawPaddle(p physics.PaddleState) {
	x, y0 := r.cell(p.X, p.Y+physics.PaddleHeight/2)
	_, y1 := r.cell(p.X, p.Y-physics.PaddleHeight/2)
	for y := y0; y <= y1; y++ {
		r.put(x, y, '█', styleCourt)
	}
}

func (r *Renderer) drawScore(s match.Score) {
	left := fmt.Sprintf("%d", s.Left)
	right := fmt.Sprintf("%d", s.Right)
	r.text(r.w/2-4-len(left), 0, left, styleScore)
	r.text(r.w/2+4, 0, right, styleScore)
}

func (r *Renderer) drawPhase(f game.Frame) {
	bottom := r.h - 2
	switch f.Phase {
	case match.PhaseWaitingToServe:
		r.centered(bottom, ServePrompt(f.Server), stylePrompt)
	case match.PhaseGoalScored:
		if f.Goal != nil {
			r.centered(bottom, fmt.Sprintf("%s player scores!", f.Goal.ScoringSide), stylePrompt)
		}
	case match.PhaseGameOver:
		lines := GameOverLines(f.Snapshot)
		y := r.h/2 - len(lines)/2
		for i, line := range lines {
			style := styleBanner
			if i == len(lines)-1 {
				style = styleHint
			}
			r.centered(y+i, line, style)
		}
	}
}

func ServePrompt(server match.Side) string {
	return fmt.Sprintf("%s player: press SPACE to serve", server)
}

// GameOverLines is the text of the end-of-match overlay.
func GameOverLines(s match.Snapshot) []string {
	title := "VICTORY!"
	if s.WinType == match.WinMercy {
		title = "MERCY WIN!"
	}
	winner := "Nobody"
	if s.Winner != nil {
		winner = s.Winner.String()
	}
	return []string{
		title,
		fmt.Sprintf("%s Player Wins!", winner),
		fmt.Sprintf("Final Score: %d - %d", s.Score.Left, s.Score.Right),
		"Press SPACE to play again or ESC for menu",
	}
}
