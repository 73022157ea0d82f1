package physics

import "github.com/vladimirvolkov/pong/internal/match"

type PaddleState struct {
	Side   match.Side `json:"side"`
	X      float64    `json:"x"`
	Y      float64    `json:"y"`
	Intent float64    `json:"-"` // -1 down .. 1 up
}

func NewPaddle(side match.Side) PaddleState {
	x := -PaddleXOffset
	if side == match.Right {
		x = PaddleXOffset
	}
	return PaddleState{Side: side, X: x}
}

func (p *PaddleState) rect() rect {
	return rect{
		minX: p.X - PaddleWidth/2,
		maxX: p.X + PaddleWidth/2,
		minY: p.Y - PaddleHeight/2,
		maxY: p.Y + PaddleHeight/2,
	}
}

// StepPaddle moves the paddle vertically and keeps it between the boundaries.
func StepPaddle(p *PaddleState, speed, dt float64) {
	p.Y += p.Intent * speed * dt
	p.Y = clampF(p.Y, innerBottom()+PaddleHeight/2, innerTop()-PaddleHeight/2)
}
