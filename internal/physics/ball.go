package physics

import (
	"math"

	"github.com/vladimirvolkov/pong/internal/match"
)

type BallState struct {
	Handle match.BallHandle `json:"-"`
	X      float64          `json:"x"`
	Y      float64          `json:"y"`
	VX     float64          `json:"vx"`
	VY     float64          `json:"vy"`
}

func (b *BallState) speed() float64 {
	return math.Hypot(b.VX, b.VY)
}

// bounceBoundaries reflects the ball off the top and bottom walls.
func bounceBoundaries(b *BallState) (top, bottom bool) {
	if b.Y+BallRadius > innerTop() {
		b.Y = innerTop() - BallRadius
		b.VY = -math.Abs(b.VY)
		top = true
	}
	if b.Y-BallRadius < innerBottom() {
		b.Y = innerBottom() + BallRadius
		b.VY = math.Abs(b.VY)
		bottom = true
	}
	return top, bottom
}

// bouncePaddle sends the ball back toward the far side. The return angle
// depends on where the paddle was hit, center flat and edges up to
// MaxBounceAngle. Speed is preserved.
func bouncePaddle(b *BallState, p *PaddleState) bool {
	hit, _, _ := circleOverlaps(b.X, b.Y, BallRadius, p.rect())
	if !hit {
		return false
	}

	dir := 1.0
	if p.Side == match.Right {
		dir = -1.0
	}
	// Already moving away, e.g. grazed the back edge after a return.
	if b.VX*dir > 0 {
		return false
	}

	rel := clampF((b.Y-p.Y)/(PaddleHeight/2), -1, 1)
	angle := rel * MaxBounceAngle
	speed := b.speed()

	b.VX = dir * speed * math.Cos(angle)
	b.VY = speed * math.Sin(angle)
	if dir > 0 {
		b.X = p.X + PaddleWidth/2 + BallRadius
	} else {
		b.X = p.X - PaddleWidth/2 - BallRadius
	}
	return true
}
