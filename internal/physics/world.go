package physics

import (
	"math"

	"github.com/vladimirvolkov/pong/internal/match"
)

// Sub-step limits for fast balls.
const (
	maxStepDistance = BallRadius
	maxSubsteps     = 4096
)

type Config struct {
	PaddleSpeed float64
}

// World is the court simulation. It owns the ball and the paddles and
// reports contacts as collision starts: a contact is announced once when it
// begins and again only after the bodies have separated.
type World struct {
	cfg     Config
	ball    *BallState
	next    match.BallHandle
	paddles [2]PaddleState
	active  map[bodyID]bool
}

// State is the renderable view of the world.
type State struct {
	Ball    *BallState     `json:"ball,omitempty"`
	Paddles [2]PaddleState `json:"paddles"`
}

func NewWorld(cfg Config) *World {
	if cfg.PaddleSpeed <= 0 {
		cfg.PaddleSpeed = PaddleSpeed
	}
	return &World{
		cfg:     cfg,
		paddles: [2]PaddleState{NewPaddle(match.Left), NewPaddle(match.Right)},
		active:  make(map[bodyID]bool),
	}
}

func (w *World) Center() match.Vec2 {
	return match.Vec2{}
}

func (w *World) Spawn(center match.Vec2) match.BallHandle {
	w.next++
	w.ball = &BallState{Handle: w.next, X: center.X, Y: center.Y}
	clear(w.active)
	return w.next
}

func (w *World) Serve(h match.BallHandle, velocity match.Vec2) {
	if w.ball == nil || w.ball.Handle != h {
		return
	}
	w.ball.VX = velocity.X
	w.ball.VY = velocity.Y
}

func (w *World) Despawn(h match.BallHandle) {
	if w.ball == nil || w.ball.Handle != h {
		return
	}
	w.ball = nil
	clear(w.active)
}

// SetPaddleIntent sets the vertical input for a paddle, clamped to [-1, 1].
func (w *World) SetPaddleIntent(side match.Side, intent float64) {
	w.paddles[side].Intent = clampF(intent, -1, 1)
}

func (w *World) State() State {
	st := State{Paddles: w.paddles}
	if w.ball != nil {
		b := *w.ball
		st.Ball = &b
	}
	return st
}

// Step advances the simulation by dt seconds and returns the contacts that
// started during this step. The ball moves in sub-steps no longer than its
// radius so it cannot pass through a paddle or goal sensor in one tick.
func (w *World) Step(dt float64) []match.CollisionStart {
	for i := range w.paddles {
		StepPaddle(&w.paddles[i], w.cfg.PaddleSpeed, dt)
	}
	if w.ball == nil {
		return nil
	}

	n := 1
	if dist := w.ball.speed() * dt; dist > maxStepDistance {
		n = int(math.Min(math.Ceil(dist/maxStepDistance), maxSubsteps))
	}
	h := dt / float64(n)

	var starts []match.CollisionStart
	for i := 0; i < n; i++ {
		starts = w.substep(h, starts)
	}
	return starts
}

func (w *World) substep(dt float64, starts []match.CollisionStart) []match.CollisionStart {
	b := w.ball
	b.X += b.VX * dt
	b.Y += b.VY * dt

	touching := make(map[bodyID]bool, 2)
	top, bottom := bounceBoundaries(b)
	touching[bodyTopBoundary] = top
	touching[bodyBottomBoundary] = bottom
	touching[bodyLeftPaddle] = bouncePaddle(b, &w.paddles[match.Left])
	touching[bodyRightPaddle] = bouncePaddle(b, &w.paddles[match.Right])

	// Anything past an end line is in that goal, whatever the overlap test says.
	inLeft, _, _ := circleOverlaps(b.X, b.Y, BallRadius, goalRect(true))
	inRight, _, _ := circleOverlaps(b.X, b.Y, BallRadius, goalRect(false))
	touching[bodyLeftGoal] = inLeft || b.X < -CourtWidth/2
	touching[bodyRightGoal] = inRight || b.X > CourtWidth/2

	for id := bodyTopBoundary; id <= bodyRightGoal; id++ {
		now := touching[id]
		if now && !w.active[id] {
			starts = append(starts, match.CollisionStart{A: match.BallTag(), B: tagFor(id)})
		}
		if now {
			w.active[id] = true
		} else {
			delete(w.active, id)
		}
	}
	return starts
}

func tagFor(id bodyID) match.Tag {
	switch id {
	case bodyLeftPaddle:
		return match.PaddleTag(match.Left)
	case bodyRightPaddle:
		return match.PaddleTag(match.Right)
	case bodyLeftGoal:
		return match.GoalTag(match.Left)
	case bodyRightGoal:
		return match.GoalTag(match.Right)
	}
	return match.BoundaryTag()
}
