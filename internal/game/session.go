package game

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/vladimirvolkov/pong/internal/match"
	"github.com/vladimirvolkov/pong/internal/physics"
)

type SessionConfig struct {
	BallSpeed   float64
	PaddleSpeed float64
	GoalPause   time.Duration
}

// Input is what the players did since the last tick. Paddle intents are
// held values; Commands are one-shot.
type Input struct {
	Paddles  [2]float64
	Commands match.Commands
}

// Frame is one tick's output for renderers and transports.
type Frame struct {
	match.Snapshot
	World      physics.State `json:"world"`
	PaddleHits []match.Side  `json:"-"`
}

// Session wires the court simulation to the match controller and steps them
// in a fixed order: paddles and ball move, collisions are collected, then
// the controller consumes them.
type Session struct {
	world *physics.World
	ctrl  *match.Controller
}

func NewSession(cfg SessionConfig, rng match.Rand, log zerolog.Logger) *Session {
	world := physics.NewWorld(physics.Config{PaddleSpeed: cfg.PaddleSpeed})
	ctrl := match.NewController(world, rng, match.Config{
		BallSpeed: cfg.BallSpeed,
		GoalPause: cfg.GoalPause,
	}, log)
	return &Session{world: world, ctrl: ctrl}
}

func (s *Session) Step(dt time.Duration, in Input) Frame {
	for side, intent := range in.Paddles {
		s.world.SetPaddleIntent(match.Side(side), intent)
	}
	collisions := s.world.Step(dt.Seconds())
	snap := s.ctrl.Advance(match.TickInput{
		Elapsed:    dt,
		Collisions: collisions,
		Commands:   in.Commands,
	})
	return Frame{
		Snapshot:   snap,
		World:      s.world.State(),
		PaddleHits: match.PaddleContacts(collisions),
	}
}

// Frame reports the current state without stepping.
func (s *Session) Frame() Frame {
	return Frame{Snapshot: s.ctrl.Snapshot(), World: s.world.State()}
}
