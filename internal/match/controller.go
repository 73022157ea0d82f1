package match

import (
	"time"

	"github.com/rs/zerolog"
)

// Defaults for the tunables in Config.
const (
	DefaultBallSpeed = 300.0
	DefaultGoalPause = time.Second
)

// Config tunes a match. Zero fields take the package defaults.
type Config struct {
	BallSpeed     float64
	MinServeAngle float64
	MaxServeAngle float64
	GoalPause     time.Duration
}

func (c Config) withDefaults() Config {
	if c.BallSpeed <= 0 {
		c.BallSpeed = DefaultBallSpeed
	}
	if c.MinServeAngle == 0 && c.MaxServeAngle == 0 {
		c.MinServeAngle, c.MaxServeAngle = MinServeAngle, MaxServeAngle
	}
	if c.GoalPause <= 0 {
		c.GoalPause = DefaultGoalPause
	}
	return c
}

// Commands are edge-triggered player requests for a single tick.
type Commands struct {
	Serve        bool `json:"serve"`
	RestartMatch bool `json:"restart"`
	QuitToMenu   bool `json:"quit"`
}

// TickInput is everything the controller consumes in one step.
type TickInput struct {
	Elapsed    time.Duration
	Collisions []CollisionStart
	Commands   Commands
}

// MatchState is the single owned copy of the match. Only Advance writes it.
type MatchState struct {
	Tick           uint64
	Phase          Phase
	Score          Score
	Ball           BallHandle
	PauseRemaining time.Duration // goal pause timer, zero outside PhaseGoalScored
	Quit           bool
}

// Snapshot is what renderers and transports see after a tick.
type Snapshot struct {
	Tick           uint64     `json:"tick"`
	Phase          Phase      `json:"phase"`
	Score          Score      `json:"score"`
	Server         Side       `json:"server"`
	Winner         *Side      `json:"winner,omitempty"`
	WinType        WinType    `json:"winType,omitempty"`
	PauseRemaining float64    `json:"pauseRemaining"`
	Goal           *GoalEvent `json:"goal,omitempty"` // goal resolved during this tick
	Quit           bool       `json:"quit"`
}

// Controller drives one match through its phases.
type Controller struct {
	cfg   Config
	balls BallManager
	serve *ServeDirector
	state MatchState
	log   zerolog.Logger
}

// NewController starts a match in PhaseWaitingToServe with Left serving and
// an un-served ball at the court center.
func NewController(balls BallManager, rng Rand, cfg Config, log zerolog.Logger) *Controller {
	c := &Controller{
		cfg:   cfg.withDefaults(),
		balls: balls,
		serve: NewServeDirector(rng),
		log:   log,
	}
	c.state.Phase = PhaseWaitingToServe
	c.state.Ball = balls.Spawn(balls.Center())
	return c
}

func (c *Controller) State() MatchState {
	return c.state
}

func (c *Controller) Server() Side {
	return c.serve.NextServer()
}

// Advance runs one state machine step. Goal events are only honoured in
// PhasePlaying; the first one moves the match out of play and the rest of the
// tick's events are discarded.
func (c *Controller) Advance(in TickInput) Snapshot {
	s := &c.state
	if s.Quit {
		return c.Snapshot()
	}
	s.Tick++

	goals := DetectGoals(in.Collisions)
	var resolved *GoalEvent

	switch s.Phase {
	case PhaseWaitingToServe:
		c.discard(goals)
		if in.Commands.Serve {
			c.serveBall()
		}

	case PhasePlaying:
		for i, g := range goals {
			if s.Phase != PhasePlaying {
				c.discard(goals[i:])
				break
			}
			c.resolveGoal(g)
			ev := g
			resolved = &ev
		}

	case PhaseGoalScored:
		c.discard(goals)
		s.PauseRemaining -= in.Elapsed
		if s.PauseRemaining <= 0 {
			s.PauseRemaining = 0
			s.Phase = PhaseWaitingToServe
			c.log.Debug().Uint64("tick", s.Tick).Stringer("server", c.serve.NextServer()).Msg("pause over, waiting to serve")
		}

	case PhaseGameOver:
		c.discard(goals)
		switch {
		case in.Commands.QuitToMenu:
			s.Quit = true
			c.log.Info().Uint64("tick", s.Tick).Msg("match abandoned to menu")
		case in.Commands.RestartMatch:
			c.restart()
		}
	}

	snap := c.Snapshot()
	snap.Goal = resolved
	return snap
}

// Snapshot reports the current state without advancing it.
func (c *Controller) Snapshot() Snapshot {
	s := c.state
	snap := Snapshot{
		Tick:           s.Tick,
		Phase:          s.Phase,
		Score:          s.Score,
		Server:         c.serve.NextServer(),
		PauseRemaining: s.PauseRemaining.Seconds(),
		Quit:           s.Quit,
	}
	if s.Phase == PhaseGameOver {
		if w, ok := s.Score.Winner(); ok {
			snap.Winner = &w
			snap.WinType = s.Score.WinType()
		}
	}
	return snap
}

func (c *Controller) serveBall() {
	s := &c.state
	if s.Ball == 0 {
		s.Ball = c.balls.Spawn(c.balls.Center())
	}
	server := c.serve.NextServer()
	v := c.serve.ComputeServeVelocity(server, c.cfg.BallSpeed, c.cfg.MinServeAngle, c.cfg.MaxServeAngle)
	c.balls.Serve(s.Ball, v)
	s.Phase = PhasePlaying
	c.log.Info().
		Uint64("tick", s.Tick).
		Stringer("server", server).
		Float64("vx", v.X).
		Float64("vy", v.Y).
		Msg("ball served")
}

func (c *Controller) resolveGoal(g GoalEvent) {
	s := &c.state
	s.Score.RecordPoint(g.ScoringSide)
	c.balls.Despawn(s.Ball)
	s.Ball = 0
	s.Phase = PhaseGoalScored

	c.log.Info().
		Uint64("tick", s.Tick).
		Stringer("scorer", g.ScoringSide).
		Uint32("left", s.Score.Left).
		Uint32("right", s.Score.Right).
		Msg("goal")

	if s.Score.HasWinner() {
		c.enterGameOver()
		return
	}

	// The side scored against serves next.
	c.serve.SetNextServer(g.ScoringSide.Opposite())
	s.Ball = c.balls.Spawn(c.balls.Center())
	s.PauseRemaining = c.cfg.GoalPause
}

func (c *Controller) enterGameOver() {
	s := &c.state
	s.Phase = PhaseGameOver
	s.PauseRemaining = 0

	winner, ok := s.Score.Winner()
	if !ok {
		c.log.Error().Uint32("left", s.Score.Left).Uint32("right", s.Score.Right).Msg("game over without a winner")
		return
	}
	c.log.Info().
		Uint64("tick", s.Tick).
		Str("win_type", string(s.Score.WinType())).
		Stringer("winner", winner).
		Uint32("left", s.Score.Left).
		Uint32("right", s.Score.Right).
		Msg("match over")
}

// restart always hands the first serve back to Left.
func (c *Controller) restart() {
	s := &c.state
	s.Score.Reset()
	c.serve.SetNextServer(Left)
	c.balls.Despawn(s.Ball)
	s.Ball = c.balls.Spawn(c.balls.Center())
	s.PauseRemaining = 0
	s.Phase = PhaseWaitingToServe
	c.log.Info().Uint64("tick", s.Tick).Msg("match restarted")
}

func (c *Controller) discard(goals []GoalEvent) {
	for _, g := range goals {
		c.log.Debug().
			Uint64("tick", c.state.Tick).
			Stringer("phase", c.state.Phase).
			Stringer("scorer", g.ScoringSide).
			Msg("ignoring goal outside play")
	}
}
