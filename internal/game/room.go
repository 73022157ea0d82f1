package game

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/vladimirvolkov/pong/internal/match"
	"github.com/vladimirvolkov/pong/internal/physics"
	"github.com/vladimirvolkov/pong/internal/ws"
)

type RoomConfig struct {
	Session  SessionConfig
	TickRate int
}

// Room runs one local match for a single websocket client that drives both
// paddles.
type Room struct {
	id      string
	conn    *ws.Conn
	cfg     RoomConfig
	session *Session
	input   Input
	inputMu sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	log     zerolog.Logger

	lastPhase match.Phase
}

func NewRoom(conn *ws.Conn, cfg RoomConfig, log zerolog.Logger) *Room {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	log = log.With().Str("room", conn.ID).Logger()
	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	r := &Room{
		id:      conn.ID,
		conn:    conn,
		cfg:     cfg,
		session: NewSession(cfg.Session, rng, log),
		log:     log,
	}
	r.lastPhase = r.session.Frame().Phase
	return r
}

func (r *Room) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)
	r.done = make(chan struct{})

	r.send(ws.MsgMatchStart, 0, ws.MatchStartPayload{
		RoomID:    r.id,
		TickRate:  r.cfg.TickRate,
		WinScore:  match.WinScore,
		Mercy:     match.MercyScore,
		CourtW:    physics.CourtWidth,
		CourtH:    physics.CourtHeight,
		GoalPause: goalPause(r.cfg.Session).Seconds(),
	})

	go r.readLoop(ctx)
	go func() {
		r.gameLoop(ctx)
		close(r.done)
	}()
}

// Done returns a channel that closes when the room's game loop exits.
func (r *Room) Done() <-chan struct{} {
	return r.done
}

func (r *Room) readLoop(ctx context.Context) {
	msgs := r.conn.ReadLoop(ctx)
	for {
		select {
		case msg, ok := <-msgs:
			if !ok {
				r.log.Info().Msg("client disconnected")
				r.cancel()
				return
			}
			r.handleMessage(msg)
		case <-ctx.Done():
			return
		}
	}
}

func (r *Room) handleMessage(msg ws.Message) {
	switch msg.Type {
	case ws.MsgPaddleInput:
		var in ws.PaddleInputPayload
		if err := json.Unmarshal(msg.Payload, &in); err != nil {
			return
		}
		r.inputMu.Lock()
		r.input.Paddles[match.Left] = float64(in.Left)
		r.input.Paddles[match.Right] = float64(in.Right)
		r.inputMu.Unlock()

	case ws.MsgCommand:
		var cmd ws.CommandPayload
		if err := json.Unmarshal(msg.Payload, &cmd); err != nil {
			return
		}
		// Latch until the next tick consumes them.
		r.inputMu.Lock()
		r.input.Commands.Serve = r.input.Commands.Serve || cmd.Serve
		r.input.Commands.RestartMatch = r.input.Commands.RestartMatch || cmd.RestartMatch
		r.input.Commands.QuitToMenu = r.input.Commands.QuitToMenu || cmd.QuitToMenu
		r.inputMu.Unlock()

	case ws.MsgPing:
		var ping ws.PingPayload
		if err := json.Unmarshal(msg.Payload, &ping); err != nil {
			return
		}
		r.send(ws.MsgPong, 0, ws.PongPayload{
			ClientTime: ping.ClientTime,
			ServerTime: uint64(time.Now().UnixMilli()),
		})
	}
}

func (r *Room) gameLoop(ctx context.Context) {
	interval := time.Second / time.Duration(r.cfg.TickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if frame := r.tick(interval); frame.Quit {
				r.conn.Flush(time.Second)
				r.cancel()
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// takeInput returns the pending input and clears the one-shot commands.
func (r *Room) takeInput() Input {
	r.inputMu.Lock()
	defer r.inputMu.Unlock()
	in := r.input
	r.input.Commands = match.Commands{}
	return in
}

func (r *Room) tick(dt time.Duration) Frame {
	frame := r.session.Step(dt, r.takeInput())

	if frame.Goal != nil {
		r.send(ws.MsgGoal, frame.Tick, ws.GoalPayload{Scorer: frame.Goal.ScoringSide, Score: frame.Score})
	}
	for _, side := range frame.PaddleHits {
		r.send(ws.MsgPaddleHit, frame.Tick, ws.PaddleHitPayload{Side: side})
	}
	if frame.Phase == match.PhaseGameOver && r.lastPhase != match.PhaseGameOver && frame.Winner != nil {
		r.send(ws.MsgGameOver, frame.Tick, ws.GameOverPayload{
			Winner:  *frame.Winner,
			WinType: frame.WinType,
			Score:   frame.Score,
		})
	}
	r.lastPhase = frame.Phase

	r.send(ws.MsgMatchState, frame.Tick, frame)
	return frame
}

func (r *Room) send(typ uint8, tick uint64, payload any) {
	msg, err := ws.NewMessage(typ, tick, payload)
	if err != nil {
		r.log.Error().Err(err).Uint8("type", typ).Msg("encode message")
		return
	}
	r.conn.Send(msg)
}

func goalPause(cfg SessionConfig) time.Duration {
	if cfg.GoalPause > 0 {
		return cfg.GoalPause
	}
	return match.DefaultGoalPause
}

// Manager creates rooms for the hub.
type Manager struct {
	Config RoomConfig
	Log    zerolog.Logger
}

func (m *Manager) CreateRoom(conn *ws.Conn) <-chan struct{} {
	room := NewRoom(conn, m.Config, m.Log)
	room.Start(context.Background())
	return room.Done()
}
