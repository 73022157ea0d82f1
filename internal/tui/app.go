// Package tui runs a match in the terminal.
package tui

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/vladimirvolkov/pong/internal/audio"
	"github.com/vladimirvolkov/pong/internal/game"
)

type App struct {
	screen   tcell.Screen
	session  *game.Session
	sound    audio.Sink
	renderer *Renderer
	controls Controls
	interval time.Duration
	log      zerolog.Logger
}

func NewApp(screen tcell.Screen, session *game.Session, sound audio.Sink, interval time.Duration, log zerolog.Logger) *App {
	if sound == nil {
		sound = audio.Nop{}
	}
	return &App{
		screen:   screen,
		session:  session,
		sound:    sound,
		renderer: NewRenderer(screen),
		interval: interval,
		log:      log,
	}
}

// Run drives the match until the players quit from the game-over screen,
// press Ctrl-C, or ctx is cancelled. The screen must already be initialised.
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 100)
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return // screen finalised
			}
			select {
			case events <- ev:
			case <-stop:
				return
			}
		}
	}()

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	frame := a.session.Frame()
	a.draw(frame)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				a.controls.HandleKey(ev.Key(), ev.Rune(), frame.Phase)
				if a.controls.Exit() {
					a.log.Info().Msg("interrupted")
					return nil
				}
			case *tcell.EventResize:
				a.screen.Sync()
			}

		case <-ticker.C:
			frame = a.session.Step(a.interval, a.controls.Take())
			for _, side := range frame.PaddleHits {
				a.sound.PaddleHit(side)
			}
			if frame.Quit {
				a.log.Info().Uint32("left", frame.Score.Left).Uint32("right", frame.Score.Right).Msg("left match")
				return nil
			}
			a.draw(frame)
		}
	}
}

func (a *App) draw(f game.Frame) {
	a.renderer.Draw(f)
	a.screen.Show()
}
