// Command pong plays a two-player match in the terminal. Left paddle: W/S,
// right paddle: arrow keys, SPACE serves.
package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/vladimirvolkov/pong/internal/audio"
	"github.com/vladimirvolkov/pong/internal/config"
	"github.com/vladimirvolkov/pong/internal/game"
	"github.com/vladimirvolkov/pong/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "pong:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// The terminal belongs to the game, so logs go to a file when asked for.
	logger := zerolog.Nop()
	if path := os.Getenv("PONG_LOG_FILE"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger = zerolog.New(f).Level(cfg.Level()).With().Timestamp().Logger()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	sound := audio.Open(cfg.AudioEnabled, cfg.AudioVolume, logger)
	defer sound.Close()

	session := game.NewSession(game.SessionConfig{
		BallSpeed:   cfg.BallSpeed,
		PaddleSpeed: cfg.PaddleSpeed,
	}, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := tui.NewApp(screen, session, sound, cfg.TickInterval(), logger)
	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
