package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vladimirvolkov/pong/internal/config"
	"github.com/vladimirvolkov/pong/internal/game"
	"github.com/vladimirvolkov/pong/internal/httpserver"
	"github.com/vladimirvolkov/pong/internal/middleware"
	"github.com/vladimirvolkov/pong/internal/ws"
)

func main() {
	// Stdout so hosting platforms don't flag every line as an error.
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	zerolog.SetGlobalLevel(cfg.Level())

	limiter := middleware.NewIPRateLimiter(cfg.MaxConnsPerIP, cfg.MsgRate, time.Second)
	manager := &game.Manager{
		Config: game.RoomConfig{
			TickRate: cfg.TickRate,
			Session: game.SessionConfig{
				BallSpeed:   cfg.BallSpeed,
				PaddleSpeed: cfg.PaddleSpeed,
			},
		},
		Log: log.Logger,
	}
	hub := ws.NewHub(manager, limiter, cfg.AllowedOrigins, cfg.MaxRooms, log.Logger)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpserver.New(hub, httpserver.Options{StaticDir: cfg.StaticDir, Log: log.Logger}),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64KB
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go pruneVisitors(ctx, limiter)
	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		server.Close()
	}()

	log.Info().Str("port", cfg.Port).Str("static_dir", cfg.StaticDir).Msg("pong server starting")
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server error")
	}
	log.Info().Msg("server stopped")
}

func pruneVisitors(ctx context.Context, limiter *middleware.IPRateLimiter) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := limiter.Prune(5 * time.Minute); n > 0 {
				log.Debug().Int("visitors", n).Msg("pruned idle visitors")
			}
		case <-ctx.Done():
			return
		}
	}
}
