// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Port           string   `env:"PORT"            envDefault:"8080"`
	StaticDir      string   `env:"STATIC_DIR"      envDefault:"../client/dist"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
	LogLevel       string   `env:"LOG_LEVEL"       envDefault:"info"`

	TickRate    int     `env:"TICK_RATE"    envDefault:"60"`
	BallSpeed   float64 `env:"BALL_SPEED"   envDefault:"300"`
	PaddleSpeed float64 `env:"PADDLE_SPEED" envDefault:"400"`

	MaxRooms      int64 `env:"MAX_ROOMS"        envDefault:"100"`
	MaxConnsPerIP int   `env:"MAX_CONNS_PER_IP" envDefault:"4"`
	MsgRate       int   `env:"MSG_RATE"         envDefault:"120"` // messages per second per IP

	AudioEnabled bool    `env:"AUDIO_ENABLED" envDefault:"true"`
	AudioVolume  float64 `env:"AUDIO_VOLUME"  envDefault:"0.5"`
}

// Load reads .env if present, then parses and validates the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse reads the process environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.TickRate <= 0:
		return fmt.Errorf("%w: TICK_RATE must be positive, got %d", ErrInvalid, c.TickRate)
	case !(c.BallSpeed > 0) || math.IsInf(c.BallSpeed, 0):
		return fmt.Errorf("%w: BALL_SPEED must be positive and finite, got %v", ErrInvalid, c.BallSpeed)
	case !(c.PaddleSpeed > 0) || math.IsInf(c.PaddleSpeed, 0):
		return fmt.Errorf("%w: PADDLE_SPEED must be positive and finite, got %v", ErrInvalid, c.PaddleSpeed)
	case c.MaxRooms <= 0:
		return fmt.Errorf("%w: MAX_ROOMS must be positive, got %d", ErrInvalid, c.MaxRooms)
	case c.MaxConnsPerIP <= 0:
		return fmt.Errorf("%w: MAX_CONNS_PER_IP must be positive, got %d", ErrInvalid, c.MaxConnsPerIP)
	case c.MsgRate <= 0:
		return fmt.Errorf("%w: MSG_RATE must be positive, got %d", ErrInvalid, c.MsgRate)
	case c.AudioVolume < 0 || c.AudioVolume > 1:
		return fmt.Errorf("%w: AUDIO_VOLUME must be within [0, 1], got %v", ErrInvalid, c.AudioVolume)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: LOG_LEVEL: %v", ErrInvalid, err)
	}
	return nil
}

// TickInterval is the wall time between simulation steps.
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// Level returns the parsed log level. Validate has already vetted it.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}
